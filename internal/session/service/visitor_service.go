package service

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/ridloal/storefront/internal/platform/logger"
	"github.com/ridloal/storefront/internal/session/domain"
)

var ErrInvalidVisitorToken = errors.New("invalid or expired visitor token")

const visitorRole = "visitor"

// VisitorService menerbitkan token anonim yang menjadi scope "localStorage" per browser
type VisitorService interface {
	Issue() (string, *domain.Visitor, error)
	Parse(token string) (*domain.Visitor, error)
}

type visitorService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewVisitorService(secret string, ttl time.Duration) VisitorService {
	if secret == "" {
		logger.Warn("VISITOR_TOKEN_SECRET not set, using a random per-process secret")
		secret = randomSecret()
	}
	return &visitorService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func randomSecret() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "storefront-visitor-secret"
	}
	return hex.EncodeToString(b)
}

func (s *visitorService) Issue() (string, *domain.Visitor, error) {
	now := s.now()
	visitor := &domain.Visitor{
		ID:        uuid.NewString(),
		IssuedAt:  now,
		ExpiresAt: now.Add(s.ttl),
	}
	claims := jwt.MapClaims{
		"sub":  visitor.ID,
		"role": visitorRole,
		"iat":  visitor.IssuedAt.Unix(),
		"exp":  visitor.ExpiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		logger.Error("VisitorService.Issue: failed to sign token", err, nil)
		return "", nil, fmt.Errorf("could not generate visitor token: %w", err)
	}
	return tokenString, visitor, nil
}

func (s *visitorService) Parse(tokenString string) (*domain.Visitor, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, ErrInvalidVisitorToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["role"] != visitorRole {
		return nil, ErrInvalidVisitorToken
	}
	sub, err := claims.GetSubject()
	if err != nil {
		return nil, ErrInvalidVisitorToken
	}
	if _, err := uuid.Parse(sub); err != nil {
		return nil, ErrInvalidVisitorToken
	}

	visitor := &domain.Visitor{ID: sub}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		visitor.IssuedAt = iat.Time
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		visitor.ExpiresAt = exp.Time
	}
	return visitor, nil
}
