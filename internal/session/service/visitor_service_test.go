package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/ridloal/storefront/internal/session/repository/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVisitorService_IssueAndParse(t *testing.T) {
	svc := NewVisitorService("test-secret", time.Hour)

	token, visitor, err := svc.Issue()
	require.NoError(t, err)
	require.NotEmpty(t, token)
	_, err = uuid.Parse(visitor.ID)
	require.NoError(t, err)

	parsed, err := svc.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, visitor.ID, parsed.ID)
	assert.WithinDuration(t, visitor.ExpiresAt, parsed.ExpiresAt, time.Second)
}

func TestVisitorService_ParseRejects(t *testing.T) {
	svc := NewVisitorService("test-secret", time.Hour)

	t.Run("Garbage token", func(t *testing.T) {
		_, err := svc.Parse("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidVisitorToken)
	})

	t.Run("Token signed with another secret", func(t *testing.T) {
		other := NewVisitorService("other-secret", time.Hour)
		token, _, err := other.Issue()
		require.NoError(t, err)

		_, err = svc.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidVisitorToken)
	})

	t.Run("Expired token", func(t *testing.T) {
		expired := &visitorService{secret: []byte("test-secret"), ttl: time.Minute, now: func() time.Time {
			return time.Now().Add(-time.Hour)
		}}
		token, _, err := expired.Issue()
		require.NoError(t, err)

		_, err = svc.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidVisitorToken)
	})

	t.Run("Wrong role", func(t *testing.T) {
		claims := jwt.MapClaims{"sub": uuid.NewString(), "role": "admin", "exp": time.Now().Add(time.Hour).Unix()}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
		require.NoError(t, err)

		_, err = svc.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidVisitorToken)
	})
}

func TestStatePurger_PurgeIdleState(t *testing.T) {
	ctx := context.TODO()

	t.Run("Successful purge", func(t *testing.T) {
		mockStore := new(mocks.MockStateStore)
		purger := NewStatePurger(mockStore, 24*time.Hour)
		mockStore.On("PurgeIdle", ctx, 24*time.Hour).Return(int64(3), nil).Once()

		assert.Equal(t, int64(3), purger.PurgeIdleState(ctx))
		mockStore.AssertExpectations(t)
	})

	t.Run("Store error is swallowed", func(t *testing.T) {
		mockStore := new(mocks.MockStateStore)
		purger := NewStatePurger(mockStore, 24*time.Hour)
		mockStore.On("PurgeIdle", ctx, 24*time.Hour).Return(int64(0), errors.New("db down")).Once()

		assert.Equal(t, int64(0), purger.PurgeIdleState(ctx))
		mockStore.AssertExpectations(t)
	})
}
