package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ridloal/storefront/internal/platform/logger"
	"github.com/ridloal/storefront/internal/session/domain"
	"github.com/ridloal/storefront/internal/session/service"
)

const (
	CookieName  = "visitor_token"
	HeaderName  = "X-Visitor-Token"
	visitorKey  = "visitor_id"
	visitorInfo = "visitor"
)

// VisitorMiddleware memastikan setiap request punya visitor; token baru diterbitkan
// jika cookie/header tidak ada, tidak valid, atau kedaluwarsa.
func VisitorMiddleware(vs service.VisitorService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader(HeaderName)
		if tokenString == "" {
			tokenString, _ = c.Cookie(CookieName)
		}

		var visitor *domain.Visitor
		if tokenString != "" {
			parsed, err := vs.Parse(tokenString)
			if err == nil {
				visitor = parsed
			}
		}

		if visitor == nil {
			token, issued, err := vs.Issue()
			if err != nil {
				logger.Error("VisitorMiddleware: failed to issue visitor token", err, nil)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to start visitor session"})
				return
			}
			visitor = issued
			maxAge := int(time.Until(issued.ExpiresAt).Seconds())
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(CookieName, token, maxAge, "/", "", false, true)
			c.Header(HeaderName, token)
		}

		c.Set(visitorKey, visitor.ID)
		c.Set(visitorInfo, visitor)
		c.Next()
	}
}

// VisitorID mengambil id visitor yang dipasang middleware
func VisitorID(c *gin.Context) string {
	return c.GetString(visitorKey)
}

type VisitorHandler struct{}

func NewVisitorHandler() *VisitorHandler {
	return &VisitorHandler{}
}

func (h *VisitorHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/visitor", h.GetVisitor)
}

func (h *VisitorHandler) GetVisitor(c *gin.Context) {
	v, ok := c.Get(visitorInfo)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Visitor session missing"})
		return
	}
	c.JSON(http.StatusOK, v)
}
