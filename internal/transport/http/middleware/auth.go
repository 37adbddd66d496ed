package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/ErlanBelekov/taskboard/internal/auth"
	"github.com/ErlanBelekov/taskboard/internal/domain"
	"github.com/ErlanBelekov/taskboard/internal/metrics"
	"github.com/gin-gonic/gin"
)

// UserIDKey is the gin context key holding the authenticated user's ID.
const UserIDKey = "userID"

const (
	errTokenMissing = "Token is missing"
	errTokenInvalid = "Token is invalid"
	errTokenExpired = "Token has expired"
)

// TokenVerifier is satisfied by *usecase.AuthUsecase.
type TokenVerifier interface {
	Verify(ctx context.Context, rawToken string) (*auth.Claims, error)
}

// Auth validates a Bearer token. On success the caller's identity is stored
// under UserIDKey in the gin context and attached to the request context.
func Auth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		rawToken, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(rawToken) == "" {
			metrics.AuthEventsTotal.WithLabelValues("verify", "missing").Inc()
			unauthorized(c, errTokenMissing)
			return
		}

		claims, err := verifier.Verify(c.Request.Context(), strings.TrimSpace(rawToken))
		if err != nil {
			if errors.Is(err, domain.ErrTokenExpired) {
				metrics.AuthEventsTotal.WithLabelValues("verify", "expired").Inc()
				unauthorized(c, errTokenExpired)
				return
			}
			metrics.AuthEventsTotal.WithLabelValues("verify", "invalid").Inc()
			unauthorized(c, errTokenInvalid)
			return
		}

		identity := claims.Identity()
		c.Set(UserIDKey, identity.ID)
		c.Request = c.Request.WithContext(domain.WithIdentity(c.Request.Context(), identity))
		metrics.AuthEventsTotal.WithLabelValues("verify", "ok").Inc()
		c.Next()
	}
}

func unauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": msg,
		"kind":  string(domain.KindAuthentication),
	})
}
