package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/bion/backend/internal/service"
	"github.com/pageza/bion/backend/internal/types"
)

// Context keys set by AuthMiddleware
const (
	UserIDKey = "user_id"
	EmailKey  = "email"
)

// TokenValidator is an interface for validating JWT tokens
type TokenValidator interface {
	ValidateToken(token string) (*types.TokenClaims, error)
}

// AuthMiddleware creates a middleware that validates JWT tokens and stores
// the caller's user id in the context
func AuthMiddleware(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := validator.ValidateToken(parts[1])
		if err != nil {
			msg := "invalid token"
			if errors.Is(err, service.ErrTokenExpired) {
				msg = "token has expired"
			}
			c.JSON(http.StatusUnauthorized, gin.H{"error": msg})
			c.Abort()
			return
		}
		userID, err := claims.UserID()
		if err != nil || userID == uuid.Nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		c.Set(UserIDKey, userID)
		c.Set(EmailKey, claims.Email)
		c.Next()
	}
}

// IdentityFrom returns the caller resolved by AuthMiddleware, or an anonymous
// identity when there is none
func IdentityFrom(c *gin.Context) service.Identity {
	v, ok := c.Get(UserIDKey)
	if !ok {
		return service.Identity{}
	}
	id, ok := v.(uuid.UUID)
	if !ok {
		return service.Identity{}
	}
	return service.NewIdentity(id)
}
