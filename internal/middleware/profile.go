package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/bion/backend/internal/repository"
)

// RequireProfile rejects callers that have not finished onboarding. It must
// run after AuthMiddleware.
func RequireProfile(profiles repository.ProfileRepository, logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *gin.Context) {
		id := IdentityFrom(c)
		if id.Anonymous() {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}

		if _, err := profiles.FindByID(c.Request.Context(), id.UserID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				c.JSON(http.StatusForbidden, gin.H{
					"error":   "profile setup required",
					"message": "Please choose a username before managing your page",
				})
				c.Abort()
				return
			}
			logger.Error("profile lookup failed", zap.Stringer("user_id", id.UserID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to verify profile"})
			c.Abort()
			return
		}

		c.Next()
	}
}
