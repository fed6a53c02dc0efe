// Package api holds the gin handlers of the HTTP interface.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/bion/backend/internal/service"
)

// HealthCheck returns the health status of the API
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "Bion API is running",
	})
}

// statusFor maps a service error kind to its HTTP status
func statusFor(kind service.Kind) int {
	switch kind {
	case service.KindUnauthorized:
		return http.StatusUnauthorized
	case service.KindInvalidInput:
		return http.StatusBadRequest
	case service.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as {"error": message}. The cause is attached to
// the context so the request logger records it.
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(statusFor(service.KindOf(err)), gin.H{"error": service.MessageOf(err)})
}

func respondBadBody(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
}

// with returns a fresh chain of mw followed by h
func with(mw []gin.HandlerFunc, h gin.HandlerFunc) []gin.HandlerFunc {
	chain := make([]gin.HandlerFunc, 0, len(mw)+1)
	return append(append(chain, mw...), h)
}
