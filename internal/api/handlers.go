package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/bion/backend/internal/middleware"
	"github.com/pageza/bion/backend/internal/repository"
	"github.com/pageza/bion/backend/internal/service"
)

// Deps carries everything RegisterRoutes wires together. Nil limiters turn
// rate limiting off.
type Deps struct {
	Auth     middleware.TokenValidator
	Blocks   service.IBlockService
	Profiles service.IProfileService
	// Onboarded looks up the caller's profile for routes that need one
	Onboarded repository.ProfileRepository
	SiteURL   string
	Logger    *zap.Logger

	MutationLimiter *middleware.RateLimiter
	ClickLimiter    *middleware.RateLimiter
}

// RegisterRoutes registers all API routes plus the HTML profile pages
func RegisterRoutes(router *gin.Engine, deps Deps) {
	router.GET("/health", HealthCheck)
	router.GET("/api/health", HealthCheck)

	v1 := router.Group("/api/v1")

	NewPlatformHandler().RegisterRoutes(v1)

	publicHandler := NewPublicHandler(deps.Profiles, deps.Blocks, deps.SiteURL, deps.Logger)
	publicHandler.RegisterRoutes(v1, deps.ClickLimiter.RateLimitMiddleware())

	mutation := deps.MutationLimiter.RateLimitMiddleware()

	authed := v1.Group("")
	authed.Use(middleware.AuthMiddleware(deps.Auth))

	profileHandler := NewProfileHandler(deps.Profiles)
	profileHandler.RegisterRoutes(authed, mutation)

	// Everything below needs a finished profile
	onboarded := authed.Group("")
	onboarded.Use(middleware.RequireProfile(deps.Onboarded, deps.Logger))
	profileHandler.RegisterDashboardRoutes(onboarded)
	NewBlockHandler(deps.Blocks).RegisterRoutes(onboarded, mutation)

	publicHandler.RegisterPageRoutes(router)
}
