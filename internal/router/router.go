// Package router assembles the gin engine: ambient middleware, templates and
// the API routes.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/bion/backend/internal/api"
	"github.com/pageza/bion/backend/internal/logger"
	"github.com/pageza/bion/backend/internal/middleware"
	"github.com/pageza/bion/backend/internal/render"
)

// Options configures SetupRouter
type Options struct {
	Logger      *zap.Logger
	CORSOrigins []string
	Deps        api.Deps
}

// SetupRouter configures the application routes
func SetupRouter(opts Options) *gin.Engine {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Deps.Logger == nil {
		opts.Deps.Logger = log
	}

	router := gin.New()
	router.Use(logger.GinRecovery(log))
	router.Use(logger.GinLogger(log))
	router.Use(middleware.CORS(opts.CORSOrigins))
	router.SetHTMLTemplate(render.Templates())

	api.RegisterRoutes(router, opts.Deps)
	return router
}
