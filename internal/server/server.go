package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/bion/backend/config"
	"github.com/pageza/bion/backend/internal/api"
	"github.com/pageza/bion/backend/internal/cache"
	"github.com/pageza/bion/backend/internal/middleware"
	"github.com/pageza/bion/backend/internal/repository"
	"github.com/pageza/bion/backend/internal/router"
	"github.com/pageza/bion/backend/internal/service"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
	logger *zap.Logger
}

// New wires the services and routes. rdb may be nil, which turns off page
// caching and rate limiting.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	repo := repository.New(db)
	var pages *cache.Pages
	if rdb != nil {
		pages = cache.NewPages(cache.NewRedisStore(rdb), cfg.PublicCacheTTL, logger)
	}

	blocks := service.NewBlockService(repo, pages, logger)
	profiles := service.NewProfileService(repo, pages, logger, cfg.SiteURL)

	engine := router.SetupRouter(router.Options{
		Logger:      logger,
		CORSOrigins: cfg.CORSOrigins,
		Deps: api.Deps{
			Auth:            service.NewAuthService(cfg.JWTSecret),
			Blocks:          blocks,
			Profiles:        profiles,
			Onboarded:       repo.Profiles,
			SiteURL:         cfg.SiteURL,
			Logger:          logger,
			MutationLimiter: middleware.NewMutationRateLimiter(rdb, cfg.MutationRateLimit, cfg.RateLimitWindow, logger),
			ClickLimiter:    middleware.NewClickRateLimiter(rdb, cfg.ClickRateLimit, cfg.RateLimitWindow, logger),
		},
	})

	return &Server{
		router: engine,
		logger: logger,
		http: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
	}
}

// Handler returns the routed engine
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens on the configured address. It returns nil after Shutdown.
func (s *Server) Start() error {
	s.logger.Info("starting server", zap.String("addr", s.http.Addr))
	return ignoreClosed(s.http.ListenAndServe())
}

// Serve accepts connections on l until Shutdown
func (s *Server) Serve(l net.Listener) error {
	s.logger.Info("starting server", zap.String("addr", l.Addr().String()))
	return ignoreClosed(s.http.Serve(l))
}

// Shutdown stops accepting connections and waits for in-flight requests
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down server")
	return s.http.Shutdown(ctx)
}

func ignoreClosed(err error) error {
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
