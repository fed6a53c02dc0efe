package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/pageza/bion/backend/config"
	"github.com/pageza/bion/backend/internal/database"
	"github.com/pageza/bion/backend/internal/logger"
	"github.com/pageza/bion/backend/internal/server"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logg := logger.New(logger.Options{
		Level:       cfg.LogLevel,
		File:        cfg.LogFile,
		Development: cfg.Environment != config.Production,
	})
	defer func() { _ = logg.Sync() }()

	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Open(cfg, logg)
	if err != nil {
		logg.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.RunMigrations(db, migrationsDir(), logg); err != nil {
		logg.Fatal("failed to run migrations", zap.Error(err))
	}

	// Redis backs the page cache and the rate limiters; without it both are
	// switched off
	var rdb *redis.Client
	if client, err := database.NewRedisClient(cfg, logg); err != nil {
		logg.Warn("redis unavailable, caching and rate limiting disabled", zap.Error(err))
	} else {
		rdb = client
		defer rdb.Close()
	}

	srv := server.New(cfg, db, rdb, logg)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			logg.Fatal("server error", zap.Error(err))
		}
		return
	case sig := <-quit:
		logg.Info("received signal", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logg.Error("server shutdown error", zap.Error(err))
		return
	}
	logg.Info("server stopped")
}

func migrationsDir() string {
	if dir := os.Getenv("MIGRATIONS_DIR"); dir != "" {
		return dir
	}
	return "migrations"
}
