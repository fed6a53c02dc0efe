package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log"
	"os"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/pageza/bion/backend/config"
	"github.com/pageza/bion/backend/internal/database"
	"github.com/pageza/bion/backend/internal/logger"
)

func main() {
	rollback := flag.Bool("rollback", false, "Rollback the last migration")
	dir := flag.String("dir", "migrations", "Directory holding the SQL migrations")
	flag.Parse()

	logg := logger.New(logger.Options{Level: os.Getenv("LOG_LEVEL")})
	defer func() { _ = logg.Sync() }()

	// DATABASE_URL wins; otherwise the regular configuration is used
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("DATABASE_URL is not set and configuration failed: %v", err)
		}
		dsn = cfg.DatabaseURL()
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		logg.Fatal("failed to open database", zap.Error(err))
	}
	defer db.Close()

	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		logg.Fatal("failed to connect to database", zap.Error(err))
	}

	if *rollback {
		name, err := database.Rollback(ctx, db, *dir, logg)
		if errors.Is(err, database.ErrNoMigrations) {
			logg.Info("no migrations to rollback")
			return
		}
		if err != nil {
			logg.Fatal("rollback failed", zap.Error(err))
		}
		logg.Info("rolled back", zap.String("migration", name))
		return
	}

	applied, err := database.Migrate(ctx, db, *dir, logg)
	if err != nil {
		logg.Fatal("migration failed", zap.Error(err), zap.Strings("applied", applied))
	}
	logg.Info("all migrations applied", zap.Int("count", len(applied)))
}
