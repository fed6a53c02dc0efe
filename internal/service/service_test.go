package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"

	"github.com/pageza/bion/backend/internal/cache"
	"github.com/pageza/bion/backend/internal/models"
	"github.com/pageza/bion/backend/internal/repository"
	"github.com/pageza/bion/backend/internal/service"
	"github.com/pageza/bion/backend/internal/testhelpers"
)

type fixture struct {
	db       *gorm.DB
	store    *cache.MemoryStore
	logs     *observer.ObservedLogs
	blocks   *service.BlockService
	profiles *service.ProfileService
	owner    *models.Profile
	id       service.Identity
}

func setup(t *testing.T) *fixture {
	t.Helper()
	db := testhelpers.SetupSQLiteDB(t)
	store := cache.NewMemoryStore()
	core, logs := observer.New(zap.DebugLevel)
	logger := zap.New(core)

	repo := repository.New(db)
	pages := cache.NewPages(store, time.Minute, logger)
	owner := testhelpers.CreateProfile(t, db, "ada")

	return &fixture{
		db:       db,
		store:    store,
		logs:     logs,
		blocks:   service.NewBlockService(repo, pages, logger),
		profiles: service.NewProfileService(repo, pages, logger, "https://bion.example/"),
		owner:    owner,
		id:       service.NewIdentity(owner.ID),
	}
}

// primeCache fills the owner's cached views so tests can check they were
// dropped
func (f *fixture) primeCache(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, f.store.Set(ctx, cache.PublicKey(f.owner.Username), []byte(`{}`), 0))
	require.NoError(t, f.store.Set(ctx, cache.DashboardKey(f.owner.ID), []byte(`{}`), 0))
}

func (f *fixture) cacheDropped(t *testing.T) {
	t.Helper()
	require.False(t, f.store.Has(cache.PublicKey(f.owner.Username)), "public page still cached")
	require.False(t, f.store.Has(cache.DashboardKey(f.owner.ID)), "dashboard still cached")
}

func anonymous() service.Identity {
	return service.NewIdentity(uuid.Nil)
}

func repositoryFor(db *gorm.DB) *repository.Repository {
	return repository.New(db)
}
