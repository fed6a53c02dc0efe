package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const keyPrefix = "bion"

// PublicKey is the key of a rendered public page
func PublicKey(username string) string {
	return keyPrefix + ":public:" + username
}

// DashboardKey is the key of an owner's dashboard data
func DashboardKey(userID uuid.UUID) string {
	return keyPrefix + ":dashboard:" + userID.String()
}

// Pages caches page payloads as JSON. Failures are logged and reported as
// misses; they never reach the caller. A nil *Pages is a valid no-op cache.
type Pages struct {
	store  Store
	ttl    time.Duration
	logger *zap.Logger
}

// NewPages creates a page cache over store
func NewPages(store Store, ttl time.Duration, logger *zap.Logger) *Pages {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pages{store: store, ttl: ttl, logger: logger}
}

// GetPublicPage loads the cached public page for username into dst
func (p *Pages) GetPublicPage(ctx context.Context, username string, dst interface{}) bool {
	return p.get(ctx, PublicKey(username), dst)
}

// SetPublicPage stores the public page for username
func (p *Pages) SetPublicPage(ctx context.Context, username string, v interface{}) {
	p.set(ctx, PublicKey(username), v)
}

// RefreshPublicPage drops the cached public page for each username
func (p *Pages) RefreshPublicPage(ctx context.Context, usernames ...string) {
	keys := make([]string, 0, len(usernames))
	for _, u := range usernames {
		if u != "" {
			keys = append(keys, PublicKey(u))
		}
	}
	p.delete(ctx, keys...)
}

// GetDashboard loads the cached dashboard of userID into dst
func (p *Pages) GetDashboard(ctx context.Context, userID uuid.UUID, dst interface{}) bool {
	return p.get(ctx, DashboardKey(userID), dst)
}

// SetDashboard stores the dashboard of userID
func (p *Pages) SetDashboard(ctx context.Context, userID uuid.UUID, v interface{}) {
	p.set(ctx, DashboardKey(userID), v)
}

// RefreshDashboard drops the cached dashboard of userID
func (p *Pages) RefreshDashboard(ctx context.Context, userID uuid.UUID) {
	p.delete(ctx, DashboardKey(userID))
}

func (p *Pages) get(ctx context.Context, key string, dst interface{}) bool {
	if p == nil || p.store == nil {
		return false
	}
	b, err := p.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrMiss) {
			p.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(b, dst); err != nil {
		p.logger.Warn("cache entry corrupt", zap.String("key", key), zap.Error(err))
		p.delete(ctx, key)
		return false
	}
	return true
}

func (p *Pages) set(ctx context.Context, key string, v interface{}) {
	if p == nil || p.store == nil {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		p.logger.Warn("cache encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := p.store.Set(ctx, key, b, p.ttl); err != nil {
		p.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (p *Pages) delete(ctx context.Context, keys ...string) {
	if p == nil || p.store == nil || len(keys) == 0 {
		return
	}
	if err := p.store.Delete(ctx, keys...); err != nil {
		p.logger.Warn("cache invalidation failed", zap.Strings("keys", keys), zap.Error(err))
	}
}
