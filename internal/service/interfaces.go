package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/pageza/bion/backend/internal/cache"
	"github.com/pageza/bion/backend/internal/models"
	"github.com/pageza/bion/backend/internal/types"
)

// IAuthService defines the interface for token verification
type IAuthService interface {
	ValidateToken(token string) (*types.TokenClaims, error)
}

// IBlockService defines the interface for block operations
type IBlockService interface {
	Create(ctx context.Context, id Identity, req *types.CreateBlockRequest) (*models.Block, error)
	Update(ctx context.Context, id Identity, blockID string, req *types.UpdateBlockRequest) (*models.Block, error)
	Delete(ctx context.Context, id Identity, blockID string) error
	Reorder(ctx context.Context, id Identity, blockIDs []string) error
	IncrementClick(ctx context.Context, blockID string) error
	List(ctx context.Context, id Identity) ([]models.Block, error)
	Get(ctx context.Context, id Identity, blockID string) (*models.Block, error)
}

// IProfileService defines the interface for profile operations
type IProfileService interface {
	Setup(ctx context.Context, id Identity, req *types.SetupProfileRequest) (*models.Profile, error)
	Get(ctx context.Context, id Identity) (*models.Profile, error)
	Update(ctx context.Context, id Identity, req *types.UpdateProfileRequest) (*models.Profile, error)
	PublicPage(ctx context.Context, username string) (*types.PublicPage, error)
	Dashboard(ctx context.Context, id Identity) (*types.DashboardResponse, error)
}

// PageCache stores rendered views. Refresh drops a view so the next read
// rebuilds it.
type PageCache interface {
	GetPublicPage(ctx context.Context, username string, dst interface{}) bool
	SetPublicPage(ctx context.Context, username string, v interface{})
	RefreshPublicPage(ctx context.Context, usernames ...string)
	GetDashboard(ctx context.Context, userID uuid.UUID, dst interface{}) bool
	SetDashboard(ctx context.Context, userID uuid.UUID, v interface{})
	RefreshDashboard(ctx context.Context, userID uuid.UUID)
}

// noCache is used when no PageCache is configured; a nil *cache.Pages
// ignores every call
var noCache PageCache = (*cache.Pages)(nil)
