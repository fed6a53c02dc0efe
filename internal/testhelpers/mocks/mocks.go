package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/bion/backend/internal/models"
	"github.com/pageza/bion/backend/internal/service"
	"github.com/pageza/bion/backend/internal/types"
)

// MockTokenValidator is a mock implementation of middleware.TokenValidator
type MockTokenValidator struct {
	mock.Mock
}

func (m *MockTokenValidator) ValidateToken(token string) (*types.TokenClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.TokenClaims), args.Error(1)
}

// MockBlockService is a mock implementation of service.IBlockService
type MockBlockService struct {
	mock.Mock
}

var _ service.IBlockService = (*MockBlockService)(nil)

func (m *MockBlockService) Create(ctx context.Context, id service.Identity, req *types.CreateBlockRequest) (*models.Block, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Block), args.Error(1)
}

func (m *MockBlockService) Update(ctx context.Context, id service.Identity, blockID string, req *types.UpdateBlockRequest) (*models.Block, error) {
	args := m.Called(ctx, id, blockID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Block), args.Error(1)
}

func (m *MockBlockService) Delete(ctx context.Context, id service.Identity, blockID string) error {
	args := m.Called(ctx, id, blockID)
	return args.Error(0)
}

func (m *MockBlockService) Reorder(ctx context.Context, id service.Identity, blockIDs []string) error {
	args := m.Called(ctx, id, blockIDs)
	return args.Error(0)
}

func (m *MockBlockService) IncrementClick(ctx context.Context, blockID string) error {
	args := m.Called(ctx, blockID)
	return args.Error(0)
}

func (m *MockBlockService) List(ctx context.Context, id service.Identity) ([]models.Block, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Block), args.Error(1)
}

func (m *MockBlockService) Get(ctx context.Context, id service.Identity, blockID string) (*models.Block, error) {
	args := m.Called(ctx, id, blockID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Block), args.Error(1)
}

// MockProfileService is a mock implementation of service.IProfileService
type MockProfileService struct {
	mock.Mock
}

var _ service.IProfileService = (*MockProfileService)(nil)

func (m *MockProfileService) Setup(ctx context.Context, id service.Identity, req *types.SetupProfileRequest) (*models.Profile, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockProfileService) Get(ctx context.Context, id service.Identity) (*models.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockProfileService) Update(ctx context.Context, id service.Identity, req *types.UpdateProfileRequest) (*models.Profile, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockProfileService) PublicPage(ctx context.Context, username string) (*types.PublicPage, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.PublicPage), args.Error(1)
}

func (m *MockProfileService) Dashboard(ctx context.Context, id service.Identity) (*types.DashboardResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.DashboardResponse), args.Error(1)
}
