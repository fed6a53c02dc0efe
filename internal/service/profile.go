package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/pageza/bion/backend/internal/models"
	"github.com/pageza/bion/backend/internal/repository"
	"github.com/pageza/bion/backend/internal/types"
	"github.com/pageza/bion/backend/internal/validation"
)

// ProfileService handles profile setup, settings and page assembly
type ProfileService struct {
	repo    *repository.Repository
	pages   PageCache
	logger  *zap.Logger
	siteURL string
}

// Ensure ProfileService implements IProfileService
var _ IProfileService = (*ProfileService)(nil)

// NewProfileService creates a new ProfileService instance. siteURL is the
// public base URL used to build share links.
func NewProfileService(repo *repository.Repository, pages PageCache, logger *zap.Logger, siteURL string) *ProfileService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if pages == nil {
		pages = noCache
	}
	return &ProfileService{
		repo:    repo,
		pages:   pages,
		logger:  logger,
		siteURL: strings.TrimRight(siteURL, "/"),
	}
}

// Setup creates the caller's profile from onboarding data
func (s *ProfileService) Setup(ctx context.Context, id Identity, req *types.SetupProfileRequest) (*models.Profile, error) {
	if err := requireIdentity(id); err != nil {
		return nil, err
	}
	v, err := validation.ValidateProfile(validation.ProfileInput{
		FullName: req.FullName,
		Username: req.Username,
	})
	if err != nil {
		return nil, invalidInput(fieldMessage(err))
	}

	if _, err := s.repo.Profiles.FindByID(ctx, id.UserID); err == nil {
		return nil, invalidInput("Profile already exists")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, s.storageError("find profile", err, zap.Stringer("user_id", id.UserID))
	}

	profile := &models.Profile{
		ID:       id.UserID,
		Username: v.Username,
		FullName: optional(v.FullName),
		Layout:   models.DefaultLayout,
	}
	if err := s.repo.Profiles.Create(ctx, profile); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			// a concurrent setup for the same identity may have won the insert
			if _, findErr := s.repo.Profiles.FindByID(ctx, id.UserID); findErr == nil {
				return nil, invalidInput("Profile already exists")
			}
			return nil, invalidInput("Username is already taken")
		}
		return nil, s.storageError("create profile", err, zap.Stringer("user_id", id.UserID))
	}

	s.refresh(ctx, profile)
	return profile, nil
}

// Get returns the caller's profile
func (s *ProfileService) Get(ctx context.Context, id Identity) (*models.Profile, error) {
	if err := requireIdentity(id); err != nil {
		return nil, err
	}
	return s.findByID(ctx, id)
}

// Update applies a settings change. Username and full name are always
// replaced; the other fields only when present.
func (s *ProfileService) Update(ctx context.Context, id Identity, req *types.UpdateProfileRequest) (*models.Profile, error) {
	if err := requireIdentity(id); err != nil {
		return nil, err
	}
	current, err := s.findByID(ctx, id)
	if err != nil {
		return nil, err
	}

	in := validation.ProfileInput{
		FullName: req.FullName,
		Username: req.Username,
		Bio:      deref(req.Bio, current.Bio),
		Layout:   deref(req.Layout, &current.Layout),
	}
	if req.AvatarURL != nil {
		in.AvatarURL = *req.AvatarURL
	}
	v, err := validation.ValidateProfile(in)
	if err != nil {
		return nil, invalidInput(fieldMessage(err))
	}

	updates := map[string]interface{}{
		"username":  v.Username,
		"full_name": optional(v.FullName),
		"bio":       optional(v.Bio),
	}
	if v.Layout != "" {
		updates["layout"] = v.Layout
	}
	if req.AvatarURL != nil {
		updates["avatar_url"] = optional(v.AvatarURL)
	}
	if req.NotificationsEnabled != nil {
		updates["notifications_enabled"] = *req.NotificationsEnabled
	}
	if req.NewsletterEnabled != nil {
		updates["newsletter_enabled"] = *req.NewsletterEnabled
	}

	if err := s.repo.Profiles.Update(ctx, id.UserID, updates); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, invalidInput("Username is already taken")
		case errors.Is(err, repository.ErrNotFound):
			return nil, notFound("Profile not found")
		}
		return nil, s.storageError("update profile", err, zap.Stringer("user_id", id.UserID))
	}

	updated, err := s.findByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.pages.RefreshPublicPage(ctx, current.Username, updated.Username)
	s.pages.RefreshDashboard(ctx, id.UserID)
	return updated, nil
}

// PublicPage returns the visitor view of username: the profile and its active
// blocks by position
func (s *ProfileService) PublicPage(ctx context.Context, username string) (*types.PublicPage, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return nil, notFound("Profile not found")
	}

	var cached types.PublicPage
	if s.pages.GetPublicPage(ctx, username, &cached) {
		return &cached, nil
	}

	profile, err := s.repo.Profiles.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("Profile not found")
		}
		return nil, s.storageError("find profile by username", err, zap.String("username", username))
	}
	blocks, err := s.repo.Blocks.ListActiveByOwner(ctx, profile.ID)
	if err != nil {
		return nil, s.storageError("list active blocks", err, zap.String("username", username))
	}

	page := types.NewPublicPage(profile, blocks)
	s.pages.SetPublicPage(ctx, username, page)
	return page, nil
}

// Dashboard returns the owner view: profile and every block
func (s *ProfileService) Dashboard(ctx context.Context, id Identity) (*types.DashboardResponse, error) {
	if err := requireIdentity(id); err != nil {
		return nil, err
	}

	var cached types.DashboardResponse
	if s.pages.GetDashboard(ctx, id.UserID, &cached) {
		return &cached, nil
	}

	profile, err := s.findByID(ctx, id)
	if err != nil {
		return nil, err
	}
	blocks, err := s.repo.Blocks.ListByOwner(ctx, id.UserID)
	if err != nil {
		return nil, s.storageError("list blocks", err, zap.Stringer("user_id", id.UserID))
	}
	if blocks == nil {
		blocks = []models.Block{}
	}

	dashboard := &types.DashboardResponse{
		Profile:   profile,
		Blocks:    blocks,
		PublicURL: s.PublicURL(profile.Username),
	}
	s.pages.SetDashboard(ctx, id.UserID, dashboard)
	return dashboard, nil
}

// PublicURL is the share link of username
func (s *ProfileService) PublicURL(username string) string {
	return s.siteURL + "/" + username
}

func (s *ProfileService) findByID(ctx context.Context, id Identity) (*models.Profile, error) {
	profile, err := s.repo.Profiles.FindByID(ctx, id.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("Profile not found")
		}
		return nil, s.storageError("find profile", err, zap.Stringer("user_id", id.UserID))
	}
	return profile, nil
}

func (s *ProfileService) refresh(ctx context.Context, profile *models.Profile) {
	s.pages.RefreshPublicPage(ctx, profile.Username)
	s.pages.RefreshDashboard(ctx, profile.ID)
}

func (s *ProfileService) storageError(op string, err error, fields ...zap.Field) error {
	s.logger.Error("profile storage failure", append(fields, zap.String("op", op), zap.Error(err))...)
	return storageFailure(err)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(v *string, fallback *string) string {
	if v != nil {
		return *v
	}
	if fallback != nil {
		return *fallback
	}
	return ""
}
