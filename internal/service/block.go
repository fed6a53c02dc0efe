package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pageza/bion/backend/internal/models"
	"github.com/pageza/bion/backend/internal/repository"
	"github.com/pageza/bion/backend/internal/types"
	"github.com/pageza/bion/backend/internal/validation"
)

// MaxSafeInteger is the click counter ceiling, the largest integer a JSON
// number carries without loss
const MaxSafeInteger int64 = 1<<53 - 1

// BlockService enforces ownership and block invariants before touching the
// repository
type BlockService struct {
	repo   *repository.Repository
	pages  PageCache
	logger *zap.Logger
}

var _ IBlockService = (*BlockService)(nil)

// NewBlockService creates a new BlockService instance
func NewBlockService(repo *repository.Repository, pages PageCache, logger *zap.Logger) *BlockService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if pages == nil {
		pages = noCache
	}
	return &BlockService{repo: repo, pages: pages, logger: logger}
}

// Create appends a block after the owner's last one
func (s *BlockService) Create(ctx context.Context, id Identity, req *types.CreateBlockRequest) (*models.Block, error) {
	if err := requireIdentity(id); err != nil {
		return nil, err
	}
	fields, err := checkBlockFields(req.Title, req.URL, req.Type)
	if err != nil {
		return nil, err
	}

	position, err := s.repo.Blocks.NextPosition(ctx, id.UserID)
	if err != nil {
		return nil, s.storageError("next position", err, zap.Stringer("user_id", id.UserID))
	}

	block := &models.Block{
		UserID:        id.UserID,
		Title:         fields.title,
		URL:           fields.url,
		Type:          fields.blockType,
		Content:       models.JSONMap{},
		Position:      position,
		IsActive:      true,
		IsHighlighted: false,
	}
	if err := s.repo.Blocks.Create(ctx, block); err != nil {
		if errors.Is(err, repository.ErrMissingParent) {
			return nil, invalidInput("Set up your profile before adding blocks")
		}
		return nil, s.storageError("create block", err, zap.Stringer("user_id", id.UserID))
	}

	s.refresh(ctx, id.UserID)
	return block, nil
}

// Update replaces title, url and type and applies the optional flags
func (s *BlockService) Update(ctx context.Context, id Identity, blockID string, req *types.UpdateBlockRequest) (*models.Block, error) {
	if err := requireIdentity(id); err != nil {
		return nil, err
	}
	bid, err := parseBlockID(blockID)
	if err != nil {
		return nil, err
	}
	fields, err := checkBlockFields(req.Title, req.URL, req.Type)
	if err != nil {
		return nil, err
	}

	if _, err := s.findOwned(ctx, id, bid); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"title": fields.title,
		"url":   fields.url,
		"type":  fields.blockType,
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if req.IsHighlighted != nil {
		updates["is_highlighted"] = *req.IsHighlighted
	}

	if err := s.repo.Blocks.Update(ctx, id.UserID, bid, updates); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("Block not found")
		}
		return nil, s.storageError("update block", err, zap.Stringer("block_id", bid))
	}

	s.refresh(ctx, id.UserID)
	return s.findOwned(ctx, id, bid)
}

// Delete removes a block. Sibling positions are left as they are.
func (s *BlockService) Delete(ctx context.Context, id Identity, blockID string) error {
	if err := requireIdentity(id); err != nil {
		return err
	}
	bid, err := parseBlockID(blockID)
	if err != nil {
		return err
	}
	if _, err := s.findOwned(ctx, id, bid); err != nil {
		return err
	}

	if err := s.repo.Blocks.Delete(ctx, id.UserID, bid); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound("Block not found")
		}
		return s.storageError("delete block", err, zap.Stringer("block_id", bid))
	}

	s.refresh(ctx, id.UserID)
	return nil
}

// Reorder sets position = index for every id in blockIDs, then places the
// owner's unlisted blocks after them. A single foreign id rejects the whole
// request before anything is written. The writes are a
// best-effort batch, so a failure may leave some rows updated.
func (s *BlockService) Reorder(ctx context.Context, id Identity, blockIDs []string) error {
	if err := requireIdentity(id); err != nil {
		return err
	}
	ids, err := validation.ValidateReorder(blockIDs)
	if err != nil {
		return invalidInput(fieldMessage(err))
	}

	owned, err := s.repo.Blocks.OwnedIDs(ctx, id.UserID)
	if err != nil {
		return s.storageError("owned ids", err, zap.Stringer("user_id", id.UserID))
	}
	ownedSet := make(map[uuid.UUID]bool, len(owned))
	for _, o := range owned {
		ownedSet[o] = false
	}
	for _, bid := range ids {
		if _, ok := ownedSet[bid]; !ok {
			s.logger.Warn("reorder rejected: foreign block id",
				zap.Stringer("user_id", id.UserID),
				zap.Stringer("block_id", bid),
			)
			return &Error{Kind: KindUnauthorized, Message: "You can only reorder your own blocks"}
		}
		ownedSet[bid] = true
	}
	// Blocks left off the list follow in their current order so positions
	// stay unique and dense.
	for _, o := range owned {
		if !ownedSet[o] {
			ids = append(ids, o)
		}
	}

	updates := make([]repository.PositionUpdate, len(ids))
	for i, bid := range ids {
		updates[i] = repository.PositionUpdate{ID: bid, Position: i}
	}
	if err := s.repo.Blocks.ApplyPositions(ctx, id.UserID, updates); err != nil {
		s.refresh(ctx, id.UserID)
		return s.storageError("apply positions", err, zap.Stringer("user_id", id.UserID))
	}

	s.refresh(ctx, id.UserID)
	return nil
}

// IncrementClick counts one visitor click. It needs no identity. The counter
// saturates at MaxSafeInteger.
func (s *BlockService) IncrementClick(ctx context.Context, blockID string) error {
	bid, err := parseBlockID(blockID)
	if err != nil {
		return err
	}
	if err := s.repo.Blocks.IncrementClicks(ctx, bid, MaxSafeInteger); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.logger.Info("click on unknown block", zap.Stringer("block_id", bid))
			return notFound("Block not found")
		}
		return s.storageError("increment clicks", err, zap.Stringer("block_id", bid))
	}
	return nil
}

// List returns every block of the caller, inactive ones included
func (s *BlockService) List(ctx context.Context, id Identity) ([]models.Block, error) {
	if err := requireIdentity(id); err != nil {
		return nil, err
	}
	blocks, err := s.repo.Blocks.ListByOwner(ctx, id.UserID)
	if err != nil {
		return nil, s.storageError("list blocks", err, zap.Stringer("user_id", id.UserID))
	}
	return blocks, nil
}

// Get returns one of the caller's blocks
func (s *BlockService) Get(ctx context.Context, id Identity, blockID string) (*models.Block, error) {
	if err := requireIdentity(id); err != nil {
		return nil, err
	}
	bid, err := parseBlockID(blockID)
	if err != nil {
		return nil, err
	}
	return s.findOwned(ctx, id, bid)
}

func (s *BlockService) findOwned(ctx context.Context, id Identity, bid uuid.UUID) (*models.Block, error) {
	block, err := s.repo.Blocks.FindOwned(ctx, id.UserID, bid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("Block not found")
		}
		return nil, s.storageError("find block", err, zap.Stringer("block_id", bid))
	}
	return block, nil
}

// refresh drops the owner's dashboard and public page from the cache
func (s *BlockService) refresh(ctx context.Context, owner uuid.UUID) {
	s.pages.RefreshDashboard(ctx, owner)

	profile, err := s.repo.Profiles.FindByID(ctx, owner)
	if err != nil {
		s.logger.Warn("public page refresh skipped", zap.Stringer("user_id", owner), zap.Error(err))
		return
	}
	s.pages.RefreshPublicPage(ctx, profile.Username)
}

func (s *BlockService) storageError(op string, err error, fields ...zap.Field) error {
	s.logger.Error("block storage failure", append(fields, zap.String("op", op), zap.Error(err))...)
	return storageFailure(err)
}

type blockFields struct {
	title     string
	url       *string
	blockType string
}

// checkBlockFields runs the schema and then the header/url rule
func checkBlockFields(title, rawURL, blockType string) (*blockFields, error) {
	if blockType == "" {
		blockType = "link"
	}
	v, err := validation.ValidateBlock(validation.BlockInput{Title: title, URL: rawURL, Type: blockType})
	if err != nil {
		return nil, invalidInput(fieldMessage(err))
	}
	url, err := validation.CheckURLForType(v.Type, v.URL)
	if err != nil {
		return nil, invalidInput(fieldMessage(err))
	}
	return &blockFields{title: v.Title, url: url, blockType: v.Type}, nil
}

func parseBlockID(raw string) (uuid.UUID, error) {
	bid, err := validation.ValidateBlockID(raw)
	if err != nil {
		return uuid.Nil, invalidInput(fieldMessage(err))
	}
	return bid, nil
}

func fieldMessage(err error) string {
	var fe *validation.FieldError
	if errors.As(err, &fe) {
		return fe.Message
	}
	return ErrInvalidInput.Message
}
