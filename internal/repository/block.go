package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/bion/backend/internal/models"
)

// PositionUpdate assigns a position to one block
type PositionUpdate struct {
	ID       uuid.UUID
	Position int
}

// BlockRepository reads and writes blocks
type BlockRepository interface {
	Create(ctx context.Context, block *models.Block) error
	FindOwned(ctx context.Context, owner, id uuid.UUID) (*models.Block, error)
	ListByOwner(ctx context.Context, owner uuid.UUID) ([]models.Block, error)
	ListActiveByOwner(ctx context.Context, owner uuid.UUID) ([]models.Block, error)
	OwnedIDs(ctx context.Context, owner uuid.UUID) ([]uuid.UUID, error)
	NextPosition(ctx context.Context, owner uuid.UUID) (int, error)
	Update(ctx context.Context, owner, id uuid.UUID, fields map[string]interface{}) error
	Delete(ctx context.Context, owner, id uuid.UUID) error
	ApplyPositions(ctx context.Context, owner uuid.UUID, updates []PositionUpdate) error
	IncrementClicks(ctx context.Context, id uuid.UUID, ceiling int64) error
}

type blockRepository struct {
	db *gorm.DB
}

// NewBlockRepository creates a gorm backed BlockRepository
func NewBlockRepository(db *gorm.DB) BlockRepository {
	return &blockRepository{db: db}
}

func (r *blockRepository) Create(ctx context.Context, block *models.Block) error {
	return translate(r.db.WithContext(ctx).Create(block).Error)
}

func (r *blockRepository) FindOwned(ctx context.Context, owner, id uuid.UUID) (*models.Block, error) {
	var block models.Block
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, owner).
		First(&block).Error
	if err != nil {
		return nil, translate(err)
	}
	return &block, nil
}

func (r *blockRepository) ListByOwner(ctx context.Context, owner uuid.UUID) ([]models.Block, error) {
	var blocks []models.Block
	err := r.db.WithContext(ctx).
		Where("user_id = ?", owner).
		Order("position ASC").Order("created_at ASC").
		Find(&blocks).Error
	return blocks, translate(err)
}

func (r *blockRepository) ListActiveByOwner(ctx context.Context, owner uuid.UUID) ([]models.Block, error) {
	var blocks []models.Block
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", owner, true).
		Order("position ASC").Order("created_at ASC").
		Find(&blocks).Error
	return blocks, translate(err)
}

// OwnedIDs returns the owner's block ids in their current order
func (r *blockRepository) OwnedIDs(ctx context.Context, owner uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&models.Block{}).
		Where("user_id = ?", owner).
		Order("position ASC").Order("created_at ASC").
		Pluck("id", &ids).Error
	return ids, translate(err)
}

// NextPosition returns max(position)+1 for the owner, or 0 when they have no
// blocks yet.
func (r *blockRepository) NextPosition(ctx context.Context, owner uuid.UUID) (int, error) {
	var max int
	err := r.db.WithContext(ctx).
		Model(&models.Block{}).
		Where("user_id = ?", owner).
		Select("COALESCE(MAX(position), -1)").
		Scan(&max).Error
	if err != nil {
		return 0, translate(err)
	}
	return max + 1, nil
}

func (r *blockRepository) Update(ctx context.Context, owner, id uuid.UUID, fields map[string]interface{}) error {
	res := r.db.WithContext(ctx).
		Model(&models.Block{}).
		Where("id = ? AND user_id = ?", id, owner).
		Updates(fields)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *blockRepository) Delete(ctx context.Context, owner, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, owner).
		Delete(&models.Block{})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ApplyPositions writes each position as an independent row update. It is a
// best-effort batch: it keeps going after a failed row, rows may be left
// partially applied, and no order is guaranteed across rows. Any failure is
// reported as a single *BatchError.
func (r *blockRepository) ApplyPositions(ctx context.Context, owner uuid.UUID, updates []PositionUpdate) error {
	var (
		failed   int
		firstErr error
	)
	for _, u := range updates {
		res := r.db.WithContext(ctx).
			Model(&models.Block{}).
			Where("id = ? AND user_id = ?", u.ID, owner).
			Update("position", u.Position)
		err := res.Error
		if err == nil && res.RowsAffected == 0 {
			err = ErrNotFound
		}
		if err != nil {
			failed++
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	if failed > 0 {
		return &BatchError{Failed: failed, Total: len(updates), Err: firstErr}
	}
	return nil
}

// IncrementClicks adds one to the click counter in a single statement and
// never moves it past ceiling.
func (r *blockRepository) IncrementClicks(ctx context.Context, id uuid.UUID, ceiling int64) error {
	res := r.db.WithContext(ctx).
		Model(&models.Block{}).
		Where("id = ?", id).
		UpdateColumn("clicks", gorm.Expr("CASE WHEN clicks >= ? THEN clicks ELSE clicks + 1 END", ceiling))
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
