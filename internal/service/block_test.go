package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pageza/bion/backend/internal/models"
	"github.com/pageza/bion/backend/internal/repository"
	"github.com/pageza/bion/backend/internal/service"
	"github.com/pageza/bion/backend/internal/testhelpers"
	"github.com/pageza/bion/backend/internal/types"
)

func TestCreateBlock(t *testing.T) {
	ctx := context.Background()

	t.Run("appends after the highest position", func(t *testing.T) {
		f := setup(t)
		testhelpers.CreateBlock(t, f.db, f.owner.ID, "a", 0)
		testhelpers.CreateBlock(t, f.db, f.owner.ID, "b", 2)
		testhelpers.CreateBlock(t, f.db, f.owner.ID, "c", 5)

		block, err := f.blocks.Create(ctx, f.id, &types.CreateBlockRequest{
			Title: "My GitHub", URL: "https://GitHub.com/ada", Type: "github",
		})
		require.NoError(t, err)
		assert.Equal(t, 6, block.Position)
	})

	t.Run("first block is at zero with defaults", func(t *testing.T) {
		f := setup(t)
		f.primeCache(t)

		block, err := f.blocks.Create(ctx, f.id, &types.CreateBlockRequest{
			Title: "  Portfolio  ", URL: "https://Example.com",
		})
		require.NoError(t, err)
		assert.Equal(t, 0, block.Position)
		assert.Equal(t, "Portfolio", block.Title)
		assert.Equal(t, "link", block.Type)
		assert.Equal(t, "https://example.com/", block.Link())
		assert.True(t, block.IsActive)
		assert.False(t, block.IsHighlighted)
		assert.Empty(t, block.Content)
		assert.Equal(t, int64(0), block.Clicks)
		f.cacheDropped(t)
	})

	t.Run("header without url", func(t *testing.T) {
		f := setup(t)
		block, err := f.blocks.Create(ctx, f.id, &types.CreateBlockRequest{Title: "Socials", Type: "header"})
		require.NoError(t, err)
		assert.Nil(t, block.URL)
		assert.True(t, block.IsHeader())
	})

	t.Run("rejections", func(t *testing.T) {
		tests := []struct {
			name    string
			req     types.CreateBlockRequest
			message string
		}{
			{"header with url", types.CreateBlockRequest{Title: "Socials", URL: "https://example.com", Type: "header"}, "Headers cannot have a URL"},
			{"link without url", types.CreateBlockRequest{Title: "Site", Type: "link"}, "A valid URL is required for this block type"},
			{"script title", types.CreateBlockRequest{Title: "<script>alert(1)</script>My Link", URL: "https://example.com"}, "Title contains characters that are not allowed"},
			{"javascript url", types.CreateBlockRequest{Title: "x", URL: "javascript:alert(1)"}, "URL must be valid and use http:// or https://"},
			{"unknown type", types.CreateBlockRequest{Title: "x", URL: "https://example.com", Type: "myspace"}, "Invalid block type"},
			{"missing title", types.CreateBlockRequest{URL: "https://example.com"}, "Title is required"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				f := setup(t)
				_, err := f.blocks.Create(ctx, f.id, &tt.req)
				require.Error(t, err)
				assert.ErrorIs(t, err, service.ErrInvalidInput)
				assert.Equal(t, tt.message, service.MessageOf(err))

				var count int64
				require.NoError(t, f.db.Model(&models.Block{}).Count(&count).Error)
				assert.Zero(t, count)
			})
		}
	})

	t.Run("anonymous caller", func(t *testing.T) {
		f := setup(t)
		_, err := f.blocks.Create(ctx, anonymous(), &types.CreateBlockRequest{Title: "x", URL: "https://example.com"})
		assert.ErrorIs(t, err, service.ErrUnauthorized)
	})

	t.Run("storage failure is generic and logged", func(t *testing.T) {
		f := setup(t)
		sqlDB, err := f.db.DB()
		require.NoError(t, err)
		require.NoError(t, sqlDB.Close())

		_, err = f.blocks.Create(ctx, f.id, &types.CreateBlockRequest{Title: "x", URL: "https://example.com"})
		require.Error(t, err)
		assert.ErrorIs(t, err, service.ErrStorageFailure)
		assert.Equal(t, service.ErrStorageFailure.Message, service.MessageOf(err))
		assert.NotZero(t, f.logs.FilterMessage("block storage failure").Len())
	})
}

func TestUpdateBlock(t *testing.T) {
	ctx := context.Background()

	t.Run("is idempotent", func(t *testing.T) {
		f := setup(t)
		block := testhelpers.CreateBlock(t, f.db, f.owner.ID, "a", 0)
		highlighted := true
		req := &types.UpdateBlockRequest{
			Title: "Renamed", URL: "https://youtube.com/@ada", Type: "youtube", IsHighlighted: &highlighted,
		}

		first, err := f.blocks.Update(ctx, f.id, block.ID.String(), req)
		require.NoError(t, err)
		second, err := f.blocks.Update(ctx, f.id, block.ID.String(), req)
		require.NoError(t, err)

		for _, got := range []*models.Block{first, second} {
			assert.Equal(t, "Renamed", got.Title)
			assert.Equal(t, "https://youtube.com/@ada", got.Link())
			assert.Equal(t, "youtube", got.Type)
			assert.True(t, got.IsHighlighted)
			assert.True(t, got.IsActive)
			assert.Equal(t, block.Position, got.Position)
		}
	})

	t.Run("flags are optional", func(t *testing.T) {
		f := setup(t)
		block := testhelpers.CreateBlock(t, f.db, f.owner.ID, "a", 0)
		inactive := false

		got, err := f.blocks.Update(ctx, f.id, block.ID.String(), &types.UpdateBlockRequest{
			Title: "a", URL: block.Link(), Type: "link", IsActive: &inactive,
		})
		require.NoError(t, err)
		assert.False(t, got.IsActive)
		assert.False(t, got.IsHighlighted)
	})

	t.Run("switching to header clears url", func(t *testing.T) {
		f := setup(t)
		block := testhelpers.CreateBlock(t, f.db, f.owner.ID, "a", 0)

		got, err := f.blocks.Update(ctx, f.id, block.ID.String(), &types.UpdateBlockRequest{Title: "Section", Type: "header"})
		require.NoError(t, err)
		assert.Nil(t, got.URL)
	})

	t.Run("foreign and missing ids are indistinguishable", func(t *testing.T) {
		f := setup(t)
		other := testhelpers.CreateProfile(t, f.db, "grace")
		foreign := testhelpers.CreateBlock(t, f.db, other.ID, "theirs", 0)
		req := &types.UpdateBlockRequest{Title: "mine now", URL: "https://example.com"}

		_, errForeign := f.blocks.Update(ctx, f.id, foreign.ID.String(), req)
		_, errMissing := f.blocks.Update(ctx, f.id, uuid.NewString(), req)

		assert.ErrorIs(t, errForeign, service.ErrNotFound)
		assert.ErrorIs(t, errMissing, service.ErrNotFound)
		assert.Equal(t, errMissing.Error(), errForeign.Error())

		var stored models.Block
		require.NoError(t, f.db.First(&stored, "id = ?", foreign.ID).Error)
		assert.Equal(t, "theirs", stored.Title)
	})

	t.Run("malformed id never reaches storage", func(t *testing.T) {
		f := setup(t)
		_, err := f.blocks.Update(ctx, f.id, "not-a-uuid", &types.UpdateBlockRequest{Title: "x", URL: "https://example.com"})
		assert.ErrorIs(t, err, service.ErrInvalidInput)
		assert.Equal(t, "Invalid block ID", service.MessageOf(err))
	})

	t.Run("refreshes cached views", func(t *testing.T) {
		f := setup(t)
		block := testhelpers.CreateBlock(t, f.db, f.owner.ID, "a", 0)
		f.primeCache(t)

		_, err := f.blocks.Update(ctx, f.id, block.ID.String(), &types.UpdateBlockRequest{Title: "b", URL: "https://example.com"})
		require.NoError(t, err)
		f.cacheDropped(t)
	})
}

func TestDeleteBlock(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	a := testhelpers.CreateBlock(t, f.db, f.owner.ID, "a", 0)
	b := testhelpers.CreateBlock(t, f.db, f.owner.ID, "b", 1)
	c := testhelpers.CreateBlock(t, f.db, f.owner.ID, "c", 2)
	f.primeCache(t)

	require.NoError(t, f.blocks.Delete(ctx, f.id, b.ID.String()))
	assert.Equal(t, map[uuid.UUID]int{a.ID: 0, c.ID: 2}, testhelpers.Positions(t, f.db, f.owner.ID))
	f.cacheDropped(t)

	assert.ErrorIs(t, f.blocks.Delete(ctx, f.id, b.ID.String()), service.ErrNotFound)
	assert.ErrorIs(t, f.blocks.Delete(ctx, anonymous(), a.ID.String()), service.ErrUnauthorized)
}

func TestReorderBlocks(t *testing.T) {
	ctx := context.Background()

	t.Run("position follows list index", func(t *testing.T) {
		f := setup(t)
		a := testhelpers.CreateBlock(t, f.db, f.owner.ID, "a", 0)
		b := testhelpers.CreateBlock(t, f.db, f.owner.ID, "b", 1)
		c := testhelpers.CreateBlock(t, f.db, f.owner.ID, "c", 2)
		f.primeCache(t)

		err := f.blocks.Reorder(ctx, f.id, []string{c.ID.String(), a.ID.String(), b.ID.String()})
		require.NoError(t, err)
		assert.Equal(t, map[uuid.UUID]int{c.ID: 0, a.ID: 1, b.ID: 2}, testhelpers.Positions(t, f.db, f.owner.ID))
		f.cacheDropped(t)
	})

	t.Run("unlisted blocks follow in their current order", func(t *testing.T) {
		f := setup(t)
		a := testhelpers.CreateBlock(t, f.db, f.owner.ID, "a", 0)
		b := testhelpers.CreateBlock(t, f.db, f.owner.ID, "b", 1)
		c := testhelpers.CreateBlock(t, f.db, f.owner.ID, "c", 2)

		require.NoError(t, f.blocks.Reorder(ctx, f.id, []string{c.ID.String()}))
		assert.Equal(t, map[uuid.UUID]int{c.ID: 0, a.ID: 1, b.ID: 2}, testhelpers.Positions(t, f.db, f.owner.ID))
	})

	t.Run("a row lost mid batch is one storage failure", func(t *testing.T) {
		f := setup(t)
		a := testhelpers.CreateBlock(t, f.db, f.owner.ID, "a", 0)
		b := testhelpers.CreateBlock(t, f.db, f.owner.ID, "b", 1)
		c := testhelpers.CreateBlock(t, f.db, f.owner.ID, "c", 2)

		repo := repositoryFor(f.db)
		repo.Blocks = &vanishingBlocks{BlockRepository: repo.Blocks, db: f.db, gone: b.ID}
		blocks := service.NewBlockService(repo, nil, nil)

		err := blocks.Reorder(ctx, f.id, []string{c.ID.String(), b.ID.String(), a.ID.String()})
		require.Error(t, err)
		assert.ErrorIs(t, err, service.ErrStorageFailure)
		assert.Equal(t, service.ErrStorageFailure.Message, service.MessageOf(err))

		var batch *repository.BatchError
		require.True(t, errors.As(err, &batch))
		assert.Equal(t, 1, batch.Failed)
		assert.Equal(t, 3, batch.Total)
		assert.Equal(t, map[uuid.UUID]int{c.ID: 0, a.ID: 2}, testhelpers.Positions(t, f.db, f.owner.ID))
	})

	t.Run("one foreign id rejects everything", func(t *testing.T) {
		f := setup(t)
		other := testhelpers.CreateProfile(t, f.db, "grace")
		a := testhelpers.CreateBlock(t, f.db, f.owner.ID, "a", 0)
		b := testhelpers.CreateBlock(t, f.db, f.owner.ID, "b", 1)
		foreign := testhelpers.CreateBlock(t, f.db, other.ID, "x", 0)

		err := f.blocks.Reorder(ctx, f.id, []string{b.ID.String(), foreign.ID.String(), a.ID.String()})
		assert.ErrorIs(t, err, service.ErrUnauthorized)
		assert.Equal(t, map[uuid.UUID]int{a.ID: 0, b.ID: 1}, testhelpers.Positions(t, f.db, f.owner.ID))
		assert.Equal(t, map[uuid.UUID]int{foreign.ID: 0}, testhelpers.Positions(t, f.db, other.ID))
	})

	t.Run("invalid lists", func(t *testing.T) {
		f := setup(t)
		a := testhelpers.CreateBlock(t, f.db, f.owner.ID, "a", 0)

		assert.ErrorIs(t, f.blocks.Reorder(ctx, f.id, nil), service.ErrInvalidInput)
		assert.ErrorIs(t, f.blocks.Reorder(ctx, f.id, []string{"nope"}), service.ErrInvalidInput)
		assert.ErrorIs(t, f.blocks.Reorder(ctx, f.id, []string{a.ID.String(), a.ID.String()}), service.ErrInvalidInput)

		tooMany := make([]string, 101)
		for i := range tooMany {
			tooMany[i] = uuid.NewString()
		}
		assert.ErrorIs(t, f.blocks.Reorder(ctx, f.id, tooMany), service.ErrInvalidInput)
	})

	t.Run("anonymous caller", func(t *testing.T) {
		f := setup(t)
		assert.ErrorIs(t, f.blocks.Reorder(ctx, anonymous(), []string{uuid.NewString()}), service.ErrUnauthorized)
	})
}

// vanishingBlocks deletes one block right after the ownership lookup
type vanishingBlocks struct {
	repository.BlockRepository
	db   *gorm.DB
	gone uuid.UUID
}

func (v *vanishingBlocks) OwnedIDs(ctx context.Context, owner uuid.UUID) ([]uuid.UUID, error) {
	ids, err := v.BlockRepository.OwnedIDs(ctx, owner)
	if err != nil {
		return nil, err
	}
	return ids, v.db.Delete(&models.Block{}, "id = ?", v.gone).Error
}

func TestIncrementClick(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	block := testhelpers.CreateBlock(t, f.db, f.owner.ID, "a", 0)

	require.NoError(t, f.blocks.IncrementClick(ctx, block.ID.String()))
	require.NoError(t, f.blocks.IncrementClick(ctx, block.ID.String()))
	assert.Equal(t, int64(2), clicks(t, f, block.ID))

	require.NoError(t, f.db.Model(&models.Block{}).Where("id = ?", block.ID).
		UpdateColumn("clicks", service.MaxSafeInteger).Error)
	require.NoError(t, f.blocks.IncrementClick(ctx, block.ID.String()))
	assert.Equal(t, service.MaxSafeInteger, clicks(t, f, block.ID))

	assert.ErrorIs(t, f.blocks.IncrementClick(ctx, "bad"), service.ErrInvalidInput)
	assert.ErrorIs(t, f.blocks.IncrementClick(ctx, uuid.NewString()), service.ErrNotFound)
}

func TestListAndGetBlocks(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	a := testhelpers.CreateBlock(t, f.db, f.owner.ID, "a", 1)
	b := testhelpers.CreateBlock(t, f.db, f.owner.ID, "b", 0)
	require.NoError(t, f.db.Model(&models.Block{}).Where("id = ?", a.ID).Update("is_active", false).Error)

	blocks, err := f.blocks.List(ctx, f.id)
	require.NoError(t, err)
	require.Len(t, blocks, 2)
	assert.Equal(t, b.ID, blocks[0].ID)
	assert.False(t, blocks[1].IsActive)

	got, err := f.blocks.Get(ctx, f.id, a.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "a", got.Title)

	_, err = f.blocks.List(ctx, anonymous())
	assert.True(t, errors.Is(err, service.ErrUnauthorized))
}

func clicks(t *testing.T, f *fixture, id uuid.UUID) int64 {
	t.Helper()
	var block models.Block
	require.NoError(t, f.db.First(&block, "id = ?", id).Error)
	return block.Clicks
}
