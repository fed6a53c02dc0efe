package testhelpers

import (
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/bion/backend/internal/models"
)

// CreateProfile inserts a profile with the given username
func CreateProfile(t *testing.T, db *gorm.DB, username string) *models.Profile {
	t.Helper()
	name := "Test " + username
	profile := &models.Profile{
		ID:       uuid.New(),
		Username: username,
		FullName: &name,
		Layout:   models.DefaultLayout,
	}
	if err := db.Create(profile).Error; err != nil {
		t.Fatalf("failed to create profile: %v", err)
	}
	return profile
}

// CreateBlock inserts a link block for owner at position
func CreateBlock(t *testing.T, db *gorm.DB, owner uuid.UUID, title string, position int) *models.Block {
	t.Helper()
	url := "https://example.com/" + title
	block := &models.Block{
		UserID:   owner,
		Title:    title,
		URL:      &url,
		Type:     "link",
		Position: position,
		IsActive: true,
	}
	if err := db.Create(block).Error; err != nil {
		t.Fatalf("failed to create block: %v", err)
	}
	return block
}

// Positions returns id -> position for every block of owner
func Positions(t *testing.T, db *gorm.DB, owner uuid.UUID) map[uuid.UUID]int {
	t.Helper()
	var blocks []models.Block
	if err := db.Where("user_id = ?", owner).Find(&blocks).Error; err != nil {
		t.Fatalf("failed to load blocks: %v", err)
	}
	out := make(map[uuid.UUID]int, len(blocks))
	for _, b := range blocks {
		out[b.ID] = b.Position
	}
	return out
}
