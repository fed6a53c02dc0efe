package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BlockTypeHeader marks a section title. Header blocks never carry a URL.
const BlockTypeHeader = "header"

// JSONMap is a custom type for handling free-form JSON objects in a jsonb column
type JSONMap map[string]interface{}

// Value implements the driver.Valuer interface
func (m JSONMap) Value() (driver.Value, error) {
	if len(m) == 0 {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (m *JSONMap) Scan(value interface{}) error {
	if value == nil {
		*m = JSONMap{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		*m = JSONMap{}
		return nil
	}

	out := JSONMap{}
	if err := json.Unmarshal(bytes, &out); err != nil {
		return err
	}
	*m = out
	return nil
}

// Block is one ordered entry on a profile page: a link, a platform link or a
// section header. Position is unique per owner right after a reorder but may
// have gaps after deletes.
type Block struct {
	ID            uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID        uuid.UUID `gorm:"type:varchar(36);not null;index:idx_blocks_user_position,priority:1" json:"user_id"`
	Title         string    `gorm:"size:100;not null" json:"title"`
	URL           *string   `gorm:"column:url;size:2048" json:"url"`
	Type          string    `gorm:"size:32;not null;default:'link'" json:"type"`
	Content       JSONMap   `gorm:"type:jsonb;not null;default:'{}'" json:"content"`
	Position      int       `gorm:"not null;default:0;index:idx_blocks_user_position,priority:2" json:"position"`
	Clicks        int64     `gorm:"not null;default:0" json:"clicks"`
	IsActive      bool      `gorm:"not null;default:true" json:"is_active"`
	IsHighlighted bool      `gorm:"not null;default:false" json:"is_highlighted"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (Block) TableName() string {
	return "blocks"
}

// BeforeCreate assigns an id when the caller did not
func (b *Block) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	if b.Content == nil {
		b.Content = JSONMap{}
	}
	return nil
}

// IsHeader reports whether the block is a section title
func (b *Block) IsHeader() bool {
	return b.Type == BlockTypeHeader
}

// Link returns the block URL or an empty string
func (b *Block) Link() string {
	if b.URL == nil {
		return ""
	}
	return *b.URL
}
