package models

import (
	"time"

	"github.com/google/uuid"
)

// Layout values accepted for a profile page
const (
	LayoutClassic = "classic"
	LayoutBento   = "bento"
	LayoutGrid    = "grid"
	LayoutMinimal = "minimal"

	DefaultLayout = LayoutClassic
)

// Layouts lists every supported layout, default first
var Layouts = []string{LayoutClassic, LayoutBento, LayoutGrid, LayoutMinimal}

// Profile is the public-facing account record. Its ID is the identity
// provider's user id, so there is exactly one profile per identity.
type Profile struct {
	ID                   uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	Username             string    `gorm:"size:30;not null;uniqueIndex" json:"username"`
	FullName             *string   `gorm:"size:100" json:"full_name"`
	AvatarURL            *string   `gorm:"size:2048" json:"avatar_url"`
	Bio                  *string   `gorm:"size:160" json:"bio"`
	Layout               string    `gorm:"size:20;not null;default:'classic'" json:"layout"`
	NotificationsEnabled bool      `gorm:"not null;default:false" json:"notifications_enabled"`
	NewsletterEnabled    bool      `gorm:"not null;default:false" json:"newsletter_enabled"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

func (Profile) TableName() string {
	return "profiles"
}

// DisplayName returns the full name when set, otherwise @username
func (p *Profile) DisplayName() string {
	if p.FullName != nil && *p.FullName != "" {
		return *p.FullName
	}
	return "@" + p.Username
}
