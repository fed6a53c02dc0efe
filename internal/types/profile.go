package types

import (
	"github.com/google/uuid"

	"github.com/pageza/bion/backend/internal/models"
)

// DashboardResponse is the owner's view: profile plus every block, including
// inactive ones
type DashboardResponse struct {
	Profile   *models.Profile `json:"profile"`
	Blocks    []models.Block  `json:"blocks"`
	PublicURL string          `json:"public_url"`
}

// MessageResponse is the generic success body
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the generic error body
type ErrorResponse struct {
	Error string `json:"error"`
}

// PublicProfile is the part of a profile visitors may see
type PublicProfile struct {
	Username  string  `json:"username"`
	FullName  *string `json:"full_name"`
	AvatarURL *string `json:"avatar_url"`
	Bio       *string `json:"bio"`
	Layout    string  `json:"layout"`
}

// PublicBlock is an active block as shown to visitors. Click counts stay
// private.
type PublicBlock struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	URL           *string   `json:"url"`
	Type          string    `json:"type"`
	Position      int       `json:"position"`
	IsHighlighted bool      `json:"is_highlighted"`
}

// PublicPage is a profile plus its active blocks in position order
type PublicPage struct {
	Profile PublicProfile `json:"profile"`
	Blocks  []PublicBlock `json:"blocks"`
}

// NewPublicPage builds the visitor view. Inactive blocks are dropped here as
// well as at the query.
func NewPublicPage(profile *models.Profile, blocks []models.Block) *PublicPage {
	page := &PublicPage{
		Profile: PublicProfile{
			Username:  profile.Username,
			FullName:  profile.FullName,
			AvatarURL: profile.AvatarURL,
			Bio:       profile.Bio,
			Layout:    profile.Layout,
		},
		Blocks: make([]PublicBlock, 0, len(blocks)),
	}
	for _, b := range blocks {
		if !b.IsActive {
			continue
		}
		page.Blocks = append(page.Blocks, PublicBlock{
			ID:            b.ID,
			Title:         b.Title,
			URL:           b.URL,
			Type:          b.Type,
			Position:      b.Position,
			IsHighlighted: b.IsHighlighted,
		})
	}
	return page
}
