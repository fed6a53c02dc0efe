// Package blocklist models the owner's dashboard grid: an ordered list of
// blocks that is reordered optimistically by drag and reconciled with the
// server.
package blocklist

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/pageza/bion/backend/internal/models"
	"github.com/pageza/bion/backend/internal/platform"
)

// Item is the summary of one block shown in the grid
type Item struct {
	ID          uuid.UUID   `json:"id"`
	Title       string      `json:"title"`
	Type        string      `json:"type"`
	URL         string      `json:"url"`
	Platform    platform.ID `json:"platform"`
	Active      bool        `json:"active"`
	Highlighted bool        `json:"highlighted"`
}

// Span is the number of grid columns the item occupies
func (i Item) Span() int {
	if i.Highlighted {
		return 2
	}
	return 1
}

// Dimmed reports whether the item renders faded. Inactive blocks stay
// editable by the owner.
func (i Item) Dimmed() bool {
	return !i.Active
}

// MarshalJSON adds the derived span and dimmed flags for the grid
func (i Item) MarshalJSON() ([]byte, error) {
	type plain Item
	return json.Marshal(struct {
		plain
		Span   int  `json:"span"`
		Dimmed bool `json:"dimmed"`
	}{plain(i), i.Span(), i.Dimmed()})
}

// FromBlocks converts server rows, keeping their order
func FromBlocks(blocks []models.Block) []Item {
	items := make([]Item, len(blocks))
	for i, b := range blocks {
		p := platform.Header
		if !b.IsHeader() {
			p = platform.ForLink(b.Type, b.Link())
		}
		items[i] = Item{
			ID:          b.ID,
			Title:       b.Title,
			Type:        b.Type,
			URL:         b.Link(),
			Platform:    p,
			Active:      b.IsActive,
			Highlighted: b.IsHighlighted,
		}
	}
	return items
}

// Move returns a copy of items with the element at from moved to index to.
// Out of range indexes return an unchanged copy.
func Move(items []Item, from, to int) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	if from < 0 || from >= len(out) || to < 0 || to >= len(out) || from == to {
		return out
	}
	moved := out[from]
	if from < to {
		copy(out[from:to], out[from+1:to+1])
	} else {
		copy(out[to+1:from+1], out[to:from])
	}
	out[to] = moved
	return out
}

// IDs returns the item ids as strings, in order
func IDs(items []Item) []string {
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.ID.String()
	}
	return ids
}
