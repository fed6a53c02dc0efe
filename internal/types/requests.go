package types

// CreateBlockRequest represents the request body for creating a block
type CreateBlockRequest struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	Type  string `json:"type"`
}

// UpdateBlockRequest represents the request body for updating a block.
// Title, URL and Type are always revalidated together; the flags are only
// applied when present.
type UpdateBlockRequest struct {
	Title         string `json:"title"`
	URL           string `json:"url"`
	Type          string `json:"type"`
	IsActive      *bool  `json:"is_active,omitempty"`
	IsHighlighted *bool  `json:"is_highlighted,omitempty"`
}

// ReorderBlocksRequest carries the full new order of the caller's blocks
type ReorderBlocksRequest struct {
	BlockIDs []string `json:"block_ids" binding:"required"`
}

// SetupProfileRequest represents the onboarding payload that creates a profile
type SetupProfileRequest struct {
	Username string `json:"username" binding:"required"`
	FullName string `json:"full_name"`
}

// UpdateProfileRequest represents a settings update. Username and FullName
// are always required; the remaining fields keep their stored value when nil.
type UpdateProfileRequest struct {
	Username             string  `json:"username" binding:"required"`
	FullName             string  `json:"full_name"`
	Bio                  *string `json:"bio,omitempty"`
	Layout               *string `json:"layout,omitempty"`
	AvatarURL            *string `json:"avatar_url,omitempty"`
	NotificationsEnabled *bool   `json:"notifications_enabled,omitempty"`
	NewsletterEnabled    *bool   `json:"newsletter_enabled,omitempty"`
}
