// Package validation checks and sanitizes user supplied block and profile
// fields before they reach the service layer.
package validation

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/pageza/bion/backend/internal/models"
)

const (
	MaxTitleLength    = 100
	MaxURLLength      = 2048
	MaxBioLength      = 160
	MaxFileNameLength = 255
	MaxReorderBatch   = 100
)

// BlockTypes is the closed set of block types
var BlockTypes = []string{
	"link", "header", "youtube", "github", "spotify", "instagram", "twitter",
	"tiktok", "linkedin", "discord", "twitch", "facebook", "whatsapp",
	"telegram", "dribbble", "behance", "figma", "notion", "medium", "substack",
	"patreon", "buymeacoffee", "reddit", "bluesky", "threads", "snapchat",
	"pinterest", "vimeo", "soundcloud", "bandcamp", "applemusic", "deezer",
	"tidal", "mastodon", "producthunt", "stackoverflow", "codepen", "gitlab",
	"bitbucket", "devto", "hashnode", "polywork", "linktree", "beacons",
	"carrd", "kofi", "gumroad", "etsy", "shopify", "kickstarter", "indiegogo",
	"onlyfans", "fansly", "twilio", "slack", "zoom", "calendly", "cal",
}

var (
	blockTypeSet = toSet(BlockTypes)
	layoutSet    = toSet(models.Layouts)

	titleDenylist = []*regexp.Regexp{
		regexp.MustCompile(`(?i)<script`),
		regexp.MustCompile(`(?i)javascript:`),
		regexp.MustCompile(`(?i)on\w+\s*=`),
		regexp.MustCompile(`(?i)<iframe`),
		regexp.MustCompile(`(?i)<object`),
		regexp.MustCompile(`(?i)<embed`),
	}
	bioDenylist = titleDenylist[:3]

	usernamePattern  = regexp.MustCompile(`^[a-z0-9_-]+$`)
	anglePattern     = regexp.MustCompile(`[<>]`)
	jsSchemePattern  = regexp.MustCompile(`(?i)javascript:`)
	handlerPattern   = regexp.MustCompile(`(?i)on\w+\s*=`)
	fileNamePattern  = regexp.MustCompile(`[^a-zA-Z0-9._-]`)
	dangerousSchemes = []string{"javascript:", "data:", "vbscript:", "file:"}
)

// FieldError is the single user-facing failure produced by validation
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// BlockInput is the raw block form
type BlockInput struct {
	Title string `validate:"required,max=100,safe_title"`
	URL   string `validate:"max=2048,link_url"`
	Type  string `validate:"block_type"`
}

// ValidatedBlock holds block fields that passed the schema. URL is still the
// raw (trimmed) value; the cross-field rule in CheckURLForType sanitizes it.
type ValidatedBlock struct {
	Title string
	URL   string
	Type  string
}

// ProfileInput is the raw profile form
type ProfileInput struct {
	FullName  string `validate:"max=100,safe_title"`
	Username  string `validate:"min=3,max=30,username"`
	Bio       string `validate:"max=160,safe_bio"`
	Layout    string `validate:"omitempty,layout"`
	AvatarURL string `validate:"max=2048,link_url"`
}

// ValidatedProfile holds normalized profile fields
type ValidatedProfile struct {
	FullName  string
	Username  string
	Bio       string
	Layout    string
	AvatarURL string
}

var messages = map[string]map[string]string{
	"Title": {
		"required":   "Title is required",
		"max":        "Title cannot exceed 100 characters",
		"safe_title": "Title contains characters that are not allowed",
	},
	"URL": {
		"max":      "URL cannot exceed 2048 characters",
		"link_url": "URL must be valid and use http:// or https://",
	},
	"Type": {
		"block_type": "Invalid block type",
	},
	"FullName": {
		"max":        "Name cannot exceed 100 characters",
		"safe_title": "Name contains characters that are not allowed",
	},
	"Username": {
		"min":      "Username must be at least 3 characters",
		"max":      "Username cannot exceed 30 characters",
		"username": "Username may only contain lowercase letters, numbers, hyphens and underscores",
	},
	"Bio": {
		"max":      "Bio cannot exceed 160 characters",
		"safe_bio": "Bio contains characters that are not allowed",
	},
	"Layout": {
		"layout": "Invalid layout",
	},
	"AvatarURL": {
		"max":      "Avatar URL cannot exceed 2048 characters",
		"link_url": "Avatar URL must be valid and use http:// or https://",
	},
}

var fieldNames = map[string]string{
	"Title":     "title",
	"URL":       "url",
	"Type":      "type",
	"FullName":  "full_name",
	"Username":  "username",
	"Bio":       "bio",
	"Layout":    "layout",
	"AvatarURL": "avatar_url",
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	mustRegister(v, "safe_title", func(fl validator.FieldLevel) bool {
		return !matchesAny(titleDenylist, fl.Field().String())
	})
	mustRegister(v, "safe_bio", func(fl validator.FieldLevel) bool {
		return !matchesAny(bioDenylist, fl.Field().String())
	})
	mustRegister(v, "link_url", func(fl validator.FieldLevel) bool {
		return isLinkURL(fl.Field().String())
	})
	mustRegister(v, "block_type", func(fl validator.FieldLevel) bool {
		_, ok := blockTypeSet[fl.Field().String()]
		return ok
	})
	mustRegister(v, "layout", func(fl validator.FieldLevel) bool {
		_, ok := layoutSet[fl.Field().String()]
		return ok
	})
	mustRegister(v, "username", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("validation: register %s: %v", tag, err))
	}
}

// ValidateBlock checks a block form. Fields are checked in declaration order
// and the first failure is returned.
func ValidateBlock(in BlockInput) (*ValidatedBlock, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.URL = strings.TrimSpace(in.URL)
	in.Type = strings.TrimSpace(in.Type)

	if err := check(in); err != nil {
		return nil, err
	}

	return &ValidatedBlock{
		Title: SanitizeString(in.Title),
		URL:   in.URL,
		Type:  in.Type,
	}, nil
}

// CheckURLForType applies the header/url rule to a validated block and
// returns the sanitized URL to store (nil for headers).
func CheckURLForType(blockType, rawURL string) (*string, error) {
	if blockType == models.BlockTypeHeader {
		if strings.TrimSpace(rawURL) != "" {
			return nil, &FieldError{Field: "url", Message: "Headers cannot have a URL"}
		}
		return nil, nil
	}
	sanitized, ok := SanitizeURL(rawURL)
	if !ok {
		return nil, &FieldError{Field: "url", Message: "A valid URL is required for this block type"}
	}
	return &sanitized, nil
}

// ValidateProfile checks a profile form. Username is trimmed and lower-cased
// before it is checked.
func ValidateProfile(in ProfileInput) (*ValidatedProfile, error) {
	in.FullName = strings.TrimSpace(in.FullName)
	in.Username = strings.ToLower(strings.TrimSpace(in.Username))
	in.Bio = strings.TrimSpace(in.Bio)
	in.Layout = strings.TrimSpace(in.Layout)
	in.AvatarURL = strings.TrimSpace(in.AvatarURL)

	if err := check(in); err != nil {
		return nil, err
	}

	out := &ValidatedProfile{
		FullName: in.FullName,
		Username: in.Username,
		Bio:      in.Bio,
		Layout:   in.Layout,
	}
	if in.AvatarURL != "" {
		avatar, ok := SanitizeURL(in.AvatarURL)
		if !ok {
			return nil, &FieldError{Field: "avatar_url", Message: messages["AvatarURL"]["link_url"]}
		}
		out.AvatarURL = avatar
	}
	return out, nil
}

// ValidateBlockID parses a block id in canonical UUID form
func ValidateBlockID(id string) (uuid.UUID, error) {
	if len(id) != 36 {
		return uuid.Nil, &FieldError{Field: "id", Message: "Invalid block ID"}
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, &FieldError{Field: "id", Message: "Invalid block ID"}
	}
	return parsed, nil
}

// ValidateReorder checks a reorder request: 1 to 100 distinct, well-formed ids
func ValidateReorder(ids []string) ([]uuid.UUID, error) {
	if len(ids) == 0 {
		return nil, &FieldError{Field: "block_ids", Message: "At least one block is required"}
	}
	if len(ids) > MaxReorderBatch {
		return nil, &FieldError{Field: "block_ids", Message: "Cannot reorder more than 100 blocks at once"}
	}

	out := make([]uuid.UUID, 0, len(ids))
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, raw := range ids {
		id, err := ValidateBlockID(raw)
		if err != nil {
			return nil, &FieldError{Field: "block_ids", Message: "Invalid block ID"}
		}
		if _, dup := seen[id]; dup {
			return nil, &FieldError{Field: "block_ids", Message: "Block IDs must be unique"}
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out, nil
}

// SanitizeString trims s, strips angle brackets, javascript: and inline event
// handlers, and truncates to 100 characters.
func SanitizeString(s string) string {
	s = strings.TrimSpace(s)
	s = anglePattern.ReplaceAllString(s, "")
	s = jsSchemePattern.ReplaceAllString(s, "")
	s = handlerPattern.ReplaceAllString(s, "")
	return truncate(s, MaxTitleLength)
}

// SanitizeURL returns the canonical form of an absolute http(s) URL. ok is
// false for empty input, other schemes, unparsable input and anything longer
// than 2048 characters.
func SanitizeURL(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}

	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "", false
	}

	u.Scheme = strings.ToLower(u.Scheme)
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", false
	}
	u.Host = strings.ToLower(u.Host)
	if u.Path == "" && u.RawPath == "" {
		u.Path = "/"
	}

	href := u.String()
	lower := strings.ToLower(href)
	for _, scheme := range dangerousSchemes {
		if strings.HasPrefix(lower, scheme) {
			return "", false
		}
	}
	if len(href) > MaxURLLength {
		return "", false
	}
	return href, true
}

// SanitizeFileName replaces anything outside [a-zA-Z0-9._-] with an
// underscore and truncates to 255 characters.
func SanitizeFileName(name string) string {
	name = fileNamePattern.ReplaceAllString(strings.TrimSpace(name), "_")
	return truncate(name, MaxFileNameLength)
}

// IsBlockType reports whether t is in the closed set
func IsBlockType(t string) bool {
	_, ok := blockTypeSet[t]
	return ok
}

func check(in interface{}) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &FieldError{Field: "input", Message: "Invalid input"}
	}

	first := verrs[0]
	msg, ok := messages[first.StructField()][first.Tag()]
	if !ok {
		msg = "Invalid value"
	}
	return &FieldError{Field: fieldNames[first.StructField()], Message: msg}
}

func isLinkURL(raw string) bool {
	if raw == "" {
		return true
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	return scheme == "http" || scheme == "https"
}

func matchesAny(patterns []*regexp.Regexp, s string) bool {
	for _, p := range patterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

func toSet(values []string) map[string]struct{} {
	out := make(map[string]struct{}, len(values))
	for _, v := range values {
		out[v] = struct{}{}
	}
	return out
}
