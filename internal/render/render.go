// Package render turns a public page into the view model used by the HTML
// profile template.
package render

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/pageza/bion/backend/internal/models"
	"github.com/pageza/bion/backend/internal/platform"
	"github.com/pageza/bion/backend/internal/types"
)

const (
	SiteName     = "Bion"
	EmptyMessage = "This user has no links yet."
)

// Meta is the SEO and OpenGraph data of a page
type Meta struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	CanonicalURL string `json:"canonical_url,omitempty"`
	SiteName     string `json:"site_name"`
	Type         string `json:"type,omitempty"`
	Image        string `json:"image,omitempty"`
	ImageAlt     string `json:"image_alt,omitempty"`
	TwitterCard  string `json:"twitter_card"`
}

// Link is one clickable block
type Link struct {
	ID          uuid.UUID       `json:"id"`
	Title       string          `json:"title"`
	URL         string          `json:"url"`
	Platform    platform.ID     `json:"platform"`
	Style       platform.Config `json:"style"`
	Highlighted bool            `json:"highlighted"`
	Span        int             `json:"span"`
}

// Section groups the links under one header. The first section has no title
// when links come before any header.
type Section struct {
	Title string `json:"title,omitempty"`
	Links []Link `json:"links"`
}

// Page is the full view model of a public profile
type Page struct {
	Meta         Meta      `json:"meta"`
	Username     string    `json:"username"`
	DisplayName  string    `json:"display_name"`
	Initial      string    `json:"initial"`
	AvatarURL    string    `json:"avatar_url,omitempty"`
	Bio          string    `json:"bio,omitempty"`
	Layout       string    `json:"layout"`
	Sections     []Section `json:"sections"`
	Empty        bool      `json:"empty"`
	EmptyMessage string    `json:"empty_message,omitempty"`
	ClickPath    string    `json:"-"`
}

// PublicPage builds the view model of page. siteURL is the public base URL
// used for the canonical link.
func PublicPage(page *types.PublicPage, siteURL string) *Page {
	profile := page.Profile
	name := displayName(profile)

	out := &Page{
		Meta:        profileMeta(profile, name, siteURL),
		Username:    profile.Username,
		DisplayName: name,
		Initial:     initial(profile),
		AvatarURL:   deref(profile.AvatarURL),
		Bio:         deref(profile.Bio),
		Layout:      profile.Layout,
		Sections:    []Section{},
		ClickPath:   "/api/v1/public/blocks/",
	}
	if out.Layout == "" {
		out.Layout = models.DefaultLayout
	}

	current := -1
	for _, b := range page.Blocks {
		if b.Type == models.BlockTypeHeader {
			out.Sections = append(out.Sections, Section{Title: b.Title, Links: []Link{}})
			current = len(out.Sections) - 1
			continue
		}
		if b.URL == nil || *b.URL == "" {
			continue
		}
		if current < 0 {
			out.Sections = append(out.Sections, Section{Links: []Link{}})
			current = 0
		}
		out.Sections[current].Links = append(out.Sections[current].Links, newLink(b))
	}

	if len(page.Blocks) == 0 {
		out.Empty = true
		out.EmptyMessage = EmptyMessage
	}
	return out
}

// NotFoundMeta is the metadata of a missing profile
func NotFoundMeta() Meta {
	return Meta{
		Title:       "User not found | " + SiteName,
		Description: "This profile does not exist.",
		SiteName:    SiteName,
		TwitterCard: "summary",
	}
}

func newLink(b types.PublicBlock) Link {
	p := platform.ForLink(b.Type, *b.URL)
	span := 1
	if b.IsHighlighted {
		span = 2
	}
	return Link{
		ID:          b.ID,
		Title:       b.Title,
		URL:         *b.URL,
		Platform:    p,
		Style:       platform.Lookup(p),
		Highlighted: b.IsHighlighted,
		Span:        span,
	}
}

func profileMeta(p types.PublicProfile, name, siteURL string) Meta {
	title := name + " | " + SiteName
	meta := Meta{
		Title:        title,
		Description:  "See the links of " + name + " on " + SiteName,
		CanonicalURL: strings.TrimRight(siteURL, "/") + "/" + p.Username,
		SiteName:     SiteName,
		Type:         "profile",
		TwitterCard:  "summary",
	}
	if avatar := deref(p.AvatarURL); avatar != "" {
		meta.Image = avatar
		meta.ImageAlt = "Avatar of " + name
	}
	return meta
}

func displayName(p types.PublicProfile) string {
	if name := deref(p.FullName); name != "" {
		return name
	}
	return "@" + p.Username
}

func initial(p types.PublicProfile) string {
	name := deref(p.FullName)
	if name == "" {
		return "?"
	}
	r, _ := utf8.DecodeRuneInString(name)
	return strings.ToUpper(string(r))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
