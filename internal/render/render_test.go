package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/bion/backend/internal/platform"
	"github.com/pageza/bion/backend/internal/types"
)

func ptr(s string) *string { return &s }

func samplePage() *types.PublicPage {
	return &types.PublicPage{
		Profile: types.PublicProfile{
			Username:  "ada",
			FullName:  ptr("ada Lovelace"),
			AvatarURL: ptr("https://cdn.example.com/ada.png"),
			Bio:       ptr("Analytical engines"),
			Layout:    "bento",
		},
		Blocks: []types.PublicBlock{
			{ID: uuid.New(), Title: "Site", URL: ptr("https://ada.dev/"), Type: "link", Position: 0},
			{ID: uuid.New(), Title: "Social", Type: "header", Position: 1},
			{ID: uuid.New(), Title: "Videos", URL: ptr("https://youtu.be/xyz"), Type: "link", Position: 2, IsHighlighted: true},
			{ID: uuid.New(), Title: "Code", URL: ptr("https://example.com/ada"), Type: "github", Position: 3},
		},
	}
}

func TestPublicPageSections(t *testing.T) {
	page := PublicPage(samplePage(), "https://bion.example/")

	require.Len(t, page.Sections, 2)
	assert.Equal(t, "", page.Sections[0].Title)
	require.Len(t, page.Sections[0].Links, 1)
	assert.Equal(t, platform.Link, page.Sections[0].Links[0].Platform)

	social := page.Sections[1]
	assert.Equal(t, "Social", social.Title)
	require.Len(t, social.Links, 2)
	assert.Equal(t, platform.YouTube, social.Links[0].Platform)
	assert.Equal(t, 2, social.Links[0].Span)
	assert.Equal(t, platform.Lookup(platform.YouTube), social.Links[0].Style)
	assert.Equal(t, platform.GitHub, social.Links[1].Platform, "stored type is used when the url matches nothing")
	assert.Equal(t, 1, social.Links[1].Span)

	assert.False(t, page.Empty)
	assert.Equal(t, "bento", page.Layout)
	assert.Equal(t, "A", page.Initial)
}

func TestPublicPageMeta(t *testing.T) {
	page := PublicPage(samplePage(), "https://bion.example/")

	assert.Equal(t, "ada Lovelace | Bion", page.Meta.Title)
	assert.Equal(t, "See the links of ada Lovelace on Bion", page.Meta.Description)
	assert.Equal(t, "https://bion.example/ada", page.Meta.CanonicalURL)
	assert.Equal(t, "https://cdn.example.com/ada.png", page.Meta.Image)
	assert.Equal(t, "Avatar of ada Lovelace", page.Meta.ImageAlt)
	assert.Equal(t, "profile", page.Meta.Type)
}

func TestPublicPageWithoutNameOrBlocks(t *testing.T) {
	page := PublicPage(&types.PublicPage{Profile: types.PublicProfile{Username: "anon"}}, "https://bion.example")

	assert.Equal(t, "@anon", page.DisplayName)
	assert.Equal(t, "@anon | Bion", page.Meta.Title)
	assert.Equal(t, "?", page.Initial)
	assert.Empty(t, page.Meta.Image)
	assert.Equal(t, "classic", page.Layout)
	assert.True(t, page.Empty)
	assert.Equal(t, EmptyMessage, page.EmptyMessage)
	assert.NotNil(t, page.Sections)
}

func TestTemplatesRender(t *testing.T) {
	tmpl := Templates()
	page := PublicPage(samplePage(), "https://bion.example")
	page.Sections[0].Links[0].Title = `<script>alert(1)</script>`

	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, ProfileTemplate, page))
	html := buf.String()

	assert.Contains(t, html, "<title>ada Lovelace | Bion</title>")
	assert.Contains(t, html, `<meta property="og:url" content="https://bion.example/ada">`)
	assert.Contains(t, html, `href="https://youtu.be/xyz"`)
	assert.Contains(t, html, `<h3 class="section-title">Social</h3>`)
	assert.Contains(t, html, "span-2 highlighted")
	assert.Contains(t, html, `class="layout-bento"`)
	assert.NotContains(t, html, "<script>alert(1)</script>")
	assert.NotContains(t, html, "ZgotmplZ")

	buf.Reset()
	empty := PublicPage(&types.PublicPage{Profile: types.PublicProfile{Username: "anon"}}, "https://bion.example")
	require.NoError(t, tmpl.ExecuteTemplate(&buf, ProfileTemplate, empty))
	assert.Contains(t, buf.String(), EmptyMessage)

	buf.Reset()
	require.NoError(t, tmpl.ExecuteTemplate(&buf, NotFoundTemplate, map[string]interface{}{"Meta": NotFoundMeta()}))
	assert.True(t, strings.Contains(buf.String(), "User not found | Bion"))
}
