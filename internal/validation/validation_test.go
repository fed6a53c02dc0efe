package validation

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldErr(t *testing.T, err error) *FieldError {
	t.Helper()
	require.Error(t, err)
	fe, ok := err.(*FieldError)
	require.True(t, ok, "expected *FieldError, got %T", err)
	return fe
}

func TestValidateBlockAccepts(t *testing.T) {
	got, err := ValidateBlock(BlockInput{Title: "  My GitHub  ", URL: " https://github.com/me ", Type: "github"})
	require.NoError(t, err)
	assert.Equal(t, "My GitHub", got.Title)
	assert.Equal(t, "https://github.com/me", got.URL)
	assert.Equal(t, "github", got.Type)
}

func TestValidateBlockRejects(t *testing.T) {
	tests := []struct {
		name  string
		in    BlockInput
		field string
	}{
		{"missing title", BlockInput{Title: "   ", URL: "https://a.com", Type: "link"}, "title"},
		{"long title", BlockInput{Title: strings.Repeat("a", 101), URL: "https://a.com", Type: "link"}, "title"},
		{"script title", BlockInput{Title: "<script>alert(1)</script>My Link", URL: "https://a.com", Type: "link"}, "title"},
		{"iframe title", BlockInput{Title: "<IFRAME src=x>", URL: "https://a.com", Type: "link"}, "title"},
		{"handler title", BlockInput{Title: "img onerror = boom", URL: "https://a.com", Type: "link"}, "title"},
		{"js url", BlockInput{Title: "ok", URL: "javascript:alert(1)", Type: "link"}, "url"},
		{"data url", BlockInput{Title: "ok", URL: "data:text/html,hi", Type: "link"}, "url"},
		{"relative url", BlockInput{Title: "ok", URL: "/just/a/path", Type: "link"}, "url"},
		{"long url", BlockInput{Title: "ok", URL: "https://a.com/" + strings.Repeat("x", 2048), Type: "link"}, "url"},
		{"unknown type", BlockInput{Title: "ok", URL: "https://a.com", Type: "myspace"}, "type"},
		{"empty type", BlockInput{Title: "ok", URL: "https://a.com", Type: ""}, "type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateBlock(tt.in)
			fe := fieldErr(t, err)
			assert.Equal(t, tt.field, fe.Field)
			assert.NotEmpty(t, fe.Message)
		})
	}
}

func TestValidateBlockShortCircuitsOnFirstField(t *testing.T) {
	_, err := ValidateBlock(BlockInput{Title: "", URL: "javascript:x", Type: "nope"})
	fe := fieldErr(t, err)
	assert.Equal(t, "title", fe.Field)
	assert.Equal(t, "Title is required", fe.Message)
}

func TestCheckURLForType(t *testing.T) {
	url, err := CheckURLForType("header", "")
	assert.NoError(t, err)
	assert.Nil(t, url)

	_, err = CheckURLForType("header", "https://example.com")
	assert.Equal(t, "url", fieldErr(t, err).Field)

	_, err = CheckURLForType("link", "")
	assert.Equal(t, "url", fieldErr(t, err).Field)

	url, err = CheckURLForType("link", "HTTPS://Example.com")
	require.NoError(t, err)
	require.NotNil(t, url)
	assert.Equal(t, "https://example.com/", *url)
}

func TestSanitizeURL(t *testing.T) {
	for _, raw := range []string{
		"",
		"   ",
		"javascript:alert(1)",
		"JAVASCRIPT:alert(1)",
		"data:text/html;base64,PHNjcmlwdD4=",
		"vbscript:msgbox(1)",
		"file:///etc/passwd",
		"ftp://example.com/file",
		"example.com",
		"https://" + strings.Repeat("a", 2050) + ".com",
	} {
		got, ok := SanitizeURL(raw)
		assert.False(t, ok, "expected %q to be rejected", raw)
		assert.Empty(t, got)
	}

	got, ok := SanitizeURL("  https://GitHub.com/Pageza?tab=repos  ")
	assert.True(t, ok)
	assert.Equal(t, "https://github.com/Pageza?tab=repos", got)

	got, ok = SanitizeURL("http://example.com")
	assert.True(t, ok)
	assert.Equal(t, "http://example.com/", got)
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "scriptalert(1)/script", SanitizeString("  <script>alert(1)</script> "))
	assert.Equal(t, "alert(1)", SanitizeString("JavaScript:alert(1)"))
	assert.Equal(t, "img  x", SanitizeString("img onload= x"))
	assert.Len(t, []rune(SanitizeString(strings.Repeat("é", 150))), 100)
}

func TestSanitizeFileName(t *testing.T) {
	assert.Equal(t, "my_avatar__1_.png", SanitizeFileName(" my avatar (1).png "))
	assert.Len(t, SanitizeFileName(strings.Repeat("a", 300)), 255)
}

func TestValidateBlockID(t *testing.T) {
	id := uuid.New()
	got, err := ValidateBlockID(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, got)

	for _, bad := range []string{"", "123", "not-a-uuid-not-a-uuid-not-a-uuid-xxxx", "{" + id.String() + "}"} {
		_, err := ValidateBlockID(bad)
		assert.Error(t, err, bad)
	}
}

func TestValidateReorder(t *testing.T) {
	_, err := ValidateReorder(nil)
	assert.Error(t, err)

	tooMany := make([]string, 101)
	for i := range tooMany {
		tooMany[i] = uuid.NewString()
	}
	_, err = ValidateReorder(tooMany)
	assert.Error(t, err)

	a, b := uuid.New(), uuid.New()
	_, err = ValidateReorder([]string{a.String(), a.String()})
	assert.Error(t, err)

	_, err = ValidateReorder([]string{a.String(), "bad"})
	assert.Error(t, err)

	ids, err := ValidateReorder([]string{b.String(), a.String()})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{b, a}, ids)
}

func TestValidateProfile(t *testing.T) {
	got, err := ValidateProfile(ProfileInput{FullName: " Ada ", Username: "  Ada_Lovelace ", Layout: "bento"})
	require.NoError(t, err)
	assert.Equal(t, "ada_lovelace", got.Username)
	assert.Equal(t, "Ada", got.FullName)
	assert.Equal(t, "bento", got.Layout)

	tests := []struct {
		name  string
		in    ProfileInput
		field string
	}{
		{"short username", ProfileInput{Username: "ab"}, "username"},
		{"long username", ProfileInput{Username: strings.Repeat("a", 31)}, "username"},
		{"bad charset", ProfileInput{Username: "ada.lovelace"}, "username"},
		{"script name", ProfileInput{FullName: "<script>", Username: "ada"}, "full_name"},
		{"long bio", ProfileInput{Username: "ada", Bio: strings.Repeat("b", 161)}, "bio"},
		{"bad layout", ProfileInput{Username: "ada", Layout: "carousel"}, "layout"},
		{"bad avatar", ProfileInput{Username: "ada", AvatarURL: "data:image/png;base64,xx"}, "avatar_url"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateProfile(tt.in)
			assert.Equal(t, tt.field, fieldErr(t, err).Field)
		})
	}
}

func TestIsBlockType(t *testing.T) {
	assert.True(t, IsBlockType("header"))
	assert.True(t, IsBlockType("cal"))
	assert.False(t, IsBlockType("LINK"))
}
