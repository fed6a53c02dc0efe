package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectKnownPatterns(t *testing.T) {
	for _, e := range All() {
		for _, pattern := range e.Patterns {
			got := Detect("https://" + pattern + "/someone")
			// open.spotify.com also contains spotify.com, both resolve to Spotify
			assert.Equal(t, e.ID, got, "pattern %s", pattern)
		}
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want ID
	}{
		{"empty", "", Link},
		{"unmatched", "https://example.org/me", Link},
		{"upper case", "HTTPS://WWW.YOUTUBE.COM/@chan", YouTube},
		{"short link", "https://youtu.be/abc", YouTube},
		{"github", "https://github.com/pageza", GitHub},
		{"x", "https://x.com/someone", Twitter},
		{"not a url", "just some words", Link},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Detect(tt.url))
		})
	}
}

func TestDetectTableOrderWins(t *testing.T) {
	// Contains both a YouTube and a GitHub pattern; YouTube is declared first.
	assert.Equal(t, YouTube, Detect("https://github.com/redirect?to=youtube.com"))
}

func TestLookup(t *testing.T) {
	cfg := Lookup(GitHub)
	assert.Equal(t, "GitHub", cfg.Name)
	assert.Equal(t, "#181717", cfg.Color)

	fallback := Lookup(ID("does-not-exist"))
	assert.Equal(t, Lookup(Link), fallback)
	assert.Equal(t, "Link", fallback.Name)
}

func TestIsKnown(t *testing.T) {
	assert.True(t, IsKnown(Header))
	assert.True(t, IsKnown(Spotify))
	assert.False(t, IsKnown(ID("reddit")))
}

func TestAllReturnsCopy(t *testing.T) {
	entries := All()
	entries[0].ID = "mutated"
	assert.Equal(t, YouTube, All()[0].ID)
}

func TestForLink(t *testing.T) {
	assert.Equal(t, Spotify, ForLink("link", "https://open.spotify.com/x"))
	assert.Equal(t, Spotify, ForLink("youtube", "https://open.spotify.com/x"))
	assert.Equal(t, GitHub, ForLink("youtube", "https://github.com/ada"))
	assert.Equal(t, YouTube, ForLink("youtube", "https://example.com"))
	assert.Equal(t, Link, ForLink("reddit", "https://example.com"))
	assert.Equal(t, Link, ForLink("header", "https://example.com"))
}
