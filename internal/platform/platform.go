// Package platform maps link URLs to the social platform they point at and
// holds the brand colors used to present each platform.
package platform

import "strings"

// ID identifies a platform
type ID string

const (
	YouTube      ID = "youtube"
	Spotify      ID = "spotify"
	Instagram    ID = "instagram"
	Twitter      ID = "twitter"
	TikTok       ID = "tiktok"
	GitHub       ID = "github"
	LinkedIn     ID = "linkedin"
	Discord      ID = "discord"
	Twitch       ID = "twitch"
	Facebook     ID = "facebook"
	WhatsApp     ID = "whatsapp"
	Telegram     ID = "telegram"
	Dribbble     ID = "dribbble"
	Behance      ID = "behance"
	Figma        ID = "figma"
	Notion       ID = "notion"
	Medium       ID = "medium"
	Substack     ID = "substack"
	Patreon      ID = "patreon"
	BuyMeACoffee ID = "buymeacoffee"

	// Link is the generic fallback
	Link ID = "link"
	// Header is a section title, never detected from a URL
	Header ID = "header"
)

// Config holds the presentation data for a platform
type Config struct {
	Name       string `json:"name"`
	Color      string `json:"color"`
	HoverColor string `json:"hover_color"`
	BgColor    string `json:"bg_color"`
}

// Entry is one row of the platform table
type Entry struct {
	ID       ID
	Patterns []string
	Config
}

// table is scanned in order; the first matching entry wins.
var table = []Entry{
	{YouTube, []string{"youtube.com", "youtu.be"}, Config{"YouTube", "#FF0000", "#CC0000", "rgba(255, 0, 0, 0.1)"}},
	{Spotify, []string{"spotify.com", "open.spotify.com"}, Config{"Spotify", "#1DB954", "#1AA34A", "rgba(29, 185, 84, 0.1)"}},
	{Instagram, []string{"instagram.com", "instagr.am"}, Config{"Instagram", "#E4405F", "#D62E4C", "rgba(228, 64, 95, 0.1)"}},
	{Twitter, []string{"twitter.com", "x.com"}, Config{"X (Twitter)", "#000000", "#333333", "rgba(0, 0, 0, 0.1)"}},
	{TikTok, []string{"tiktok.com"}, Config{"TikTok", "#000000", "#333333", "rgba(0, 0, 0, 0.1)"}},
	{GitHub, []string{"github.com"}, Config{"GitHub", "#181717", "#333333", "rgba(24, 23, 23, 0.1)"}},
	{LinkedIn, []string{"linkedin.com"}, Config{"LinkedIn", "#0A66C2", "#004182", "rgba(10, 102, 194, 0.1)"}},
	{Discord, []string{"discord.com", "discord.gg"}, Config{"Discord", "#5865F2", "#4752C4", "rgba(88, 101, 242, 0.1)"}},
	{Twitch, []string{"twitch.tv"}, Config{"Twitch", "#9146FF", "#7B2FFF", "rgba(145, 70, 255, 0.1)"}},
	{Facebook, []string{"facebook.com", "fb.com"}, Config{"Facebook", "#1877F2", "#0C5DC9", "rgba(24, 119, 242, 0.1)"}},
	{WhatsApp, []string{"whatsapp.com", "wa.me"}, Config{"WhatsApp", "#25D366", "#1DA851", "rgba(37, 211, 102, 0.1)"}},
	{Telegram, []string{"telegram.org", "t.me"}, Config{"Telegram", "#26A5E4", "#0D8ECF", "rgba(38, 165, 228, 0.1)"}},
	{Dribbble, []string{"dribbble.com"}, Config{"Dribbble", "#EA4C89", "#D43A77", "rgba(234, 76, 137, 0.1)"}},
	{Behance, []string{"behance.net"}, Config{"Behance", "#1769FF", "#0050E6", "rgba(23, 105, 255, 0.1)"}},
	{Figma, []string{"figma.com"}, Config{"Figma", "#F24E1E", "#D93D0D", "rgba(242, 78, 30, 0.1)"}},
	{Notion, []string{"notion.so", "notion.site"}, Config{"Notion", "#000000", "#333333", "rgba(0, 0, 0, 0.1)"}},
	{Medium, []string{"medium.com"}, Config{"Medium", "#000000", "#333333", "rgba(0, 0, 0, 0.1)"}},
	{Substack, []string{"substack.com"}, Config{"Substack", "#FF6719", "#E55A0D", "rgba(255, 103, 25, 0.1)"}},
	{Patreon, []string{"patreon.com"}, Config{"Patreon", "#FF424D", "#E6323D", "rgba(255, 66, 77, 0.1)"}},
	{BuyMeACoffee, []string{"buymeacoffee.com"}, Config{"Buy Me a Coffee", "#FFDD00", "#E6C700", "rgba(255, 221, 0, 0.1)"}},
	{Link, nil, Config{"Link", "#71717A", "#52525B", "rgba(113, 113, 122, 0.1)"}},
	{Header, nil, Config{"Header", "#71717A", "#52525B", "transparent"}},
}

// Detect returns the first platform whose pattern occurs in the lower-cased
// url, or Link when nothing matches.
func Detect(url string) ID {
	if url == "" {
		return Link
	}

	normalized := strings.ToLower(url)
	for _, e := range table {
		for _, pattern := range e.Patterns {
			if strings.Contains(normalized, pattern) {
				return e.ID
			}
		}
	}
	return Link
}

// ForLink picks the platform a link block shows as. The detected URL wins;
// otherwise a known stored type is kept, and anything else is a plain Link.
func ForLink(blockType, url string) ID {
	if detected := Detect(url); detected != Link {
		return detected
	}
	if id := ID(blockType); IsKnown(id) && id != Header {
		return id
	}
	return Link
}

// Lookup returns the presentation config for id, falling back to Link
func Lookup(id ID) Config {
	for _, e := range table {
		if e.ID == id {
			return e.Config
		}
	}
	return linkConfig()
}

// IsKnown reports whether id has a row in the table
func IsKnown(id ID) bool {
	for _, e := range table {
		if e.ID == id {
			return true
		}
	}
	return false
}

// All returns a copy of the table in precedence order
func All() []Entry {
	out := make([]Entry, len(table))
	copy(out, table)
	return out
}

func linkConfig() Config {
	for _, e := range table {
		if e.ID == Link {
			return e.Config
		}
	}
	return Config{}
}
