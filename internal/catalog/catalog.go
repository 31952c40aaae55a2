// Package catalog owns the canonical game records. A record may be known by
// its RAWG id, its Steam app id or both, and the Matcher guarantees at most
// one record per external id.
package catalog

import (
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"

	"gamelib/internal/platform/rawg"
)

// Source records which providers have contributed to a Game.
type Source string

const (
	SourceRAWG  Source = "rawg"
	SourceSteam Source = "steam"
	SourceBoth  Source = "both"
)

func sourceFor(rawgID, steamAppID string) Source {
	switch {
	case rawgID != "" && steamAppID != "":
		return SourceBoth
	case steamAppID != "":
		return SourceSteam
	default:
		return SourceRAWG
	}
}

// Game is the canonical catalog record. Empty RAWGID or SteamAppID means the
// game has not been linked to that provider yet.
type Game struct {
	ID         string     `json:"id"`
	RAWGID     string     `json:"rawg_id,omitempty"`
	SteamAppID string     `json:"steam_app_id,omitempty"`
	Title      string     `json:"title"`
	ImageURL   string     `json:"image_url,omitempty"`
	Genres     []string   `json:"genres"`
	Tags       []string   `json:"tags"`
	Released   *time.Time `json:"released,omitempty"`
	Metacritic *int       `json:"metacritic,omitempty"`
	Source     Source     `json:"source"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// HasMetadata reports whether the game is linked to RAWG.
func (g Game) HasMetadata() bool { return g.RAWGID != "" }

// Candidate is an incoming description of a game from any source. At least
// one of RAWGID, SteamAppID or Title must be set.
type Candidate struct {
	RAWGID     string
	SteamAppID string
	Title      string
	ImageURL   string
	Genres     []string
	Tags       []string
	Released   *time.Time
	Metacritic *int
}

func (c Candidate) normalized() Candidate {
	c.RAWGID = strings.TrimSpace(c.RAWGID)
	c.SteamAppID = strings.TrimSpace(c.SteamAppID)
	c.Title = strings.TrimSpace(c.Title)
	c.ImageURL = strings.TrimSpace(c.ImageURL)
	return c
}

func (c Candidate) empty() bool {
	return c.RAWGID == "" && c.SteamAppID == "" && c.Title == ""
}

// CandidateFromDetails builds a metadata candidate from a RAWG payload.
func CandidateFromDetails(d rawg.GameDetails) Candidate {
	c := Candidate{
		Title:      d.Title,
		ImageURL:   d.ImageURL,
		Genres:     d.Genres,
		Tags:       d.Tags,
		Metacritic: d.Metacritic,
	}
	if d.RAWGID > 0 {
		c.RAWGID = strconv.FormatInt(d.RAWGID, 10)
	}
	if t, err := time.Parse(time.DateOnly, d.Released); err == nil {
		c.Released = &t
	}
	return c
}

var titleNoise = strings.NewReplacer("™", "", "®", "", "©", "")

// TitleKey is the comparison form of a title: trademark marks removed,
// whitespace collapsed and case folded. "Portal 2™" and "PORTAL  2" share a key.
func TitleKey(title string) string {
	title = titleNoise.Replace(title)
	return cases.Fold().String(strings.Join(strings.Fields(title), " "))
}

// SearchQuery filters the local catalog.
type SearchQuery struct {
	Q      string
	Limit  int
	Offset int
}
