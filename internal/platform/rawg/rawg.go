package rawg

import (
	"strings"
)

// GameSummary is the compact projection of a search result.
type GameSummary struct {
	RAWGID     int64   `json:"rawg_id"`
	Slug       string  `json:"slug"`
	Title      string  `json:"title"`
	ImageURL   string  `json:"image_url,omitempty"`
	Released   string  `json:"released,omitempty"`
	Metacritic *int    `json:"metacritic,omitempty"`
	Rating     float64 `json:"rating"`
	Genres     string  `json:"genres,omitempty"`
	Platforms  string  `json:"platforms,omitempty"`
}

type SearchPage struct {
	Count    int           `json:"count"`
	Next     string        `json:"next,omitempty"`
	Previous string        `json:"previous,omitempty"`
	Results  []GameSummary `json:"results"`
}

// GameDetails is the normalized single-game payload.
type GameDetails struct {
	RAWGID      int64    `json:"rawg_id"`
	Slug        string   `json:"slug"`
	Title       string   `json:"title"`
	ImageURL    string   `json:"image_url,omitempty"`
	Released    string   `json:"released,omitempty"`
	Metacritic  *int     `json:"metacritic,omitempty"`
	Rating      float64  `json:"rating"`
	Playtime    int      `json:"playtime"` // average hours
	Genres      []string `json:"genres,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Platforms   []string `json:"platforms,omitempty"`
	OnSteam     bool     `json:"on_steam"`
	Description string   `json:"description,omitempty"`
	Website     string   `json:"website,omitempty"`
	ESRBRating  string   `json:"esrb_rating,omitempty"`
}

// wire shapes

type named struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type gameJSON struct {
	ID              int64   `json:"id"`
	Slug            string  `json:"slug"`
	Name            string  `json:"name"`
	BackgroundImage string  `json:"background_image"`
	Released        string  `json:"released"`
	Metacritic      *int    `json:"metacritic"`
	Rating          float64 `json:"rating"`
	Playtime        int     `json:"playtime"`
	Genres          []named `json:"genres"`
	Platforms       []struct {
		Platform named `json:"platform"`
	} `json:"platforms"`
	Tags []struct {
		Name     string `json:"name"`
		Language string `json:"language"`
	} `json:"tags"`
	Stores []struct {
		Store named `json:"store"`
	} `json:"stores"`
	DescriptionRaw string `json:"description_raw"`
	Description    string `json:"description"`
	Website        string `json:"website"`
	ESRBRating     *named `json:"esrb_rating"`
}

type searchJSON struct {
	Count    int        `json:"count"`
	Next     *string    `json:"next"`
	Previous *string    `json:"previous"`
	Results  []gameJSON `json:"results"`
}

const maxTags = 10

func genreNames(g gameJSON) []string {
	out := make([]string, 0, len(g.Genres))
	for _, genre := range g.Genres {
		out = append(out, genre.Name)
	}
	return out
}

func platformNames(g gameJSON) []string {
	out := make([]string, 0, len(g.Platforms))
	for _, p := range g.Platforms {
		out = append(out, p.Platform.Name)
	}
	return out
}

// curatedTags keeps English tags, drops controller-support notices and
// returns at most maxTags names.
func curatedTags(g gameJSON) []string {
	var out []string
	for _, t := range g.Tags {
		if t.Language != "eng" || strings.Contains(strings.ToLower(t.Name), "controller support") {
			continue
		}
		out = append(out, t.Name)
		if len(out) == maxTags {
			break
		}
	}
	return out
}

func summaryFrom(g gameJSON) GameSummary {
	return GameSummary{
		RAWGID:     g.ID,
		Slug:       g.Slug,
		Title:      g.Name,
		ImageURL:   g.BackgroundImage,
		Released:   g.Released,
		Metacritic: g.Metacritic,
		Rating:     g.Rating,
		Genres:     strings.Join(genreNames(g), ", "),
		Platforms:  strings.Join(platformNames(g), ", "),
	}
}

func detailsFrom(g gameJSON) GameDetails {
	d := GameDetails{
		RAWGID:      g.ID,
		Slug:        g.Slug,
		Title:       g.Name,
		ImageURL:    g.BackgroundImage,
		Released:    g.Released,
		Metacritic:  g.Metacritic,
		Rating:      g.Rating,
		Playtime:    g.Playtime,
		Genres:      genreNames(g),
		Tags:        curatedTags(g),
		Platforms:   platformNames(g),
		Description: g.DescriptionRaw,
		Website:     g.Website,
	}
	if d.Description == "" {
		d.Description = g.Description
	}
	if g.ESRBRating != nil {
		d.ESRBRating = g.ESRBRating.Name
	}
	for _, s := range g.Stores {
		if s.Store.Slug == "steam" {
			d.OnSteam = true
			break
		}
	}
	return d
}
