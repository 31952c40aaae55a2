// Package ingest imports a Steam library into a user's game library,
// linking each owned title to the catalog and, for titles new to the
// library, enriching it with RAWG metadata on the way.
package ingest

import (
	"time"

	"github.com/shopspring/decimal"

	"gamelib/internal/catalog"
)

// Options tune a single import. Use DefaultOptions as the starting point:
// the zero value disables enrichment.
type Options struct {
	Limit              int  `json:"limit" validate:"gte=0"`
	MinPlaytimeMinutes int  `json:"min_playtime_minutes" validate:"gte=0"`
	Enrich             bool `json:"enrich"`
}

func DefaultOptions() Options {
	return Options{Enrich: true}
}

// Item describes what happened to one owned title.
type Item struct {
	SteamAppID  string          `json:"steam_app_id"`
	Name        string          `json:"name"`
	GameID      string          `json:"game_id,omitempty"`
	HoursPlayed decimal.Decimal `json:"hours_played"`
	Enriched    bool            `json:"enriched"`
	Reason      string          `json:"reason,omitempty"`
	Error       string          `json:"error,omitempty"`
}

// Report is the result of a completed import. Every processed title lands in
// exactly one bucket.
type Report struct {
	RunID        string `json:"run_id,omitempty"`
	SteamID      string `json:"steam_id"`
	TotalInSteam int    `json:"total_in_steam"`
	Eligible     int    `json:"eligible"`
	Processed    int    `json:"processed"`
	Imported     []Item `json:"imported"`
	Updated      []Item `json:"updated"`
	Skipped      []Item `json:"skipped"`
	Failed       []Item `json:"failed"`
}

func newReport(steamID string) Report {
	return Report{
		SteamID:  steamID,
		Imported: []Item{},
		Updated:  []Item{},
		Skipped:  []Item{},
		Failed:   []Item{},
	}
}

// Enrichment is the result of the best-effort metadata step. Game is always
// usable; when Enriched is false, Reason says why the metadata is missing.
type Enrichment struct {
	Game     catalog.Game
	Enriched bool
	Reason   string
}

const (
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
	RunStatusCanceled  = "canceled"
)

// Run is the persisted audit record of one import.
type Run struct {
	ID                 string     `json:"id"`
	UserID             string     `json:"user_id"`
	Handle             string     `json:"handle"`
	SteamID            string     `json:"steam_id,omitempty"`
	Status             string     `json:"status"`
	Limit              int        `json:"limit"`
	MinPlaytimeMinutes int        `json:"min_playtime_minutes"`
	Enrich             bool       `json:"enrich"`
	TotalInSteam       int        `json:"total_in_steam"`
	Processed          int        `json:"processed"`
	Imported           int        `json:"imported"`
	Updated            int        `json:"updated"`
	Skipped            int        `json:"skipped"`
	Failed             int        `json:"failed"`
	Error              string     `json:"error,omitempty"`
	StartedAt          time.Time  `json:"started_at"`
	FinishedAt         *time.Time `json:"finished_at,omitempty"`
}

func (r *Run) record(rep Report) {
	r.SteamID = rep.SteamID
	r.TotalInSteam = rep.TotalInSteam
	r.Processed = rep.Processed
	r.Imported = len(rep.Imported)
	r.Updated = len(rep.Updated)
	r.Skipped = len(rep.Skipped)
	r.Failed = len(rep.Failed)
}
