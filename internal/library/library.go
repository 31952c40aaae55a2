// Package library tracks which catalog games each user has, along with
// their play status, rating and playtime. An entry is unique per
// (user, game) pair.
package library

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"gamelib/internal/apperr"
	"gamelib/internal/catalog"
)

type Status string

const (
	StatusWishlist  Status = "wishlist"
	StatusOwned     Status = "owned"
	StatusPlaying   Status = "playing"
	StatusCompleted Status = "completed"
	StatusDropped   Status = "dropped"
)

var statuses = []Status{StatusWishlist, StatusOwned, StatusPlaying, StatusCompleted, StatusDropped}

func (s Status) Valid() bool {
	for _, v := range statuses {
		if s == v {
			return true
		}
	}
	return false
}

// ParseStatus accepts a status in any case.
func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", apperr.Validation("status", "invalid status: %s", s)
	}
	return st, nil
}

// GameInfo is the catalog data shown alongside an entry.
type GameInfo struct {
	Title      string `json:"title"`
	ImageURL   string `json:"image_url,omitempty"`
	RAWGID     string `json:"rawg_id,omitempty"`
	SteamAppID string `json:"steam_app_id,omitempty"`
}

func gameInfo(g catalog.Game) *GameInfo {
	return &GameInfo{Title: g.Title, ImageURL: g.ImageURL, RAWGID: g.RAWGID, SteamAppID: g.SteamAppID}
}

type Entry struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	GameID      string          `json:"game_id"`
	Status      Status          `json:"status"`
	Rating      *int            `json:"rating,omitempty"`
	HoursPlayed decimal.Decimal `json:"hours_played"`
	Notes       string          `json:"notes,omitempty"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	Game        *GameInfo       `json:"game,omitempty"`
}

// ApplyStatus moves the entry to next. The first transition into completed
// stamps CompletedAt; after that the date never changes, even when the entry
// leaves completed and comes back.
func (e *Entry) ApplyStatus(next Status, now time.Time) {
	if next == StatusCompleted && e.Status != StatusCompleted && e.CompletedAt == nil {
		t := now.UTC()
		e.CompletedAt = &t
	}
	e.Status = next
}

// ListQuery selects and orders a user's entries. Sort must be one of
// updated_at, created_at, hours_played, rating or title.
type ListQuery struct {
	Status Status
	Sort   string
	Order  string
	Limit  int
	Offset int
}

const (
	SortUpdatedAt   = "updated_at"
	SortCreatedAt   = "created_at"
	SortHoursPlayed = "hours_played"
	SortRating      = "rating"
	SortTitle       = "title"
)

func validSort(s string) bool {
	switch s {
	case SortUpdatedAt, SortCreatedAt, SortHoursPlayed, SortRating, SortTitle:
		return true
	}
	return false
}

type Stats struct {
	Total         int                 `json:"total"`
	ByStatus      map[Status]int      `json:"by_status"`
	TotalHours    decimal.Decimal     `json:"total_hours"`
	AverageRating decimal.NullDecimal `json:"average_rating"`
	RatedCount    int                 `json:"rated_count"`
}

func newStats() Stats {
	s := Stats{ByStatus: make(map[Status]int, len(statuses))}
	for _, st := range statuses {
		s.ByStatus[st] = 0
	}
	return s
}

type Dashboard struct {
	RecentlyAdded       []Entry `json:"recently_added"`
	RecentlyCompleted   []Entry `json:"recently_completed"`
	CurrentlyPlaying    []Entry `json:"currently_playing"`
	AddedLast14Days     int     `json:"added_last_14_days"`
	CompletedLast14Days int     `json:"completed_last_14_days"`
	CompletedLast7Days  int     `json:"completed_last_7_days"`
}

const dashboardListSize = 5

type statsAccumulator struct {
	stats     Stats
	ratingSum int
}

func newStatsAccumulator() *statsAccumulator {
	return &statsAccumulator{stats: newStats()}
}

func (a *statsAccumulator) add(status Status, count int, hours decimal.Decimal, rated, ratingSum int) {
	a.stats.Total += count
	a.stats.ByStatus[status] += count
	a.stats.TotalHours = a.stats.TotalHours.Add(hours)
	a.stats.RatedCount += rated
	a.ratingSum += ratingSum
}

func (a *statsAccumulator) result() Stats {
	s := a.stats
	if s.RatedCount > 0 {
		avg := decimal.NewFromInt(int64(a.ratingSum)).DivRound(decimal.NewFromInt(int64(s.RatedCount)), 1)
		s.AverageRating = decimal.NullDecimal{Decimal: avg, Valid: true}
	}
	return s
}
