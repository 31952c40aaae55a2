package library

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"gamelib/internal/apperr"
)

// MemoryRepo keeps entries in process memory with the same (user, game)
// uniqueness as the user_games table.
type MemoryRepo struct {
	mu      sync.RWMutex
	entries map[string]Entry
	now     func() time.Time
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{entries: make(map[string]Entry), now: time.Now}
}

func entryKey(userID, gameID string) string { return userID + "\x00" + gameID }

func copyEntry(e Entry) Entry {
	if e.Rating != nil {
		v := *e.Rating
		e.Rating = &v
	}
	if e.CompletedAt != nil {
		t := *e.CompletedAt
		e.CompletedAt = &t
	}
	if e.Game != nil {
		g := *e.Game
		e.Game = &g
	}
	return e
}

func (r *MemoryRepo) Get(_ context.Context, userID, gameID string) (Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[entryKey(userID, gameID)]
	if !ok {
		return Entry{}, apperr.NotFoundf("library entry for game %s", gameID)
	}
	return copyEntry(e), nil
}

func (r *MemoryRepo) Insert(_ context.Context, e *Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := entryKey(e.UserID, e.GameID)
	if _, ok := r.entries[key]; ok {
		return fmt.Errorf("insert library entry for game %s: %w", e.GameID, apperr.ErrConflict)
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	now := r.now().UTC()
	e.CreatedAt, e.UpdatedAt = now, now
	r.entries[key] = copyEntry(*e)
	return nil
}

func (r *MemoryRepo) Update(_ context.Context, e *Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := entryKey(e.UserID, e.GameID)
	stored, ok := r.entries[key]
	if !ok {
		return apperr.NotFoundf("library entry for game %s", e.GameID)
	}
	e.ID, e.CreatedAt = stored.ID, stored.CreatedAt
	if e.Game == nil {
		e.Game = stored.Game
	}
	e.UpdatedAt = r.now().UTC()
	r.entries[key] = copyEntry(*e)
	return nil
}

func (r *MemoryRepo) Delete(_ context.Context, userID, gameID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := entryKey(userID, gameID)
	if _, ok := r.entries[key]; !ok {
		return apperr.NotFoundf("library entry for game %s", gameID)
	}
	delete(r.entries, key)
	return nil
}

func (r *MemoryRepo) userEntries(userID string, keep func(Entry) bool) []Entry {
	var out []Entry
	for _, e := range r.entries {
		if e.UserID == userID && (keep == nil || keep(e)) {
			out = append(out, copyEntry(e))
		}
	}
	return out
}

func title(e Entry) string {
	if e.Game == nil {
		return ""
	}
	return strings.ToLower(e.Game.Title)
}

// compareBy orders two entries by the sort column, with nil values last
// regardless of direction. The second result is false for nulls.
func compareBy(sortBy string, a, b Entry) (int, bool) {
	switch sortBy {
	case SortCreatedAt:
		return a.CreatedAt.Compare(b.CreatedAt), true
	case SortHoursPlayed:
		return a.HoursPlayed.Cmp(b.HoursPlayed), true
	case SortRating:
		if a.Rating == nil || b.Rating == nil {
			return 0, false
		}
		return *a.Rating - *b.Rating, true
	case SortTitle:
		return strings.Compare(title(a), title(b)), true
	default:
		return a.UpdatedAt.Compare(b.UpdatedAt), true
	}
}

func (r *MemoryRepo) List(_ context.Context, userID string, q ListQuery) ([]Entry, int, error) {
	r.mu.RLock()
	entries := r.userEntries(userID, func(e Entry) bool { return q.Status == "" || e.Status == q.Status })
	r.mu.RUnlock()

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if q.Sort == SortRating && (a.Rating == nil) != (b.Rating == nil) {
			return b.Rating == nil
		}
		c, ok := compareBy(q.Sort, a, b)
		if !ok || c == 0 {
			return a.ID < b.ID
		}
		if q.Order == "asc" {
			return c < 0
		}
		return c > 0
	})

	total := len(entries)
	start := min(max(q.Offset, 0), total)
	end := total
	if q.Limit > 0 {
		end = min(start+q.Limit, total)
	}
	return entries[start:end], total, nil
}

func (r *MemoryRepo) Stats(_ context.Context, userID string) (Stats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	acc := newStatsAccumulator()
	for _, e := range r.userEntries(userID, nil) {
		rated, sum := 0, 0
		if e.Rating != nil {
			rated, sum = 1, *e.Rating
		}
		acc.add(e.Status, 1, e.HoursPlayed, rated, sum)
	}
	return acc.result(), nil
}

func (r *MemoryRepo) Dashboard(_ context.Context, userID string, now time.Time) (Dashboard, error) {
	r.mu.RLock()
	all := r.userEntries(userID, nil)
	r.mu.RUnlock()

	pick := func(keep func(Entry) bool, newer func(a, b Entry) bool) []Entry {
		out := []Entry{}
		for _, e := range all {
			if keep(e) {
				out = append(out, e)
			}
		}
		sort.SliceStable(out, func(i, j int) bool { return newer(out[i], out[j]) })
		if len(out) > dashboardListSize {
			out = out[:dashboardListSize]
		}
		return out
	}
	completed := func(e Entry) bool { return e.Status == StatusCompleted && e.CompletedAt != nil }

	d := Dashboard{
		RecentlyAdded: pick(func(Entry) bool { return true },
			func(a, b Entry) bool { return a.CreatedAt.After(b.CreatedAt) }),
		RecentlyCompleted: pick(completed,
			func(a, b Entry) bool { return a.CompletedAt.After(*b.CompletedAt) }),
		CurrentlyPlaying: pick(func(e Entry) bool { return e.Status == StatusPlaying },
			func(a, b Entry) bool { return a.UpdatedAt.After(b.UpdatedAt) }),
	}
	twoWeeks, oneWeek := now.AddDate(0, 0, -14), now.AddDate(0, 0, -7)
	for _, e := range all {
		if !e.CreatedAt.Before(twoWeeks) {
			d.AddedLast14Days++
		}
		if completed(e) && !e.CompletedAt.Before(twoWeeks) {
			d.CompletedLast14Days++
			if !e.CompletedAt.Before(oneWeek) {
				d.CompletedLast7Days++
			}
		}
	}
	return d, nil
}
