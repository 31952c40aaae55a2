package catalog

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"gamelib/internal/apperr"
)

// MemoryRepo is a Repository held in process memory. It enforces the same
// uniqueness rules as the games table and is used by the CLI dry runs and
// tests.
type MemoryRepo struct {
	mu    sync.RWMutex
	games map[string]Game
	order []string
	now   func() time.Time
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{games: make(map[string]Game), now: time.Now}
}

func clone(g Game) Game {
	g.Genres = slices.Clone(g.Genres)
	g.Tags = slices.Clone(g.Tags)
	return g
}

func (r *MemoryRepo) find(match func(Game) bool) (Game, bool) {
	for _, id := range r.order {
		if g := r.games[id]; match(g) {
			return clone(g), true
		}
	}
	return Game{}, false
}

func (r *MemoryRepo) lookup(what string, arg string, match func(Game) bool) (Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if g, ok := r.find(match); ok {
		return g, nil
	}
	return Game{}, apperr.NotFoundf("game %s %s", what, arg)
}

func (r *MemoryRepo) GetByID(_ context.Context, id string) (Game, error) {
	return r.lookup("id", id, func(g Game) bool { return g.ID == id })
}

func (r *MemoryRepo) GetByRAWGID(_ context.Context, rawgID string) (Game, error) {
	return r.lookup("rawg id", rawgID, func(g Game) bool { return rawgID != "" && g.RAWGID == rawgID })
}

func (r *MemoryRepo) GetBySteamAppID(_ context.Context, appID string) (Game, error) {
	return r.lookup("steam app id", appID, func(g Game) bool { return appID != "" && g.SteamAppID == appID })
}

func (r *MemoryRepo) FindByTitle(_ context.Context, title string) (Game, error) {
	key := TitleKey(title)
	r.mu.RLock()
	defer r.mu.RUnlock()
	if g, ok := r.find(func(g Game) bool { return g.HasMetadata() && TitleKey(g.Title) == key }); ok {
		return g, nil
	}
	if g, ok := r.find(func(g Game) bool { return TitleKey(g.Title) == key }); ok {
		return g, nil
	}
	return Game{}, apperr.NotFoundf("game title %s", title)
}

func (r *MemoryRepo) FindUnlinkedByTitle(_ context.Context, title string) (Game, error) {
	key := TitleKey(title)
	return r.lookup("unlinked title", title, func(g Game) bool {
		return g.RAWGID == "" && g.SteamAppID != "" && TitleKey(g.Title) == key
	})
}

func (r *MemoryRepo) FindSteamlessByTitle(_ context.Context, title string) (Game, error) {
	key := TitleKey(title)
	return r.lookup("steamless title", title, func(g Game) bool {
		return g.SteamAppID == "" && g.RAWGID != "" && TitleKey(g.Title) == key
	})
}

// conflicts reports whether another game already holds one of g's external ids.
func (r *MemoryRepo) conflicts(g Game) bool {
	for id, other := range r.games {
		if id == g.ID {
			continue
		}
		if (g.RAWGID != "" && other.RAWGID == g.RAWGID) || (g.SteamAppID != "" && other.SteamAppID == g.SteamAppID) {
			return true
		}
	}
	return false
}

func (r *MemoryRepo) Create(_ context.Context, g *Game) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	if _, exists := r.games[g.ID]; exists || r.conflicts(*g) {
		return fmt.Errorf("create game %q: %w", g.Title, apperr.ErrConflict)
	}
	g.Source = sourceFor(g.RAWGID, g.SteamAppID)
	g.CreatedAt = r.now()
	g.UpdatedAt = g.CreatedAt
	if g.Genres == nil {
		g.Genres = []string{}
	}
	if g.Tags == nil {
		g.Tags = []string{}
	}
	r.games[g.ID] = clone(*g)
	r.order = append(r.order, g.ID)
	return nil
}

func (r *MemoryRepo) Update(_ context.Context, g *Game) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.games[g.ID]
	if !ok {
		return apperr.NotFoundf("game id %s", g.ID)
	}
	next := clone(*g)
	if stored.RAWGID != "" {
		next.RAWGID = stored.RAWGID
	}
	if stored.SteamAppID != "" {
		next.SteamAppID = stored.SteamAppID
	}
	if r.conflicts(next) {
		return fmt.Errorf("update game %s: %w", g.ID, apperr.ErrConflict)
	}
	next.Source = sourceFor(next.RAWGID, next.SteamAppID)
	next.CreatedAt = stored.CreatedAt
	next.UpdatedAt = r.now()
	r.games[g.ID] = next
	*g = clone(next)
	return nil
}

func (r *MemoryRepo) Search(_ context.Context, q SearchQuery) ([]Game, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	needle := TitleKey(q.Q)
	var hits []Game
	for _, id := range r.order {
		g := r.games[id]
		haystack := TitleKey(g.Title + " " + strings.Join(g.Genres, " ") + " " + strings.Join(g.Tags, " "))
		if needle == "" || strings.Contains(haystack, needle) {
			hits = append(hits, clone(g))
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Title < hits[j].Title })

	total := len(hits)
	start := min(max(q.Offset, 0), total)
	end := total
	if q.Limit > 0 {
		end = min(start+q.Limit, total)
	}
	return hits[start:end], total, nil
}
