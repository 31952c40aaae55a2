package catalog

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"

	"gamelib/internal/apperr"
	"gamelib/internal/logging"
	"gamelib/internal/platform/rawg"
)

// MetadataFinder is the best-effort name lookup used for title-only
// candidates. It never fails; a miss or a provider error is reported as false.
type MetadataFinder interface {
	FindByName(ctx context.Context, name string) (rawg.GameDetails, bool)
}

// Matcher finds or creates the canonical Game for an incoming candidate.
type Matcher struct {
	repo   Repository
	finder MetadataFinder
	logger *zap.Logger
}

// NewMatcher returns a Matcher. finder may be nil, in which case title-only
// candidates resolve against the local catalog only.
func NewMatcher(repo Repository, finder MetadataFinder, logger *zap.Logger) *Matcher {
	return &Matcher{
		repo:   repo,
		finder: finder,
		logger: logging.OrNop(logger).Named("catalog"),
	}
}

// Resolve returns the canonical Game for c:
//
//  1. a Steam app id already in the catalog wins outright;
//  2. a RAWG id already in the catalog is refreshed with c's non-empty
//     metadata and linked to c's Steam app id if it has none;
//  3. an unknown RAWG id first claims a Steam-only game with the same title,
//     then falls back to a new game;
//  4. an unknown Steam app id without a RAWG id first claims a RAWG-only game
//     with the same title, then falls back to a new Steam-only game;
//  5. a title alone matches the local catalog, then RAWG by name.
func (m *Matcher) Resolve(ctx context.Context, c Candidate) (Game, error) {
	c = c.normalized()
	if c.empty() {
		return Game{}, apperr.Validation("candidate", "one of rawg_id, steam_app_id or title is required")
	}

	if c.SteamAppID != "" {
		g, err := m.repo.GetBySteamAppID(ctx, c.SteamAppID)
		if err == nil {
			return g, nil
		}
		if !errors.Is(err, apperr.ErrNotFound) {
			return Game{}, err
		}
		if c.RAWGID == "" {
			return m.resolveSteam(ctx, c)
		}
	}

	if c.RAWGID != "" {
		return m.resolveMetadata(ctx, c)
	}
	return m.resolveTitle(ctx, c)
}

func (m *Matcher) resolveMetadata(ctx context.Context, c Candidate) (Game, error) {
	g, err := m.repo.GetByRAWGID(ctx, c.RAWGID)
	switch {
	case err == nil:
		return m.refresh(ctx, g, c)
	case !errors.Is(err, apperr.ErrNotFound):
		return Game{}, err
	}

	if c.SteamAppID == "" && c.Title != "" {
		orphan, err := m.repo.FindUnlinkedByTitle(ctx, c.Title)
		switch {
		case err == nil:
			m.logger.Debug("linking steam-only game by title",
				zap.String("game_id", orphan.ID), zap.String("rawg_id", c.RAWGID), zap.String("title", c.Title))
			return m.Enrich(ctx, orphan, c)
		case !errors.Is(err, apperr.ErrNotFound):
			return Game{}, err
		}
	}

	return m.create(ctx, c)
}

func (m *Matcher) resolveSteam(ctx context.Context, c Candidate) (Game, error) {
	if c.Title != "" {
		linked, err := m.repo.FindSteamlessByTitle(ctx, c.Title)
		switch {
		case err == nil:
			m.logger.Debug("linking metadata-only game by title",
				zap.String("game_id", linked.ID), zap.String("steam_app_id", c.SteamAppID), zap.String("title", c.Title))
			return m.Enrich(ctx, linked, c)
		case !errors.Is(err, apperr.ErrNotFound):
			return Game{}, err
		}
	}
	return m.create(ctx, c)
}

func (m *Matcher) resolveTitle(ctx context.Context, c Candidate) (Game, error) {
	g, err := m.repo.FindByTitle(ctx, c.Title)
	switch {
	case err == nil:
		return g, nil
	case !errors.Is(err, apperr.ErrNotFound):
		return Game{}, err
	}

	if m.finder == nil {
		return Game{}, apperr.NotFoundf("game titled %q", c.Title)
	}
	details, found := m.finder.FindByName(ctx, c.Title)
	if !found {
		return Game{}, apperr.NotFoundf("game titled %q", c.Title)
	}
	return m.resolveMetadata(ctx, CandidateFromDetails(details))
}

// refresh applies a metadata merge to a game found by RAWG id: non-empty
// incoming fields replace stored ones, external ids are only filled in.
func (m *Matcher) refresh(ctx context.Context, g Game, c Candidate) (Game, error) {
	next := g
	if c.Title != "" {
		next.Title = c.Title
	}
	if c.ImageURL != "" {
		next.ImageURL = c.ImageURL
	}
	if len(c.Genres) > 0 {
		next.Genres = c.Genres
	}
	if len(c.Tags) > 0 {
		next.Tags = c.Tags
	}
	if c.Released != nil {
		next.Released = c.Released
	}
	if c.Metacritic != nil {
		next.Metacritic = c.Metacritic
	}
	if next.SteamAppID == "" {
		next.SteamAppID = c.SteamAppID
	}
	next.Source = sourceFor(next.RAWGID, next.SteamAppID)
	if sameGame(g, next) {
		return g, nil
	}
	if err := m.repo.Update(ctx, &next); err != nil {
		return Game{}, fmt.Errorf("refresh game %s: %w", g.ID, err)
	}
	return next, nil
}

// Enrich fills the empty fields of g from c. Stored values and external ids
// are never replaced. It fails with apperr.ErrConflict when c's RAWG id
// already belongs to another game.
func (m *Matcher) Enrich(ctx context.Context, g Game, c Candidate) (Game, error) {
	c = c.normalized()
	next := g

	if next.RAWGID == "" && c.RAWGID != "" {
		owner, err := m.repo.GetByRAWGID(ctx, c.RAWGID)
		switch {
		case err == nil && owner.ID != g.ID:
			return Game{}, fmt.Errorf("rawg id %s already linked to game %s: %w", c.RAWGID, owner.ID, apperr.ErrConflict)
		case err != nil && !errors.Is(err, apperr.ErrNotFound):
			return Game{}, err
		}
		next.RAWGID = c.RAWGID
	}
	if next.SteamAppID == "" {
		next.SteamAppID = c.SteamAppID
	}
	if next.Title == "" {
		next.Title = c.Title
	}
	if next.ImageURL == "" {
		next.ImageURL = c.ImageURL
	}
	if len(next.Genres) == 0 {
		next.Genres = c.Genres
	}
	if len(next.Tags) == 0 {
		next.Tags = c.Tags
	}
	if next.Released == nil {
		next.Released = c.Released
	}
	if next.Metacritic == nil {
		next.Metacritic = c.Metacritic
	}
	next.Source = sourceFor(next.RAWGID, next.SteamAppID)

	if sameGame(g, next) {
		return g, nil
	}
	if err := m.repo.Update(ctx, &next); err != nil {
		return Game{}, fmt.Errorf("enrich game %s: %w", g.ID, err)
	}
	return next, nil
}

// create inserts a new game. Losing a race on an external id is resolved by
// returning the winner.
func (m *Matcher) create(ctx context.Context, c Candidate) (Game, error) {
	g := Game{
		RAWGID:     c.RAWGID,
		SteamAppID: c.SteamAppID,
		Title:      c.Title,
		ImageURL:   c.ImageURL,
		Genres:     c.Genres,
		Tags:       c.Tags,
		Released:   c.Released,
		Metacritic: c.Metacritic,
	}
	err := m.repo.Create(ctx, &g)
	if err == nil {
		return g, nil
	}
	if !errors.Is(err, apperr.ErrConflict) {
		return Game{}, err
	}

	m.logger.Debug("create lost race, re-reading", zap.String("rawg_id", c.RAWGID), zap.String("steam_app_id", c.SteamAppID))
	if c.SteamAppID != "" {
		if winner, rerr := m.repo.GetBySteamAppID(ctx, c.SteamAppID); rerr == nil {
			return winner, nil
		}
	}
	if c.RAWGID != "" {
		if winner, rerr := m.repo.GetByRAWGID(ctx, c.RAWGID); rerr == nil {
			return winner, nil
		}
	}
	return Game{}, err
}

func sameGame(a, b Game) bool {
	return a.RAWGID == b.RAWGID &&
		a.SteamAppID == b.SteamAppID &&
		a.Title == b.Title &&
		a.ImageURL == b.ImageURL &&
		slices.Equal(a.Genres, b.Genres) &&
		slices.Equal(a.Tags, b.Tags) &&
		equalPtr(a.Released, b.Released, func(x, y time.Time) bool { return x.Equal(y) }) &&
		equalPtr(a.Metacritic, b.Metacritic, func(x, y int) bool { return x == y }) &&
		a.Source == b.Source
}

func equalPtr[T any](a, b *T, eq func(T, T) bool) bool {
	if a == nil || b == nil {
		return a == b
	}
	return eq(*a, *b)
}
