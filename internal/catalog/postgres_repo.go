package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"gamelib/internal/apperr"
	"gamelib/internal/platform/postgres"
)

//go:generate mockgen -source=postgres_repo.go -destination=mock_repository_test.go -package=catalog

// Repository stores canonical games. Create and Update report a duplicate
// external id as apperr.ErrConflict; lookups report apperr.ErrNotFound.
type Repository interface {
	GetByID(ctx context.Context, id string) (Game, error)
	GetByRAWGID(ctx context.Context, rawgID string) (Game, error)
	GetBySteamAppID(ctx context.Context, appID string) (Game, error)
	// FindByTitle matches on TitleKey, preferring games linked to RAWG.
	FindByTitle(ctx context.Context, title string) (Game, error)
	// FindUnlinkedByTitle matches Steam-only games on TitleKey.
	FindUnlinkedByTitle(ctx context.Context, title string) (Game, error)
	// FindSteamlessByTitle matches RAWG-only games on TitleKey.
	FindSteamlessByTitle(ctx context.Context, title string) (Game, error)
	Create(ctx context.Context, g *Game) error
	Update(ctx context.Context, g *Game) error
	Search(ctx context.Context, q SearchQuery) ([]Game, int, error)
}

type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

const gameColumns = `id, COALESCE(rawg_id, ''), COALESCE(steam_app_id, ''), title, image_url,
	genres, tags, released, metacritic, source, created_at, updated_at`

func scanGame(row pgx.Row) (Game, error) {
	var g Game
	var source string
	err := row.Scan(
		&g.ID, &g.RAWGID, &g.SteamAppID, &g.Title, &g.ImageURL,
		&g.Genres, &g.Tags, &g.Released, &g.Metacritic, &source, &g.CreatedAt, &g.UpdatedAt,
	)
	g.Source = Source(source)
	return g, err
}

func (r *PostgresRepo) getOne(ctx context.Context, what, where string, arg any) (Game, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	g, err := scanGame(r.db.QueryRow(ctx, "SELECT "+gameColumns+" FROM games WHERE "+where, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Game{}, apperr.NotFoundf("game %s %v", what, arg)
		}
		return Game{}, fmt.Errorf("get game by %s: %w", what, err)
	}
	return g, nil
}

func (r *PostgresRepo) GetByID(ctx context.Context, id string) (Game, error) {
	if _, err := uuid.Parse(id); err != nil {
		return Game{}, apperr.NotFoundf("game id %s", id)
	}
	return r.getOne(ctx, "id", "id = $1", id)
}

func (r *PostgresRepo) GetByRAWGID(ctx context.Context, rawgID string) (Game, error) {
	return r.getOne(ctx, "rawg id", "rawg_id = $1", rawgID)
}

func (r *PostgresRepo) GetBySteamAppID(ctx context.Context, appID string) (Game, error) {
	return r.getOne(ctx, "steam app id", "steam_app_id = $1", appID)
}

func (r *PostgresRepo) FindByTitle(ctx context.Context, title string) (Game, error) {
	return r.getOne(ctx, "title", "title_key = $1 ORDER BY (rawg_id IS NULL), created_at LIMIT 1", TitleKey(title))
}

func (r *PostgresRepo) FindUnlinkedByTitle(ctx context.Context, title string) (Game, error) {
	return r.getOne(ctx, "unlinked title",
		"title_key = $1 AND rawg_id IS NULL AND steam_app_id IS NOT NULL ORDER BY created_at LIMIT 1", TitleKey(title))
}

func (r *PostgresRepo) FindSteamlessByTitle(ctx context.Context, title string) (Game, error) {
	return r.getOne(ctx, "steamless title",
		"title_key = $1 AND steam_app_id IS NULL AND rawg_id IS NOT NULL ORDER BY created_at LIMIT 1", TitleKey(title))
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func (r *PostgresRepo) Create(ctx context.Context, g *Game) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	g.Source = sourceFor(g.RAWGID, g.SteamAppID)

	const insertSQL = `
		INSERT INTO games (id, rawg_id, steam_app_id, title, title_key, image_url, genres, tags, released, metacritic, source, created_at, updated_at)
		VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
		RETURNING created_at, updated_at`

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(ctx, insertSQL,
		g.ID, g.RAWGID, g.SteamAppID, g.Title, TitleKey(g.Title), g.ImageURL,
		nonNil(g.Genres), nonNil(g.Tags), g.Released, g.Metacritic, string(g.Source),
	).Scan(&g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return fmt.Errorf("create game %q: %w", g.Title, apperr.ErrConflict)
		}
		return fmt.Errorf("create game: %w", err)
	}
	return nil
}

// Update writes every mutable column. External ids are only ever filled in,
// never cleared: COALESCE keeps a stored id when the incoming one is empty.
func (r *PostgresRepo) Update(ctx context.Context, g *Game) error {
	const updateSQL = `
		UPDATE games SET
			rawg_id      = COALESCE(rawg_id, NULLIF($2, '')),
			steam_app_id = COALESCE(steam_app_id, NULLIF($3, '')),
			title        = $4,
			title_key    = $5,
			image_url    = $6,
			genres       = $7,
			tags         = $8,
			released     = $9,
			metacritic   = $10,
			source       = CASE
				WHEN COALESCE(rawg_id, NULLIF($2, '')) IS NOT NULL AND COALESCE(steam_app_id, NULLIF($3, '')) IS NOT NULL THEN 'both'
				WHEN COALESCE(steam_app_id, NULLIF($3, '')) IS NOT NULL THEN 'steam'
				ELSE 'rawg' END::game_source,
			updated_at   = NOW()
		WHERE id = $1
		RETURNING ` + gameColumns

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	updated, err := scanGame(r.db.QueryRow(ctx, updateSQL,
		g.ID, g.RAWGID, g.SteamAppID, g.Title, TitleKey(g.Title), g.ImageURL,
		nonNil(g.Genres), nonNil(g.Tags), g.Released, g.Metacritic,
	))
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return apperr.NotFoundf("game id %s", g.ID)
		case postgres.IsUniqueViolation(err):
			return fmt.Errorf("update game %s: %w", g.ID, apperr.ErrConflict)
		}
		return fmt.Errorf("update game: %w", err)
	}
	*g = updated
	return nil
}

// Search ranks by full-text relevance over title, genres and tags. An empty
// query lists the catalog alphabetically.
func (r *PostgresRepo) Search(ctx context.Context, q SearchQuery) ([]Game, int, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var (
		countSQL, dataSQL string
		args              []any
	)
	if q.Q == "" {
		countSQL = `SELECT COUNT(*) FROM games`
		dataSQL = `SELECT ` + gameColumns + ` FROM games ORDER BY title ASC LIMIT $1 OFFSET $2`
	} else {
		args = []any{q.Q}
		countSQL = `SELECT COUNT(*) FROM games WHERE search_vector @@ plainto_tsquery('english', $1)`
		dataSQL = `
			SELECT ` + gameColumns + `
			FROM games, plainto_tsquery('english', $1) query
			WHERE search_vector @@ query
			ORDER BY ts_rank(search_vector, query) DESC, title ASC
			LIMIT $2 OFFSET $3`
	}

	var total int
	if err := r.db.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count games: %w", err)
	}

	rows, err := r.db.Query(ctx, dataSQL, append(args, q.Limit, q.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("search games: %w", err)
	}
	defer rows.Close()

	out := []Game{}
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, g)
	}
	return out, total, rows.Err()
}
