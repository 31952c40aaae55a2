package library

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"gamelib/internal/apperr"
	"gamelib/internal/platform/postgres"
)

//go:generate mockgen -source=postgres_repo.go -destination=mock_repository_test.go -package=library

// Repository stores library entries. Insert reports an existing (user, game)
// pair as apperr.ErrConflict; Get, Update and Delete report a missing pair as
// apperr.ErrNotFound.
type Repository interface {
	Get(ctx context.Context, userID, gameID string) (Entry, error)
	Insert(ctx context.Context, e *Entry) error
	Update(ctx context.Context, e *Entry) error
	Delete(ctx context.Context, userID, gameID string) error
	List(ctx context.Context, userID string, q ListQuery) ([]Entry, int, error)
}

// StatsRepository aggregates a user's library.
type StatsRepository interface {
	Stats(ctx context.Context, userID string) (Stats, error)
	Dashboard(ctx context.Context, userID string, now time.Time) (Dashboard, error)
}

const userGamesUniqueKey = "user_games_user_game_key"

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

const entrySelect = `
	SELECT ug.id, ug.user_id, ug.game_id, ug.status, ug.rating, ug.hours_played, ug.notes,
	       ug.completed_at, ug.created_at, ug.updated_at,
	       g.title, g.image_url, COALESCE(g.rawg_id, ''), COALESCE(g.steam_app_id, '')
	FROM user_games ug
	JOIN games g ON g.id = ug.game_id`

func scanEntry(row pgx.Row) (Entry, error) {
	var (
		e      Entry
		status string
		info   GameInfo
	)
	err := row.Scan(
		&e.ID, &e.UserID, &e.GameID, &status, &e.Rating, &e.HoursPlayed, &e.Notes,
		&e.CompletedAt, &e.CreatedAt, &e.UpdatedAt,
		&info.Title, &info.ImageURL, &info.RAWGID, &info.SteamAppID,
	)
	e.Status = Status(status)
	e.Game = &info
	return e, err
}

func collectEntries(rows pgx.Rows) ([]Entry, error) {
	defer rows.Close()
	out := []Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) Get(ctx context.Context, userID, gameID string) (Entry, error) {
	if _, err := uuid.Parse(gameID); err != nil {
		return Entry{}, apperr.NotFoundf("library entry for game %s", gameID)
	}
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	e, err := scanEntry(r.db.QueryRow(ctx, entrySelect+` WHERE ug.user_id = $1 AND ug.game_id = $2`, userID, gameID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Entry{}, apperr.NotFoundf("library entry for game %s", gameID)
		}
		return Entry{}, fmt.Errorf("get library entry: %w", err)
	}
	return e, nil
}

func (r *PostgresRepo) Insert(ctx context.Context, e *Entry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	const insertSQL = `
		INSERT INTO user_games (id, user_id, game_id, status, rating, hours_played, notes, completed_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING created_at, updated_at`

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(ctx, insertSQL,
		e.ID, e.UserID, e.GameID, string(e.Status), e.Rating, e.HoursPlayed, e.Notes, e.CompletedAt,
	).Scan(&e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		switch {
		case postgres.IsUniqueViolation(err, userGamesUniqueKey):
			return fmt.Errorf("insert library entry for game %s: %w", e.GameID, apperr.ErrConflict)
		case postgres.IsForeignKeyViolation(err):
			return apperr.NotFoundf("game id %s", e.GameID)
		}
		return fmt.Errorf("insert library entry: %w", err)
	}
	return nil
}

func (r *PostgresRepo) Update(ctx context.Context, e *Entry) error {
	const updateSQL = `
		UPDATE user_games SET
			status       = $3,
			rating       = $4,
			hours_played = $5,
			notes        = $6,
			completed_at = $7,
			updated_at   = NOW()
		WHERE user_id = $1 AND game_id = $2
		RETURNING updated_at`

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(ctx, updateSQL,
		e.UserID, e.GameID, string(e.Status), e.Rating, e.HoursPlayed, e.Notes, e.CompletedAt,
	).Scan(&e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.NotFoundf("library entry for game %s", e.GameID)
		}
		return fmt.Errorf("update library entry: %w", err)
	}
	return nil
}

func (r *PostgresRepo) Delete(ctx context.Context, userID, gameID string) error {
	if _, err := uuid.Parse(gameID); err != nil {
		return apperr.NotFoundf("library entry for game %s", gameID)
	}
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	tag, err := r.db.Exec(ctx, `DELETE FROM user_games WHERE user_id = $1 AND game_id = $2`, userID, gameID)
	if err != nil {
		return fmt.Errorf("delete library entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFoundf("library entry for game %s", gameID)
	}
	return nil
}

var sortColumns = map[string]string{
	SortUpdatedAt:   "ug.updated_at",
	SortCreatedAt:   "ug.created_at",
	SortHoursPlayed: "ug.hours_played",
	SortRating:      "ug.rating",
	SortTitle:       "g.title",
}

// List expects a query already normalized by the Service.
func (r *PostgresRepo) List(ctx context.Context, userID string, q ListQuery) ([]Entry, int, error) {
	where := ` WHERE ug.user_id = $1`
	args := []any{userID}
	if q.Status != "" {
		where += ` AND ug.status = $2`
		args = append(args, string(q.Status))
	}

	column, ok := sortColumns[q.Sort]
	if !ok {
		column = sortColumns[SortUpdatedAt]
	}
	direction := "DESC"
	if q.Order == "asc" {
		direction = "ASC"
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var total int
	countSQL := `SELECT COUNT(*) FROM user_games ug` + where
	if err := r.db.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count library entries: %w", err)
	}

	dataSQL := fmt.Sprintf(`%s%s ORDER BY %s %s NULLS LAST, ug.id LIMIT $%d OFFSET $%d`,
		entrySelect, where, column, direction, len(args)+1, len(args)+2)
	rows, err := r.db.Query(ctx, dataSQL, append(args, q.Limit, q.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list library entries: %w", err)
	}
	entries, err := collectEntries(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("scan library entries: %w", err)
	}
	return entries, total, nil
}

func (r *PostgresRepo) Stats(ctx context.Context, userID string) (Stats, error) {
	const statsSQL = `
		SELECT status, COUNT(*), COALESCE(SUM(hours_played), 0), COUNT(rating), COALESCE(SUM(rating), 0)
		FROM user_games
		WHERE user_id = $1
		GROUP BY status`

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(ctx, statsSQL, userID)
	if err != nil {
		return Stats{}, fmt.Errorf("library stats: %w", err)
	}
	defer rows.Close()

	acc := newStatsAccumulator()
	for rows.Next() {
		var (
			status            string
			count, rated, sum int
			hours             decimal.Decimal
		)
		if err := rows.Scan(&status, &count, &hours, &rated, &sum); err != nil {
			return Stats{}, fmt.Errorf("scan library stats: %w", err)
		}
		acc.add(Status(status), count, hours, rated, sum)
	}
	if err := rows.Err(); err != nil {
		return Stats{}, fmt.Errorf("library stats: %w", err)
	}
	return acc.result(), nil
}

func (r *PostgresRepo) Dashboard(ctx context.Context, userID string, now time.Time) (Dashboard, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	list := func(where, order string, args ...any) ([]Entry, error) {
		sql := fmt.Sprintf(`%s WHERE ug.user_id = $1%s ORDER BY %s LIMIT %d`, entrySelect, where, order, dashboardListSize)
		rows, err := r.db.Query(ctx, sql, append([]any{userID}, args...)...)
		if err != nil {
			return nil, err
		}
		return collectEntries(rows)
	}

	var (
		d   Dashboard
		err error
	)
	if d.RecentlyAdded, err = list("", "ug.created_at DESC"); err != nil {
		return Dashboard{}, fmt.Errorf("dashboard recently added: %w", err)
	}
	if d.RecentlyCompleted, err = list(" AND ug.status = 'completed'", "ug.completed_at DESC NULLS LAST"); err != nil {
		return Dashboard{}, fmt.Errorf("dashboard recently completed: %w", err)
	}
	if d.CurrentlyPlaying, err = list(" AND ug.status = 'playing'", "ug.updated_at DESC"); err != nil {
		return Dashboard{}, fmt.Errorf("dashboard currently playing: %w", err)
	}

	const countsSQL = `
		SELECT
			COUNT(*) FILTER (WHERE created_at >= $2),
			COUNT(*) FILTER (WHERE status = 'completed' AND completed_at >= $2),
			COUNT(*) FILTER (WHERE status = 'completed' AND completed_at >= $3)
		FROM user_games
		WHERE user_id = $1`
	err = r.db.QueryRow(ctx, countsSQL, userID, now.AddDate(0, 0, -14), now.AddDate(0, 0, -7)).
		Scan(&d.AddedLast14Days, &d.CompletedLast14Days, &d.CompletedLast7Days)
	if err != nil {
		return Dashboard{}, fmt.Errorf("dashboard counts: %w", err)
	}
	return d, nil
}
