package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RunRepository persists import audit records.
type RunRepository interface {
	CreateRun(ctx context.Context, run *Run) (string, error)
	UpdateRun(ctx context.Context, run *Run) error
	ListRuns(ctx context.Context, userID string, limit int) ([]Run, error)
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

func (r *PostgresRepo) CreateRun(ctx context.Context, run *Run) (string, error) {
	const sql = `
		INSERT INTO import_runs (id, user_id, handle, status, opt_limit, opt_min_playtime, opt_enrich, started_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	var id string
	err := r.db.QueryRow(ctx, sql,
		uuid.NewString(), run.UserID, run.Handle, run.Status, run.Limit, run.MinPlaytimeMinutes, run.Enrich, run.StartedAt,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("create import run: %w", err)
	}
	return id, nil
}

func (r *PostgresRepo) UpdateRun(ctx context.Context, run *Run) error {
	const sql = `
		UPDATE import_runs SET
			steam_id = $2,
			status = $3,
			total_in_steam = $4,
			processed = $5,
			imported = $6,
			updated = $7,
			skipped = $8,
			failed = $9,
			error = $10,
			finished_at = $11
		WHERE id = $1`

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	_, err := r.db.Exec(ctx, sql,
		run.ID, run.SteamID, run.Status, run.TotalInSteam, run.Processed,
		run.Imported, run.Updated, run.Skipped, run.Failed, run.Error, run.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("update import run %s: %w", run.ID, err)
	}
	return nil
}

func (r *PostgresRepo) ListRuns(ctx context.Context, userID string, limit int) ([]Run, error) {
	const sql = `
		SELECT id, user_id, handle, steam_id, status, opt_limit, opt_min_playtime, opt_enrich,
		       total_in_steam, processed, imported, updated, skipped, failed, error, started_at, finished_at
		FROM import_runs
		WHERE user_id = $1
		ORDER BY started_at DESC
		LIMIT $2`

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(ctx, sql, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list import runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		var run Run
		if err := rows.Scan(
			&run.ID, &run.UserID, &run.Handle, &run.SteamID, &run.Status, &run.Limit, &run.MinPlaytimeMinutes, &run.Enrich,
			&run.TotalInSteam, &run.Processed, &run.Imported, &run.Updated, &run.Skipped, &run.Failed,
			&run.Error, &run.StartedAt, &run.FinishedAt,
		); err != nil {
			return nil, fmt.Errorf("scan import run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
