package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore keeps entries in the api_cache table.
type PostgresStore struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresStore(db *pgxpool.Pool, timeout time.Duration) *PostgresStore {
	return &PostgresStore{db: db, timeout: timeout}
}

func (s *PostgresStore) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.timeout)
}

func (s *PostgresStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	const query = `
		SELECT response
		FROM api_cache
		WHERE cache_key = $1 AND expires_at > NOW()`

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var payload []byte
	err := s.db.QueryRow(ctx, query, key).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read cache %s: %w", key, err)
	}
	return payload, true, nil
}

func (s *PostgresStore) Put(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	const upsertSQL = `
		INSERT INTO api_cache (cache_key, response, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (cache_key) DO UPDATE SET
			response = EXCLUDED.response,
			expires_at = EXCLUDED.expires_at`

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	expiresAt := time.Now().Add(effectiveTTL(ttl))
	if _, err := s.db.Exec(ctx, upsertSQL, key, payload, expiresAt); err != nil {
		return fmt.Errorf("write cache %s: %w", key, err)
	}
	return nil
}

func (s *PostgresStore) Prune(ctx context.Context) (int64, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	tag, err := s.db.Exec(ctx, `DELETE FROM api_cache WHERE expires_at <= NOW()`)
	if err != nil {
		return 0, fmt.Errorf("prune cache: %w", err)
	}
	return tag.RowsAffected(), nil
}
