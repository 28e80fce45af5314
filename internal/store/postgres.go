package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres persists the key space in a single scan_cache table so that
// cached results survive restarts and are shared across replicas.
type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

func (p *Postgres) Get(ctx context.Context, key string) ([]byte, bool, error) {
	rows, err := p.pool.Query(ctx, `SELECT value FROM scan_cache WHERE key = $1`, key)
	if err != nil {
		return nil, false, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, false, rows.Err()
	}
	var value []byte
	if err := rows.Scan(&value); err != nil {
		return nil, false, err
	}
	return value, true, rows.Err()
}

func (p *Postgres) Set(ctx context.Context, key string, value []byte) error {
	_, err := p.pool.Exec(ctx, `
		INSERT INTO scan_cache (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()
	`, key, value)
	return err
}

func (p *Postgres) Remove(ctx context.Context, key string) error {
	_, err := p.pool.Exec(ctx, `DELETE FROM scan_cache WHERE key = $1`, key)
	return err
}

func (p *Postgres) RemoveAll(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	_, err := p.pool.Exec(ctx, `DELETE FROM scan_cache WHERE key = ANY($1)`, keys)
	return err
}
