package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
)

const postgresBootstrap = `
CREATE TABLE IF NOT EXISTS kv_blobs (
	k TEXT PRIMARY KEY,
	v BYTEA NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`

type postgresKV struct {
	db *sql.DB
}

// OpenPostgres opens a Postgres-backed blob store at the given URL.
func OpenPostgres(ctx context.Context, url string) (KV, error) {
	db, err := sql.Open("pgx", url)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := db.ExecContext(ctx, postgresBootstrap); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("bootstrap postgres: %w", err)
	}
	return &postgresKV{db: db}, nil
}

func (p *postgresKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var v []byte
	err := p.db.QueryRowContext(ctx, `SELECT v FROM kv_blobs WHERE k = $1`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get %q: %w", key, err)
	}
	return v, true, nil
}

func (p *postgresKV) Put(ctx context.Context, key string, value []byte) error {
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO kv_blobs (k, v) VALUES ($1, $2)
		ON CONFLICT (k) DO UPDATE SET
			v = EXCLUDED.v,
			updated_at = now()`, key, value)
	if err != nil {
		return fmt.Errorf("put %q: %w", key, err)
	}
	return nil
}

func (p *postgresKV) Delete(ctx context.Context, key string) error {
	if _, err := p.db.ExecContext(ctx, `DELETE FROM kv_blobs WHERE k = $1`, key); err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}

func (p *postgresKV) Close() error {
	return p.db.Close()
}
