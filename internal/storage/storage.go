// Package storage provides the durable mirror: a small key-addressed blob
// store with SQLite and Postgres backends. Values are opaque JSON blobs;
// layout and keys are owned by the callers.
package storage

import (
	"context"
	"strings"
)

// KV is the durable key-value contract the stores mirror into.
type KV interface {
	// Get returns the blob for key. The boolean reports presence; an
	// absent key is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Put writes the blob for key, replacing any prior value.
	Put(ctx context.Context, key string, value []byte) error
	// Delete removes key if present. Deleting an absent key is a no-op.
	Delete(ctx context.Context, key string) error
	Close() error
}

// Open selects a backend by DSN: postgres:// and postgresql:// URLs open a
// Postgres-backed store, anything else is treated as a SQLite file path.
func Open(ctx context.Context, dsn string) (KV, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return OpenPostgres(ctx, dsn)
	}
	return OpenSQLite(ctx, dsn)
}
