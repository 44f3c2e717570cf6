package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/GTDGit/gtd_storefront/internal/cache"
)

// KVRepository stores key-value pairs in the kv_entries table. It satisfies
// cache.Store so Postgres can back client persistence.
type KVRepository struct {
	db *sqlx.DB
}

// NewKVRepository creates a new KVRepository.
func NewKVRepository(db *sqlx.DB) *KVRepository {
	return &KVRepository{db: db}
}

// Get returns the value stored under key, or cache.ErrNotFound.
func (r *KVRepository) Get(ctx context.Context, key string) (string, error) {
	const q = `SELECT value FROM kv_entries WHERE key = $1`

	var value string
	if err := r.db.GetContext(ctx, &value, q, key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", cache.ErrNotFound
		}
		return "", err
	}
	return value, nil
}

// Set inserts or overwrites the value stored under key.
func (r *KVRepository) Set(ctx context.Context, key, value string) error {
	const q = `
        INSERT INTO kv_entries (key, value)
        VALUES ($1, $2)
        ON CONFLICT (key) DO UPDATE SET
            value = EXCLUDED.value,
            updated_at = NOW()`

	_, err := r.db.ExecContext(ctx, q, key, value)
	return err
}
