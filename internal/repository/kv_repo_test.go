package repository

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GTDGit/gtd_storefront/internal/cache"
	"github.com/GTDGit/gtd_storefront/internal/config"
	"github.com/GTDGit/gtd_storefront/internal/database"
)

// Runs against a real PostgreSQL when TEST_DB_HOST is set.
func TestKVRepository(t *testing.T) {
	host := os.Getenv("TEST_DB_HOST")
	if host == "" {
		t.Skip("TEST_DB_HOST not set")
	}

	db, err := database.Connect(&config.DatabaseConfig{
		Host:     host,
		Port:     envOr("TEST_DB_PORT", "5432"),
		User:     envOr("TEST_DB_USER", "postgres"),
		Password: os.Getenv("TEST_DB_PASSWORD"),
		Name:     envOr("TEST_DB_NAME", "postgres"),
		SSLMode:  "disable",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.Migrate(db.DB, "../../migrations"))

	repo := NewKVRepository(db)
	ctx := context.Background()
	key := "test:" + uuid.NewString() + ":favorites"

	_, err = repo.Get(ctx, key)
	require.ErrorIs(t, err, cache.ErrNotFound)

	require.NoError(t, repo.Set(ctx, key, `[{"id":1}]`))
	require.NoError(t, repo.Set(ctx, key, `[]`))

	v, err := repo.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, `[]`, v)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
