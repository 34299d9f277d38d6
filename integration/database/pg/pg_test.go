package pg_test

import (
	"context"
	"os"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authkit/integration/database/pg"
)

func testConfig(t *testing.T) pg.Config {
	t.Helper()
	dsn := os.Getenv("AUTHKIT_TEST_PG_URL")
	if dsn == "" {
		t.Skip("AUTHKIT_TEST_PG_URL not set")
	}
	return pg.Config{
		ConnectionString: dsn,
		MaxOpenConns:     4,
		MaxIdleConns:     1,
		RetryAttempts:    3,
		RetryInterval:    time.Second,
		MigrationsPath:   "migrations",
		MigrationsTable:  "pg_test_migrations",
	}
}

func TestConnect_EmptyConnectionString(t *testing.T) {
	t.Parallel()

	_, err := pg.Connect(context.Background(), pg.Config{})
	assert.ErrorIs(t, err, pg.ErrEmptyConnectionString)
}

func TestConnect_InvalidConnectionString(t *testing.T) {
	t.Parallel()

	_, err := pg.Connect(context.Background(), pg.Config{ConnectionString: "postgres://%zz"})
	assert.ErrorIs(t, err, pg.ErrFailedToParseDBConfig)
}

func TestMigrate_MissingDirectory(t *testing.T) {
	t.Parallel()

	err := pg.Migrate(context.Background(), nil, fstest.MapFS{}, pg.Config{MigrationsPath: "migrations"}, nil)
	assert.ErrorIs(t, err, pg.ErrMigrationsDirNotFound)

	err = pg.Migrate(context.Background(), nil, fstest.MapFS{}, pg.Config{}, nil)
	assert.ErrorIs(t, err, pg.ErrMigrationPathNotProvided)
}

func TestConnectMigrateHealthcheck(t *testing.T) {
	cfg := testConfig(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pg.Connect(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, pg.Healthcheck(pool)(ctx))

	fsys := fstest.MapFS{
		"migrations/00001_probe.sql": &fstest.MapFile{Data: []byte(
			"-- +goose Up\nCREATE TABLE IF NOT EXISTS pg_test_probe (id INT);\n" +
				"-- +goose Down\nDROP TABLE IF EXISTS pg_test_probe;\n",
		)},
	}
	require.NoError(t, pg.Migrate(ctx, pool, fsys, cfg, nil))
	// Re-running is a no-op.
	require.NoError(t, pg.Migrate(ctx, pool, fsys, cfg, nil))

	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), "DROP TABLE IF EXISTS pg_test_probe")
		_, _ = pool.Exec(context.Background(), "DROP TABLE IF EXISTS pg_test_migrations")
	})

	_, err = pool.Exec(ctx, "INSERT INTO pg_test_probe (id) VALUES (1)")
	require.NoError(t, err)
}
