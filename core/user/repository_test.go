package user_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authkit/core/user"
	"github.com/dmitrymomot/authkit/integration/database/pg"
)

func newBoltRepository(t *testing.T) user.Repository {
	t.Helper()
	repo, err := user.OpenBoltRepository(filepath.Join(t.TempDir(), "users.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func newPostgresRepository(t *testing.T) user.Repository {
	t.Helper()
	dsn := os.Getenv("AUTHKIT_TEST_PG_URL")
	if dsn == "" {
		t.Skip("AUTHKIT_TEST_PG_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg := pg.Config{
		ConnectionString: dsn,
		RetryAttempts:    3,
		RetryInterval:    time.Second,
		MigrationsPath:   "migrations",
		MigrationsTable:  "schema_migrations",
	}
	pool, err := pg.Connect(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, pg.Migrate(ctx, pool, user.Migrations, cfg, nil))

	return user.NewPostgresRepository(pool)
}

func TestRepositories(t *testing.T) {
	t.Parallel()

	backends := map[string]func(t *testing.T) user.Repository{
		"memory": func(*testing.T) user.Repository { return user.NewMemoryRepository() },
		"bolt":   newBoltRepository,
		"pg":     newPostgresRepository,
	}

	for name, factory := range backends {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			testRepository(t, factory)
		})
	}
}

// uniqueEmail keeps runs against a shared Postgres database independent.
func uniqueEmail(prefix string) string {
	return prefix + "-" + uuid.NewString()[:8] + "@example.com"
}

func testRepository(t *testing.T, factory func(t *testing.T) user.Repository) {
	ctx := context.Background()

	t.Run("create assigns id and timestamps", func(t *testing.T) {
		repo := factory(t)
		u := &user.User{Name: "Ann", Email: uniqueEmail("ann"), PasswordHash: []byte("hash")}
		require.NoError(t, repo.Create(ctx, u))

		assert.NotEqual(t, uuid.Nil, u.ID)
		assert.False(t, u.CreatedAt.IsZero())

		got, err := repo.FindByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, u.Email, got.Email)
		assert.Equal(t, []byte("hash"), got.PasswordHash)
		assert.False(t, got.HasRememberHash())
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo := factory(t)
		email := uniqueEmail("dup")
		require.NoError(t, repo.Create(ctx, &user.User{Name: "A", Email: email, PasswordHash: []byte("h")}))

		err := repo.Create(ctx, &user.User{Name: "B", Email: email, PasswordHash: []byte("h")})
		assert.ErrorIs(t, err, user.ErrEmailTaken)
	})

	t.Run("find by email", func(t *testing.T) {
		repo := factory(t)
		u := &user.User{Name: "Bob", Email: uniqueEmail("bob"), PasswordHash: []byte("h")}
		require.NoError(t, repo.Create(ctx, u))

		got, err := repo.FindByEmail(ctx, u.Email)
		require.NoError(t, err)
		assert.Equal(t, u.ID, got.ID)

		_, err = repo.FindByEmail(ctx, uniqueEmail("nobody"))
		assert.ErrorIs(t, err, user.ErrNotFound)
	})

	t.Run("missing user", func(t *testing.T) {
		repo := factory(t)
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, user.ErrNotFound)
		assert.ErrorIs(t, repo.UpdateRememberHash(ctx, uuid.New(), []byte("x")), user.ErrNotFound)
		assert.ErrorIs(t, repo.UpdatePasswordHash(ctx, uuid.New(), []byte("x")), user.ErrNotFound)
	})

	t.Run("remember hash overwrite and clear", func(t *testing.T) {
		repo := factory(t)
		u := &user.User{Name: "Cy", Email: uniqueEmail("cy"), PasswordHash: []byte("h")}
		require.NoError(t, repo.Create(ctx, u))

		require.NoError(t, repo.UpdateRememberHash(ctx, u.ID, []byte("first")))
		require.NoError(t, repo.UpdateRememberHash(ctx, u.ID, []byte("second")))
		got, err := repo.FindByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, []byte("second"), got.RememberHash)

		require.NoError(t, repo.UpdateRememberHash(ctx, u.ID, nil))
		got, err = repo.FindByID(ctx, u.ID)
		require.NoError(t, err)
		assert.False(t, got.HasRememberHash())
		assert.Equal(t, []byte("h"), got.PasswordHash, "password hash is independent")
	})

	t.Run("update password hash", func(t *testing.T) {
		repo := factory(t)
		u := &user.User{Name: "Di", Email: uniqueEmail("di"), PasswordHash: []byte("old")}
		require.NoError(t, repo.Create(ctx, u))

		require.NoError(t, repo.UpdatePasswordHash(ctx, u.ID, []byte("new")))
		got, err := repo.FindByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, []byte("new"), got.PasswordHash)
	})

	t.Run("returned users are copies", func(t *testing.T) {
		repo := factory(t)
		u := &user.User{Name: "Ed", Email: uniqueEmail("ed"), PasswordHash: []byte("h")}
		require.NoError(t, repo.Create(ctx, u))

		got, err := repo.FindByID(ctx, u.ID)
		require.NoError(t, err)
		got.PasswordHash[0] = 'X'

		again, err := repo.FindByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, []byte("h"), again.PasswordHash)
	})

	t.Run("concurrent remember writes", func(t *testing.T) {
		repo := factory(t)
		u := &user.User{Name: "Flo", Email: uniqueEmail("flo"), PasswordHash: []byte("h")}
		require.NoError(t, repo.Create(ctx, u))

		hashes := [][]byte{[]byte("aaaa"), []byte("bbbb"), []byte("cccc"), []byte("dddd")}
		var wg sync.WaitGroup
		for _, h := range hashes {
			wg.Add(1)
			go func() {
				defer wg.Done()
				assert.NoError(t, repo.UpdateRememberHash(ctx, u.ID, h))
			}()
		}
		wg.Wait()

		got, err := repo.FindByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Contains(t, hashes, got.RememberHash)
	})
}
