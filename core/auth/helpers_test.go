package auth_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authkit/core/auth"
	"github.com/dmitrymomot/authkit/core/credential"
	"github.com/dmitrymomot/authkit/core/session"
	"github.com/dmitrymomot/authkit/core/user"
)

// memoryJar is an in-memory auth.CookieJar standing in for a browser.
type memoryJar struct {
	userID uuid.UUID
	token  string
	set    bool
	writes int
	clears int
}

func (j *memoryJar) ReadIdentity() (uuid.UUID, string, bool) {
	return j.userID, j.token, j.set
}

func (j *memoryJar) WriteIdentity(id uuid.UUID, tok string) error {
	j.userID, j.token, j.set = id, tok, true
	j.writes++
	return nil
}

func (j *memoryJar) ClearIdentity() {
	j.userID, j.token, j.set = uuid.Nil, "", false
	j.clears++
}

// countingRepo counts FindByID calls.
type countingRepo struct {
	user.Repository
	finds atomic.Int32
}

func (r *countingRepo) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	r.finds.Add(1)
	return r.Repository.FindByID(ctx, id)
}

// mockRepo implements user.Repository for failure injection.
type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) Create(ctx context.Context, u *user.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockRepo) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *mockRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *mockRepo) UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash []byte) error {
	return m.Called(ctx, id, hash).Error(0)
}

func (m *mockRepo) UpdateRememberHash(ctx context.Context, id uuid.UUID, hash []byte) error {
	return m.Called(ctx, id, hash).Error(0)
}

type fixture struct {
	users  *user.MemoryRepository
	hasher *credential.Hasher
	authn  *auth.Authenticator
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	users := user.NewMemoryRepository()
	hasher := credential.NewForTesting()
	authn, err := auth.New(users, hasher)
	require.NoError(t, err)
	return &fixture{users: users, hasher: hasher, authn: authn}
}

func (f *fixture) createUser(t *testing.T, email, password string) *user.User {
	t.Helper()
	hash, err := f.hasher.Hash(password)
	require.NoError(t, err)
	u := &user.User{Name: "Test", Email: email, PasswordHash: hash}
	require.NoError(t, f.users.Create(context.Background(), u))
	return u
}

func (f *fixture) reload(t *testing.T, id uuid.UUID) *user.User {
	t.Helper()
	u, err := f.users.FindByID(context.Background(), id)
	require.NoError(t, err)
	return u
}

func newSession(t *testing.T) *session.Session {
	t.Helper()
	sess, err := session.New(time.Hour)
	require.NoError(t, err)
	return &sess
}
