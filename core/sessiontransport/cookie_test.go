package sessiontransport_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authkit/core/cookie"
	"github.com/dmitrymomot/authkit/core/session"
	"github.com/dmitrymomot/authkit/core/sessiontransport"
)

const testSecret = "test-secret-key-32-characters!!!"

func setup(t *testing.T) (*sessiontransport.Cookie, *session.MemoryStore) {
	t.Helper()
	store := session.NewMemoryStore()
	cookies, err := cookie.New([]string{testSecret})
	require.NoError(t, err)
	transport := sessiontransport.NewCookieFromConfig(
		sessiontransport.DefaultCookieConfig(),
		session.NewManager(store),
		cookies,
	)
	return transport, store
}

// follow builds the next request the browser would send after w.
func follow(prev *http.Request, w *httptest.ResponseRecorder) *http.Request {
	jar := map[string]*http.Cookie{}
	for _, c := range prev.Cookies() {
		jar[c.Name] = c
	}
	for _, c := range w.Result().Cookies() {
		if c.MaxAge < 0 {
			delete(jar, c.Name)
			continue
		}
		jar[c.Name] = c
	}

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range jar {
		r.AddCookie(&http.Cookie{Name: c.Name, Value: c.Value})
	}
	return r
}

func TestCookie_AnonymousSessionsAreNotPersisted(t *testing.T) {
	t.Parallel()

	transport, store := setup(t)
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	sess, err := transport.Load(r)
	require.NoError(t, err)
	require.NoError(t, transport.Save(w, r, &sess))

	assert.Empty(t, w.Result().Cookies())
	assert.Equal(t, 0, store.Len())
}

func TestCookie_LoginPersistsAcrossRequests(t *testing.T) {
	t.Parallel()

	transport, store := setup(t)
	userID := uuid.New()

	r := httptest.NewRequest(http.MethodPost, "/login", nil)
	w := httptest.NewRecorder()
	sess, err := transport.Load(r)
	require.NoError(t, err)
	require.NoError(t, sess.LogIn(userID))
	require.NoError(t, transport.Save(w, r, &sess))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, transport.Name(), cookies[0].Name)
	assert.Zero(t, cookies[0].MaxAge, "session cookie must end with the browser session")
	assert.Equal(t, 1, store.Len())

	next := follow(r, w)
	w2 := httptest.NewRecorder()
	loaded, err := transport.Load(next)
	require.NoError(t, err)
	assert.Equal(t, userID, loaded.UserID)

	require.NoError(t, transport.Save(w2, next, &loaded))
	assert.Empty(t, w2.Result().Cookies(), "unchanged token is not rewritten")
}

func TestCookie_ResetDeletesSessionAndCookie(t *testing.T) {
	t.Parallel()

	transport, store := setup(t)

	r := httptest.NewRequest(http.MethodPost, "/login", nil)
	w := httptest.NewRecorder()
	sess, err := transport.Load(r)
	require.NoError(t, err)
	require.NoError(t, sess.LogIn(uuid.New()))
	require.NoError(t, transport.Save(w, r, &sess))

	next := follow(r, w)
	w2 := httptest.NewRecorder()
	loaded, err := transport.Load(next)
	require.NoError(t, err)
	loaded.Reset()
	require.NoError(t, transport.Save(w2, next, &loaded))

	assert.Equal(t, 0, store.Len())
	cookies := w2.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)

	// The stale token no longer resolves even if the browser replays it.
	replayed, err := transport.Load(next)
	require.NoError(t, err)
	assert.False(t, replayed.IsAuthenticated())
}

func TestCookie_TamperedCookieIsAnonymous(t *testing.T) {
	t.Parallel()

	transport, _ := setup(t)
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: transport.Name(), Value: "dG9rZW4|c2ln"})

	sess, err := transport.Load(r)
	require.NoError(t, err)
	assert.True(t, sess.IsNew())
	assert.False(t, sess.IsAuthenticated())
}

func TestCookie_LoginRotatesPresentedToken(t *testing.T) {
	t.Parallel()

	transport, _ := setup(t)
	first, second := uuid.New(), uuid.New()

	r := httptest.NewRequest(http.MethodPost, "/login", nil)
	w := httptest.NewRecorder()
	sess, err := transport.Load(r)
	require.NoError(t, err)
	require.NoError(t, sess.LogIn(first))
	require.NoError(t, transport.Save(w, r, &sess))
	firstToken := sess.Token

	next := follow(r, w)
	w2 := httptest.NewRecorder()
	loaded, err := transport.Load(next)
	require.NoError(t, err)
	require.NoError(t, loaded.LogIn(second))
	require.NoError(t, transport.Save(w2, next, &loaded))

	require.Len(t, w2.Result().Cookies(), 1)
	assert.NotEqual(t, firstToken, loaded.Token)

	stale, err := transport.Load(next)
	require.NoError(t, err)
	assert.False(t, stale.IsAuthenticated())
}
