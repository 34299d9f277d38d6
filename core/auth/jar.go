package auth

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/dmitrymomot/authkit/core/cookie"
)

// CookieJar reads and writes the persistent identity cookie pair.
type CookieJar interface {
	// ReadIdentity returns the user id and raw remember token the client
	// presents. ok is false when either cookie is missing or the user id
	// cookie fails to decrypt.
	ReadIdentity() (userID uuid.UUID, token string, ok bool)
	// WriteIdentity stores both cookies with a permanent expiry.
	WriteIdentity(userID uuid.UUID, token string) error
	// ClearIdentity deletes both cookies. Clearing absent cookies is a no-op.
	ClearIdentity()
}

// HTTPCookieJar is the CookieJar for one HTTP request. The user id cookie is
// encrypted with the cookie.Manager; the token is stored as is. Writes made
// during the request are visible to later reads in the same request.
type HTTPCookieJar struct {
	w       http.ResponseWriter
	r       *http.Request
	cookies *cookie.Manager
	cfg     Config

	written *identity
	cleared bool
}

type identity struct {
	userID uuid.UUID
	token  string
}

var _ CookieJar = (*HTTPCookieJar)(nil)

// NewHTTPCookieJar creates a jar reading from r and writing to w.
func NewHTTPCookieJar(w http.ResponseWriter, r *http.Request, cookies *cookie.Manager, cfg Config) *HTTPCookieJar {
	return &HTTPCookieJar{w: w, r: r, cookies: cookies, cfg: cfg.withDefaults()}
}

func (j *HTTPCookieJar) ReadIdentity() (uuid.UUID, string, bool) {
	if j.written != nil {
		return j.written.userID, j.written.token, true
	}
	if j.cleared {
		return uuid.Nil, "", false
	}

	raw, err := j.cookies.GetEncrypted(j.r, j.cfg.UserIDCookie)
	if err != nil {
		return uuid.Nil, "", false
	}
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, "", false
	}
	tok, err := j.cookies.Get(j.r, j.cfg.RememberCookie)
	if err != nil || tok == "" {
		return uuid.Nil, "", false
	}
	return id, tok, true
}

func (j *HTTPCookieJar) WriteIdentity(userID uuid.UUID, token string) error {
	opts := []cookie.Option{
		cookie.WithPermanent(),
		cookie.WithHTTPOnly(true),
		cookie.WithSameSite(http.SameSiteLaxMode),
	}
	if err := j.cookies.SetEncrypted(j.w, j.cfg.UserIDCookie, userID.String(), opts...); err != nil {
		return err
	}
	if err := j.cookies.Set(j.w, j.cfg.RememberCookie, token, opts...); err != nil {
		return err
	}
	j.written = &identity{userID: userID, token: token}
	j.cleared = false
	return nil
}

func (j *HTTPCookieJar) ClearIdentity() {
	j.cookies.Delete(j.w, j.cfg.UserIDCookie)
	j.cookies.Delete(j.w, j.cfg.RememberCookie)
	j.written = nil
	j.cleared = true
}
