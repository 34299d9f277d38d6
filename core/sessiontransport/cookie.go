package sessiontransport

import (
	"net/http"

	"github.com/dmitrymomot/authkit/core/cookie"
	"github.com/dmitrymomot/authkit/core/session"
)

// Cookie provides HTTP cookie-based session transport.
type Cookie struct {
	manager   *session.Manager
	cookieMgr *cookie.Manager
	name      string
	opts      []cookie.Option
}

// NewCookie creates a new cookie-based session transport. Extra options are
// applied when the cookie is written.
func NewCookie(mgr *session.Manager, cookieMgr *cookie.Manager, name string, opts ...cookie.Option) *Cookie {
	return &Cookie{
		manager:   mgr,
		cookieMgr: cookieMgr,
		name:      name,
		opts:      opts,
	}
}

// Name returns the cookie name.
func (c *Cookie) Name() string {
	return c.name
}

// Load returns the session referenced by the request cookie. A missing or
// tampered cookie yields a new anonymous session.
func (c *Cookie) Load(r *http.Request) (session.Session, error) {
	return c.manager.Load(r.Context(), c.presented(r))
}

// Save persists sess and keeps the cookie in sync with it.
func (c *Cookie) Save(w http.ResponseWriter, r *http.Request, sess *session.Session) error {
	presented := c.presented(r)

	if sess.IsDeleted() {
		if err := c.manager.Store(r.Context(), sess); err != nil {
			return err
		}
		if presented != "" {
			c.cookieMgr.Delete(w, c.name)
		}
		return nil
	}

	if sess.IsNew() && !sess.IsAuthenticated() {
		return nil
	}

	if err := c.manager.Store(r.Context(), sess); err != nil {
		return err
	}

	if presented == sess.Token {
		return nil
	}
	return c.cookieMgr.SetSigned(w, c.name, sess.Token, c.opts...)
}

func (c *Cookie) presented(r *http.Request) string {
	tok, err := c.cookieMgr.GetSigned(r, c.name)
	if err != nil {
		return ""
	}
	return tok
}
