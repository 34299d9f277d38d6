package sessiontransport

import (
	"github.com/dmitrymomot/authkit/core/cookie"
	"github.com/dmitrymomot/authkit/core/session"
)

// CookieConfig provides environment-based configuration for cookie-based session transport.
type CookieConfig struct {
	// CookieName is the name of the session cookie
	CookieName string `env:"SESSION_COOKIE_NAME" envDefault:"_authkit_session"`
}

// DefaultCookieConfig returns a CookieConfig with sensible defaults.
func DefaultCookieConfig() CookieConfig {
	return CookieConfig{
		CookieName: "_authkit_session",
	}
}

// NewCookieFromConfig creates a cookie-based session transport from configuration.
func NewCookieFromConfig(cfg CookieConfig, mgr *session.Manager, cookieMgr *cookie.Manager, opts ...cookie.Option) *Cookie {
	name := cfg.CookieName
	if name == "" {
		name = DefaultCookieConfig().CookieName
	}
	return NewCookie(mgr, cookieMgr, name, opts...)
}
