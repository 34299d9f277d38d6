package middleware

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/authkit/core/auth"
	"github.com/dmitrymomot/authkit/core/cookie"
	"github.com/dmitrymomot/authkit/core/logger"
	"github.com/dmitrymomot/authkit/core/response"
	"github.com/dmitrymomot/authkit/core/sessiontransport"
)

// AuthConfig configures the Auth middleware.
type AuthConfig struct {
	Authenticator *auth.Authenticator
	Sessions      *sessiontransport.Cookie
	Cookies       *cookie.Manager
	// Identity names the persistent identity cookies (default: auth.DefaultConfig()).
	Identity auth.Config
	// Logger reports session failures (default: discard).
	Logger *slog.Logger
	// ErrorHandler writes the response when the session cannot be loaded or
	// saved (default: JSON 500).
	ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)
}

// Auth loads the session, puts a per-request auth.Resolver into the context
// and saves the session after the handler returns. The handler's response is
// held back until the session is stored; if saving fails the client gets
// the error response instead.
// Panics if Authenticator, Sessions or Cookies is nil.
func Auth(cfg AuthConfig) func(http.Handler) http.Handler {
	if cfg.Authenticator == nil || cfg.Sessions == nil || cfg.Cookies == nil {
		panic("auth middleware: authenticator, sessions and cookies are required")
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Discard()
	}
	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = func(w http.ResponseWriter, _ *http.Request, _ error) {
			response.Error(w, response.ErrInternalServerError)
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := cfg.Sessions.Load(r)
			if err != nil {
				cfg.Logger.ErrorContext(r.Context(), "session load failed",
					logger.Component("auth"), logger.Error(err))
				cfg.ErrorHandler(w, r, err)
				return
			}

			bw := newBufferedWriter(w)
			jar := auth.NewHTTPCookieJar(bw, r, cfg.Cookies, cfg.Identity)
			res := cfg.Authenticator.NewResolver(&sess, jar)
			r = r.WithContext(auth.WithResolver(r.Context(), res))

			next.ServeHTTP(bw, r)

			if err := cfg.Sessions.Save(bw, r, &sess); err != nil {
				cfg.Logger.ErrorContext(r.Context(), "session save failed",
					logger.Component("auth"), logger.SessionID(sess.ID), logger.Error(err))
				bw.discard()
				cfg.ErrorHandler(w, r, err)
				return
			}

			if err := bw.flush(); err != nil {
				cfg.Logger.DebugContext(r.Context(), "response write failed",
					logger.Component("auth"), logger.Error(err))
			}
		})
	}
}

// RequireAuth answers 401 unless the request has an authenticated user.
// It must run after Auth.
func RequireAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			res, ok := auth.FromContext(r.Context())
			if !ok {
				response.Error(w, response.ErrUnauthorized)
				return
			}
			loggedIn, err := res.LoggedIn(r.Context())
			if err != nil {
				response.Error(w, err)
				return
			}
			if !loggedIn {
				response.Error(w, response.ErrUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
