// Package middleware provides net/http middleware for authkit applications.
//
// Every middleware has the func(http.Handler) http.Handler shape, so it plugs
// into chi or any standard mux:
//
//	r := chi.NewRouter()
//	r.Use(middleware.RequestID())
//	r.Use(middleware.ClientIP())
//	r.Use(middleware.LoggingWithLogger(log))
//	r.Use(middleware.SecurityHeaders())
//	r.Use(middleware.Auth(middleware.AuthConfig{
//		Authenticator: authn,
//		Sessions:      transport,
//		Cookies:       cookies,
//	}))
//
//	r.With(middleware.RequireAuth()).Get("/me", me)
//	r.With(middleware.RateLimit(middleware.RateLimitConfig{Limiter: limiter})).Post("/login", login)
//
// Auth builds one auth.Resolver per request and stores it in the request
// context (auth.FromContext). It buffers the handler's response so the session
// can be saved, and its cookie set, before anything reaches the client.
//
// ClientIP must run before Logging and RateLimit for them to see the
// proxy-aware address; without it both fall back to RemoteAddr.
package middleware
