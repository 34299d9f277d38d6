package middleware

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/dmitrymomot/authkit/core/logger"
	"github.com/dmitrymomot/authkit/core/response"
	"github.com/dmitrymomot/authkit/pkg/ratelimiter"
)

// RateLimitConfig configures the rate limiting middleware.
type RateLimitConfig struct {
	Limiter *ratelimiter.Bucket
	// KeyExtractor maps a request to its bucket key (default: client IP).
	KeyExtractor func(r *http.Request) string
	// Skip bypasses the limiter for matching requests.
	Skip func(r *http.Request) bool
	// SetHeaders adds X-RateLimit-* headers to every limited response.
	SetHeaders bool
	Logger     *slog.Logger
}

// RateLimit answers 429 once a key has used up its bucket. Limiter errors
// fail open: the request is served and the error logged.
// Panics if Limiter is nil.
func RateLimit(cfg RateLimitConfig) func(http.Handler) http.Handler {
	if cfg.Limiter == nil {
		panic("ratelimit middleware: limiter is required")
	}
	if cfg.KeyExtractor == nil {
		cfg.KeyExtractor = clientIPOf
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Discard()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.Skip != nil && cfg.Skip(r) {
				next.ServeHTTP(w, r)
				return
			}

			res, err := cfg.Limiter.Allow(r.Context(), cfg.KeyExtractor(r))
			if err != nil {
				cfg.Logger.ErrorContext(r.Context(), "rate limiter unavailable",
					logger.Component("ratelimit"), logger.Error(err))
				next.ServeHTTP(w, r)
				return
			}

			if cfg.SetHeaders {
				h := w.Header()
				h.Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
				h.Set("X-RateLimit-Remaining", strconv.Itoa(max(0, res.Remaining)))
				h.Set("X-RateLimit-Reset", strconv.FormatInt(res.ResetAt.Unix(), 10))
			}

			if !res.Allowed() {
				retry := int(res.RetryAfter().Seconds()) + 1
				w.Header().Set("Retry-After", strconv.Itoa(retry))
				cfg.Logger.WarnContext(r.Context(), "rate limit exceeded",
					logger.Component("ratelimit"), logger.ClientIP(clientIPOf(r)))
				response.Error(w, response.ErrTooManyRequests.WithDetails(map[string]any{
					"retry_after": retry,
				}))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
