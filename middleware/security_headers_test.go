package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/authkit/middleware"
)

func TestSecurityHeaders(t *testing.T) {
	t.Parallel()

	noop := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})

	t.Run("balanced", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()
		middleware.SecurityHeaders()(noop).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
		assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
		assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
		assert.NotEmpty(t, w.Header().Get("Strict-Transport-Security"))
	})

	t.Run("development drops hsts", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()
		middleware.SecurityHeadersWithConfig(middleware.DevelopmentSecurity)(noop).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Empty(t, w.Header().Get("Strict-Transport-Security"))
		assert.Empty(t, w.Header().Get("Content-Security-Policy"))
		assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	})

	t.Run("skip", func(t *testing.T) {
		t.Parallel()
		cfg := middleware.BalancedSecurity
		cfg.Skip = func(*http.Request) bool { return true }
		w := httptest.NewRecorder()
		middleware.SecurityHeadersWithConfig(cfg)(noop).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Empty(t, w.Header().Get("X-Frame-Options"))
	})
}
