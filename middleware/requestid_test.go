package middleware_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authkit/core/logger"
	"github.com/dmitrymomot/authkit/middleware"
)

func TestRequestID(t *testing.T) {
	t.Parallel()

	var seen string
	h := middleware.RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := middleware.GetRequestID(r.Context())
		require.True(t, ok)
		seen = id
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, w.Header().Get("X-Request-ID"))
}

func TestRequestIDWithConfig(t *testing.T) {
	t.Parallel()

	t.Run("use existing", func(t *testing.T) {
		t.Parallel()
		h := middleware.RequestIDWithConfig(middleware.RequestIDConfig{UseExisting: true})(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("X-Request-ID", "upstream-id")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)

		assert.Equal(t, "upstream-id", w.Header().Get("X-Request-ID"))
	})

	t.Run("ignores existing by default", func(t *testing.T) {
		t.Parallel()
		h := middleware.RequestIDWithConfig(middleware.RequestIDConfig{
			Generator:  func() string { return "generated" },
			HeaderName: "X-Trace",
		})(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("X-Trace", "spoofed")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)

		assert.Equal(t, "generated", w.Header().Get("X-Trace"))
	})

	t.Run("skip", func(t *testing.T) {
		t.Parallel()
		h := middleware.RequestIDWithConfig(middleware.RequestIDConfig{
			Skip: func(*http.Request) bool { return true },
		})(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			_, ok := middleware.GetRequestID(r.Context())
			assert.False(t, ok)
		}))

		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Empty(t, w.Header().Get("X-Request-ID"))
	})
}

func TestRequestIDExtractor(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(
		logger.WithOutput(&buf),
		logger.WithJSONFormatter(),
		logger.WithContextExtractors(middleware.RequestIDExtractor),
	)

	h := middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string { return "req-42" },
	})(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		log.InfoContext(r.Context(), "inside handler")
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Contains(t, buf.String(), `"request_id":"req-42"`)

	_, ok := middleware.RequestIDExtractor(context.Background())
	assert.False(t, ok)
}
