package health

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/authkit/core/logger"
	"github.com/dmitrymomot/authkit/core/response"
)

// Liveness indicates the process is running. Always 200 with {"status":"alive"}.
func Liveness(w http.ResponseWriter, _ *http.Request) {
	_ = response.JSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

// Readiness runs every check and answers 503 if any fails.
func Readiness(log *slog.Logger, checks ...func(context.Context) error) http.HandlerFunc {
	if log == nil {
		log = logger.Discard()
	}
	return func(w http.ResponseWriter, r *http.Request) {
		for _, check := range checks {
			if err := check(r.Context()); err != nil {
				log.ErrorContext(r.Context(), "readiness check failed",
					logger.Component("health"), logger.Error(err))
				response.Error(w, response.ErrServiceUnavailable)
				return
			}
		}
		_ = response.JSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}
