package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authkit/core/logger"
)

type ctxKey struct{}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("writes json with static attrs", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(
			logger.WithProduction("authkit"),
			logger.WithOutput(&buf),
		)
		log.Info("hello", logger.Component("auth"))

		var rec map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
		assert.Equal(t, "hello", rec["msg"])
		assert.Equal(t, "authkit", rec["service"])
		assert.Equal(t, "production", rec["env"])
		assert.Equal(t, "auth", rec["component"])
	})

	t.Run("respects level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(
			logger.WithLevel(slog.LevelWarn),
			logger.WithOutput(&buf),
		)
		log.Info("dropped")
		assert.Empty(t, buf.String())

		log.Warn("kept")
		assert.Contains(t, buf.String(), "kept")
	})

	t.Run("development preset logs debug", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(logger.WithDevelopment("authkit"), logger.WithOutput(&buf))
		log.Debug("visible")
		assert.Contains(t, buf.String(), "visible")
		assert.Contains(t, buf.String(), "env=development")
	})

	t.Run("context extractors add attributes", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(
			logger.WithJSONFormatter(),
			logger.WithOutput(&buf),
			logger.WithContextExtractors(func(ctx context.Context) (slog.Attr, bool) {
				id, ok := ctx.Value(ctxKey{}).(string)
				if !ok {
					return slog.Attr{}, false
				}
				return logger.RequestID(id), true
			}),
		)

		ctx := context.WithValue(context.Background(), ctxKey{}, "req-1")
		log.With("k", "v").InfoContext(ctx, "with context")

		var rec map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
		assert.Equal(t, "req-1", rec["request_id"])
		assert.Equal(t, "v", rec["k"])
	})
}

func TestNewFromEnv(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger.NewFromEnv("production", "svc", logger.WithOutput(&buf)).Info("x")
	assert.True(t, json.Valid(bytes.TrimSpace(buf.Bytes())))

	buf.Reset()
	logger.NewFromEnv("development", "svc", logger.WithOutput(&buf)).Info("x")
	assert.False(t, json.Valid(bytes.TrimSpace(buf.Bytes())))
}

func TestAttrs(t *testing.T) {
	t.Parallel()

	t.Run("empty values produce empty attrs", func(t *testing.T) {
		t.Parallel()

		assert.True(t, logger.Error(nil).Equal(slog.Attr{}))
		assert.True(t, logger.Errors(nil, nil).Equal(slog.Attr{}))
		assert.True(t, logger.UserID(uuid.Nil).Equal(slog.Attr{}))
		assert.True(t, logger.SessionID(uuid.Nil).Equal(slog.Attr{}))
		assert.True(t, logger.RequestID("").Equal(slog.Attr{}))
		assert.True(t, logger.ClientIP("").Equal(slog.Attr{}))
	})

	t.Run("errors keep order", func(t *testing.T) {
		t.Parallel()

		err1, err2 := errors.New("first"), errors.New("second")
		attr := logger.Errors(err1, nil, err2)
		require.Equal(t, slog.KindGroup, attr.Value.Kind())
		g := attr.Value.Group()
		require.Len(t, g, 2)
		assert.Equal(t, "0", g[0].Key)
		assert.Equal(t, "2", g[1].Key)
	})

	t.Run("identifiers", func(t *testing.T) {
		t.Parallel()

		id := uuid.New()
		assert.Equal(t, id.String(), logger.UserID(id).Value.String())
		assert.Equal(t, "session_id", logger.SessionID(id).Key)
		assert.Equal(t, 2*time.Second, logger.Latency(2*time.Second).Value.Duration())
		assert.Equal(t, "req", logger.Group("req", logger.Method("GET")).Key)
	})
}
