package ratelimiter_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authkit/pkg/ratelimiter"
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func newClock() *clock {
	return &clock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

var testConfig = ratelimiter.Config{
	Capacity:       3,
	RefillRate:     1,
	RefillInterval: time.Minute,
}

func newLimiter(t *testing.T, c *clock) (*ratelimiter.Bucket, *ratelimiter.MemoryStore) {
	t.Helper()
	store := ratelimiter.NewMemoryStore(ratelimiter.WithClock(c.Now))
	b, err := ratelimiter.NewBucket(store, testConfig)
	require.NoError(t, err)
	return b, store
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, testConfig.Validate())

	for name, cfg := range map[string]ratelimiter.Config{
		"zero capacity":    {Capacity: 0, RefillRate: 1, RefillInterval: time.Second},
		"zero refill rate": {Capacity: 1, RefillRate: 0, RefillInterval: time.Second},
		"zero interval":    {Capacity: 1, RefillRate: 1},
	} {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, cfg.Validate(), ratelimiter.ErrInvalidConfig)
		})
	}
}

func TestNewBucket_Errors(t *testing.T) {
	t.Parallel()

	_, err := ratelimiter.NewBucket(nil, testConfig)
	assert.ErrorIs(t, err, ratelimiter.ErrNilStore)

	_, err = ratelimiter.NewBucket(ratelimiter.NewMemoryStore(), ratelimiter.Config{})
	assert.ErrorIs(t, err, ratelimiter.ErrInvalidConfig)
}

func TestBucket_Allow(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := newClock()
	limiter, _ := newLimiter(t, c)

	for want := 2; want >= 0; want-- {
		res, err := limiter.Allow(ctx, "k")
		require.NoError(t, err)
		assert.True(t, res.Allowed())
		assert.Equal(t, want, res.Remaining)
		assert.Equal(t, 3, res.Limit)
	}

	res, err := limiter.Allow(ctx, "k")
	require.NoError(t, err)
	assert.False(t, res.Allowed())
	assert.Equal(t, -1, res.Remaining)
	assert.Equal(t, c.Now().Add(time.Minute), res.ResetAt)

	t.Run("denied requests consume nothing", func(t *testing.T) {
		c.Advance(time.Minute)
		res, err := limiter.Allow(ctx, "k")
		require.NoError(t, err)
		assert.True(t, res.Allowed())
		assert.Equal(t, 0, res.Remaining)
	})

	t.Run("keys are independent", func(t *testing.T) {
		res, err := limiter.Allow(ctx, "other")
		require.NoError(t, err)
		assert.Equal(t, 2, res.Remaining)
	})
}

func TestBucket_RefillCapsAtCapacity(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := newClock()
	limiter, _ := newLimiter(t, c)

	_, err := limiter.AllowN(ctx, "k", 3)
	require.NoError(t, err)

	c.Advance(90 * time.Second)
	res, err := limiter.Allow(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, 0, res.Remaining, "one whole interval refills one token")

	c.Advance(30 * time.Second)
	res, err = limiter.Allow(ctx, "k")
	require.NoError(t, err)
	assert.True(t, res.Allowed(), "partial interval progress is kept")

	c.Advance(24 * time.Hour)
	res, err = limiter.Allow(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Remaining)
}

func TestBucket_AllowN_InvalidCount(t *testing.T) {
	t.Parallel()
	limiter, _ := newLimiter(t, newClock())

	for _, n := range []int{0, -1, 4} {
		_, err := limiter.AllowN(context.Background(), "k", n)
		assert.ErrorIs(t, err, ratelimiter.ErrInvalidTokenCount)
	}
}

func TestBucket_Reset(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	limiter, store := newLimiter(t, newClock())

	_, err := limiter.AllowN(ctx, "k", 3)
	require.NoError(t, err)
	require.NoError(t, limiter.Reset(ctx, "k"))
	assert.Equal(t, 0, store.Len())

	res, err := limiter.Allow(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Remaining)
}

func TestResult_RetryAfter(t *testing.T) {
	t.Parallel()

	assert.Zero(t, ratelimiter.Result{Remaining: 0, ResetAt: time.Now().Add(time.Hour)}.RetryAfter())

	denied := ratelimiter.Result{Remaining: -1, ResetAt: time.Now().Add(time.Minute)}
	assert.InDelta(t, time.Minute, denied.RetryAfter(), float64(time.Second))

	past := ratelimiter.Result{Remaining: -1, ResetAt: time.Now().Add(-time.Minute)}
	assert.Zero(t, past.RetryAfter())
}

func TestMemoryStore_RemoveStale(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := newClock()
	store := ratelimiter.NewMemoryStore(ratelimiter.WithClock(c.Now), ratelimiter.WithStaleAfter(time.Hour))

	_, _, err := store.ConsumeTokens(ctx, "old", 1, testConfig)
	require.NoError(t, err)
	c.Advance(2 * time.Hour)
	_, _, err = store.ConsumeTokens(ctx, "fresh", 1, testConfig)
	require.NoError(t, err)

	assert.Equal(t, 1, store.RemoveStale())
	assert.Equal(t, 1, store.Len())
}

func TestMemoryStore_RunStopsOnCancel(t *testing.T) {
	t.Parallel()

	store := ratelimiter.NewMemoryStore(ratelimiter.WithCleanupInterval(time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- store.Run(ctx)() }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestBucket_Concurrent(t *testing.T) {
	t.Parallel()

	cfg := ratelimiter.Config{Capacity: 100, RefillRate: 1, RefillInterval: time.Hour}
	limiter, err := ratelimiter.NewBucket(ratelimiter.NewMemoryStore(), cfg)
	require.NoError(t, err)

	var allowed atomic.Int64
	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 10 {
				res, err := limiter.Allow(context.Background(), "shared")
				if err == nil && res.Allowed() {
					allowed.Add(1)
				}
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(100), allowed.Load())
}
