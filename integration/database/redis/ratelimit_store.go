package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/authkit/pkg/ratelimiter"
)

// consumeScript refills and debits a bucket atomically. The hash holds the
// token count and the time of the last whole-interval refill in ms.
var consumeScript = redis.NewScript(`
local capacity = tonumber(ARGV[1])
local rate = tonumber(ARGV[2])
local interval = tonumber(ARGV[3])
local n = tonumber(ARGV[4])
local now = tonumber(ARGV[5])

local state = redis.call('HMGET', KEYS[1], 'tokens', 'refilled')
local tokens = tonumber(state[1])
local refilled = tonumber(state[2])
if tokens == nil or refilled == nil then
	tokens = capacity
	refilled = now
end

local intervals = math.floor((now - refilled) / interval)
if intervals > 0 then
	tokens = math.min(tokens + intervals * rate, capacity)
	if tokens == capacity then
		refilled = now
	else
		refilled = refilled + intervals * interval
	end
end

local remaining
if tokens < n then
	remaining = tokens - n
else
	tokens = tokens - n
	remaining = tokens
end

redis.call('HSET', KEYS[1], 'tokens', tokens, 'refilled', refilled)
redis.call('PEXPIRE', KEYS[1], (math.ceil(capacity / rate) + 1) * interval)
return {remaining, refilled + interval}
`)

// RateLimitStore is a ratelimiter.Store shared by every process using the
// same Redis. Idle buckets expire once they would be full again.
type RateLimitStore struct {
	client redis.UniversalClient
	prefix string
	now    func() time.Time
}

var _ ratelimiter.Store = (*RateLimitStore)(nil)

// NewRateLimitStore creates a RateLimitStore. Keys are prefixed with prefix.
func NewRateLimitStore(client redis.UniversalClient, prefix string) *RateLimitStore {
	return &RateLimitStore{client: client, prefix: prefix, now: time.Now}
}

func (s *RateLimitStore) key(k string) string {
	return s.prefix + "ratelimit:" + k
}

func (s *RateLimitStore) ConsumeTokens(ctx context.Context, key string, n int, cfg ratelimiter.Config) (int, time.Time, error) {
	res, err := consumeScript.Run(ctx, s.client, []string{s.key(key)},
		cfg.Capacity, cfg.RefillRate, cfg.RefillInterval.Milliseconds(), n, s.now().UnixMilli(),
	).Int64Slice()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("consume tokens: %w", err)
	}
	if len(res) != 2 {
		return 0, time.Time{}, fmt.Errorf("consume tokens: unexpected reply %v", res)
	}
	return int(res[0]), time.UnixMilli(res[1]), nil
}

func (s *RateLimitStore) Reset(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("reset bucket: %w", err)
	}
	return nil
}
