// Package ratelimiter implements token bucket rate limiting over a pluggable
// Store.
//
// A bucket holds at most Capacity tokens and regains RefillRate tokens every
// RefillInterval. Each request consumes one token; a request arriving at an
// empty bucket is denied and consumes nothing.
//
//	limiter, err := ratelimiter.NewBucket(ratelimiter.NewMemoryStore(), ratelimiter.Config{
//		Capacity:       10,
//		RefillRate:     1,
//		RefillInterval: time.Minute,
//	})
//
//	res, err := limiter.Allow(ctx, "login:"+ip)
//	if err != nil {
//		return err
//	}
//	if !res.Allowed() {
//		// reject, retry after res.RetryAfter()
//	}
//
// MemoryStore keeps buckets in process; its Run method evicts idle buckets
// and fits an errgroup. A Redis-backed Store lives in
// integration/database/redis.
package ratelimiter
