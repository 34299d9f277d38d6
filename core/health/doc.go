// Package health provides HTTP handlers for service health monitoring.
//
// Handlers:
//   - Liveness: Process is running (no dependency checks)
//   - Readiness: All dependencies are available
//
// Usage:
//
//	r.Get("/health/live", health.Liveness)
//	r.Get("/health", health.Readiness(log, pg.Healthcheck(pool), redis.Healthcheck(client)))
//
// Dependency checks must follow the func(context.Context) error signature.
package health
