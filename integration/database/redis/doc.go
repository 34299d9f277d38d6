// Package redis connects to Redis with startup retries and provides a
// session.Store backed by it.
//
//	client, err := redis.Connect(ctx, redis.Config{ConnectionURL: "redis://localhost:6379/0", RetryAttempts: 3})
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	store := redis.NewSessionStore(client, "authkit:")
//	sessions := session.NewManager(store)
//
// Session keys carry a TTL equal to the time left until the session expires,
// so Redis drops idle sessions without a cleanup job. Healthcheck returns a
// ping function for readiness probes.
package redis
