// Package redis provides a Redis backed kv.Storage for sharing the persisted
// cookie blob between processes, plus connection helpers.
//
// The package wraps the go-redis client and adds:
//
//   - Connect, which retries the connection using the supplied Config.
//   - Storage, a kv.Storage that namespaces keys with a prefix.
//   - Healthcheck, a probe suitable for readiness checks.
//
// Config fields can be populated from environment variables via
// github.com/caarlos0/env.
//
// # Usage
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	store := cookiestore.New(redis.NewStorageFromConfig(client, cfg))
//
// # Errors
//
// Sentinel errors (e.g. ErrRedisNotReady) wrap the underlying go-redis errors
// using errors.Join, so they work with errors.Is.
package redis
