package redis

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/cookiesync/pkg/kv"
)

// Storage implements kv.Storage on a Redis client. Blobs never expire on the
// server side; expiry of individual cookies is handled by the cookie store.
type Storage struct {
	db     redis.UniversalClient
	prefix string
}

var _ kv.Storage = (*Storage)(nil)

// NewStorage wraps client. Every key is prefixed with prefix.
func NewStorage(client redis.UniversalClient, prefix string) *Storage {
	return &Storage{db: client, prefix: prefix}
}

// NewStorageFromConfig wraps client using cfg.KeyPrefix.
func NewStorageFromConfig(client redis.UniversalClient, cfg Config) *Storage {
	return NewStorage(client, cfg.KeyPrefix)
}

// Get returns nil for missing values (redis.Nil becomes nil).
func (s *Storage) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, kv.ErrEmptyKey
	}
	val, err := s.db.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	return val, err
}

func (s *Storage) Set(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return kv.ErrEmptyKey
	}
	return s.db.Set(ctx, s.prefix+key, value, 0).Err()
}

func (s *Storage) Delete(ctx context.Context, key string) error {
	if key == "" {
		return kv.ErrEmptyKey
	}
	return s.db.Del(ctx, s.prefix+key).Err()
}

// Close terminates the Redis connection.
func (s *Storage) Close() error {
	return s.db.Close()
}

// Conn returns the underlying Redis client.
func (s *Storage) Conn() redis.UniversalClient {
	return s.db
}

// Healthcheck pings the server.
func (s *Storage) Healthcheck(ctx context.Context) error {
	return Healthcheck(s.db)(ctx)
}
