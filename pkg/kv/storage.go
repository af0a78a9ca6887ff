package kv

import "context"

// Storage reads and writes named blobs.
//
// Get returns nil and no error for a missing key. Set replaces the whole
// value. Delete of a missing key is not an error.
type Storage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// GetString is Get for callers that store text.
func GetString(ctx context.Context, s Storage, key string) (string, error) {
	b, err := s.Get(ctx, key)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// SetString is Set for callers that store text.
func SetString(ctx context.Context, s Storage, key, value string) error {
	return s.Set(ctx, key, []byte(value))
}
