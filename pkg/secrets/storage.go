package secrets

import (
	"context"
	"errors"
	"slices"

	"github.com/dmitrymomot/cookiesync/pkg/kv"
)

// SealedStorage encrypts values before handing them to the wrapped storage.
type SealedStorage struct {
	next kv.Storage
	key  []byte
}

var _ kv.Storage = (*SealedStorage)(nil)

// NewSealedStorage wraps next. key must be KeySize bytes; a bad key surfaces
// as an error on the first Get or Set.
func NewSealedStorage(next kv.Storage, key []byte) *SealedStorage {
	return &SealedStorage{next: next, key: slices.Clone(key)}
}

func (s *SealedStorage) Get(ctx context.Context, key string) ([]byte, error) {
	sealed, err := s.next.Get(ctx, key)
	if err != nil || sealed == nil {
		return nil, err
	}
	plain, err := Open(s.key, key, sealed)
	if err != nil {
		return nil, errors.Join(kv.ErrCorrupt, err)
	}
	return plain, nil
}

func (s *SealedStorage) Set(ctx context.Context, key string, value []byte) error {
	sealed, err := Seal(s.key, key, value)
	if err != nil {
		return err
	}
	return s.next.Set(ctx, key, sealed)
}

func (s *SealedStorage) Delete(ctx context.Context, key string) error {
	return s.next.Delete(ctx, key)
}
