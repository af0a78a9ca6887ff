package transport

import "errors"

var (
	ErrStoreRead      = errors.New("transport.store_read_failed")
	ErrPreferenceRead = errors.New("transport.preference_read_failed")
)
