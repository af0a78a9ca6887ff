package kv

import "errors"

var (
	// ErrEmptyKey is returned when an operation is called with an empty key.
	ErrEmptyKey = errors.New("kv.empty_key")

	// ErrClosed is returned by storages used after Close.
	ErrClosed = errors.New("kv.closed")

	// ErrCorrupt marks a stored value that exists but cannot be decoded by
	// the storage layer (for example a sealed blob that fails to open).
	ErrCorrupt = errors.New("kv.corrupt_value")
)
