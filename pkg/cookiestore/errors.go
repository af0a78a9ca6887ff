package cookiestore

import "errors"

var (
	// ErrEmptyHost is returned when an operation is given an empty host.
	ErrEmptyHost = errors.New("cookiestore.empty_host")

	// ErrEmptyName is returned by Put for a record without a name.
	ErrEmptyName = errors.New("cookiestore.empty_name")

	// ErrCorruptStore marks a persisted blob that could not be decoded.
	// It is logged, never returned: the store then behaves as empty.
	ErrCorruptStore = errors.New("cookiestore.corrupt_blob")
)
