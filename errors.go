package cookiesync

import "errors"

var (
	ErrUnknownBackend   = errors.New("cookiesync.unknown_backend")
	ErrOpenStorage      = errors.New("cookiesync.open_storage_failed")
	ErrInvalidSecretKey = errors.New("cookiesync.invalid_encryption_key")
	ErrLogout           = errors.New("cookiesync.logout_failed")
)
