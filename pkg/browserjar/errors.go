package browserjar

import "errors"

var (
	ErrInvalidURL    = errors.New("browserjar.invalid_url")
	ErrInvalidCookie = errors.New("browserjar.invalid_cookie")
)
