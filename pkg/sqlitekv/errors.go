package sqlitekv

import "errors"

var (
	ErrEmptyPath    = errors.New("sqlitekv.empty_path")
	ErrOpenDatabase = errors.New("sqlitekv.open_failed")
	ErrSchema       = errors.New("sqlitekv.schema_failed")
)
