package core

import "errors"

// Common errors.
var (
	ErrNotFound        = errors.New("note not found")
	ErrInvalidCategory = errors.New("invalid category")
	ErrUnavailable     = errors.New("gateway unavailable")
	ErrReadOnly        = errors.New("storage is in read-only mode")
)
