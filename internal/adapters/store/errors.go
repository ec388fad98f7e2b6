package store

import "errors"

// Sentinel kinds for store errors.
var (
	ErrNotFound    = errors.New("key not found")
	ErrUnavailable = errors.New("store unavailable")
)
