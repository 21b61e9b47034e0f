package cache

import "errors"

// Sentinel errors for caching operations.
var (
	// ErrNotFound is returned when a requested item does not exist.
	ErrNotFound = errors.New("not found")

	// ErrBackend is returned for backend failures (I/O errors, connection
	// errors, malformed entries). Callers treat it as a miss.
	ErrBackend = errors.New("cache backend error")
)
