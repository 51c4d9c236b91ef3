package store

import "errors"

var (
	// ErrNotFound indicates the requested row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a concurrent write was detected (version
	// mismatch or a uniqueness rule refusing a second mutation). The
	// caller retries with a fresh read, a small bounded number of times.
	ErrConflict = errors.New("conflict")
)
