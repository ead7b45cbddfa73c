package domain

import "errors"

var (
	// ErrNotFound reports a missing or unparseable product identifier.
	ErrNotFound = errors.New("product not found")

	// ErrConflict reports a concurrent modification detected at write time.
	ErrConflict = errors.New("concurrent modification")
)
