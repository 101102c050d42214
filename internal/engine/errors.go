package engine

import "errors"

// Sentinel errors the transport layer maps onto status codes. Wrapped
// errors carry the detail; these carry the category.
var (
	// ErrValidation marks requests rejected before any work was done.
	ErrValidation = errors.New("invalid request")

	// ErrNotFound marks lookups of candidates or jobs that do not exist.
	ErrNotFound = errors.New("not found")

	// ErrStorageUnavailable marks storage failures. Rankings are never
	// served as silently-empty lists when the store cannot be read.
	ErrStorageUnavailable = errors.New("storage unavailable")
)
