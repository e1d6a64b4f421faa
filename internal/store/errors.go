package store

import "errors"

var (
	// ErrStoreInit indicates the backing database file is unusable. Once
	// Init fails, every subsequent operation reports this error.
	ErrStoreInit = errors.New("place store initialization failed")

	// ErrValidation indicates a draft is missing one of its required
	// fields and was not committed.
	ErrValidation = errors.New("invalid place draft")

	// ErrNotFound indicates no place exists with the requested id.
	ErrNotFound = errors.New("place not found")
)
