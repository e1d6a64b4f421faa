package session

import "errors"

var (
	// ErrInvalidToken indicates Authenticate was given an empty token.
	ErrInvalidToken = errors.New("invalid session token")

	// ErrPersistence indicates the durable slot could not be written or
	// deleted. The in-memory session state is still valid; callers should
	// treat this as a warning, not a failure.
	ErrPersistence = errors.New("session persistence failed")
)
