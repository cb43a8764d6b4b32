package models

import "errors"

// Sentinel errors for the core API. Callers classify failures with errors.Is;
// wrapped messages carry the detail.
var (
	// ErrInvalidInput indicates an empty or malformed required field.
	ErrInvalidInput = errors.New("invalid input")

	// ErrDuplicateUsername indicates a case-insensitive username collision.
	ErrDuplicateUsername = errors.New("username already exists")

	// ErrAuthenticationFailed indicates an unknown username or wrong secret.
	// The two cases are deliberately indistinguishable to callers.
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrNotFound indicates a missing user or transaction.
	ErrNotFound = errors.New("not found")

	// ErrPersistence wraps a storage read/write failure. In-memory state is
	// left untouched when a mutation fails with this error.
	ErrPersistence = errors.New("persistence failure")
)
