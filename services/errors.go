package services

import "errors"

// Error taxonomy surfaced to controllers. Anything not matched by these is
// treated as a transient store failure and reported without retry.
var (
	// ErrValidation marks a precondition violation rejected before any
	// store call (self-swipe, empty message body, non-participant sender).
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks a missing conversation, match, or profile.
	ErrNotFound = errors.New("not found")

	// ErrItemNotFound is returned by the store layer when a keyed read
	// finds nothing.
	ErrItemNotFound = errors.New("item not found")

	// ErrAlreadyExists is returned by conditional creates that lose to an
	// existing item. Callers use it as the idempotency signal.
	ErrAlreadyExists = errors.New("item already exists")
)
