package persistence

import "errors"

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("persistence: not found")
	// ErrDuplicate is returned when a write collides with an existing record,
	// such as a second reservation for an already held slot.
	ErrDuplicate = errors.New("persistence: duplicate")
)
