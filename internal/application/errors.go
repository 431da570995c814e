package application

import "errors"

var (
	// ErrNotFound is returned when the requested resource does not exist.
	ErrNotFound = errors.New("application: not found")
	// ErrForbidden is returned when the requester is not allowed to act on
	// the resource, such as deleting a room created by someone else.
	ErrForbidden = errors.New("application: forbidden")
	// ErrInvalidCredentials is returned when a login password does not match
	// the stored hash.
	ErrInvalidCredentials = errors.New("application: invalid credentials")
	// ErrSlotConflict is returned when a booking collides with an existing
	// reservation for the same room, date and time.
	ErrSlotConflict = errors.New("application: slot conflict")
)

// ValidationError captures field level validation issues that callers can
// surface to users.
type ValidationError struct {
	FieldErrors map[string]string
}

// Error implements the error interface.
func (v *ValidationError) Error() string {
	if v == nil {
		return ""
	}
	return "validation failed"
}

// HasErrors reports whether any field level issues were recorded.
func (v *ValidationError) HasErrors() bool {
	return v != nil && len(v.FieldErrors) > 0
}

// add records a field level validation error.
func (v *ValidationError) add(field, message string) {
	if v.FieldErrors == nil {
		v.FieldErrors = make(map[string]string)
	}
	v.FieldErrors[field] = message
}
