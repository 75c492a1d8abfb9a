package storage

import "errors"

// ErrNilReminder is returned when a nil reminder is handed to a driver.
var ErrNilReminder = errors.New("cannot store nil reminder")

// NotFoundError is returned when a reminder doesn't exist in the store.
type NotFoundError struct {
	ID string
}

func (e NotFoundError) Error() string {
	if e.ID == "" {
		return "reminder not found"
	}

	return "reminder not found: " + e.ID
}

// IsNotFound reports whether err is or wraps a NotFoundError.
func IsNotFound(err error) bool {
	var nf NotFoundError
	return errors.As(err, &nf)
}
