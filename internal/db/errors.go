package db

import (
	"errors"
	"fmt"
)

// Validation errors. The store is left untouched when one is returned.
var (
	ErrEmptyName     = errors.New("subject name cannot be empty")
	ErrDuplicateName = errors.New("a subject with this name already exists")
	ErrNoChange      = errors.New("new name is the same as the current one")
)

// ErrNotFound matches every NotFoundError via errors.Is
var ErrNotFound = errors.New("not found")

// NotFoundError reports an identifier that does not reference a usable record
type NotFoundError struct {
	Entity string // "subject" or "session"
	ID     string
	Detail string // optional, e.g. "already ended"
}

func (e *NotFoundError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s %s not found: %s", e.Entity, e.ID, e.Detail)
	}
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// Is makes errors.Is(err, ErrNotFound) hold for any NotFoundError
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// IsValidationError reports whether err was caused by invalid user input
func IsValidationError(err error) bool {
	return errors.Is(err, ErrEmptyName) ||
		errors.Is(err, ErrDuplicateName) ||
		errors.Is(err, ErrNoChange)
}

// IsNotFound reports whether err references a missing subject or session
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
