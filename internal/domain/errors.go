package domain

import "errors"

// Common domain errors
var (
	ErrNotFound = errors.New("resource not found")
	// ErrDuplicate is returned by repositories when a unique constraint rejects a write.
	ErrDuplicate = errors.New("duplicate value")
)

// DuplicateError names the field whose unique constraint was violated.
type DuplicateError struct {
	Field string
}

func (e *DuplicateError) Error() string {
	return "duplicate value for " + e.Field
}

func (e *DuplicateError) Is(target error) bool {
	return target == ErrDuplicate
}
