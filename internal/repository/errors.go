package repository

import "errors"

var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates the write would violate a uniqueness or reference constraint.
	ErrConflict = errors.New("conflict")
)
