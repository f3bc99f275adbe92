package domain

import "errors"

var (
	// ErrInvalidField indicates a field name outside the tracked set.
	ErrInvalidField = errors.New("invalid field")

	// ErrInvalidClock indicates a time of day that is not HH:MM or HH:MM:SS.
	ErrInvalidClock = errors.New("invalid time of day")

	// ErrInvalidDate indicates a date that is not YYYY-MM-DD.
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidWeek indicates a week label outside A-D.
	ErrInvalidWeek = errors.New("invalid week label")

	// ErrIncompleteRow indicates a row that lacks data required for storage.
	ErrIncompleteRow = errors.New("incomplete row")

	// ErrMissingValue indicates a required title or name that is blank.
	ErrMissingValue = errors.New("missing value")
)
