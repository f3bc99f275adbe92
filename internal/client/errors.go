package client

import "errors"

var (
	// ErrUnavailable indicates the backend could not be reached.
	ErrUnavailable = errors.New("backend unavailable")

	// ErrTimeout indicates the request exceeded the configured timeout.
	ErrTimeout = errors.New("backend request timed out")

	// ErrNotFound indicates the backend answered 404.
	ErrNotFound = errors.New("not found")

	// ErrRejected indicates the backend refused the request or failed it.
	ErrRejected = errors.New("request rejected")
)
