package holidays

import "errors"

var (
	// ErrUnavailable indicates the holiday API could not be reached.
	ErrUnavailable = errors.New("holiday api unavailable")

	// ErrTimeout indicates the request exceeded the configured timeout.
	ErrTimeout = errors.New("holiday request timed out")

	// ErrBadResponse indicates a non-200 status or an undecodable body.
	ErrBadResponse = errors.New("unexpected holiday api response")
)
