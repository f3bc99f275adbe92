package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/timereport/internal/domain"
)

// clockLayout is the storage format of times of day. Reads accept it and
// plain HH:MM alike.
const clockLayout = "%02d:%02d:00"

// clockToString converts a Clock to its stored HH:MM:SS form.
func clockToString(c domain.Clock) string {
	if c.IsZero() {
		return ""
	}
	return fmt.Sprintf(clockLayout, c.Hour(), c.Minute())
}

// parseNullableDate parses a sql.NullString into a date.
// Returns the zero time if the value is NULL or empty.
func parseNullableDate(s sql.NullString) (time.Time, error) {
	if !s.Valid || s.String == "" {
		return time.Time{}, nil
	}
	return time.Parse(domain.DateLayout, s.String)
}

// nullableDateToString converts a date to a value suitable for SQLite storage.
// Returns nil (SQL NULL) for the zero time.
func nullableDateToString(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t.Format(domain.DateLayout)
}

// boolToInt converts a Go bool to an integer (0 or 1) for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// intToBool converts a SQLite integer (0 or 1) to a Go bool.
func intToBool(i int) bool {
	return i != 0
}

// nowUTC returns the current UTC time formatted as RFC3339.
func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// isConstraintErr reports whether err is a SQLite UNIQUE or FOREIGN KEY violation.
func isConstraintErr(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "FOREIGN KEY constraint failed")
}

// notFound wraps sql.ErrNoRows as ErrNotFound with the entity name.
func notFound(entity string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", entity, ErrNotFound)
	}
	return fmt.Errorf("scanning %s: %w", entity, err)
}
