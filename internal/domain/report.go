package domain

import (
	"strings"
	"time"
)

// FirstReportStart is the day before the first billing period when no report exists.
var FirstReportStart = time.Date(2017, 12, 1, 0, 0, 0, 0, time.UTC)

// Report describes one billing period.
type Report struct {
	ID           int64
	Title        string
	StartDate    time.Time
	EndDate      time.Time // zero while the period is open
	PDFGenerated bool
}

// Contains reports whether day falls inside the period. An open end date
// accepts every day from StartDate on.
func (r *Report) Contains(day time.Time) bool {
	if !r.StartDate.IsZero() && day.Before(r.StartDate) {
		return false
	}
	if !r.EndDate.IsZero() && day.After(r.EndDate) {
		return false
	}
	return true
}

// FileStem returns the title reduced to characters safe in a file name.
func (r *Report) FileStem() string {
	var b strings.Builder
	for _, c := range strings.TrimSpace(r.Title) {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_', c == '.':
			b.WriteRune(c)
		case c == ' ' || c == '/':
			b.WriteRune('_')
		case c > 127:
			b.WriteRune(c)
		}
	}
	if b.Len() == 0 {
		return "report"
	}
	return b.String()
}

// Globals are the bounds the row table enforces on input: the active
// report's period and the allowed time-of-day window.
type Globals struct {
	ReportID int64
	Title    string
	MinDate  time.Time
	MaxDate  time.Time
	MinTime  Clock
	MaxTime  Clock
}

// AllowsDate reports whether day lies within the date bounds.
func (g Globals) AllowsDate(day time.Time) bool {
	if !g.MinDate.IsZero() && day.Before(g.MinDate) {
		return false
	}
	if !g.MaxDate.IsZero() && day.After(g.MaxDate) {
		return false
	}
	return true
}

// AllowsTime reports whether c lies within the time-of-day bounds.
func (g Globals) AllowsTime(c Clock) bool {
	if c.IsZero() {
		return true
	}
	if !g.MinTime.IsZero() && c.Before(g.MinTime) {
		return false
	}
	if !g.MaxTime.IsZero() && g.MaxTime.Before(c) {
		return false
	}
	return true
}
