package domain

import "time"

type Holiday struct {
	Date  time.Time
	Title string
}

// IsWorkDay reports whether day is a weekday other than German Unity Day.
// Other holidays come from the stored holiday calendar.
func IsWorkDay(day time.Time) bool {
	switch day.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	if day.Month() == time.October && day.Day() == 3 {
		return false
	}
	return true
}
