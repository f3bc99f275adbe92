package domain

import (
	"fmt"
	"strings"
	"time"
)

// Week is the label of a recurring school week. Labels rotate A, B, C, D.
type Week int

const (
	WeekA Week = iota
	WeekB
	WeekC
	WeekD
)

// NumWeeks is the length of the rotation.
const NumWeeks = 4

var weekNames = [NumWeeks]string{"A", "B", "C", "D"}

func (w Week) Valid() bool {
	return w >= 0 && w < NumWeeks
}

func (w Week) String() string {
	if !w.Valid() {
		return "?"
	}
	return weekNames[w]
}

// Next returns the following label in the rotation.
func (w Week) Next() Week {
	return (w + 1) % NumWeeks
}

// ParseWeek accepts "A".."D" (any case) or the numeric form "0".."3".
func ParseWeek(s string) (Week, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for i, n := range weekNames {
		if s == n || s == fmt.Sprint(i) {
			return Week(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidWeek, s)
}

// ISOWeek identifies a calendar week.
type ISOWeek struct {
	Year int
	Week int
}

// ISOWeekOf returns the ISO year and week number of day.
func ISOWeekOf(day time.Time) ISOWeek {
	y, w := day.ISOWeek()
	return ISOWeek{Year: y, Week: w}
}
