package domain

import (
	"fmt"
	"strings"
	"time"
)

// Clock is a time of day with minute precision. The zero value means "not set".
type Clock struct {
	minutes int
	set     bool
}

// NewClock builds a Clock from hours and minutes. Out-of-range values are clamped
// into the day by modular arithmetic; use ParseClock for validated input.
func NewClock(hour, minute int) Clock {
	total := ((hour*60+minute)%(24*60) + 24*60) % (24 * 60)
	return Clock{minutes: total, set: true}
}

// ParseClock parses "H:MM", "HH:MM" or "HH:MM:SS". Seconds are dropped, so a
// backend value of "14:00:00" becomes 14:00. An empty string yields the zero Clock.
func ParseClock(s string) (Clock, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Clock{}, nil
	}
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return Clock{}, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	h, ok := clockPart(parts[0], 1, 2, 23)
	if !ok {
		return Clock{}, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	m, ok := clockPart(parts[1], 2, 2, 59)
	if !ok {
		return Clock{}, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	if len(parts) == 3 {
		if _, ok := clockPart(parts[2], 2, 2, 59); !ok {
			return Clock{}, fmt.Errorf("%w: %q", ErrInvalidClock, s)
		}
	}
	return Clock{minutes: h*60 + m, set: true}, nil
}

// MustClock is ParseClock for package-level defaults.
func MustClock(s string) Clock {
	c, err := ParseClock(s)
	if err != nil {
		panic(err)
	}
	return c
}

// clockPart parses a field of minLen to maxLen ASCII digits no greater
// than limit.
func clockPart(p string, minLen, maxLen, limit int) (int, bool) {
	if len(p) < minLen || len(p) > maxLen {
		return 0, false
	}
	n := 0
	for i := 0; i < len(p); i++ {
		if p[i] < '0' || p[i] > '9' {
			return 0, false
		}
		n = n*10 + int(p[i]-'0')
	}
	return n, n <= limit
}

func (c Clock) IsZero() bool { return !c.set }

func (c Clock) Hour() int { return c.minutes / 60 }

func (c Clock) Minute() int { return c.minutes % 60 }

// Minutes returns minutes since midnight.
func (c Clock) Minutes() int { return c.minutes }

// String renders HH:MM, or "" when unset.
func (c Clock) String() string {
	if !c.set {
		return ""
	}
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

// Before reports whether c is strictly earlier than o. Unset clocks never compare.
func (c Clock) Before(o Clock) bool {
	return c.set && o.set && c.minutes < o.minutes
}

// Sub returns c - o. Unset clocks yield zero.
func (c Clock) Sub(o Clock) time.Duration {
	if !c.set || !o.set {
		return 0
	}
	return time.Duration(c.minutes-o.minutes) * time.Minute
}
