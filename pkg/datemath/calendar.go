package datemath

import (
	"fmt"
	"time"
)

// Calendar is a clock bound to an IANA timezone.
type Calendar struct {
	location *time.Location
	now      func() time.Time
}

// Option configures a Calendar.
type Option func(*Calendar)

// WithClock replaces the wall clock, e.g. with a fixed time in tests.
func WithClock(now func() time.Time) Option {
	return func(c *Calendar) {
		c.now = now
	}
}

// NewCalendar creates a calendar for the given IANA timezone string.
// e.g. "Asia/Ho_Chi_Minh"
func NewCalendar(timezone string, opts ...Option) (*Calendar, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	c := &Calendar{location: loc, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Location returns the calendar's timezone.
func (c *Calendar) Location() *time.Location {
	return c.location
}

// Now returns the current time in the calendar's timezone.
func (c *Calendar) Now() time.Time {
	return c.now().In(c.location)
}

// Today returns midnight at the start of the current day.
func (c *Calendar) Today() time.Time {
	return StartOfDay(c.Now())
}

// StartOfDay returns midnight at the start of t's day, in t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns 23:59:59 at the end of the given start-of-day time.
func EndOfDay(startOfDay time.Time) time.Time {
	return startOfDay.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
}

// ResolveMonthDay places a bare month/day in ref's year, or the following year when that
// day has already passed relative to ref's midnight. Out-of-range values normalize the way
// time.Date does ("2/30" becomes early March). On rollover the normalized month and day are
// re-applied in ref's year + 1 and normalized again, so Feb 29 rolled into a common year
// lands on March 1.
func ResolveMonthDay(month, day int, ref time.Time) time.Time {
	loc := ref.Location()
	candidate := time.Date(ref.Year(), time.Month(month), day, 0, 0, 0, 0, loc)

	if candidate.Before(StartOfDay(ref)) {
		return time.Date(ref.Year()+1, candidate.Month(), candidate.Day(), 0, 0, 0, 0, loc)
	}
	return candidate
}
