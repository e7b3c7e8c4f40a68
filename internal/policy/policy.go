// Package policy contains the pure time rules for bookings: whether "now"
// falls inside the allowed booking window and whether a requested slot
// duration is legal.  Nothing here touches storage; callers translate a
// false result into a user-facing rejection, never an error.
package policy

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Config captures the deployment's booking window rules.  The snapshots of
// the original service disagreed on weekends and the lead rule, so both are
// configuration rather than constants.
type Config struct {
	Location     *time.Location // wall clock the window is evaluated in
	OpenHour     int            // first bookable hour, inclusive
	CloseHour    int            // last bookable hour, exclusive
	WeekdaysOnly bool           // reject Saturday and Sunday when true
	MinMinutes   int            // minimum slot length, inclusive
	MaxMinutes   int            // maximum slot length, inclusive
	MaxStartLag  int            // how many minutes a start may lie in the past
}

// Default returns the strict variant: weekday 09-22 same-day bookings of
// 30 minutes to 4 hours, starts no more than 30 minutes in the past.
func Default(loc *time.Location) Config {
	if loc == nil {
		loc = time.Local
	}
	return Config{
		Location:     loc,
		OpenHour:     9,
		CloseHour:    22,
		WeekdaysOnly: true,
		MinMinutes:   30,
		MaxMinutes:   240,
		MaxStartLag:  30,
	}
}

// WithinBookingWindow reports whether now is a moment at which new
// bookings are accepted.
func (c Config) WithinBookingWindow(now time.Time) bool {
	now = now.In(c.Location)
	if c.WeekdaysOnly {
		if d := now.Weekday(); d == time.Saturday || d == time.Sunday {
			return false
		}
	}
	h := now.Hour()
	return h >= c.OpenHour && h < c.CloseHour
}

// ValidDuration reports whether the half-open slot [start, end) has a
// legal length.  Zero and negative durations fold into the same rule.
func (c Config) ValidDuration(start, end string) bool {
	s, err := ParseClock(start)
	if err != nil {
		return false
	}
	e, err := ParseClock(end)
	if err != nil {
		return false
	}
	d := e - s
	return d >= c.MinMinutes && d <= c.MaxMinutes
}

// StartAcceptable reports whether a requested start time is not too far in
// the past relative to now.  A start later than now is always acceptable;
// the window check bounds the far future.
func (c Config) StartAcceptable(now time.Time, start string) bool {
	s, err := ParseClock(start)
	if err != nil {
		return false
	}
	now = now.In(c.Location)
	cur := now.Hour()*60 + now.Minute()
	return s >= cur-c.MaxStartLag
}

// ParseClock converts an "HH:MM" string to minutes since midnight.
func ParseClock(s string) (int, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("malformed clock value %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("malformed clock value %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("malformed clock value %q", s)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("clock value %q out of range", s)
	}
	return h*60 + m, nil
}
