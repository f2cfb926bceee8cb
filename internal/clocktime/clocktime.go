// Package clocktime provides a wall-clock time-of-day value parsed from "HH:MM".
package clocktime

import (
	"errors"
	"fmt"
	"time"
)

// Layout is the "HH:MM" layout used at every string boundary.
const Layout = "15:04"

// MinutesPerDay is the length of the wall clock in minutes.
const MinutesPerDay = 24 * 60

// ErrInvalidTime is returned for input that is not a valid "HH:MM" time.
var ErrInvalidTime = errors.New("time must be in HH:MM format with hour 00-23 and minute 00-59")

// Time is a time of day with minute precision. The zero value is midnight.
type Time struct {
	hour   int
	minute int
}

// New returns the time hour:minute, or ErrInvalidTime if either is out of range.
func New(hour, minute int) (Time, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return Time{}, fmt.Errorf("%w: %02d:%02d", ErrInvalidTime, hour, minute)
	}
	return Time{hour: hour, minute: minute}, nil
}

// Parse parses s as "HH:MM" (exactly two digits, a colon, two digits).
func Parse(s string) (Time, error) {
	if len(s) != 5 || s[2] != ':' {
		return Time{}, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	hour, ok1 := twoDigits(s[0], s[1])
	minute, ok2 := twoDigits(s[3], s[4])
	if !ok1 || !ok2 {
		return Time{}, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	if hour > 23 || minute > 59 {
		return Time{}, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	return Time{hour: hour, minute: minute}, nil
}

// MustParse is like Parse but panics on error. Intended for constants and tests.
func MustParse(s string) Time {
	t, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}

func twoDigits(a, b byte) (int, bool) {
	if a < '0' || a > '9' || b < '0' || b > '9' {
		return 0, false
	}
	return int(a-'0')*10 + int(b-'0'), true
}

// FromMinutes converts minutes since midnight to a Time, wrapping around the
// 24-hour clock in both directions.
func FromMinutes(m int) Time {
	m %= MinutesPerDay
	if m < 0 {
		m += MinutesPerDay
	}
	return Time{hour: m / 60, minute: m % 60}
}

// Of returns the time of day of t in t's location.
func Of(t time.Time) Time {
	return Time{hour: t.Hour(), minute: t.Minute()}
}

// Hour returns the hour in [0, 23].
func (t Time) Hour() int { return t.hour }

// Minute returns the minute in [0, 59].
func (t Time) Minute() int { return t.minute }

// Minutes returns minutes since midnight.
func (t Time) Minutes() int {
	return t.hour*60 + t.minute
}

// String formats t as zero-padded "HH:MM".
func (t Time) String() string {
	return fmt.Sprintf("%02d:%02d", t.hour, t.minute)
}

// Add returns t moved by the given number of minutes. Crossing midnight wraps
// silently; there is no day carry.
func (t Time) Add(minutes int) Time {
	return FromMinutes(t.Minutes() + minutes)
}

// Before reports whether t is earlier in the day than u.
func (t Time) Before(u Time) bool { return t.Minutes() < u.Minutes() }

// On returns the instant at time t on the calendar day of date, in date's location.
func (t Time) On(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), t.hour, t.minute, 0, 0, date.Location())
}

// Overlaps reports whether the half-open ranges [start1, end1) and
// [start2, end2) intersect. Ranges do not wrap: an end at or before its start
// is read as midnight at the end of the day, so 23:30-00:00 is the last half
// hour.
func Overlaps(start1, end1, start2, end2 Time) bool {
	s1, e1 := span(start1, end1)
	s2, e2 := span(start2, end2)
	return s1 < e2 && s2 < e1
}

func span(start, end Time) (int, int) {
	if end.Minutes() <= start.Minutes() {
		return start.Minutes(), MinutesPerDay
	}
	return start.Minutes(), end.Minutes()
}
