// Package dateutil provides date parsing, comparison and clock utilities.
package dateutil

import (
	"errors"
	"strings"
	"time"
)

// Layout is the date layout used on the command line and in storage.
const Layout = "2006-01-02"

// Validation errors.
var (
	ErrInvalidDateFormat  = errors.New("date must be in YYYY-MM-DD format")
	ErrEndDateBeforeStart = errors.New("end date must be on or after start date")
	ErrDateInPast         = errors.New("cannot book in the past")
)

// weekdayMap maps weekday names, English and Spanish, to time.Weekday values.
var weekdayMap = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,

	"domingo":   time.Sunday,
	"lunes":     time.Monday,
	"martes":    time.Tuesday,
	"miercoles": time.Wednesday,
	"miércoles": time.Wednesday,
	"jueves":    time.Thursday,
	"viernes":   time.Friday,
	"sabado":    time.Saturday,
	"sábado":    time.Saturday,
}

var (
	todayWords    = []string{"today", "hoy"}
	tomorrowWords = []string{"tomorrow", "mañana", "manana"}
	nextWeekWords = []string{"next-week", "proxima-semana", "próxima-semana"}
	nextPrefixes  = []string{"next-", "proximo-", "próximo-"}
)

// DateRange represents a validated date range.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange creates a new DateRange with validation. Both ends accept
// anything ParseDate does; an empty endDate means the start day.
func NewDateRange(startDate, endDate string, relativeTo time.Time) (*DateRange, error) {
	start, err := ParseDate(startDate, relativeTo)
	if err != nil {
		return nil, err
	}

	end := start
	if endDate != "" {
		end, err = ParseDate(endDate, relativeTo)
		if err != nil {
			return nil, err
		}
	}

	if end.Before(start) {
		return nil, ErrEndDateBeforeStart
	}

	return &DateRange{Start: start, End: end}, nil
}

// ParseDate parses s for lookups rather than bookings: an absolute
// YYYY-MM-DD date may lie in the past, anything else goes through
// ParseRelativeDate. An empty string means the day of relativeTo.
func ParseDate(s string, relativeTo time.Time) (time.Time, error) {
	if s == "" {
		return TruncateToDay(relativeTo), nil
	}
	if t, err := time.ParseInLocation(Layout, s, relativeTo.Location()); err == nil {
		return t, nil
	}
	return ParseRelativeDate(s, relativeTo)
}

// WeekRange returns the Monday and Sunday of the ISO week containing t.
func WeekRange(t time.Time) (monday, sunday time.Time) {
	t = TruncateToDay(t)
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	monday = t.AddDate(0, 0, -(weekday - 1))
	sunday = monday.AddDate(0, 0, 6)
	return monday, sunday
}

// TruncateToDay returns t with time set to midnight.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// IsSameDay reports whether a and b fall on the same calendar day.
// Only year, month and day-of-month are compared; time-of-day and location
// are ignored.
func IsSameDay(a, b time.Time) bool {
	return a.Day() == b.Day() && a.Month() == b.Month() && a.Year() == b.Year()
}

// Days returns n consecutive days starting at from, each truncated to midnight.
func Days(from time.Time, n int) []time.Time {
	if n <= 0 {
		return nil
	}
	start := TruncateToDay(from)
	days := make([]time.Time, n)
	for i := range days {
		days[i] = start.AddDate(0, 0, i)
	}
	return days
}

// ParseRelativeDate parses a date string that can be:
//   - Empty string, "today" or "hoy": returns relativeTo date
//   - Absolute date: "2025-01-15" (YYYY-MM-DD)
//   - "tomorrow" / "mañana"
//   - Weekday names in English or Spanish (next occurrence, always future)
//   - "next-<weekday>", "proximo-<dia>", "next-week", "proxima-semana"
//
// All inputs are case-insensitive.
// Returns ErrDateInPast if the resulting date is before relativeTo (truncated to day).
// Returns ErrInvalidDateFormat for unrecognized input.
func ParseRelativeDate(s string, relativeTo time.Time) (time.Time, error) {
	today := TruncateToDay(relativeTo)
	input := strings.ToLower(strings.TrimSpace(s))

	switch {
	case input == "" || oneOf(input, todayWords):
		return today, nil
	case oneOf(input, tomorrowWords):
		return today.AddDate(0, 0, 1), nil
	case oneOf(input, nextWeekWords):
		return today.AddDate(0, 0, 7), nil
	}

	for _, prefix := range nextPrefixes {
		if strings.HasPrefix(input, prefix) {
			if target, ok := weekdayMap[strings.TrimPrefix(input, prefix)]; ok {
				return nextWeekday(today, target), nil
			}
			return time.Time{}, ErrInvalidDateFormat
		}
	}

	if target, ok := weekdayMap[input]; ok {
		return nextWeekday(today, target), nil
	}

	result, err := time.ParseInLocation(Layout, input, relativeTo.Location())
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	if result.Before(today) {
		return time.Time{}, ErrDateInPast
	}
	return result, nil
}

func oneOf(s string, words []string) bool {
	for _, w := range words {
		if s == w {
			return true
		}
	}
	return false
}

// nextWeekday returns the next occurrence of the given weekday after today.
// If today is the target weekday, returns one week from today.
func nextWeekday(today time.Time, target time.Weekday) time.Time {
	daysUntil := int(target) - int(today.Weekday())
	if daysUntil <= 0 {
		daysUntil += 7
	}
	return today.AddDate(0, 0, daysUntil)
}
