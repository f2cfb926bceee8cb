// Package agenda formats dates and clock times for the appointments screen.
//
// Labels are in Spanish. Dates render as "Hoy" for the current day and as
// "<day>, <n> <month>" otherwise; times render in the compact slot-grid
// shorthand ("9AM", "·30", "9:05"). End times are plain 24-hour "HH:MM".
package agenda

import (
	"fmt"
	"time"

	"github.com/turnogo/turnogo/internal/clocktime"
	"github.com/turnogo/turnogo/internal/dateutil"
)

// TodayLabel is shown instead of a date when the date is the current day.
const TodayLabel = "Hoy"

// ErrInvalidTime is returned for clock times that are not valid "HH:MM".
var ErrInvalidTime = clocktime.ErrInvalidTime

var dayAbbrevs = [7]string{"Dom", "Lun", "Mar", "Mié", "Jue", "Vie", "Sáb"}

var monthNames = [12]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

// DayAbbrev returns the three-letter Spanish weekday abbreviation.
func DayAbbrev(d time.Weekday) string {
	return dayAbbrevs[d]
}

// MonthAbbrev returns the first four characters of the Spanish month name:
// "Ener", "Sept", "Mayo", "Juni". This is a plain truncation, not a
// conventional abbreviation.
func MonthAbbrev(m time.Month) string {
	name := []rune(monthNames[m-1])
	if len(name) > 4 {
		name = name[:4]
	}
	return string(name)
}

// IsSameDay reports whether a and b fall on the same calendar day.
func IsSameDay(a, b time.Time) bool {
	return dateutil.IsSameDay(a, b)
}

// FormatDate renders date relative to today: "Hoy" on the same calendar day,
// "Vie, 19 Sept" otherwise.
func FormatDate(date, today time.Time) string {
	if IsSameDay(date, today) {
		return TodayLabel
	}
	return fmt.Sprintf("%s, %d %s", DayAbbrev(date.Weekday()), date.Day(), MonthAbbrev(date.Month()))
}

// FormatClock renders t in the slot-grid shorthand:
//   - on the hour: "9AM", "12PM", "12AM"
//   - at quarter past, half past and quarter to: "·15", "·30", "·45"
//   - anything else: "9:05" (12-hour, no marker)
func FormatClock(t clocktime.Time) string {
	hour12 := t.Hour() % 12
	if hour12 == 0 {
		hour12 = 12
	}

	switch t.Minute() {
	case 0:
		marker := "AM"
		if t.Hour() >= 12 {
			marker = "PM"
		}
		return fmt.Sprintf("%d%s", hour12, marker)
	case 15, 30, 45:
		return fmt.Sprintf("·%02d", t.Minute())
	default:
		return fmt.Sprintf("%d:%02d", hour12, t.Minute())
	}
}

// FormatTime parses an "HH:MM" string and renders it with FormatClock.
func FormatTime(s string) (string, error) {
	t, err := clocktime.Parse(s)
	if err != nil {
		return "", err
	}
	return FormatClock(t), nil
}

// CalculateEndTime returns start plus durationMinutes as zero-padded "HH:MM".
// The result wraps around midnight with no next-day indication; negative
// durations move backwards and wrap the same way.
func CalculateEndTime(start string, durationMinutes int) (string, error) {
	t, err := clocktime.Parse(start)
	if err != nil {
		return "", err
	}
	return t.Add(durationMinutes).String(), nil
}

// FormatRange renders an appointment window as "<FormatTime(start)> - <end>",
// for example "9AM - 09:30".
func FormatRange(start string, durationMinutes int) (string, error) {
	label, err := FormatTime(start)
	if err != nil {
		return "", err
	}
	end, err := CalculateEndTime(start, durationMinutes)
	if err != nil {
		return "", err
	}
	return label + " - " + end, nil
}
