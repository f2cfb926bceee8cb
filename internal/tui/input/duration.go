// Package input parses values typed into TUI form fields.
package input

import (
	"errors"
	"strconv"
	"strings"
)

// ErrInvalidDuration is returned for durations that cannot be parsed.
var ErrInvalidDuration = errors.New("duration must look like 30, 45m, 1h or 1h30")

// ParseDuration parses a duration typed by the user into minutes.
// Accepted forms: "30", "30m", "1h", "1h30", "1h30m", "1:30".
func ParseDuration(s string) (int, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return 0, ErrInvalidDuration
	}

	if h, m, ok := strings.Cut(s, ":"); ok {
		return hoursMinutes(h, m)
	}
	if h, m, ok := strings.Cut(s, "h"); ok {
		return hoursMinutes(h, strings.TrimSuffix(m, "m"))
	}

	n, err := strconv.Atoi(strings.TrimSuffix(s, "m"))
	if err != nil || n <= 0 {
		return 0, ErrInvalidDuration
	}
	return n, nil
}

func hoursMinutes(h, m string) (int, error) {
	hours, err := strconv.Atoi(h)
	if err != nil || hours < 0 {
		return 0, ErrInvalidDuration
	}
	minutes := 0
	if m != "" {
		minutes, err = strconv.Atoi(m)
		if err != nil || minutes < 0 || minutes > 59 {
			return 0, ErrInvalidDuration
		}
	}
	total := hours*60 + minutes
	if total <= 0 {
		return 0, ErrInvalidDuration
	}
	return total, nil
}

// FormatDuration renders minutes the way ParseDuration accepts them back.
func FormatDuration(minutes int) string {
	if minutes <= 0 {
		return "0m"
	}
	h, m := minutes/60, minutes%60
	switch {
	case h == 0:
		return strconv.Itoa(m) + "m"
	case m == 0:
		return strconv.Itoa(h) + "h"
	default:
		return strconv.Itoa(h) + "h" + strconv.Itoa(m)
	}
}
