package agenda

import (
	"time"

	"github.com/turnogo/turnogo/internal/dateutil"
)

// Formatter renders dates relative to the day reported by its clock.
type Formatter struct {
	clock dateutil.Clock
}

// NewFormatter returns a Formatter reading "today" from clock.
// A nil clock means the system clock.
func NewFormatter(clock dateutil.Clock) *Formatter {
	if clock == nil {
		clock = dateutil.SystemClock
	}
	return &Formatter{clock: clock}
}

// Today returns the current day, truncated to midnight.
func (f *Formatter) Today() time.Time {
	return dateutil.TruncateToDay(f.clock.Now())
}

// SelectedDate renders date for the day picker: "Hoy" or "Lun, 20 Octu".
func (f *Formatter) SelectedDate(date time.Time) string {
	return FormatDate(date, f.clock.Now())
}

var systemFormatter = NewFormatter(nil)

// FormatSelectedDate renders date relative to the host clock. Output changes
// from day to day; use a Formatter with a fixed clock where that matters.
func FormatSelectedDate(date time.Time) string {
	return systemFormatter.SelectedDate(date)
}
