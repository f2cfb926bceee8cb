// Package slots builds the bookable time slots shown on the appointments screen.
package slots

import (
	"strings"
	"time"

	"github.com/turnogo/turnogo/internal/agenda"
	"github.com/turnogo/turnogo/internal/appointment"
	"github.com/turnogo/turnogo/internal/clocktime"
	"github.com/turnogo/turnogo/internal/dateutil"
)

// Reason explains why a slot cannot be booked.
type Reason string

const (
	ReasonNone    Reason = ""
	ReasonBooked  Reason = "booked"
	ReasonPast    Reason = "past"
	ReasonClosed  Reason = "closed"
	ReasonNoRoom  Reason = "no room"
	ReasonUnknown Reason = "unknown"
)

// Slot is one start time on the grid.
type Slot struct {
	Start     clocktime.Time
	Label     string // grid shorthand: "9AM", "·15", ...
	Available bool
	Reason    Reason
	BookedBy  *appointment.Appointment // set when Reason is ReasonBooked
}

// Scheduler provides opening-hours aware slot operations.
type Scheduler struct {
	workdays map[string]bool
	dayStart clocktime.Time
	dayEnd   clocktime.Time
	interval int
}

// New creates a new Scheduler. dayStart and dayEnd are "HH:MM"; interval is
// the slot length in minutes.
func New(workdays []string, dayStart, dayEnd string, interval int) (*Scheduler, error) {
	start, err := clocktime.Parse(dayStart)
	if err != nil {
		return nil, err
	}
	end, err := clocktime.Parse(dayEnd)
	if err != nil {
		return nil, err
	}
	if interval <= 0 {
		interval = 15
	}

	wd := make(map[string]bool)
	for _, d := range workdays {
		wd[strings.ToLower(strings.TrimSpace(d))] = true
	}
	return &Scheduler{
		workdays: wd,
		dayStart: start,
		dayEnd:   end,
		interval: interval,
	}, nil
}

// Interval returns the slot length in minutes.
func (s *Scheduler) Interval() int { return s.interval }

// IsWorkday returns true if date falls on a configured workday.
func (s *Scheduler) IsWorkday(date time.Time) bool {
	return s.workdays[strings.ToLower(date.Weekday().String())]
}

// Slots returns every slot start in [dayStart, dayEnd) for date. A slot is
// unavailable if the day is closed, it has already started at now, a full
// interval from its start runs past closing, or a scheduled appointment
// covers it. booked may include other days and
// non-scheduled appointments; they are ignored.
func (s *Scheduler) Slots(date time.Time, booked []*appointment.Appointment, now time.Time) []Slot {
	open := s.IsWorkday(date)
	var out []Slot
	for m := s.dayStart.Minutes(); m < s.dayEnd.Minutes(); m += s.interval {
		start := clocktime.FromMinutes(m)
		slot := Slot{
			Start: start,
			Label: agenda.FormatClock(start),
		}

		switch {
		case !open:
			slot.Reason = ReasonClosed
		case start.On(date).Before(now):
			slot.Reason = ReasonPast
		case m+s.interval > s.dayEnd.Minutes():
			slot.Reason = ReasonNoRoom
		default:
			if a := coveredBy(date, m, m+s.interval, booked); a != nil {
				slot.Reason = ReasonBooked
				slot.BookedBy = a
			}
		}
		slot.Available = slot.Reason == ReasonNone
		out = append(out, slot)
	}
	return out
}

// CanFit reports whether an appointment of duration minutes starting at start
// fits on date: a workday, inside opening hours, and clear of scheduled
// appointments. The returned Reason is ReasonNone when it fits.
func (s *Scheduler) CanFit(date time.Time, start string, duration int, booked []*appointment.Appointment) (bool, Reason) {
	if !s.IsWorkday(date) {
		return false, ReasonClosed
	}
	st, err := clocktime.Parse(start)
	if err != nil {
		return false, ReasonUnknown
	}
	begin := st.Minutes()
	end := begin + duration
	if begin < s.dayStart.Minutes() || end > s.dayEnd.Minutes() {
		return false, ReasonNoRoom
	}
	if coveredBy(date, begin, end, booked) != nil {
		return false, ReasonBooked
	}
	return true, ReasonNone
}

// NextAvailable returns the first slot at or after now that can hold an
// appointment of duration minutes, looking up to horizon days ahead.
func (s *Scheduler) NextAvailable(now time.Time, duration, horizon int, booked []*appointment.Appointment) (time.Time, Slot, bool) {
	for _, day := range dateutil.Days(now, horizon) {
		for _, slot := range s.Slots(day, booked, now) {
			if !slot.Available {
				continue
			}
			if ok, _ := s.CanFit(day, slot.Start.String(), duration, booked); ok {
				return day, slot, true
			}
		}
	}
	return time.Time{}, Slot{}, false
}

// coveredBy returns the first scheduled appointment on date intersecting
// [from, to) in minutes since midnight.
func coveredBy(date time.Time, from, to int, booked []*appointment.Appointment) *appointment.Appointment {
	probe := &appointment.Appointment{
		Date:            date,
		Start:           clocktime.FromMinutes(from).String(),
		DurationMinutes: to - from,
	}
	for _, a := range booked {
		if a.IsScheduled() && probe.OverlapsWith(a) {
			return a
		}
	}
	return nil
}
