// Package appointment defines the core domain types for turnogo.
package appointment

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/turnogo/turnogo/internal/agenda"
	"github.com/turnogo/turnogo/internal/clocktime"
	"github.com/turnogo/turnogo/internal/dateutil"
)

// MaxDurationMinutes caps a single appointment at half a day.
const MaxDurationMinutes = 12 * 60

// Validation errors.
var (
	ErrEmptyClient      = errors.New("client name cannot be empty")
	ErrInvalidDuration  = errors.New("duration must be between 1 and 720 minutes")
	ErrCrossesMidnight  = errors.New("appointment cannot run past midnight")
	ErrInvalidTimeStart = errors.New("start time must be in HH:MM format")
)

// Domain errors.
var (
	ErrNotFound     = errors.New("appointment not found")
	ErrSlotTaken    = errors.New("time slot overlaps with an existing appointment")
	ErrNotScheduled = errors.New("appointment is not scheduled")
)

// Status represents the state of an appointment.
type Status string

const (
	StatusScheduled   Status = "scheduled"
	StatusCancelled   Status = "cancelled"
	StatusRescheduled Status = "rescheduled"
)

// Appointment is a booked slot for a client.
type Appointment struct {
	ID              int64
	Client          string
	Service         string
	Date            time.Time
	Start           string // "HH:MM"
	DurationMinutes int
	Status          Status
	RescheduledFrom *int64 // original appointment when rescheduled
	CreatedAt       time.Time
}

// New creates a scheduled Appointment with validation.
// date accepts anything dateutil.ParseRelativeDate does, resolved against now.
func New(client, service, date, start string, durationMinutes int, now time.Time) (*Appointment, error) {
	client = strings.TrimSpace(client)
	if client == "" {
		return nil, ErrEmptyClient
	}

	day, err := dateutil.ParseRelativeDate(date, now)
	if err != nil {
		return nil, err
	}

	if err := ValidateWindow(start, durationMinutes); err != nil {
		return nil, err
	}

	return &Appointment{
		Client:          client,
		Service:         strings.TrimSpace(service),
		Date:            day,
		Start:           start,
		DurationMinutes: durationMinutes,
		Status:          StatusScheduled,
		CreatedAt:       now,
	}, nil
}

// ValidateWindow checks that start is a valid "HH:MM" and that the appointment
// ends on the same day it starts.
func ValidateWindow(start string, durationMinutes int) error {
	st, err := clocktime.Parse(start)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimeStart, start)
	}
	if durationMinutes <= 0 || durationMinutes > MaxDurationMinutes {
		return ErrInvalidDuration
	}
	if st.Minutes()+durationMinutes > clocktime.MinutesPerDay {
		return ErrCrossesMidnight
	}
	return nil
}

// End returns the end time as "HH:MM".
func (a *Appointment) End() string {
	end, err := agenda.CalculateEndTime(a.Start, a.DurationMinutes)
	if err != nil {
		return ""
	}
	return end
}

// IsScheduled returns true if the appointment is still on the books.
func (a *Appointment) IsScheduled() bool {
	return a.Status == StatusScheduled
}

// OverlapsWith returns true if both appointments are on the same day and
// their time windows intersect.
func (a *Appointment) OverlapsWith(other *Appointment) bool {
	if other == nil || !dateutil.IsSameDay(a.Date, other.Date) {
		return false
	}
	if a.DurationMinutes <= 0 || other.DurationMinutes <= 0 {
		return false
	}
	s1, err1 := clocktime.Parse(a.Start)
	s2, err2 := clocktime.Parse(other.Start)
	if err1 != nil || err2 != nil {
		return false
	}
	return clocktime.Overlaps(s1, s1.Add(a.DurationMinutes), s2, s2.Add(other.DurationMinutes))
}

// IsPast returns true if the appointment's end has passed at now.
func (a *Appointment) IsPast(now time.Time) bool {
	st, err := clocktime.Parse(a.Start)
	if err != nil {
		return false
	}
	end := st.On(a.Date).Add(time.Duration(a.DurationMinutes) * time.Minute)
	return now.After(end)
}

// Label renders the appointment for lists: "Hoy 9AM - 09:30".
func (a *Appointment) Label(f *agenda.Formatter) string {
	window, err := agenda.FormatRange(a.Start, a.DurationMinutes)
	if err != nil {
		window = a.Start
	}
	return f.SelectedDate(a.Date) + " " + window
}

// Summary renders a one-line description suitable for sharing.
func (a *Appointment) Summary(f *agenda.Formatter) string {
	s := fmt.Sprintf("%s · %s", a.Label(f), a.Client)
	if a.Service != "" {
		s += " (" + a.Service + ")"
	}
	return s
}
