package appointment

import (
	"context"
	"time"
)

// Repository defines the storage interface for appointments.
type Repository interface {
	// Create books a new appointment.
	// Returns ErrSlotTaken if it overlaps a scheduled appointment on the same day.
	Create(ctx context.Context, a *Appointment) error

	// Get retrieves an appointment by ID. Returns ErrNotFound if missing.
	Get(ctx context.Context, id int64) (*Appointment, error)

	// Cancel marks a scheduled appointment as cancelled.
	Cancel(ctx context.Context, id int64) error

	// Reschedule atomically marks the original as rescheduled and books a copy
	// at the new date and start. Returns the new appointment.
	Reschedule(ctx context.Context, id int64, newDate time.Time, newStart string) (*Appointment, error)

	// ListByDateRange returns all appointments within the date range (inclusive),
	// ordered by date and start.
	ListByDateRange(ctx context.Context, start, end time.Time) ([]*Appointment, error)

	// Close releases any resources held by the repository.
	Close() error
}
