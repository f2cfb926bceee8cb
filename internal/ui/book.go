package ui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/turnogo/turnogo/internal/appointment"
	"github.com/turnogo/turnogo/internal/clocktime"
	"github.com/turnogo/turnogo/internal/dateutil"
	"github.com/turnogo/turnogo/internal/slots"
)

// ErrNoFreeSlot is returned when no slot can hold the requested duration.
var ErrNoFreeSlot = errors.New("no free slot")

// ErrSlotUnavailable is returned when the requested window cannot be booked.
var ErrSlotUnavailable = errors.New("slot unavailable")

func (a *App) bookCmd() *cobra.Command {
	var (
		date     string
		start    string
		service  string
		duration int
	)

	cmd := &cobra.Command{
		Use:   "book [client]",
		Short: "Book an appointment",
		Long: `Book an appointment for a client.

Without --start the first free slot is taken: on --date if given,
otherwise the earliest one in the coming days.

Example:
  turnogo book "Ana Pérez" --date=viernes --start=10:30 --duration=45 --service=Corte`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			if duration == 0 {
				duration = a.config.Schedule.DefaultDuration
			}
			appt, err := a.book(context.Background(), args[0], service, date, start, duration)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Reservada #%d: %s\n", appt.ID, formatBooked(appt.Summary(a.formatter)))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Date (YYYY-MM-DD, hoy, mañana, weekday; default: first free day)")
	cmd.Flags().StringVar(&start, "start", "", "Start time (HH:MM; default: first free slot)")
	cmd.Flags().StringVar(&service, "service", "", "Service, e.g. Corte")
	cmd.Flags().IntVar(&duration, "duration", 0, "Duration in minutes (default from config)")

	return cmd
}

// book resolves date and start, checks opening hours and stores the
// appointment.
func (a *App) book(ctx context.Context, client, service, date, start string, duration int) (*appointment.Appointment, error) {
	sched, err := a.scheduler()
	if err != nil {
		return nil, err
	}
	now := a.clock.Now()
	today := dateutil.TruncateToDay(now)
	horizon := a.config.Schedule.DaysAhead

	booked, err := a.scheduled(ctx, today, today.AddDate(0, 0, horizon))
	if err != nil {
		return nil, err
	}

	var day time.Time
	switch {
	case start != "":
		if day, err = dateutil.ParseRelativeDate(date, now); err != nil {
			return nil, err
		}
	case date != "":
		if day, err = dateutil.ParseRelativeDate(date, now); err != nil {
			return nil, err
		}
		slot, ok := firstFit(sched, day, duration, booked, now)
		if !ok {
			return nil, fmt.Errorf("%w on %s for %d minutes", ErrNoFreeSlot, a.formatter.SelectedDate(day), duration)
		}
		start = slot.Start.String()
	default:
		d, slot, ok := sched.NextAvailable(now, duration, horizon, booked)
		if !ok {
			return nil, fmt.Errorf("%w in the next %d days for %d minutes", ErrNoFreeSlot, horizon, duration)
		}
		day, start = d, slot.Start.String()
	}

	appt, err := appointment.New(client, service, day.Format(dateutil.Layout), start, duration, now)
	if err != nil {
		return nil, err
	}
	if clocktime.MustParse(appt.Start).On(appt.Date).Before(now) {
		return nil, fmt.Errorf("%w: %s already started", ErrSlotUnavailable, appt.Label(a.formatter))
	}
	if ok, reason := sched.CanFit(appt.Date, appt.Start, appt.DurationMinutes, booked); !ok {
		return nil, fmt.Errorf("%w: %s (%s)", ErrSlotUnavailable, appt.Label(a.formatter), reason)
	}

	if err := a.repo.Create(ctx, appt); err != nil {
		return nil, fmt.Errorf("booking: %w", err)
	}
	a.logger.Debug().
		Int64("id", appt.ID).
		Str("date", appt.Date.Format(dateutil.Layout)).
		Str("start", appt.Start).
		Int("duration", appt.DurationMinutes).
		Msg("booked")
	return appt, nil
}

// firstFit returns the first bookable slot on day long enough for duration.
func firstFit(sched *slots.Scheduler, day time.Time, duration int, booked []*appointment.Appointment, now time.Time) (slots.Slot, bool) {
	for _, slot := range sched.Slots(day, booked, now) {
		if !slot.Available {
			continue
		}
		if ok, _ := sched.CanFit(day, slot.Start.String(), duration, booked); ok {
			return slot, true
		}
	}
	return slots.Slot{}, false
}

// scheduled returns the scheduled appointments between from and to.
func (a *App) scheduled(ctx context.Context, from, to time.Time) ([]*appointment.Appointment, error) {
	all, err := a.repo.ListByDateRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("fetching appointments: %w", err)
	}
	return onlyScheduled(all), nil
}
