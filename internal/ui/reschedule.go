package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/turnogo/turnogo/internal/appointment"
	"github.com/turnogo/turnogo/internal/clocktime"
	"github.com/turnogo/turnogo/internal/dateutil"
)

func (a *App) rescheduleCmd() *cobra.Command {
	var date, start string

	cmd := &cobra.Command{
		Use:   "reschedule [appointment-id]",
		Short: "Move an appointment to another slot",
		Long: `Move an appointment to a new date and start time. The original is kept
as rescheduled and a new appointment with the same client, service and
duration is booked.

Example:
  turnogo reschedule 42 --date=mañana --start=16:00`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			moved, err := a.reschedule(context.Background(), id, date, start)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Reprogramada #%d → #%d: %s\n", id, moved.ID, formatBooked(moved.Summary(a.formatter)))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "New date (default: same day)")
	cmd.Flags().StringVar(&start, "start", "", "New start time (HH:MM, required)")
	_ = cmd.MarkFlagRequired("start")

	return cmd
}

func (a *App) reschedule(ctx context.Context, id int64, date, start string) (*appointment.Appointment, error) {
	sched, err := a.scheduler()
	if err != nil {
		return nil, err
	}
	now := a.clock.Now()

	original, err := a.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetching appointment: %w", err)
	}
	if !original.IsScheduled() {
		return nil, fmt.Errorf("rescheduling #%d: %w", id, appointment.ErrNotScheduled)
	}

	day := original.Date
	if date != "" {
		if day, err = dateutil.ParseRelativeDate(date, now); err != nil {
			return nil, err
		}
	}
	if err := appointment.ValidateWindow(start, original.DurationMinutes); err != nil {
		return nil, err
	}
	if clocktime.MustParse(start).On(day).Before(now) {
		return nil, fmt.Errorf("%w: %s %s already started", ErrSlotUnavailable, a.formatter.SelectedDate(day), start)
	}

	booked, err := a.scheduled(ctx, day, day)
	if err != nil {
		return nil, err
	}
	others := make([]*appointment.Appointment, 0, len(booked))
	for _, b := range booked {
		if b.ID != id {
			others = append(others, b)
		}
	}
	if ok, reason := sched.CanFit(day, start, original.DurationMinutes, others); !ok {
		return nil, fmt.Errorf("%w: %s %s (%s)", ErrSlotUnavailable, a.formatter.SelectedDate(day), start, reason)
	}

	moved, err := a.repo.Reschedule(ctx, id, day, start)
	if err != nil {
		return nil, fmt.Errorf("rescheduling: %w", err)
	}
	a.logger.Debug().
		Int64("id", id).
		Int64("new_id", moved.ID).
		Str("date", day.Format(dateutil.Layout)).
		Str("start", start).
		Msg("rescheduled")
	return moved, nil
}
