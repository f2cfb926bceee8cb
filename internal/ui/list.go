package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/turnogo/turnogo/internal/agenda"
	"github.com/turnogo/turnogo/internal/appointment"
	"github.com/turnogo/turnogo/internal/dateutil"
)

func (a *App) listCmd() *cobra.Command {
	var (
		startDate string
		endDate   string
		week      bool
		all       bool
		noColor   bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List appointments",
		Long: `List appointments within a date range, grouped by day.

By default shows the next days configured by days_ahead, starting today.
With --week the range is the Monday to Sunday week containing --start.
Cancelled and rescheduled appointments are hidden unless --all is given.

Example:
  turnogo list --start=2025-09-22 --end=viernes
  turnogo list --week --start=proxima-semana`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if noColor {
				DisableColor()
			}
			if week && endDate != "" {
				return errors.New("--week and --end cannot be combined")
			}

			dr, err := dateutil.NewDateRange(startDate, endDate, a.clock.Now())
			if err != nil {
				return err
			}
			switch {
			case week:
				dr.Start, dr.End = dateutil.WeekRange(dr.Start)
			case endDate == "":
				dr.End = dr.Start.AddDate(0, 0, a.config.Schedule.DaysAhead-1)
			}

			if err := a.ensureRepo(); err != nil {
				return err
			}
			appts, err := a.repo.ListByDateRange(context.Background(), dr.Start, dr.End)
			if err != nil {
				return fmt.Errorf("fetching appointments: %w", err)
			}
			if !all {
				appts = onlyScheduled(appts)
			}
			if len(appts) == 0 {
				fmt.Fprintln(a.out, "No hay citas en ese periodo.")
				return nil
			}

			a.printGrouped(a.out, appts, termWidth())
			return nil
		},
	}

	cmd.Flags().StringVar(&startDate, "start", "", "Start date (YYYY-MM-DD or relative, default: today)")
	cmd.Flags().StringVar(&endDate, "end", "", "End date (YYYY-MM-DD or relative, default: start + days_ahead)")
	cmd.Flags().BoolVarP(&week, "week", "w", false, "List the whole week containing the start date")
	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include cancelled and rescheduled appointments")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable color output")
	return cmd
}

// printGrouped prints appointments under one header per day. appts must be
// ordered by date.
func (a *App) printGrouped(w io.Writer, appts []*appointment.Appointment, width int) {
	var current time.Time
	for i, appt := range appts {
		if i == 0 || !dateutil.IsSameDay(appt.Date, current) {
			if i > 0 {
				fmt.Fprintln(w)
			}
			current = appt.Date
			fmt.Fprintf(w, "=== %s %s ===\n",
				formatHeader(a.formatter.SelectedDate(current)),
				formatMuted(current.Format(dateutil.Layout)))
		}
		a.printAppointmentRow(w, appt, width)
	}
}

// printAppointmentRow prints "  #12   9AM - 09:30   Ana (Corte)". Rows that
// are no longer scheduled, or already over, are muted and tagged.
func (a *App) printAppointmentRow(w io.Writer, appt *appointment.Appointment, width int) {
	window, err := agenda.FormatRange(appt.Start, appt.DurationMinutes)
	if err != nil {
		window = appt.Start
	}
	who := appt.Client
	if appt.Service != "" {
		who += " (" + appt.Service + ")"
	}

	id := padRight("#"+strconv.FormatInt(appt.ID, 10), 6)
	window = padRight(window, 14)
	who = truncate(who, max(width-26, 20))

	switch {
	case appt.IsScheduled() && appt.IsPast(a.clock.Now()):
		fmt.Fprintf(w, "  %s %s %s %s\n", formatMuted(id), formatMuted(window), formatMuted(who), formatMuted("[pasada]"))
	case appt.IsScheduled():
		fmt.Fprintf(w, "  %s %s %s\n", formatMuted(id), window, formatBooked(who))
	default:
		fmt.Fprintf(w, "  %s %s %s %s\n", formatMuted(id), formatMuted(window), formatMuted(who), formatMuted("["+string(appt.Status)+"]"))
	}
}

func onlyScheduled(appts []*appointment.Appointment) []*appointment.Appointment {
	out := make([]*appointment.Appointment, 0, len(appts))
	for _, appt := range appts {
		if appt.IsScheduled() {
			out = append(out, appt)
		}
	}
	return out
}
