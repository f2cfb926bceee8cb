package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/turnogo/turnogo/internal/dateutil"
)

func (a *App) showCmd() *cobra.Command {
	var noColor bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show today's appointments",
		Long: `Display today's appointments and the next free slot.

This is a quick view. Use 'turnogo list' for a range of days.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if noColor {
				DisableColor()
			}
			if err := a.ensureRepo(); err != nil {
				return err
			}
			sched, err := a.scheduler()
			if err != nil {
				return err
			}

			ctx := context.Background()
			now := a.clock.Now()
			today := dateutil.TruncateToDay(now)
			horizon := a.config.Schedule.DaysAhead

			booked, err := a.scheduled(ctx, today, today.AddDate(0, 0, horizon))
			if err != nil {
				return err
			}

			var todays int
			for _, appt := range booked {
				if !dateutil.IsSameDay(appt.Date, today) {
					continue
				}
				if todays == 0 {
					fmt.Fprintf(a.out, "=== %s ===\n", formatHeader(a.formatter.SelectedDate(today)))
				}
				a.printAppointmentRow(a.out, appt, termWidth())
				todays++
			}
			if todays == 0 {
				fmt.Fprintln(a.out, "No hay citas para hoy.")
			}

			fmt.Fprintln(a.out)
			day, slot, ok := sched.NextAvailable(now, a.config.Schedule.DefaultDuration, horizon, booked)
			if !ok {
				fmt.Fprintf(a.out, "Sin huecos libres en los próximos %d días.\n", horizon)
				return nil
			}
			next := a.formatter.SelectedDate(day) + " " + slot.Label
			if !dateutil.IsSameDay(day, today) {
				next = formatWarn(next)
			} else {
				next = formatFree(next)
			}
			fmt.Fprintf(a.out, "Próximo hueco libre: %s\n", next)
			return nil
		},
	}

	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable color output")
	return cmd
}
