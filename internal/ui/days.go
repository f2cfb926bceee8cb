package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/turnogo/turnogo/internal/dateutil"
)

func (a *App) daysCmd() *cobra.Command {
	var (
		count   int
		noColor bool
	)

	cmd := &cobra.Command{
		Use:   "days",
		Short: "Show the coming days and how busy they are",
		Long: `Show the day strip used by the interactive agenda: one line per day
with its label, the number of appointments and whether it is closed.`,
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
			if count <= 0 {
				count = a.config.Schedule.DaysAhead
			}

			days := dateutil.Days(a.clock.Now(), count)
			booked, err := a.scheduled(context.Background(), days[0], days[len(days)-1])
			if err != nil {
				return err
			}

			perDay := make(map[string]int)
			for _, appt := range booked {
				perDay[appt.Date.Format(dateutil.Layout)]++
			}

			for _, day := range days {
				label := padRight(a.formatter.SelectedDate(day), 14)
				n := perDay[day.Format(dateutil.Layout)]
				switch {
				case !sched.IsWorkday(day):
					fmt.Fprintf(a.out, "  %s %s\n", formatMuted(label), formatMuted("cerrado"))
				case n == 0:
					fmt.Fprintf(a.out, "  %s %s\n", label, formatFree("libre"))
				case n == 1:
					fmt.Fprintf(a.out, "  %s %s\n", label, formatBooked("1 cita"))
				default:
					fmt.Fprintf(a.out, "  %s %s\n", label, formatBooked(fmt.Sprintf("%d citas", n)))
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "days", "n", 0, "Number of days (default: days_ahead)")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable color output")
	return cmd
}
