package ui

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/turnogo/turnogo/internal/agenda"
	"github.com/turnogo/turnogo/internal/clocktime"
	"github.com/turnogo/turnogo/internal/dateutil"
)

// fmtCmd exposes the agenda formatter, mostly for scripts and checks.
func (a *App) fmtCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fmt",
		Short: "Format dates and times the way the agenda shows them",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "date [date]",
		Short: `Format a date: "Hoy" or "Vie, 19 Sept"`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			var s string
			if len(args) == 1 {
				s = args[0]
			}
			day, err := dateutil.ParseDate(s, a.clock.Now())
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, a.formatter.SelectedDate(day))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "time [HH:MM]",
		Short: `Format a clock time for the slot grid: "9AM", "·15", "9:05"`,
		Long: `Format a clock time for the slot grid. Without an argument the
current time of day is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if len(args) == 0 {
				fmt.Fprintln(a.out, agenda.FormatClock(clocktime.Of(a.clock.Now())))
				return nil
			}
			label, err := agenda.FormatTime(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, label)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "end [HH:MM] [minutes]",
		Short: "Print the end time of a window, wrapping past midnight",
		Long: `Print start plus minutes as HH:MM, wrapping around midnight.
Negative minutes go backwards; pass them after -- so they are not
read as flags:

  turnogo fmt end -- 00:10 -30`,
		Args: cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			minutes, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("minutes must be an integer, got %q", args[1])
			}
			end, err := agenda.CalculateEndTime(args[0], minutes)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, end)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "range [HH:MM] [minutes]",
		Short: `Format an appointment window: "9AM - 09:30"`,
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			minutes, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("minutes must be an integer, got %q", args[1])
			}
			window, err := agenda.FormatRange(args[0], minutes)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, window)
			return nil
		},
	})

	return cmd
}
