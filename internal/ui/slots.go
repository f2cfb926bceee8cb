package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/turnogo/turnogo/internal/dateutil"
	"github.com/turnogo/turnogo/internal/slots"
)

func (a *App) slotsCmd() *cobra.Command {
	var noColor bool

	cmd := &cobra.Command{
		Use:   "slots [date]",
		Short: "Show the slot grid of a day",
		Long: `Show every slot of a day and whether it is free.

Example:
  turnogo slots mañana`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
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

			now := a.clock.Now()
			var date string
			if len(args) == 1 {
				date = args[0]
			}
			day, err := dateutil.ParseDate(date, now)
			if err != nil {
				return err
			}

			booked, err := a.scheduled(context.Background(), day, day)
			if err != nil {
				return err
			}

			fmt.Fprintf(a.out, "=== %s ===\n", formatHeader(a.formatter.SelectedDate(day)))
			if !sched.IsWorkday(day) {
				fmt.Fprintln(a.out, formatMuted("Cerrado."))
				return nil
			}

			var free int
			for _, slot := range sched.Slots(day, booked, now) {
				fmt.Fprintf(a.out, "  %s %s\n", padRight(slot.Label, 6), slotStatus(slot))
				if slot.Available {
					free++
				}
			}
			fmt.Fprintf(a.out, "\n%s %s\n",
				formatFree(fmt.Sprintf("%d libres", free)),
				formatMuted(fmt.Sprintf("· huecos de %d min", sched.Interval())))
			return nil
		},
	}

	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable color output")
	return cmd
}

func slotStatus(slot slots.Slot) string {
	switch slot.Reason {
	case slots.ReasonNone:
		return formatFree("libre")
	case slots.ReasonBooked:
		b := slot.BookedBy
		if b.Start != slot.Start.String() {
			return formatBooked("┆")
		}
		who := b.Client
		if b.Service != "" {
			who += " (" + b.Service + ")"
		}
		return formatBooked(who) + formatMuted(" hasta "+b.End())
	case slots.ReasonPast:
		return formatMuted("—")
	case slots.ReasonNoRoom:
		return formatMuted("no cabe")
	default:
		return formatMuted(string(slot.Reason))
	}
}
