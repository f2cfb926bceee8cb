package ui

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func (a *App) cancelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel [appointment-id]",
		Short: "Cancel a scheduled appointment",
		Long: `Cancel an appointment by its ID. The slot becomes free again.

Example:
  turnogo cancel 42`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			ctx := context.Background()
			appt, err := a.repo.Get(ctx, id)
			if err != nil {
				return fmt.Errorf("fetching appointment: %w", err)
			}
			if err := a.repo.Cancel(ctx, id); err != nil {
				return fmt.Errorf("cancelling appointment: %w", err)
			}
			a.logger.Debug().Int64("id", id).Msg("cancelled")

			fmt.Fprintf(a.out, "Cancelada #%d: %s\n", id, formatMuted(appt.Summary(a.formatter)))
			return nil
		},
	}
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid appointment ID %q", s)
	}
	return id, nil
}
