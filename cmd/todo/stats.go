package main

import (
	"context"
	"fmt"

	"github.com/lia-xyz/to-do-list-app/internal/client"
	"github.com/spf13/cobra"
)

func newStatsCmd(newClient func() *client.Client) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show completed and uncompleted counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			stats, err := newClient().Stats(ctx)
			if err != nil {
				return err
			}

			out := newPrinter(cmd.OutOrStdout())
			out.line(fmt.Sprintf("Completed:   %s", out.green(fmt.Sprint(stats.Completed))))
			out.line(fmt.Sprintf("Uncompleted: %s", out.yellow(fmt.Sprint(stats.Uncompleted))))
			return nil
		},
	}
}
