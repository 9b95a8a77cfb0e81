package main

import (
	"context"

	"github.com/lia-xyz/to-do-list-app/internal/client"
	"github.com/spf13/cobra"
)

// newSetCompletedCmd builds both "done" and "undo".
func newSetCompletedCmd(newClient func() *client.Client, use, short string, completed bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			task, err := newClient().SetCompleted(ctx, id, completed)
			if err != nil {
				return err
			}

			newPrinter(cmd.OutOrStdout()).task(task)
			return nil
		},
	}
}
