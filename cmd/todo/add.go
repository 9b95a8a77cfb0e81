package main

import (
	"context"
	"strings"

	"github.com/lia-xyz/to-do-list-app/internal/client"
	"github.com/spf13/cobra"
)

func newAddCmd(newClient func() *client.Client) *cobra.Command {
	return &cobra.Command{
		Use:   "add <title>",
		Short: "Add a new task",
		Long: `Add a new task. Multiple arguments are joined with spaces.

Examples:
  todo add "Buy milk"
  todo add Walk the dog`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			task, err := newClient().Add(ctx, strings.Join(args, " "))
			if err != nil {
				return err
			}

			newPrinter(cmd.OutOrStdout()).task(task)
			return nil
		},
	}
}
