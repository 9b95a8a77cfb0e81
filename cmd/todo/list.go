package main

import (
	"context"

	"github.com/lia-xyz/to-do-list-app/internal/app/models"
	"github.com/lia-xyz/to-do-list-app/internal/client"
	"github.com/spf13/cobra"
)

func newListCmd(newClient func() *client.Client) *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Long: `List tasks in id order.

Examples:
  todo list
  todo list --filter completed
  todo list -f uncompleted`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := models.ParseFilter(filter)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			tasks, err := newClient().List(ctx, f)
			if err != nil {
				return err
			}

			out := newPrinter(cmd.OutOrStdout())
			if len(tasks) == 0 {
				out.line(out.gray("No tasks"))
				return nil
			}
			for _, t := range tasks {
				out.task(t)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&filter, "filter", "f", string(models.FilterAll), "all, completed or uncompleted")
	return cmd
}
