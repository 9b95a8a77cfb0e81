package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/lia-xyz/to-do-list-app/internal/client"
	"github.com/lia-xyz/to-do-list-app/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const requestTimeout = 10 * time.Second

func newRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix(config.EnvPrefix)
	v.AutomaticEnv()
	v.SetDefault("api_url", client.DefaultBaseURL)

	root := &cobra.Command{
		Use:   "todo",
		Short: "todo - command-line client for the to-do list API",
		Long: `todo lists, adds, completes and removes tasks through the to-do list
HTTP API. The API location comes from --api-url or CHECKLIST_API_URL.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.PersistentFlags().String("api-url", client.DefaultBaseURL, "base URL of the tasks API")
	_ = v.BindPFlag("api_url", root.PersistentFlags().Lookup("api-url"))

	newClient := func() *client.Client {
		return client.New(v.GetString("api_url"), nil)
	}

	root.AddCommand(
		newListCmd(newClient),
		newAddCmd(newClient),
		newSetCompletedCmd(newClient, "done", "Mark a task as completed", true),
		newSetCompletedCmd(newClient, "undo", "Mark a task as not completed", false),
		newRmCmd(newClient),
		newStatsCmd(newClient),
	)
	return root
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid task id %q", s)
	}
	return id, nil
}
