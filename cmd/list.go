package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"cadence/internal/apiclient"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Short:   "List habits",
	Long:    `The "list" command lets you list your tracked habits.`,
	PreRunE: loadConfig,
	Run: func(cmd *cobra.Command, args []string) {
		list(cmd)
	},
}

func list(cmd *cobra.Command) {
	client := apiclient.New(cfg.APIBaseURL)
	habits, err := client.ListHabits(context.Background())
	if err != nil {
		cmd.Println("Error fetching habits:", err)
		return
	}
	for _, h := range habits {
		cmd.Printf("%s  %s (%s)\n", h.ID, h.Name, h.Frequency)
	}
}

func init() {
	rootCmd.AddCommand(listCmd)
}
