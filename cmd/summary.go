package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"cadence/internal/apiclient"
)

var summaryCmd = &cobra.Command{
	Use:     "summary <habit-id>",
	Short:   "Show streaks and completion rates for a habit",
	Args:    cobra.ExactArgs(1),
	PreRunE: loadConfig,
	Run: func(cmd *cobra.Command, args []string) {
		summary(cmd, args[0])
	},
}

func summary(cmd *cobra.Command, habitID string) {
	client := apiclient.New(cfg.APIBaseURL)
	s, err := client.GetHabitSummary(context.Background(), habitID)
	if err != nil {
		cmd.Println("Error fetching summary:", err)
		return
	}

	cmd.Printf("Current streak: %d\n", s.Streaks.CurrentStreak)
	cmd.Printf("Best streak:    %d\n", s.Streaks.BestStreak)
	cmd.Printf("Last 7 days:    %d%% (%d/%d)\n", s.RateWeek.Percentage, s.RateWeek.Completed, s.RateWeek.Expected)
	cmd.Printf("Last 30 days:   %d%% (%d/%d)\n", s.RateMonth.Percentage, s.RateMonth.Completed, s.RateMonth.Expected)
	cmd.Printf("All time:       %d%% (%d/%d)\n", s.RateAllTime.Percentage, s.RateAllTime.Completed, s.RateAllTime.Expected)
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}
