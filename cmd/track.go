package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"cadence/internal/apiclient"
	"cadence/internal/stats"
)

var trackDate string

var trackCmd = &cobra.Command{
	Use:     "track <habit-id>",
	Short:   "Toggle a habit completion",
	Long:    `The "track" command marks a habit complete for a day, or unmarks it if already complete.`,
	Args:    cobra.ExactArgs(1),
	PreRunE: loadConfig,
	Run: func(cmd *cobra.Command, args []string) {
		track(cmd, args[0])
	},
}

func track(cmd *cobra.Command, habitID string) {
	date := trackDate
	if date == "" {
		date = stats.FormatDay(time.Now())
	}

	client := apiclient.New(cfg.APIBaseURL)
	resp, err := client.ToggleCompletion(context.Background(), habitID, date)
	if err != nil {
		cmd.Println("Error toggling completion:", err)
		return
	}

	if !resp.Completed {
		cmd.Printf("Unmarked %s for %s\n", habitID, date)
		return
	}
	cmd.Printf("Completed %s for %s\n", habitID, date)
	if g := resp.Gamification; g != nil {
		cmd.Printf("+%d XP (total %d, level %d)\n", g.XPGained, g.NewTotalXP, g.NewLevel)
		if g.LeveledUp {
			cmd.Printf("Level up! %d -> %d\n", g.PreviousLevel, g.NewLevel)
		}
		for _, a := range g.AchievementsUnlocked {
			cmd.Printf("Achievement unlocked: %s %s\n", a.Icon, a.Name)
		}
	}
}

func init() {
	trackCmd.Flags().StringVar(&trackDate, "date", "", "date to toggle (YYYY-MM-DD, default today)")
	rootCmd.AddCommand(trackCmd)
}
