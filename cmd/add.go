package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"cadence/internal/apiclient"
	"cadence/internal/server"
	"cadence/pkg/habit"
)

var (
	addDescription string
	addFrequency   string
	addDays        []int
	addColor       string
	addIcon        string
)

var addCmd = &cobra.Command{
	Use:     "add <name>",
	Short:   "Add a new habit",
	Long:    `The "add" command creates a new habit on the server.`,
	Args:    cobra.ExactArgs(1),
	PreRunE: loadConfig,
	Run: func(cmd *cobra.Command, args []string) {
		add(cmd, args[0])
	},
}

func add(cmd *cobra.Command, name string) {
	client := apiclient.New(cfg.APIBaseURL)
	resp, err := client.CreateHabit(context.Background(), server.CreateHabitRequest{
		Name:          name,
		Description:   addDescription,
		Frequency:     habit.Frequency(addFrequency),
		FrequencyDays: addDays,
		Color:         addColor,
		Icon:          addIcon,
	})
	if err != nil {
		cmd.Println("Error creating habit:", err)
		return
	}
	cmd.Printf("Created %q (%s)\n", resp.Habit.Name, resp.Habit.ID)
	for _, a := range resp.AchievementsUnlocked {
		cmd.Printf("Achievement unlocked: %s %s\n", a.Icon, a.Name)
	}
}

func init() {
	addCmd.Flags().StringVarP(&addDescription, "description", "d", "", "habit description")
	addCmd.Flags().StringVarP(&addFrequency, "frequency", "f", "daily", "daily, weekly, or custom")
	addCmd.Flags().IntSliceVar(&addDays, "days", nil, "weekdays for custom frequency (0=Sunday..6=Saturday)")
	addCmd.Flags().StringVar(&addColor, "color", "", "display color")
	addCmd.Flags().StringVar(&addIcon, "icon", "", "display icon")
	rootCmd.AddCommand(addCmd)
}
