package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cadence/internal/config"
	"cadence/internal/storage"
	"cadence/internal/storage/bolt"
	"cadence/internal/storage/sqlite"
)

var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "cadence",
	Short: "Track habits, streaks, and progress",
	Long: `
	Cadence is a personal habit tracker. It records daily, weekly, and custom-schedule
	habits, computes streaks and completion statistics, and awards XP and achievements
	as you go.`,
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// loadConfig is the shared PreRunE for commands that need config.
func loadConfig(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("error loading config file: %w", err)
	}
	return nil
}

func openStore() (storage.Store, error) {
	switch cfg.Storage.Driver {
	case "", "bolt":
		return bolt.Open(cfg.Storage.Path)
	case "sqlite":
		return sqlite.Open(cfg.Storage.Path)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
