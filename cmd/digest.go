package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"cadence/internal/digest"
	"cadence/internal/digest/resend"
	"cadence/internal/logger"
)

var resendAPIKey string

var digestCmd = &cobra.Command{
	Use:   "digest",
	Short: "Email a summary of recent weeks and current streaks",
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if resendAPIKey = os.Getenv("CADENCE_RESEND_API_KEY"); resendAPIKey == "" {
			return fmt.Errorf("CADENCE_RESEND_API_KEY environment variable is not set")
		}
		if err := loadConfig(cmd, args); err != nil {
			return err
		}
		if cfg.Digest.To == "" {
			return fmt.Errorf("digest.to is not set in config")
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return sendDigest()
	},
}

func sendDigest() error {
	logger.Init(logger.ParseLevel(cfg.Log.Level), cfg.Log.Format)

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	n := resend.ResendNotifier{
		APIKey: resendAPIKey,
		From:   cfg.Digest.From,
		To:     cfg.Digest.To,
	}
	return digest.Send(store, &n, cfg.Digest.Weeks, time.Now())
}

func init() {
	rootCmd.AddCommand(digestCmd)
}
