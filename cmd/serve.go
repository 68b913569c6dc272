package cmd

import (
	"net/http"

	"github.com/spf13/cobra"

	"cadence/internal/logger"
	"cadence/internal/server"
)

var serveCmd = &cobra.Command{
	Use:     "serve",
	Short:   "Start the HTTP server",
	PreRunE: loadConfig,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve() error {
	logger.Init(logger.ParseLevel(cfg.Log.Level), cfg.Log.Format)

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	s := server.New(store)
	logger.Info("Starting server", "addr", cfg.ListenAddr, "driver", cfg.Storage.Driver)
	return http.ListenAndServe(cfg.ListenAddr, s.Router())
}
