package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mkrogh/reelmatch/internal/app"
	"github.com/mkrogh/reelmatch/internal/config"
)

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Run the HTTP + WebSocket API server",
	RunE:  runAPI,
}

func runAPI(cmd *cobra.Command, args []string) error {
	app.Go(config.Load())
	return nil
}
