package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-webformvue/internal/app"
	"github.com/goliatone/go-webformvue/internal/config"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Start the webformvue HTTP server.

Configuration is read from webformvue.yaml (or --config). When the file does
not exist the WEBFORMVUE_* environment variables are used instead.

Examples:
  webformvue serve
  webformvue serve --config /etc/webformvue/config.yaml
  WEBFORMVUE_BACKEND_MODE=remote WEBFORMVUE_REMOTE_URL=https://cms.example.com webformvue serve`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadWithFallback(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, *cfg)
	if err != nil {
		return err
	}
	return a.Run(ctx)
}

// commandContext returns the command context or a background context when
// the command runs outside Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
