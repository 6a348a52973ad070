package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/jugehoerig/vereinsapi/config"
	"github.com/jugehoerig/vereinsapi/internal/server"
)

func newServeCommand(opts *rootOptions) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long: `Start the HTTP server and accept API requests until SIGINT or SIGTERM.

Examples:
  # Start with the configuration from the environment
  vereinsapi serve

  # Start on another port with readable logs
  vereinsapi serve --port 9090 --log-format console`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return errors.Wrap(err, "config error")
			}
			opts.apply(&cfg.Logging)
			if port != "" {
				cfg.Port = port
			}

			logger := config.NewLogger(cfg.Logging)
			logger.Info().Str("version", server.Version).Str("environment", cfg.Environment).Msg("starting vereinsapi")

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := server.Start(ctx, cfg, logger); err != nil {
				logger.Error().Err(err).Msg("server stopped with error")
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "server port (default: $PORT or 8080)")
	return cmd
}
