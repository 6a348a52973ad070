package main

import (
	"github.com/spf13/cobra"

	"github.com/jugehoerig/vereinsapi/config"
)

type rootOptions struct {
	logLevel  string
	logFormat string
}

// apply lets the global flags override the logging settings from the
// environment.
func (o *rootOptions) apply(cfg *config.LoggingConfig) {
	if o.logLevel != "" {
		cfg.Level = o.logLevel
	}
	if o.logFormat != "" {
		cfg.Format = o.logFormat
	}
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}
	serve := newServeCommand(opts)

	root := &cobra.Command{
		Use:   "vereinsapi",
		Short: "Vereinsapi - events, registrations and inquiries of the association",
		Long: `Vereinsapi serves the event and registration backend of the association.

Configuration is read from environment variables. A .env file in the
working directory is loaded first when present.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		// Without a subcommand the server is started.
		RunE: serve.RunE,
	}

	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error) (default: info)")
	root.PersistentFlags().StringVar(&opts.logFormat, "log-format", "", "log format (json, console) (default: json)")

	root.AddCommand(serve)
	root.AddCommand(newTokenCommand())
	root.AddCommand(newVersionCommand())
	return root
}
