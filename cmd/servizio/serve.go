package main

import (
	"log/slog"

	"github.com/anfive/servizio-cli/internal/server"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var cfg server.Config

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the Style Code codec over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Logger = slog.Default()
			if err := server.New(cfg).ListenAndServe(cmd.Context()); err != nil {
				return exitError(exitIO, "%v", err)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfg.Addr, "addr", ":8080", "Listen address")
	flags.StringSliceVar(&cfg.AllowedOrigins, "cors-origin", nil, "Allowed CORS origin (may be repeated)")

	return cmd
}
