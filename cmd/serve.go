// =============================================================================
// Quota Data Transformer - Serve Command
// =============================================================================
//
// This file defines the 'serve' command, which starts the HTTP API and runs
// until interrupted.
//
// COMMAND USAGE:
//   qdt serve [--addr :8080]
//
// =============================================================================

package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/quota-data-transformer/internal/server"
)

func newServeCommand(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the transformation pipeline over HTTP",
		Long: `The serve command starts an HTTP server exposing the pipeline:

  POST /api/transform   parse text or an uploaded file, return JSON
  POST /api/export      parse and download the table (?format=&view=&locale=)
  POST /api/sheets      list the sheets of an uploaded workbook
  GET  /healthz         liveness probe`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				a.cfg.ServerAddr = addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return server.New(a.cfg, a.logger).Run(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")
	return cmd
}
