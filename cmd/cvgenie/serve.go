package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-genie/internal/builder"
	"github.com/jonathan/cv-genie/internal/export"
	"github.com/jonathan/cv-genie/internal/server"
	"github.com/jonathan/cv-genie/internal/server/ratelimit"
)

func newServeCmd(a *app) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long:  `Start an HTTP server that hosts editing sessions, live previews and exports.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("port") {
				port = a.cfg.Port
			}
			format, err := export.ParseFormat(a.cfg.ExportFormat)
			if err != nil {
				return err
			}

			limits := ratelimit.LoadConfig(a.cfg.RateLimitExportPerHour)
			srv, err := server.New(server.Config{
				Port:         port,
				Store:        builder.NewStore(a.registry, a.logger),
				Rasterizer:   a.newRasterizer(a.cfg, a.logger),
				ExportFormat: format,
				RateLimit:    limits,
				Logger:       a.logger,
			})
			if err != nil {
				return fmt.Errorf("failed to create server: %w", err)
			}

			return srv.Start(cmd.Context())
		},
	}

	cmd.Flags().IntVar(&port, "port", 8080, "Port to listen on")
	return cmd
}
