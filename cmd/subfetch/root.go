package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/subfetch/subfetch/internal/config"
	"github.com/subfetch/subfetch/internal/metrics"
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "subfetch",
		Short:         "Search and download subtitles for video files",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newSearchCommand(),
		newGetCommand(),
	)

	return root
}

// startMetricsServer exposes /metrics while the command runs, when enabled.
// The returned function shuts the server down.
func startMetricsServer(cfg *config.Config) func() {
	if !cfg.Metrics.Enabled {
		return func() {}
	}

	logger := config.GetLogger()
	server := metrics.NewHTTPServer(cfg.Metrics.Address, cfg.Metrics.Port)
	go func() {
		logger.Info().Str("address", server.Addr).Msg("Starting Prometheus metrics HTTP server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("Failed to serve metrics")
		}
	}()

	return func() {
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error().Err(err).Msg("Failed to shutdown metrics server")
		}
	}
}
