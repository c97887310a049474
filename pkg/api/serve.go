// Package api wires the bandex report builder into the HTTP server.
package api

import (
	"context"
	"log/slog"

	"github.com/mocno/bandex/pkg/config"
	"github.com/mocno/bandex/pkg/logging"
	"github.com/mocno/bandex/pkg/report"
	"github.com/mocno/bandex/pkg/server"
)

const name = "bandex-api"

// Serve starts the API server for cfg and blocks until ctx is canceled or
// the process is signaled to stop.
func Serve(ctx context.Context, src report.Source, cfg *config.Config, version string, opts ...server.Option) error {
	logging.SetDefaultStructuredLogger(name, version)
	slog.Info("starting",
		"name", name,
		"version", version,
		"restaurants", len(cfg.Restaurants),
	)

	h := NewHandler(src, cfg)

	s := server.New(append([]server.Option{
		server.WithName(name),
		server.WithVersion(version),
		server.WithHandler(h.Routes()),
	}, opts...)...)

	if err := s.Run(ctx); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}

	return nil
}
