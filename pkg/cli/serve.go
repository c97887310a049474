package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/mocno/bandex/pkg/api"
	"github.com/mocno/bandex/pkg/server"
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:                  "serve",
		EnableShellCompletion: true,
		Usage:                 "Run the bandex HTTP API",
		Description: `Serves the menus over HTTP:

  GET /v1/menus?weekday=3&meal=lunch   menus, same filters as the CLI
  GET /v1/restaurants                  configured restaurants and their names
  GET /health, /ready                  health checks
  GET /metrics                         Prometheus metrics

Logs are written as JSON; the level is read from LOG_LEVEL.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "address",
				Usage: "address to listen on (default: all interfaces)",
			},
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "port to listen on (default: $PORT or 8080)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, _, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			src, release := newSource(ctx, cmd)
			defer release()

			scfg := server.DefaultConfig()
			scfg.Address = cmd.String("address")
			if p := cmd.Int("port"); p > 0 {
				scfg.Port = int(p)
			}

			return api.Serve(ctx, src, cfg, version, server.WithConfig(scfg))
		},
	}
}
