package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	"github.com/mocno/bandex/pkg/logging"
)

const name = "bandex"

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/mocno/bandex/pkg/cli.version=1.0.0"
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Execute runs the bandex command with the process arguments and exits
// with status 1 on failure.
func Execute() {
	if err := newRootCmd().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Erro: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cli.Command {
	return &cli.Command{
		Name:                   name,
		Version:                fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		Usage:                  "Mostra o cardápio dos restaurantes da USP",
		EnableShellCompletion:  true,
		UseShortOptionHandling: true,
		Description: `Shows the menus of the USP restaurants for the meal being served now,
a specific weekday or the whole week. Liked foods are highlighted in green and
disliked foods in red.

Examples:
  bandex -a            today's lunch
  bandex -j -w sexta   Friday's dinner
  bandex -e            the whole week`,
		Flags:  rootFlags(),
		Before: setup,
		Action: menusAction,
		Commands: []*cli.Command{
			restaurantsCmd(),
			configCmd(),
			serveCmd(),
		},
	}
}

// setup loads .env variables and installs the CLI logger.
func setup(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return ctx, fmt.Errorf("failed to load .env: %w", err)
	}

	level := logging.ParseLevel(os.Getenv(logging.EnvLogLevel))
	if cmd.Bool("debug") {
		level = slog.LevelDebug
	}
	logging.SetDefaultCLILogger(level, cmd.Bool("log-json"))

	slog.Debug("starting", "name", name, "version", version, "commit", commit)
	return ctx, nil
}
