package cli

import (
	"github.com/urfave/cli/v3"

	"github.com/mocno/bandex/pkg/config"
)

const (
	// formatText renders the colorized report.
	formatText = "text"

	// envSourceURL overrides the menu source base URL.
	envSourceURL = "BANDEX_SOURCE_URL"
)

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "configuration file (default: $" + config.EnvConfigFile + " or <user config dir>/bandex/config.yaml)",
	}
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Value:   formatText,
		Usage:   "output format (text, json, yaml)",
	}
}

func outputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "output file path (default: stdout)",
	}
}

func rootFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:    "lunch",
			Aliases: []string{"a"},
			Usage:   "show lunch (almoço)",
		},
		&cli.BoolFlag{
			Name:    "dinner",
			Aliases: []string{"j"},
			Usage:   "show dinner (jantar)",
		},
		&cli.StringFlag{
			Name:    "weekday",
			Aliases: []string{"w"},
			Usage:   "weekday to show, 1 (Monday) to 7 (Sunday) or a day name (default: today)",
		},
		&cli.BoolFlag{
			Name:    "everything",
			Aliases: []string{"e"},
			Usage:   "show both meals from Monday to Friday",
		},
		configFlag(),
		formatFlag(),
		outputFlag(),
		&cli.BoolFlag{
			Name:  "no-color",
			Usage: "disable colors (also set by NO_COLOR)",
		},
		&cli.BoolFlag{
			Name:  "no-logo",
			Usage: "do not print the logo",
		},
		&cli.BoolFlag{
			Name:  "no-cache",
			Usage: "always query the menu source, ignoring the menu cache",
		},
		&cli.StringFlag{
			Name:  "cache-file",
			Usage: "menu cache database (default: <user cache dir>/bandex/menus.db)",
		},
		&cli.StringFlag{
			Name:    "source-url",
			Usage:   "base URL of the menu source",
			Sources: cli.EnvVars(envSourceURL),
			Hidden:  true,
		},
		&cli.BoolFlag{
			Name:  "debug",
			Usage: "enable debug logging",
		},
		&cli.BoolFlag{
			Name:  "log-json",
			Usage: "write logs as JSON",
		},
	}
}
