package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/mocno/bandex/pkg/config"
	"github.com/mocno/bandex/pkg/serializer"
)

func configCmd() *cli.Command {
	return &cli.Command{
		Name:                  "config",
		EnableShellCompletion: true,
		Usage:                 "Inspect the bandex configuration",
		Commands: []*cli.Command{
			{
				Name:   "validate",
				Usage:  "Validate the configuration file",
				Action: configValidateAction,
			},
			{
				Name:   "show",
				Usage:  "Print the effective configuration",
				Action: configShowAction,
			},
			{
				Name:   "schema",
				Usage:  "Print the JSON Schema of the configuration file",
				Action: configSchemaAction,
			},
		},
	}
}

func configValidateAction(_ context.Context, cmd *cli.Command) error {
	cfg, loc, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	where := "configuração padrão"
	if loc.Path != "" {
		where = fmt.Sprintf("%s (%s)", loc.Path, loc.Source)
	}

	_, err = fmt.Fprintf(stdout(cmd), "Configuração válida: %s\n  %d restaurantes, %d alimentos preferidos, %d alimentos evitados\n",
		where, len(cfg.Restaurants), len(cfg.Foods.Liked), len(cfg.Foods.Disliked))
	return err
}

func configShowAction(ctx context.Context, cmd *cli.Command) error {
	outFormat, err := parseOutputFormat(cmd)
	if err != nil {
		return err
	}

	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if outFormat == "" || outFormat == serializer.FormatYAML {
		data, err := config.Marshal(cfg)
		if err != nil {
			return err
		}
		return writeOutput(cmd, serializer.FormatYAML, func(w *serializer.Writer) error {
			if _, err := w.Write(data); err != nil {
				return fmt.Errorf("failed to write configuration: %w", err)
			}
			return nil
		})
	}

	return serialize(ctx, cmd, outFormat, cfg)
}

func configSchemaAction(_ context.Context, cmd *cli.Command) error {
	return writeOutput(cmd, serializer.FormatJSON, func(w *serializer.Writer) error {
		if _, err := w.Write(config.Schema()); err != nil {
			return fmt.Errorf("failed to write schema: %w", err)
		}
		return nil
	})
}
