package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/mocno/bandex/pkg/defaults"
	"github.com/mocno/bandex/pkg/menu"
	"github.com/mocno/bandex/pkg/serializer"
)

func restaurantsCmd() *cli.Command {
	return &cli.Command{
		Name:                  "restaurants",
		Aliases:               []string{"rest"},
		EnableShellCompletion: true,
		Usage:                 "List the restaurants known to the menu source",
		Description: `Queries the menu source for restaurant ids in increasing order and lists
their names. The scan stops at the first id the source does not know.

Use the ids in the restaurants section of the configuration file.`,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "from",
				Value: defaults.MinRestaurantID,
				Usage: "first restaurant id to query",
			},
			&cli.IntFlag{
				Name:  "to",
				Value: defaults.MaxRestaurantID,
				Usage: "last restaurant id to query",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}
			if outFormat == "" {
				outFormat = serializer.FormatTable
			}

			from, to := cmd.Int("from"), cmd.Int("to")
			if from > to {
				return fmt.Errorf("--from (%d) must not be greater than --to (%d)", from, to)
			}

			list, err := newClient(cmd).ListRestaurants(ctx, menu.RestaurantID(from), menu.RestaurantID(to))
			if err != nil {
				return fmt.Errorf("failed to list restaurants: %w", err)
			}

			return serialize(ctx, cmd, outFormat, list)
		},
	}
}
