package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/mocno/bandex/pkg/defaults"
	"github.com/mocno/bandex/pkg/display"
	"github.com/mocno/bandex/pkg/menu"
	"github.com/mocno/bandex/pkg/report"
	"github.com/mocno/bandex/pkg/serializer"
)

// now is the clock used to resolve today and the current meal.
var now = time.Now

func menusAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Present() {
		return fmt.Errorf("unexpected argument %q", cmd.Args().First())
	}

	outFormat, err := parseOutputFormat(cmd)
	if err != nil {
		return err
	}

	opts, err := selectOptions(cmd)
	if err != nil {
		return err
	}

	sel, err := menu.Select(opts, now())
	if err != nil {
		return err
	}

	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	src, release := newSource(ctx, cmd)
	defer release()

	fetchCtx, cancel := context.WithTimeout(ctx, defaults.FetchTimeout)
	defer cancel()

	rep, err := report.NewBuilder(src, cfg, report.WithClock(now)).Build(fetchCtx, sel)
	if err != nil {
		return fmt.Errorf("failed to load menus: %w", err)
	}

	if outFormat != "" {
		return serialize(ctx, cmd, outFormat, rep)
	}

	return writeOutput(cmd, serializer.FormatTable, func(w *serializer.Writer) error {
		return display.NewRenderer(w,
			display.WithColor(colorEnabled(cmd)),
			display.WithLogo(!cmd.Bool("no-logo")),
			display.WithVersion(version),
		).Render(rep)
	})
}

// selectOptions reads the filtering flags.
func selectOptions(cmd *cli.Command) (menu.SelectOptions, error) {
	opts := menu.SelectOptions{
		Lunch:      cmd.Bool("lunch"),
		Dinner:     cmd.Bool("dinner"),
		Everything: cmd.Bool("everything"),
	}

	if s := cmd.String("weekday"); s != "" {
		d, err := menu.ParseWeekday(s)
		if err != nil {
			return opts, err
		}
		opts.Weekday = &d
	}

	return opts, nil
}
