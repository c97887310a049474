package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/mocno/bandex/pkg/config"
	"github.com/mocno/bandex/pkg/menu"
	"github.com/mocno/bandex/pkg/rucard"
	"github.com/mocno/bandex/pkg/serializer"
	"github.com/mocno/bandex/pkg/store"
)

// parseOutputFormat extracts and validates the output format from CLI flags.
// The text format is returned as an empty serializer format. Without an
// explicit --format, a .json, .yaml or .yml --output selects that format.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	if !cmd.IsSet("format") {
		if f, ok := serializer.FormatFromPath(strings.TrimSpace(cmd.String("output"))); ok && f != serializer.FormatTable {
			return f, nil
		}
	}

	f := strings.ToLower(strings.TrimSpace(cmd.String("format")))
	if f == formatText {
		return "", nil
	}
	outFormat := serializer.Format(f)
	if outFormat.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q, valid formats are: text, %s",
			f, strings.Join(serializer.SupportedFormats(), ", "))
	}
	return outFormat, nil
}

// loadConfig resolves and loads the configuration selected by the flags.
func loadConfig(cmd *cli.Command) (*config.Config, config.Location, error) {
	loc := config.Resolve(cmd.String("config"))
	slog.Debug("loading configuration", "path", loc.Path, "source", loc.Source)

	cfg, err := loc.Load()
	if err != nil {
		return nil, loc, err
	}
	return cfg, loc, nil
}

// newClient creates the menu source client.
func newClient(cmd *cli.Command) *rucard.Client {
	var opts []rucard.Option
	if u := cmd.String("source-url"); u != "" {
		opts = append(opts, rucard.WithBaseURL(u))
	}
	return rucard.New(opts...)
}

// newSource builds the cached menu source. The returned function releases
// the disk cache, if one was opened.
func newSource(ctx context.Context, cmd *cli.Command) (*menu.Cache, func()) {
	var fetcher menu.Fetcher = newClient(cmd)
	release := func() {}

	if !cmd.Bool("no-cache") {
		if st := openStore(ctx, cmd.String("cache-file")); st != nil {
			fetcher = st.Fetcher(fetcher)
			release = func() {
				if err := st.Close(); err != nil {
					slog.Warn("failed to close menu cache", "error", err)
				}
			}
		}
	}

	return menu.NewCache(fetcher), release
}

// openStore opens the disk cache at path, or the default location when path
// is empty. Failures are logged and yield nil.
func openStore(ctx context.Context, path string) *store.Store {
	if path == "" {
		p, err := store.DefaultPath()
		if err != nil {
			slog.Warn("menu cache disabled", "error", err)
			return nil
		}
		path = p
	}

	st, err := store.Open(path)
	if err != nil {
		slog.Warn("menu cache disabled", "error", err)
		return nil
	}
	if _, err := st.Prune(ctx); err != nil {
		slog.Debug("failed to prune menu cache", "error", err)
	}
	return st
}

// writeOutput opens --output for format, hands it to write and closes it.
func writeOutput(cmd *cli.Command, format serializer.Format, write func(*serializer.Writer) error) error {
	w, err := serializer.NewFileWriterOrStdout(format, cmd.String("output"),
		serializer.WithStdout(stdout(cmd)))
	if err != nil {
		return err
	}
	if err := write(w); err != nil {
		if cerr := w.Close(); cerr != nil {
			slog.Warn("failed to close output", "error", cerr)
		}
		return err
	}
	return w.Close()
}

// serialize writes v in format to --output.
func serialize(ctx context.Context, cmd *cli.Command, format serializer.Format, v any) error {
	return writeOutput(cmd, format, func(w *serializer.Writer) error {
		return w.Serialize(ctx, v)
	})
}

func stdout(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

// colorEnabled reports whether text output should be colorized.
func colorEnabled(cmd *cli.Command) bool {
	if cmd.Bool("no-color") || os.Getenv("NO_COLOR") != "" {
		return false
	}
	path := strings.TrimSpace(cmd.String("output"))
	return path == "" || path == serializer.StdoutURI
}
