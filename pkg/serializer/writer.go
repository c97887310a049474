package serializer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// StdoutURI is the output path meaning standard output.
const StdoutURI = "-"

// Writer serializes values to an io.Writer.
type Writer struct {
	format Format
	output io.Writer
	closer io.Closer
}

// NewWriter creates a Writer for format writing to output. Unknown formats
// fall back to JSON and a nil output means standard output.
func NewWriter(format Format, output io.Writer) *Writer {
	if format.IsUnknown() {
		slog.Debug("unknown output format, using json", "format", format)
		format = FormatJSON
	}
	if output == nil {
		output = os.Stdout
	}
	return &Writer{format: format, output: output}
}

// NewStdoutWriter creates a Writer on standard output.
func NewStdoutWriter(format Format) *Writer {
	return NewWriter(format, os.Stdout)
}

// Option configures NewFileWriterOrStdout.
type Option func(*options)

type options struct {
	stdout io.Writer
}

// WithStdout replaces standard output as the destination for "" and "-".
func WithStdout(w io.Writer) Option {
	return func(o *options) {
		o.stdout = w
	}
}

// NewFileWriterOrStdout creates a Writer on path, or on standard output
// when path is empty or "-". The returned writer must be closed.
func NewFileWriterOrStdout(format Format, path string, opts ...Option) (*Writer, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	path = strings.TrimSpace(path)
	if path == "" || path == StdoutURI {
		if o.stdout != nil {
			return NewWriter(format, o.stdout), nil
		}
		return NewStdoutWriter(format), nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file %q: %w", path, err)
	}

	w := NewWriter(format, f)
	w.closer = f
	return w, nil
}

// Write writes p to the output unchanged.
func (w *Writer) Write(p []byte) (int, error) {
	return w.output.Write(p)
}

// Serialize writes v in the writer's format.
func (w *Writer) Serialize(ctx context.Context, v any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var (
		data []byte
		err  error
	)
	switch w.format {
	case FormatYAML:
		data, err = marshalYAML(v)
	case FormatTable:
		data, err = marshalTable(v)
	default:
		data, err = json.MarshalIndent(v, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return fmt.Errorf("failed to serialize to %s: %w", w.format, err)
	}

	if _, err := w.output.Write(data); err != nil {
		return fmt.Errorf("failed to write %s output: %w", w.format, err)
	}
	return nil
}

// Close closes the underlying file, if any. It is safe to call more than once.
func (w *Writer) Close() error {
	if w.closer == nil {
		return nil
	}
	c := w.closer
	w.closer = nil
	return c.Close()
}

func marshalYAML(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
