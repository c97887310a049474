package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// EnvConfigFile names the environment variable holding the configuration path.
const EnvConfigFile = "BANDEX_CONFIG_FILE"

// Source tells where a configuration came from.
type Source string

const (
	SourceFlag    Source = "flag"
	SourceEnv     Source = "env"
	SourceUser    Source = "user"
	SourceDefault Source = "default"
)

// Location is a resolved configuration location.
type Location struct {
	Path   string `json:"path,omitempty" yaml:"path,omitempty"`
	Source Source `json:"source" yaml:"source"`
}

// Resolve finds the configuration file to use. flagPath takes precedence
// over the environment, which takes precedence over the per-user file.
// When none applies the location is SourceDefault with no path.
func Resolve(flagPath string) Location {
	if flagPath != "" {
		return Location{Path: flagPath, Source: SourceFlag}
	}
	if p := os.Getenv(EnvConfigFile); p != "" {
		return Location{Path: p, Source: SourceEnv}
	}
	if p, ok := userConfigPath(); ok {
		return Location{Path: p, Source: SourceUser}
	}
	return Location{Source: SourceDefault}
}

func userConfigPath() (string, bool) {
	dir, err := os.UserConfigDir()
	if err != nil {
		slog.Debug("no user config dir", "error", err)
		return "", false
	}
	p := filepath.Join(dir, "bandex", "config.yaml")
	if _, err := os.Stat(p); err != nil {
		return "", false
	}
	return p, true
}

// Load reads and validates the configuration at l. The default location
// yields Default().
func (l Location) Load() (*Config, error) {
	if l.Source == SourceDefault {
		return Default(), nil
	}
	return Load(l.Path)
}

// Load reads and validates a configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	slog.Debug("configuration loaded",
		"path", path,
		"restaurants", len(cfg.Restaurants),
		"liked", len(cfg.Foods.Liked),
		"disliked", len(cfg.Foods.Disliked),
	)
	return cfg, nil
}

// document is the top level of a configuration document.
type document struct {
	Bandex *Config `yaml:"bandex"`
}

// Parse decodes every YAML document in data, merges their bandex sections
// and validates the result.
func Parse(data []byte) (*Config, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("configuration file is empty")
	}

	cfg := &Config{}
	found := false

	dec := yaml.NewDecoder(bytes.NewReader(data))
	for i := 0; ; i++ {
		var doc document
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", i+1, err)
		}
		if doc.Bandex == nil {
			slog.Debug("ignoring document without bandex section", "document", i+1)
			continue
		}
		found = true
		cfg.merge(doc.Bandex)
	}

	if !found {
		return nil, errors.New("no bandex section found")
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Marshal encodes cfg as a YAML configuration file.
func Marshal(cfg *Config) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(document{Bandex: cfg}); err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	return buf.Bytes(), nil
}
