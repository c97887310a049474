package server

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/mocno/bandex/pkg/defaults"
	"github.com/mocno/bandex/pkg/logging"
)

// Config holds server configuration.
type Config struct {
	Address string
	Port    int

	// Token bucket applied to API routes.
	RateLimit      rate.Limit
	RateLimitBurst int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	LogLevel string
}

// DefaultConfig returns the default configuration, overridden by the PORT
// and LOG_LEVEL environment variables when they are set.
func DefaultConfig() *Config {
	cfg := &Config{
		Port:            8080,
		RateLimit:       20,
		RateLimitBurst:  40,
		ReadTimeout:     defaults.ServerReadTimeout,
		WriteTimeout:    defaults.ServerWriteTimeout,
		IdleTimeout:     defaults.ServerIdleTimeout,
		ShutdownTimeout: defaults.ServerShutdownTimeout,
		LogLevel:        slog.LevelInfo.String(),
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil && port > 0 {
			cfg.Port = port
		} else {
			slog.Warn("ignoring invalid PORT", "value", portStr)
		}
	}

	if lvl := os.Getenv(logging.EnvLogLevel); lvl != "" {
		cfg.LogLevel = lvl
	}

	return cfg
}

func (c *Config) addr() string {
	return c.Address + ":" + strconv.Itoa(c.Port)
}
