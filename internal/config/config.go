// Package config loads command line settings from the environment, with
// an optional .env file applied first.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables read by Load.
const (
	EnvLogLevel            = "EXCELSTREAM_LOG_LEVEL"
	EnvLogFormat           = "EXCELSTREAM_LOG_FORMAT"
	EnvMaxConcurrentSheets = "EXCELSTREAM_MAX_CONCURRENT_SHEETS"
)

// Config holds the command line settings.
type Config struct {
	Logging LoggingConfig
	Reader  ReaderConfig
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string
	// Format is the log format: text or json (default: text)
	Format string
}

// ReaderConfig holds workbook reading settings.
type ReaderConfig struct {
	// MaxConcurrentSheets bounds concurrent sheet iteration (default: 0, unbounded)
	MaxConcurrentSheets int
}

// Load applies envFile, if it exists, and reads the environment.
// Variables already set in the environment take precedence over the file.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config load: %w", err)
		}
	}

	cfg := &Config{
		Logging: LoggingConfig{
			Level:  getenv(EnvLogLevel, "info"),
			Format: getenv(EnvLogFormat, "text"),
		},
	}

	if v := os.Getenv(EnvMaxConcurrentSheets); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("config load: %s: %w", EnvMaxConcurrentSheets, err)
		}
		cfg.Reader.MaxConcurrentSheets = n
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

// Validate checks the settings.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%s: unknown level %q", EnvLogLevel, c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("%s: unknown format %q", EnvLogFormat, c.Logging.Format)
	}
	if c.Reader.MaxConcurrentSheets < 0 {
		return fmt.Errorf("%s must not be negative", EnvMaxConcurrentSheets)
	}
	return nil
}

func getenv(name, def string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return def
}
