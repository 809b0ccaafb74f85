// Package config handles CLI configuration and environment loading.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Config holds settings shared by every sqltree command.
type Config struct {
	LogLevel        string // log level: debug, info, warn, error (default "info")
	LogFormat       string // log handler: text or json (default "text")
	Output          string // result format: table or json (default "table")
	LoadConcurrency int    // concurrent document reads (default 8)

	// Warnings collects non-fatal warnings generated during config loading.
	// These are logged by the caller after the logger is initialised.
	Warnings []string
}

// SlogLevel maps the LogLevel string to an slog.Level.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Validate checks that enumerated settings hold known values.
func (c *Config) Validate() error {
	switch c.Output {
	case "table", "json":
	default:
		return fmt.Errorf("unsupported output format %q: use 'table' or 'json'", c.Output)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("unsupported log format %q: use 'text' or 'json'", c.LogFormat)
	}
	if c.LoadConcurrency < 1 {
		return fmt.Errorf("load concurrency must be at least 1, got %d", c.LoadConcurrency)
	}
	return nil
}

// LoadFromEnv loads configuration from SQLTREE_* environment variables.
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		LogLevel:  strings.ToLower(os.Getenv(EnvPrefix + "LOG_LEVEL")),
		LogFormat: strings.ToLower(os.Getenv(EnvPrefix + "LOG_FORMAT")),
		Output:    strings.ToLower(os.Getenv(EnvPrefix + "OUTPUT")),
	}

	if v := os.Getenv(EnvPrefix + "LOAD_CONCURRENCY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("ignoring SQLTREE_LOAD_CONCURRENCY=%q: want a positive integer", v))
		} else {
			cfg.LoadConcurrency = n
		}
	}

	// Defaults
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "warning", "error":
	default:
		cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("unknown SQLTREE_LOG_LEVEL %q, using info", cfg.LogLevel))
		cfg.LogLevel = "info"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if cfg.Output == "" {
		cfg.Output = "table"
	}
	if cfg.LoadConcurrency == 0 {
		cfg.LoadConcurrency = 8
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// EnvPrefix is the prefix shared by every sqltree environment variable.
const EnvPrefix = "SQLTREE_"

// LoadDotEnv applies SQLTREE_* settings from a KEY=VALUE file. Variables that
// are already set keep their value, so the environment beats the file. Other
// keys are ignored: a project .env usually carries settings for other tools.
// A missing file is not an error.
func LoadDotEnv(path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // path is caller-controlled
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read env file %s: %w", path, err)
	}

	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(strings.TrimPrefix(line, "export "), "=")
		if !ok {
			return fmt.Errorf("%s:%d: expected KEY=VALUE", path, i+1)
		}
		key = strings.TrimSpace(key)
		if !strings.HasPrefix(key, EnvPrefix) {
			continue
		}
		if os.Getenv(key) != "" {
			continue
		}
		if err := os.Setenv(key, unquote(strings.TrimSpace(value))); err != nil {
			return fmt.Errorf("%s:%d: set %s: %w", path, i+1, key, err)
		}
	}
	return nil
}

// unquote drops one pair of matching single or double quotes around v.
func unquote(v string) string {
	if len(v) < 2 {
		return v
	}
	if q := v[0]; (q == '"' || q == '\'') && v[len(v)-1] == q {
		return v[1 : len(v)-1]
	}
	return v
}
