package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

const (
	EnvLogLevel  = "ELIB_LOG_LEVEL"
	EnvLogFormat = "ELIB_LOG_FORMAT"
)

// LogConfig selects the slog handler and minimum level for service logs.
type LogConfig struct {
	// Level is one of debug, info, warn, or error.
	Level string `toml:"level"`
	// Format is text or json.
	Format string `toml:"format"`
}

// SlogLevel returns Level as a slog.Level. Finalize has already rejected
// unknown names.
func (c *LogConfig) SlogLevel() slog.Level {
	var l slog.Level
	l.UnmarshalText([]byte(c.Level))
	return l
}

// Finalize applies defaults, environment overrides, and validation.
func (c *LogConfig) Finalize() error {
	if c.Level == "" {
		c.Level = "info"
	}
	if c.Format == "" {
		c.Format = "text"
	}

	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.Format = v
	}

	c.Level = strings.ToLower(c.Level)
	c.Format = strings.ToLower(c.Format)

	var l slog.Level
	if err := l.UnmarshalText([]byte(c.Level)); err != nil {
		return fmt.Errorf("invalid level %q", c.Level)
	}
	if c.Format != "text" && c.Format != "json" {
		return fmt.Errorf("invalid format %q: must be text or json", c.Format)
	}
	return nil
}

// Merge overwrites non-empty fields from overlay.
func (c *LogConfig) Merge(overlay *LogConfig) {
	if overlay.Level != "" {
		c.Level = overlay.Level
	}
	if overlay.Format != "" {
		c.Format = overlay.Format
	}
}
