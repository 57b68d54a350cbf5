// Package pagination provides page requests, page results, and the page size
// policy applied to list and search endpoints.
package pagination

import (
	"fmt"
	"os"
	"strconv"

	"github.com/JaimeStill/elib/pkg/validation"
)

// Config bounds the page sizes a client may request.
type Config struct {
	DefaultPageSize int `toml:"default_page_size" validate:"gte=1,ltefield=MaxPageSize"`
	MaxPageSize     int `toml:"max_page_size" validate:"gte=1"`
}

// ConfigEnv names the environment variables that override Config fields.
type ConfigEnv struct {
	DefaultPageSize string
	MaxPageSize     string
}

// Finalize applies defaults, then environment overrides, then validates.
func (c *Config) Finalize(env *ConfigEnv) error {
	if c.DefaultPageSize <= 0 {
		c.DefaultPageSize = 20
	}
	if c.MaxPageSize <= 0 {
		c.MaxPageSize = 100
	}

	if env != nil {
		if err := envInt(env.DefaultPageSize, &c.DefaultPageSize); err != nil {
			return err
		}
		if err := envInt(env.MaxPageSize, &c.MaxPageSize); err != nil {
			return err
		}
	}

	return validation.Struct(c)
}

// Merge applies non-zero values from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.DefaultPageSize != 0 {
		c.DefaultPageSize = overlay.DefaultPageSize
	}
	if overlay.MaxPageSize != 0 {
		c.MaxPageSize = overlay.MaxPageSize
	}
}

func envInt(name string, dst *int) error {
	if name == "" {
		return nil
	}
	v := os.Getenv(name)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %q is not an integer", name, v)
	}
	*dst = n
	return nil
}
