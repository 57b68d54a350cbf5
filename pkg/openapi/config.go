package openapi

import (
	"fmt"
	"net/url"
	"os"
	"strings"
)

// Config holds the document metadata published with the generated spec.
type Config struct {
	Title       string `toml:"title"`
	Description string `toml:"description"`
	// ServerURL is the public origin clients reach the API through, e.g.
	// "https://elib.example.com". Empty means the spec lists a relative server.
	ServerURL string `toml:"server_url"`
}

// ConfigEnv names the environment variables that override Config fields.
type ConfigEnv struct {
	Title       string
	Description string
	ServerURL   string
}

// Finalize applies defaults, then environment overrides, then checks that
// ServerURL, when present, is an absolute http(s) URL.
func (c *Config) Finalize(env *ConfigEnv) error {
	if c.Title == "" {
		c.Title = "elib API"
	}
	if c.Description == "" {
		c.Description = "Digital library administration: book records, cover images, and book files."
	}

	if env != nil {
		override(env.Title, &c.Title)
		override(env.Description, &c.Description)
		override(env.ServerURL, &c.ServerURL)
	}

	if c.ServerURL == "" {
		return nil
	}
	u, err := url.Parse(c.ServerURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("server_url must be an absolute http(s) URL: %q", c.ServerURL)
	}
	c.ServerURL = strings.TrimSuffix(c.ServerURL, "/")
	return nil
}

func override(name string, dst *string) {
	if name == "" {
		return
	}
	if v := os.Getenv(name); v != "" {
		*dst = v
	}
}

// Merge overwrites non-empty fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.Title != "" {
		c.Title = overlay.Title
	}
	if overlay.Description != "" {
		c.Description = overlay.Description
	}
	if overlay.ServerURL != "" {
		c.ServerURL = overlay.ServerURL
	}
}

// Server returns the server entry for an API mounted at basePath.
func (c *Config) Server(basePath string) string {
	return c.ServerURL + basePath
}
