package storage

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds Azure Blob Storage connection parameters.
// Either ConnectionString or ServiceURL must be set; with only ServiceURL
// the client authenticates through the Azure default credential chain.
// PublicURL overrides the base of the URLs handed out for stored blobs
// (for example a CDN endpoint fronting the container).
type Config struct {
	ContainerName    string `toml:"container_name"`
	ConnectionString string `toml:"connection_string"`
	ServiceURL       string `toml:"service_url"`
	PublicURL        string `toml:"public_url"`
	// MaxRetries bounds how often the blob client retries a failed request.
	// -1 disables retries.
	MaxRetries int `toml:"max_retries"`
	// TryTimeout caps a single attempt, so a stalled upload cannot hold a
	// request open for the whole retry budget.
	TryTimeout string `toml:"try_timeout"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	ContainerName    string
	ConnectionString string
	ServiceURL       string
	PublicURL        string
	MaxRetries       string
	TryTimeout       string
}

// TryTimeoutDuration returns TryTimeout as a time.Duration.
func (c *Config) TryTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.TryTimeout)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		if err := c.loadEnv(env); err != nil {
			return err
		}
	}
	c.PublicURL = strings.TrimSuffix(c.PublicURL, "/")
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.ContainerName != "" {
		c.ContainerName = overlay.ContainerName
	}
	if overlay.ConnectionString != "" {
		c.ConnectionString = overlay.ConnectionString
	}
	if overlay.ServiceURL != "" {
		c.ServiceURL = overlay.ServiceURL
	}
	if overlay.PublicURL != "" {
		c.PublicURL = overlay.PublicURL
	}
	if overlay.MaxRetries != 0 {
		c.MaxRetries = overlay.MaxRetries
	}
	if overlay.TryTimeout != "" {
		c.TryTimeout = overlay.TryTimeout
	}
}

func (c *Config) loadDefaults() {
	if c.ContainerName == "" {
		c.ContainerName = "books"
	}
	if c.MaxRetries == 0 {
		c.MaxRetries = 3
	}
	if c.TryTimeout == "" {
		c.TryTimeout = "1m"
	}
}

func (c *Config) loadEnv(env *Env) error {
	set := func(name string, field *string) {
		if name == "" {
			return
		}
		if v := os.Getenv(name); v != "" {
			*field = v
		}
	}

	set(env.ContainerName, &c.ContainerName)
	set(env.ConnectionString, &c.ConnectionString)
	set(env.ServiceURL, &c.ServiceURL)
	set(env.PublicURL, &c.PublicURL)
	set(env.TryTimeout, &c.TryTimeout)

	if env.MaxRetries != "" {
		if v := os.Getenv(env.MaxRetries); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%s: %q is not an integer", env.MaxRetries, v)
			}
			c.MaxRetries = n
		}
	}
	return nil
}

func (c *Config) validate() error {
	if c.ContainerName == "" {
		return fmt.Errorf("container_name required")
	}
	if c.ConnectionString == "" && c.ServiceURL == "" {
		return fmt.Errorf("connection_string or service_url required")
	}
	if c.ServiceURL != "" {
		if _, err := url.ParseRequestURI(c.ServiceURL); err != nil {
			return fmt.Errorf("invalid service_url: %w", err)
		}
	}
	if c.PublicURL != "" {
		if _, err := url.ParseRequestURI(c.PublicURL); err != nil {
			return fmt.Errorf("invalid public_url: %w", err)
		}
	}
	if c.MaxRetries < -1 {
		return fmt.Errorf("max_retries must be -1 or greater")
	}
	if d, err := time.ParseDuration(c.TryTimeout); err != nil || d <= 0 {
		return fmt.Errorf("invalid try_timeout %q", c.TryTimeout)
	}
	return nil
}
