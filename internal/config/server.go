package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"time"
)

const (
	EnvServerHost              = "ELIB_SERVER_HOST"
	EnvServerPort              = "ELIB_SERVER_PORT"
	EnvServerReadTimeout       = "ELIB_SERVER_READ_TIMEOUT"
	EnvServerReadHeaderTimeout = "ELIB_SERVER_READ_HEADER_TIMEOUT"
	EnvServerWriteTimeout      = "ELIB_SERVER_WRITE_TIMEOUT"
	EnvServerIdleTimeout       = "ELIB_SERVER_IDLE_TIMEOUT"
	EnvServerShutdownTimeout   = "ELIB_SERVER_SHUTDOWN_TIMEOUT"
)

// ServerConfig holds the HTTP listener address and its timeouts. Timeouts
// are Go duration strings; ReadTimeout and WriteTimeout must cover a full
// multipart upload of the largest accepted book file.
type ServerConfig struct {
	Host              string `toml:"host"`
	Port              int    `toml:"port"`
	ReadTimeout       string `toml:"read_timeout"`
	ReadHeaderTimeout string `toml:"read_header_timeout"`
	WriteTimeout      string `toml:"write_timeout"`
	IdleTimeout       string `toml:"idle_timeout"`
	ShutdownTimeout   string `toml:"shutdown_timeout"`
}

// Timeouts are the parsed ServerConfig durations.
type Timeouts struct {
	Read       time.Duration
	ReadHeader time.Duration
	Write      time.Duration
	Idle       time.Duration
	Shutdown   time.Duration
}

// Addr returns the host:port listen address.
func (c *ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Timeouts parses the configured durations. Finalize has already rejected
// malformed values, so a finalized config parses cleanly.
func (c *ServerConfig) Timeouts() Timeouts {
	var t Timeouts
	for _, f := range c.durations(&t) {
		*f.dst, _ = time.ParseDuration(*f.raw)
	}
	return t
}

// Finalize applies defaults, environment overrides, and validation.
func (c *ServerConfig) Finalize() error {
	c.loadDefaults()
	if err := c.loadEnv(); err != nil {
		return err
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *ServerConfig) Merge(overlay *ServerConfig) {
	if overlay.Host != "" {
		c.Host = overlay.Host
	}
	if overlay.Port != 0 {
		c.Port = overlay.Port
	}

	var discard Timeouts
	theirs := overlay.durations(&discard)
	for i, f := range c.durations(&discard) {
		if *theirs[i].raw != "" {
			*f.raw = *theirs[i].raw
		}
	}
}

type duration struct {
	name string
	env  string
	raw  *string
	dst  *time.Duration
	def  string
}

func (c *ServerConfig) durations(t *Timeouts) []duration {
	return []duration{
		{"read_timeout", EnvServerReadTimeout, &c.ReadTimeout, &t.Read, "5m"},
		{"read_header_timeout", EnvServerReadHeaderTimeout, &c.ReadHeaderTimeout, &t.ReadHeader, "10s"},
		{"write_timeout", EnvServerWriteTimeout, &c.WriteTimeout, &t.Write, "5m"},
		{"idle_timeout", EnvServerIdleTimeout, &c.IdleTimeout, &t.Idle, "2m"},
		{"shutdown_timeout", EnvServerShutdownTimeout, &c.ShutdownTimeout, &t.Shutdown, "30s"},
	}
}

func (c *ServerConfig) loadDefaults() {
	if c.Host == "" {
		c.Host = "0.0.0.0"
	}
	if c.Port == 0 {
		c.Port = 8080
	}

	var discard Timeouts
	for _, f := range c.durations(&discard) {
		if *f.raw == "" {
			*f.raw = f.def
		}
	}
}

func (c *ServerConfig) loadEnv() error {
	if v := os.Getenv(EnvServerHost); v != "" {
		c.Host = v
	}
	if v := os.Getenv(EnvServerPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %q is not an integer", EnvServerPort, v)
		}
		c.Port = port
	}

	var discard Timeouts
	for _, f := range c.durations(&discard) {
		if v := os.Getenv(f.env); v != "" {
			*f.raw = v
		}
	}
	return nil
}

func (c *ServerConfig) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}

	var discard Timeouts
	for _, f := range c.durations(&discard) {
		d, err := time.ParseDuration(*f.raw)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", f.name, err)
		}
		if d <= 0 {
			return fmt.Errorf("invalid %s: must be positive", f.name)
		}
	}
	return nil
}
