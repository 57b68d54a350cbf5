// Package config loads the elib service configuration from TOML files and
// ELIB_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/JaimeStill/elib/internal/auth"
	"github.com/JaimeStill/elib/pkg/database"
	"github.com/JaimeStill/elib/pkg/storage"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvElibEnv             = "ELIB_ENV"
	EnvElibShutdownTimeout = "ELIB_SHUTDOWN_TIMEOUT"
	EnvElibVersion         = "ELIB_VERSION"
)

var databaseEnv = &database.Env{
	Host:            "ELIB_DB_HOST",
	Port:            "ELIB_DB_PORT",
	Name:            "ELIB_DB_NAME",
	User:            "ELIB_DB_USER",
	Password:        "ELIB_DB_PASSWORD",
	SSLMode:         "ELIB_DB_SSL_MODE",
	MaxOpenConns:    "ELIB_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "ELIB_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "ELIB_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "ELIB_DB_CONN_TIMEOUT",
}

var storageEnv = &storage.Env{
	ContainerName:    "ELIB_STORAGE_CONTAINER_NAME",
	ConnectionString: "ELIB_STORAGE_CONNECTION_STRING",
	ServiceURL:       "ELIB_STORAGE_SERVICE_URL",
	PublicURL:        "ELIB_STORAGE_PUBLIC_URL",
	MaxRetries:       "ELIB_STORAGE_MAX_RETRIES",
	TryTimeout:       "ELIB_STORAGE_TRY_TIMEOUT",
}

var authEnv = &auth.Env{
	Secret:       "ELIB_AUTH_SECRET",
	Issuer:       "ELIB_AUTH_ISSUER",
	TokenTTL:     "ELIB_AUTH_TOKEN_TTL",
	PasswordCost: "ELIB_AUTH_PASSWORD_COST",
}

// Config is the root configuration for the elib service.
type Config struct {
	Server          ServerConfig    `toml:"server"`
	Log             LogConfig       `toml:"log"`
	Database        database.Config `toml:"database"`
	Storage         storage.Config  `toml:"storage"`
	Auth            auth.Config     `toml:"auth"`
	API             APIConfig       `toml:"api"`
	ShutdownTimeout string          `toml:"shutdown_timeout"`
	Version         string          `toml:"version"`
}

// Env returns the ELIB_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvElibEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads the base config (if present), applies any environment overlay,
// and finalizes all values. If no config.toml exists, defaults and environment
// variables provide all configuration.
func Load() (*Config, error) {
	return LoadFrom(BaseConfigFile)
}

// LoadFrom behaves like Load but reads the base config from path. The
// overlay is resolved next to it.
func LoadFrom(path string) (*Config, error) {
	cfg, err := read(path)
	if err != nil {
		return nil, err
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// LoadDatabase resolves only the [database] section from path, its overlay,
// and ELIB_DB_* variables. Tools that need a connection but none of the
// service secrets use it in place of LoadFrom.
func LoadDatabase(path string) (*database.Config, error) {
	cfg, err := read(path)
	if err != nil {
		return nil, err
	}

	if err := cfg.Database.Finalize(databaseEnv); err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}
	return &cfg.Database, nil
}

func read(path string) (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(path); err == nil {
		loaded, err := load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if overlay := overlayPath(path); overlay != "" {
		o, err := load(overlay)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", overlay, err)
		}
		cfg.Merge(o)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.Log.Merge(&overlay.Log)
	c.Database.Merge(&overlay.Database)
	c.Storage.Merge(&overlay.Storage)
	c.Auth.Merge(&overlay.Auth)
	c.API.Merge(&overlay.API)
}

func (c *Config) finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Log.Finalize(); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	if err := c.Database.Finalize(databaseEnv); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Storage.Finalize(storageEnv); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := c.Auth.Finalize(authEnv); err != nil {
		return fmt.Errorf("auth: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvElibShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvElibVersion); v != "" {
		c.Version = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath(base string) string {
	env := os.Getenv(EnvElibEnv)
	if env == "" {
		return ""
	}

	path := filepath.Join(filepath.Dir(base), fmt.Sprintf(OverlayConfigPattern, env))
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return ""
}
