// Package infrastructure assembles the shared systems every elib module
// depends on: the lifecycle coordinator, the service logger, the PostgreSQL
// pool, blob storage, and the token issuer.
package infrastructure

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/JaimeStill/elib/internal/auth"
	"github.com/JaimeStill/elib/internal/config"
	"github.com/JaimeStill/elib/pkg/database"
	"github.com/JaimeStill/elib/pkg/lifecycle"
	"github.com/JaimeStill/elib/pkg/storage"
)

// Infrastructure holds the core systems shared by the API and web modules.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Database  database.System
	Storage   storage.System
	Tokens    *auth.Tokens
}

// New constructs every system from cfg without connecting to anything.
// Connections are verified by the startup hooks Start registers.
func New(cfg *config.Config) (*Infrastructure, error) {
	logger := NewLogger(&cfg.Log, os.Stderr).With("version", cfg.Version)

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}

	store, err := storage.New(&cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}

	return &Infrastructure{
		Lifecycle: lifecycle.New(),
		Logger:    logger,
		Database:  db,
		Storage:   store,
		Tokens:    auth.NewTokens(&cfg.Auth),
	}, nil
}

// NewLogger builds the service logger described by cfg, writing to w.
func NewLogger(cfg *config.LogConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Start registers the database and storage lifecycle hooks. Startup hooks
// run immediately; call Lifecycle.WaitForStartup to observe their outcome.
func (i *Infrastructure) Start() error {
	if err := i.Database.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("start database: %w", err)
	}
	if err := i.Storage.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("start storage: %w", err)
	}
	return nil
}
