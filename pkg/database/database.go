// Package database owns the PostgreSQL connection pool and ties its
// availability to the lifecycle coordinator.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/JaimeStill/elib/pkg/lifecycle"
)

// System exposes the pool and its health to the rest of the service.
type System interface {
	// Connection returns the shared pool.
	Connection() *sql.DB
	// Start registers the startup ping and the shutdown close.
	Start(lc *lifecycle.Coordinator) error
	// Ready reports whether the startup ping succeeded and the pool is open.
	Ready() bool
	// Check pings the server, bounded by the configured connect timeout.
	// It returns ErrNotReady without a round trip while the system is not ready.
	Check(ctx context.Context) error
}

type database struct {
	conn        *sql.DB
	logger      *slog.Logger
	connTimeout time.Duration
	ready       atomic.Bool
}

// New opens the pool through the pgx stdlib driver and applies pool limits.
// sql.Open is lazy, so no connection exists until the startup hook pings.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	conn, err := sql.Open("pgx", cfg.URL())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	conn.SetMaxOpenConns(cfg.MaxOpenConns)
	conn.SetMaxIdleConns(cfg.MaxIdleConns)
	conn.SetConnMaxLifetime(cfg.ConnMaxLifetimeDuration())

	logger = logger.With("system", "database", "host", cfg.Host, "name", cfg.Name)
	logger.Debug("pool configured",
		"max_open", cfg.MaxOpenConns,
		"max_idle", cfg.MaxIdleConns,
		"max_lifetime", cfg.ConnMaxLifetime,
	)

	return &database{
		conn:        conn,
		logger:      logger,
		connTimeout: cfg.ConnTimeoutDuration(),
	}, nil
}

func (d *database) Connection() *sql.DB {
	return d.conn
}

func (d *database) Ready() bool {
	return d.ready.Load()
}

func (d *database) Check(ctx context.Context) error {
	if !d.ready.Load() {
		return ErrNotReady
	}
	return d.ping(ctx)
}

func (d *database) ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, d.connTimeout)
	defer cancel()

	if err := d.conn.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	return nil
}

func (d *database) Start(lc *lifecycle.Coordinator) error {
	lc.OnStartup("database", func(ctx context.Context) error {
		start := time.Now()
		if err := d.ping(ctx); err != nil {
			d.logger.Error("database unreachable", "error", err)
			return err
		}

		d.ready.Store(true)
		d.logger.Info("database connected", "elapsed", time.Since(start))
		return nil
	})

	lc.OnShutdown("database", func(context.Context) error {
		d.ready.Store(false)

		if err := d.conn.Close(); err != nil {
			return fmt.Errorf("close database: %w", err)
		}
		d.logger.Info("database pool closed")
		return nil
	})

	return nil
}
