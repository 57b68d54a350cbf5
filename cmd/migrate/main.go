// Command migrate applies the embedded elib schema migrations.
//
//	migrate [-config config.toml] [-dsn url] up|down|version|steps N|force V
//
// Without -dsn the connection comes from the same [database] config and
// ELIB_DB_* variables the server reads.
package main

import (
	"embed"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/joho/godotenv"

	"github.com/JaimeStill/elib/internal/config"
)

//go:embed migrations/*.sql
var migrations embed.FS

var errUsage = errors.New("usage: migrate [-config path] [-dsn url] up|down|version|steps N|force V")

func main() {
	configPath := flag.String("config", config.BaseConfigFile, "path to the base TOML config")
	dsn := flag.String("dsn", "", "postgres:// connection URL; overrides the config")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil)).With("cmd", "migrate")

	if err := run(logger, *configPath, *dsn, flag.Args()); err != nil {
		logger.Error("migration failed", "error", err)
		if errors.Is(err, errUsage) {
			flag.PrintDefaults()
		}
		os.Exit(1)
	}
}

func run(logger *slog.Logger, configPath, dsn string, args []string) error {
	if len(args) == 0 {
		return errUsage
	}

	if dsn == "" {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load .env: %w", err)
		}
		db, err := config.LoadDatabase(configPath)
		if err != nil {
			return err
		}
		dsn = db.URL()
	}

	source, err := iofs.New(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("open migration source: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, dsn)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer m.Close()

	switch cmd := args[0]; cmd {
	case "up":
		return apply(logger, cmd, m.Up())
	case "down":
		return apply(logger, cmd, m.Down())
	case "steps":
		n, err := intArg(args)
		if err != nil {
			return err
		}
		return apply(logger, cmd, m.Steps(n))
	case "force":
		v, err := intArg(args)
		if err != nil {
			return err
		}
		if err := m.Force(v); err != nil {
			return fmt.Errorf("force version %d: %w", v, err)
		}
		logger.Warn("version forced", "version", v)
		return nil
	case "version":
		v, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			logger.Info("no migrations applied")
			return nil
		}
		if err != nil {
			return fmt.Errorf("read version: %w", err)
		}
		logger.Info("current version", "version", v, "dirty", dirty)
		return nil
	default:
		return fmt.Errorf("unknown command %q: %w", cmd, errUsage)
	}
}

func apply(logger *slog.Logger, cmd string, err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("schema already current", "command", cmd)
		return nil
	}
	if err != nil {
		return fmt.Errorf("%s: %w", cmd, err)
	}
	logger.Info("migrations applied", "command", cmd)
	return nil
}

func intArg(args []string) (int, error) {
	if len(args) < 2 {
		return 0, fmt.Errorf("%s requires a number: %w", args[0], errUsage)
	}
	n, err := strconv.Atoi(args[1])
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not an integer", args[0], args[1])
	}
	return n, nil
}
