package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/JaimeStill/elib/internal/config"
	"github.com/JaimeStill/elib/internal/infrastructure"
)

// Server owns the infrastructure, the mounted modules, and the HTTP listener.
type Server struct {
	cfg     *config.Config
	infra   *infrastructure.Infrastructure
	modules *Modules
	http    *http.Server
	logger  *slog.Logger
}

func NewServer(cfg *config.Config) (*Server, error) {
	infra, err := infrastructure.New(cfg)
	if err != nil {
		return nil, err
	}

	modules, err := NewModules(infra, cfg)
	if err != nil {
		return nil, err
	}

	router := buildRouter(infra)
	if err := modules.Mount(router); err != nil {
		return nil, err
	}

	logger := infra.Logger.With("system", "http")
	logger.Info(
		"server initialized",
		"addr", cfg.Server.Addr(),
		"env", cfg.Env(),
		"version", cfg.Version,
	)

	timeouts := cfg.Server.Timeouts()
	return &Server{
		cfg:     cfg,
		infra:   infra,
		modules: modules,
		logger:  logger,
		http: &http.Server{
			Addr:              cfg.Server.Addr(),
			Handler:           router,
			ReadTimeout:       timeouts.Read,
			ReadHeaderTimeout: timeouts.ReadHeader,
			WriteTimeout:      timeouts.Write,
			IdleTimeout:       timeouts.Idle,
			ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
		},
	}, nil
}

// Start brings up the infrastructure and binds the listener. A bind failure
// is returned to the caller; serve errors after that point are logged.
func (s *Server) Start() error {
	s.logger.Info("starting service")

	if err := s.infra.Start(); err != nil {
		return err
	}

	ln, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.http.Addr, err)
	}

	lc := s.infra.Lifecycle
	s.http.BaseContext = func(net.Listener) context.Context { return lc.Context() }

	go func() {
		s.logger.Info("server listening", "addr", ln.Addr().String())
		if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	lc.OnShutdown("http", func(ctx context.Context) error {
		s.logger.Info("draining connections")
		ctx, cancel := context.WithTimeout(ctx, s.cfg.Server.Timeouts().Shutdown)
		defer cancel()

		if err := s.http.Shutdown(ctx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		s.logger.Info("server shutdown complete")
		return nil
	})

	go func() {
		if err := lc.WaitForStartup(); err != nil {
			s.logger.Error("startup failed, readiness withheld", "error", err)
			return
		}
		s.logger.Info("all subsystems ready")
	}()

	return nil
}

func (s *Server) Shutdown(timeout time.Duration) error {
	s.logger.Info("initiating shutdown", "timeout", timeout)
	return s.infra.Lifecycle.Shutdown(timeout)
}
