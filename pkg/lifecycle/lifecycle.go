// Package lifecycle coordinates startup and shutdown hooks across the
// subsystems of a long-running service.
//
// Startup hooks begin running as soon as they are registered. Shutdown hooks
// are held until Shutdown, which cancels the coordinator context and then runs
// them concurrently under a shared deadline.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// ErrShutdownTimeout is returned when shutdown hooks outlive the deadline.
var ErrShutdownTimeout = errors.New("shutdown timed out")

// Hook is a unit of startup or shutdown work.
type Hook func(ctx context.Context) error

type namedHook struct {
	name string
	fn   Hook
}

// Coordinator runs startup hooks, tracks readiness, and drives shutdown.
type Coordinator struct {
	ctx    context.Context
	cancel context.CancelFunc

	startup   sync.WaitGroup
	errMu     sync.Mutex
	startErrs []error
	ready     atomic.Bool

	hookMu   sync.Mutex
	shutdown []namedHook
}

// New creates a Coordinator with a cancellable context.
func New() *Coordinator {
	ctx, cancel := context.WithCancel(context.Background())
	return &Coordinator{
		ctx:    ctx,
		cancel: cancel,
	}
}

// Context returns the coordinator's context, cancelled when Shutdown begins.
func (c *Coordinator) Context() context.Context {
	return c.ctx
}

// OnStartup starts fn in its own goroutine with the coordinator context.
// A returned error keeps the coordinator from becoming ready.
func (c *Coordinator) OnStartup(name string, fn Hook) {
	c.startup.Go(func() {
		if err := fn(c.ctx); err != nil {
			c.errMu.Lock()
			c.startErrs = append(c.startErrs, fmt.Errorf("%s: %w", name, err))
			c.errMu.Unlock()
		}
	})
}

// OnShutdown registers fn to run during Shutdown.
func (c *Coordinator) OnShutdown(name string, fn Hook) {
	c.hookMu.Lock()
	defer c.hookMu.Unlock()
	c.shutdown = append(c.shutdown, namedHook{name: name, fn: fn})
}

// Ready reports whether every startup hook has completed without error.
func (c *Coordinator) Ready() bool {
	return c.ready.Load()
}

// WaitForStartup blocks until all startup hooks return. It marks the
// coordinator ready only when none failed, otherwise it returns their errors.
func (c *Coordinator) WaitForStartup() error {
	c.startup.Wait()

	c.errMu.Lock()
	err := errors.Join(c.startErrs...)
	c.errMu.Unlock()

	c.ready.Store(err == nil)
	return err
}

// Shutdown cancels the coordinator context and runs every shutdown hook
// concurrently with a context bounded by timeout.
func (c *Coordinator) Shutdown(timeout time.Duration) error {
	c.ready.Store(false)
	c.cancel()

	c.hookMu.Lock()
	hooks := append([]namedHook(nil), c.shutdown...)
	c.hookMu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for _, h := range hooks {
		wg.Go(func() {
			if err := h.fn(ctx); err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("%s: %w", h.name, err))
				mu.Unlock()
			}
		})
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return errors.Join(errs...)
	case <-ctx.Done():
		return fmt.Errorf("%w after %v", ErrShutdownTimeout, timeout)
	}
}
