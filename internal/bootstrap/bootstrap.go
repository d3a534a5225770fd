// Package bootstrap runs the process lifecycle of a command and its shutdown hooks.
package bootstrap

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

// DefaultShutdownTimeout bounds the time all shutdown hooks share.
const DefaultShutdownTimeout = 10 * time.Second

// App runs a blocking function and calls shutdown hooks once it ends,
// whether it returned by itself or the process was asked to stop.
type App struct {
	mu      sync.Mutex
	hooks   []func(ctx context.Context) error
	timeout time.Duration
	signals []os.Signal
}

// New creates a new App. A non-positive timeout falls back to DefaultShutdownTimeout.
func New(timeout time.Duration) *App {
	if timeout <= 0 {
		timeout = DefaultShutdownTimeout
	}
	return &App{
		timeout: timeout,
		signals: []os.Signal{os.Interrupt, syscall.SIGTERM},
	}
}

// AddShutdownHook registers a function to call during shutdown.
// Hooks run in reverse order of registration. Safe for concurrent use.
func (a *App) AddShutdownHook(fn func(ctx context.Context) error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.hooks = append(a.hooks, fn)
}

// Run executes run until it returns or ctx is cancelled by a signal or the caller.
// On cancellation the hooks run first, so they can unblock run, and Run then waits
// for run to return. Errors from run and from every hook are joined.
func (a *App) Run(ctx context.Context, run func(ctx context.Context) error) error {
	ctx, stop := signal.NotifyContext(ctx, a.signals...)
	defer stop()

	done := make(chan error, 1)
	go func() {
		done <- run(ctx)
	}()

	select {
	case err := <-done:
		return errors.Join(err, a.shutdown())
	case <-ctx.Done():
		stop()
		hookErr := a.shutdown()
		return errors.Join(<-done, hookErr)
	}
}

func (a *App) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
	defer cancel()

	a.mu.Lock()
	hooks := a.hooks
	a.hooks = nil
	a.mu.Unlock()

	var errs []error
	for i := len(hooks) - 1; i >= 0; i-- {
		if err := hooks[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
