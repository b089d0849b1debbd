// Package shutdown waits for SIGINT or SIGTERM and runs cleanup hooks.
package shutdown

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"finledger/pkg/logger"
)

const (
	LogSignalReceived = "shutdown signal received"
	LogContextDone    = "shutdown requested"
	LogHookFailed     = "shutdown hook failed"
	LogTimeout        = "shutdown timed out"
	LogCompleted      = "shutdown completed"
)

// ErrTimeout is returned when the hooks outlive the timeout.
var ErrTimeout = errors.New("shutdown timed out")

// Hook releases one resource.
type Hook func(context.Context) error

// Wait blocks until SIGINT, SIGTERM or ctx is done, then runs every hook
// concurrently within timeout. Hook errors are joined into the result.
func Wait(ctx context.Context, timeout time.Duration, hooks ...Hook) error {
	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	<-sigCtx.Done()
	if ctx.Err() != nil {
		logger.Log(ctx).Info(ctx, LogContextDone)
	} else {
		logger.Log(ctx).Info(ctx, LogSignalReceived)
	}

	return Run(context.WithoutCancel(ctx), timeout, hooks...)
}

// Run executes hooks concurrently and waits for them at most timeout.
func Run(ctx context.Context, timeout time.Duration, hooks ...Hook) error {
	log := logger.Log(ctx)

	hookCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for _, hook := range hooks {
		wg.Add(1)
		go func(fn Hook) {
			defer wg.Done()
			if err := fn(hookCtx); err != nil {
				log.Error(ctx, LogHookFailed, zap.Error(err))
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		}(hook)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-hookCtx.Done():
		log.Warn(ctx, LogTimeout, zap.Duration("timeout", timeout))
		return ErrTimeout
	}

	log.Info(ctx, LogCompleted)
	mu.Lock()
	defer mu.Unlock()
	return errors.Join(errs...)
}
