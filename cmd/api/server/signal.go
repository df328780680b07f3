package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// shutdownSignals stop both the API server and the generate CLI.
var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

// WithSignal returns a context canceled on SIGINT or SIGTERM. The returned
// stop func unregisters the handler and cancels the context, so the caller
// must always defer it.
func WithSignal(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, shutdownSignals...)
}
