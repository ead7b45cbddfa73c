package sigctx

import (
	"context"
	"os/signal"
	"syscall"
)

// NotifyContext returns the application root context,
// canceled on the termination signals.
func NotifyContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
}
