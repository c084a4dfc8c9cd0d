package logging

import (
	"context"

	"github.com/charmbracelet/log"
)

type ctxKey int

const loggerCtxKey ctxKey = iota

// WithLogger stores logger in ctx. A nil ctx is treated as Background.
func WithLogger(ctx context.Context, logger *log.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, loggerCtxKey, logger)
}

// FromContext returns the logger stored in ctx, falling back to Default.
func FromContext(ctx context.Context) *log.Logger {
	if ctx != nil {
		if logger, _ := ctx.Value(loggerCtxKey).(*log.Logger); logger != nil {
			return logger
		}
	}
	return Default()
}

// With derives a child of the context logger carrying keyvals and stores it
// back in the returned context.
func With(ctx context.Context, keyvals ...any) (context.Context, *log.Logger) {
	logger := FromContext(ctx).With(keyvals...)
	return WithLogger(ctx, logger), logger
}
