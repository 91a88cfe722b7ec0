package contextx

import (
	"context"
	"log/slog"
)

// WithLogger returns a derived context that carries l.
func WithLogger(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// Logger returns the logger stored in ctx, falling back to fallback and then
// to slog.Default(). When ctx carries an operation ID the returned logger
// includes it.
func Logger(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	l, ok := ctx.Value(loggerKey).(*slog.Logger)
	if !ok || l == nil {
		l = fallback
	}
	if l == nil {
		l = slog.Default()
	}
	if id := OperationIDFromContext(ctx); id != "" {
		l = l.With(slog.String("op_id", id))
	}
	return l
}
