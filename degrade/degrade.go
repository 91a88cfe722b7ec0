// Package degrade runs operations so that failures turn into fallback values
// instead of errors. Nothing here retries or waits: an operation runs once,
// and on any failure (a returned error or a panic) the caller gets the
// fallback together with a marker saying degradation happened.
package degrade

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Keksclan/goRawrShield/metrics"
)

// Result is the outcome of a degradable operation.
type Result[T any] struct {
	// Value is the operation's result, or the fallback when Degraded.
	Value T

	// Degraded reports whether the fallback was substituted.
	Degraded bool

	// Err is the absorbed failure when Degraded. It is informational;
	// callers are not required to act on it.
	Err error
}

// PanicError carries a value recovered from a panicking operation.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string { return fmt.Sprintf("degrade: operation panicked: %v", e.Value) }

// WithFallback runs fn and returns its value, or fallback if fn fails.
func WithFallback[T any](fn func() (T, error), fallback T) Result[T] {
	return run("default", fallback, fn)
}

// WithFallbackContext is WithFallback for context-aware operations. name
// labels the operation in metrics and the debug notice.
func WithFallbackContext[T any](ctx context.Context, name string, fn func(context.Context) (T, error), fallback T) Result[T] {
	return run(name, fallback, func() (T, error) { return fn(ctx) })
}

func run[T any](name string, fallback T, fn func() (T, error)) (res Result[T]) {
	defer func() {
		if r := recover(); r != nil {
			res = degraded(name, fallback, &PanicError{Value: r})
		}
	}()

	v, err := fn()
	if err != nil {
		return degraded(name, fallback, err)
	}
	return Result[T]{Value: v}
}

func degraded[T any](name string, fallback T, err error) Result[T] {
	metrics.Fallbacks.WithLabelValues(name).Inc()
	slog.Debug("operation failed, using fallback", slog.String("operation", name), slog.Any("error", err))
	return Result[T]{Value: fallback, Degraded: true, Err: err}
}
