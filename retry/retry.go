package retry

import (
	"context"
	"log/slog"
	"time"

	"github.com/Keksclan/goRawrShield/metrics"
	"github.com/benbjohnson/clock"
)

// config holds per-call settings assembled via functional options.
type config struct {
	name    string
	clock   clock.Clock
	logger  *slog.Logger
	onRetry func(attempt int, err error, delay time.Duration)
}

// Option configures a single call to [Do].
type Option func(*config)

// WithName labels the operation in metrics and log records.
func WithName(name string) Option {
	return func(c *config) { c.name = name }
}

// WithClock replaces the wall clock used for waits, mainly for tests.
func WithClock(clk clock.Clock) Option {
	return func(c *config) {
		if clk != nil {
			c.clock = clk
		}
	}
}

// WithLogger sets the logger used for retry notices.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithOnRetry registers a callback invoked after a failed attempt that will
// be retried, with the delay about to be waited.
func WithOnRetry(fn func(attempt int, err error, delay time.Duration)) Option {
	return func(c *config) { c.onRetry = fn }
}

// Do calls fn until it succeeds or plan.MaxAttempts attempts have failed.
// After failed attempt n it waits plan.Delay(n) before trying again. When the
// budget is exhausted the error of the last attempt is returned unchanged;
// errors from earlier attempts are discarded. An error wrapped with
// [Permanent] ends the loop at once and is returned unwrapped.
//
// The context is checked while waiting; if ctx is done the function returns
// immediately with the context error.
func Do[T any](ctx context.Context, plan Plan, fn func(context.Context) (T, error), opts ...Option) (T, error) {
	cfg := config{
		name:   "default",
		clock:  clock.New(),
		logger: slog.Default(),
	}
	for _, o := range opts {
		o(&cfg)
	}

	var zero T
	attempts := plan.attempts()

	for attempt := 1; ; attempt++ {
		result, err := fn(ctx)
		if err == nil {
			metrics.RetryAttempts.WithLabelValues(cfg.name, "success").Inc()
			return result, nil
		}
		metrics.RetryAttempts.WithLabelValues(cfg.name, "failure").Inc()

		if cause := permanentCause(err); cause != nil {
			return zero, cause
		}
		if attempt >= attempts {
			return zero, err
		}

		delay := plan.Delay(attempt)
		cfg.logger.Debug("operation failed, retrying",
			slog.String("operation", cfg.name),
			slog.Int("attempt", attempt),
			slog.Duration("delay", delay),
			slog.Any("error", err),
		)
		if cfg.onRetry != nil {
			cfg.onRetry(attempt, err, delay)
		}
		metrics.RetryWait.WithLabelValues(cfg.name).Observe(delay.Seconds())

		if err := wait(ctx, cfg.clock, delay); err != nil {
			return zero, err
		}
	}
}

// wait suspends for d on clk, returning early with the context error when ctx
// is done.
func wait(ctx context.Context, clk clock.Clock, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := clk.Timer(d)
	select {
	case <-ctx.Done():
		timer.Stop()
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
