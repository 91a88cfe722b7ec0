package cache

import (
	"log/slog"
	"time"

	"github.com/benbjohnson/clock"
)

const (
	// DefaultTTL is the entry lifetime used when none is configured.
	DefaultTTL = 5 * time.Minute

	// DefaultSweepInterval is how often a started cache removes stale entries.
	DefaultSweepInterval = time.Minute
)

// config holds the settings assembled via functional options.
type config struct {
	name          string
	ttl           time.Duration
	sweepInterval time.Duration
	clock         clock.Clock
	logger        *slog.Logger
}

func defaultConfig() config {
	return config{
		name:          "default",
		ttl:           DefaultTTL,
		sweepInterval: DefaultSweepInterval,
		clock:         clock.New(),
		logger:        slog.Default(),
	}
}

// Option configures a TTL cache.
type Option func(*config)

// WithName sets the label used for metrics and log records.
func WithName(name string) Option {
	return func(c *config) {
		if name != "" {
			c.name = name
		}
	}
}

// WithDefaultTTL sets the TTL applied by Set. Non-positive values are ignored.
func WithDefaultTTL(ttl time.Duration) Option {
	return func(c *config) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithSweepInterval sets how often the sweeper runs after Start. Non-positive
// values are ignored.
func WithSweepInterval(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.sweepInterval = d
		}
	}
}

// WithClock replaces the wall clock, mainly for tests.
func WithClock(clk clock.Clock) Option {
	return func(c *config) {
		if clk != nil {
			c.clock = clk
		}
	}
}

// WithLogger sets the logger used for sweep notices.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
