// Package netmon probes network reachability and lets callers block until
// the network is reachable or a deadline passes.
//
// A [Monitor] keeps no history: every call to [Monitor.Probe] issues one
// fresh check, and [Monitor.WaitForNetwork] is a polling loop bounded by its
// maxWait argument. Probe failures of every kind collapse to false; raw
// network errors never reach the caller.
package netmon

import (
	"context"
	"log/slog"
	"time"

	"github.com/Keksclan/goRawrShield/metrics"
	"github.com/benbjohnson/clock"
)

// DefaultPollInterval is the fixed delay between probes in WaitForNetwork.
const DefaultPollInterval = time.Second

// Prober performs a single reachability check. A nil error means the check
// completed successfully.
type Prober interface {
	Probe(ctx context.Context) error
}

// ProbeFunc adapts an ordinary function to the [Prober] interface.
type ProbeFunc func(ctx context.Context) error

// Probe calls f(ctx).
func (f ProbeFunc) Probe(ctx context.Context) error { return f(ctx) }

// Monitor answers reachability questions using a [Prober].
type Monitor struct {
	prober   Prober
	interval time.Duration
	clock    clock.Clock
	logger   *slog.Logger
}

// Option configures a Monitor.
type Option func(*Monitor)

// WithPollInterval sets the fixed delay between probes. Non-positive values
// are ignored.
func WithPollInterval(d time.Duration) Option {
	return func(m *Monitor) {
		if d > 0 {
			m.interval = d
		}
	}
}

// WithClock replaces the wall clock, mainly for tests.
func WithClock(clk clock.Clock) Option {
	return func(m *Monitor) {
		if clk != nil {
			m.clock = clk
		}
	}
}

// WithLogger sets the logger used for probe notices.
func WithLogger(l *slog.Logger) Option {
	return func(m *Monitor) {
		if l != nil {
			m.logger = l
		}
	}
}

// New creates a Monitor that checks reachability with p.
func New(p Prober, opts ...Option) *Monitor {
	m := &Monitor{
		prober:   p,
		interval: DefaultPollInterval,
		clock:    clock.New(),
		logger:   slog.Default(),
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// PollInterval returns the delay between probes.
func (m *Monitor) PollInterval() time.Duration { return m.interval }

// Probe runs one reachability check and reports whether it succeeded. Any
// error, including a panic inside the prober, yields false.
func (m *Monitor) Probe(ctx context.Context) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Debug("network probe panicked", slog.Any("panic", r))
			ok = false
		}
		result := "unreachable"
		if ok {
			result = "reachable"
		}
		metrics.Probes.WithLabelValues(result).Inc()
	}()

	if err := m.prober.Probe(ctx); err != nil {
		m.logger.Debug("network probe failed", slog.Any("error", err))
		return false
	}
	return true
}

// WaitForNetwork probes repeatedly until a probe succeeds (returns true) or
// at least maxWait has elapsed since the call began (returns false). Probes
// are spaced by the poll interval; the final wait is shortened so the call
// gives up as soon as maxWait is reached. At most ceil(maxWait/interval)
// probes are made. If ctx is done the call returns false.
func (m *Monitor) WaitForNetwork(ctx context.Context, maxWait time.Duration) bool {
	start := m.clock.Now()

	for {
		if m.Probe(ctx) {
			return true
		}

		remaining := maxWait - m.clock.Since(start)
		if remaining <= 0 {
			return false
		}

		timer := m.clock.Timer(min(m.interval, remaining))
		select {
		case <-ctx.Done():
			timer.Stop()
			return false
		case <-timer.C:
		}

		if m.clock.Since(start) >= maxWait {
			m.logger.Debug("network still unreachable", slog.Duration("waited", maxWait))
			return false
		}
	}
}
