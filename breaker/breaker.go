// Package breaker provides a minimal, thread-safe circuit breaker used to
// stop hammering an upstream that keeps failing.
//
// States:
//   - Closed: calls flow normally; consecutive failures are counted.
//   - Open: calls are refused; after OpenTimeout the breaker moves to HalfOpen.
//   - HalfOpen: a limited number of trial calls are let through; enough
//     successes close the breaker, any failure reopens it.
package breaker

import (
	"log/slog"
	"sync"
	"time"

	"github.com/Keksclan/goRawrShield/metrics"
	"github.com/benbjohnson/clock"
)

// State represents the current circuit breaker state.
type State int

const (
	Closed State = iota
	Open
	HalfOpen
)

// String returns the lower-case state name.
func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case Open:
		return "open"
	case HalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// Config holds the circuit breaker parameters.
type Config struct {
	// Name labels the breaker in metrics and log records. Empty means
	// "default".
	Name string

	// FailureThreshold is the number of consecutive failures tolerated while
	// Closed; reaching it trips the breaker.
	FailureThreshold int

	// OpenTimeout is how long calls are refused before trial calls resume.
	OpenTimeout time.Duration

	// HalfOpenMaxSuccess is the number of trial calls let through, all of
	// which must succeed to close the breaker again.
	HalfOpenMaxSuccess int
}

// DefaultConfig trips after five consecutive failures and probes again after
// thirty seconds.
var DefaultConfig = Config{
	FailureThreshold:   5,
	OpenTimeout:        30 * time.Second,
	HalfOpenMaxSuccess: 1,
}

// Breaker is a minimal circuit breaker. All methods are safe for concurrent use.
type Breaker struct {
	cfg   Config
	clock clock.Clock

	mu       sync.Mutex
	state    State
	streak   int // consecutive failures (Closed) or successes (HalfOpen)
	openedAt time.Time
}

// New creates a Breaker with the given configuration. clk may be nil, in
// which case the wall clock is used. Thresholds below 1 are raised to 1.
func New(cfg Config, clk clock.Clock) *Breaker {
	if clk == nil {
		clk = clock.New()
	}
	if cfg.Name == "" {
		cfg.Name = "default"
	}
	cfg.FailureThreshold = max(cfg.FailureThreshold, 1)
	cfg.HalfOpenMaxSuccess = max(cfg.HalfOpenMaxSuccess, 1)
	return &Breaker{cfg: cfg, clock: clk}
}

// State returns the current state. An Open breaker whose timeout has elapsed
// reports HalfOpen.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.expire()
	return b.state
}

// Allow reports whether a call may proceed.
func (b *Breaker) Allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.expire()

	switch b.state {
	case Closed:
		return true
	case HalfOpen:
		return b.streak < b.cfg.HalfOpenMaxSuccess
	default:
		return false
	}
}

// OnSuccess records a successful call.
func (b *Breaker) OnSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case Closed:
		b.streak = 0
	case HalfOpen:
		if b.streak++; b.streak >= b.cfg.HalfOpenMaxSuccess {
			b.setState(Closed)
		}
	}
}

// OnFailure records a failed call.
func (b *Breaker) OnFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case Closed:
		if b.streak++; b.streak >= b.cfg.FailureThreshold {
			b.setState(Open)
		}
	case HalfOpen:
		b.setState(Open)
	}
}

// expire moves an Open breaker to HalfOpen once OpenTimeout has passed.
// Must be called with b.mu held.
func (b *Breaker) expire() {
	if b.state == Open && b.clock.Since(b.openedAt) >= b.cfg.OpenTimeout {
		b.setState(HalfOpen)
	}
}

// setState switches to s and resets the streak. Must be called with b.mu held.
func (b *Breaker) setState(s State) {
	from := b.state
	b.state = s
	b.streak = 0
	if s == Open {
		b.openedAt = b.clock.Now()
	}

	metrics.BreakerTransitions.WithLabelValues(b.cfg.Name, s.String()).Inc()
	slog.Debug("circuit breaker state change",
		slog.String("breaker", b.cfg.Name),
		slog.String("from", from.String()),
		slog.String("to", s.String()),
	)
}
