// Package clocktest provides clocks for deterministic timing tests.
package clocktest

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

// Instant is a mock clock whose timers fire as soon as they are created: each
// Timer call advances the mock time by the requested duration. Code that waits
// on timers therefore runs without real sleeps while Now still reflects the
// total time waited.
type Instant struct {
	*clock.Mock

	mu    sync.Mutex
	waits []time.Duration
}

// New returns an Instant clock starting at the mock epoch.
func New() *Instant {
	return &Instant{Mock: clock.NewMock()}
}

// Timer creates a mock timer for d and immediately advances the clock so that
// the timer has fired by the time it is returned.
func (c *Instant) Timer(d time.Duration) *clock.Timer {
	c.mu.Lock()
	c.waits = append(c.waits, d)
	c.mu.Unlock()

	t := c.Mock.Timer(d)
	c.Mock.Add(d)
	return t
}

// Waits returns every duration passed to Timer, in call order.
func (c *Instant) Waits() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]time.Duration(nil), c.waits...)
}

// Total returns the sum of all waited durations.
func (c *Instant) Total() time.Duration {
	var total time.Duration
	for _, d := range c.Waits() {
		total += d
	}
	return total
}
