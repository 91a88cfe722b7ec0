package cache

import "github.com/benbjohnson/clock"

// Start launches a background goroutine that calls Sweep once per sweep
// interval until Stop is called. Calling Start on a running cache is a no-op.
func (c *TTL[K, V]) Start() {
	c.lifeMu.Lock()
	defer c.lifeMu.Unlock()

	if c.stop != nil {
		return
	}
	c.stop = make(chan struct{})
	c.done = make(chan struct{})

	go c.sweeper(c.cfg.clock.Ticker(c.cfg.sweepInterval), c.stop, c.done)
}

// Stop halts the sweeper started by Start and waits for it to exit. Calling
// Stop on a cache that is not running is a no-op. Stored entries are kept.
func (c *TTL[K, V]) Stop() {
	c.lifeMu.Lock()
	stop, done := c.stop, c.done
	c.stop, c.done = nil, nil
	c.lifeMu.Unlock()

	if stop == nil {
		return
	}
	close(stop)
	<-done
}

func (c *TTL[K, V]) sweeper(t *clock.Ticker, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	defer t.Stop()

	for {
		select {
		case <-stop:
			return
		case <-t.C:
			c.Sweep()
		}
	}
}
