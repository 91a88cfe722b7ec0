// Package cache provides an in-process keyed store whose entries expire
// independently after a per-entry time-to-live.
//
// A [TTL] never fails and never blocks on I/O. Stale entries are logically
// absent: a read that discovers one removes it, and [TTL.Sweep] removes all of
// them in one pass. Both paths use the same staleness predicate, so a value is
// never returned by one path after the other would have considered it expired.
package cache

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/Keksclan/goRawrShield/metrics"
)

// entry is a single cached value together with its insertion time and TTL.
type entry[V any] struct {
	value     V
	createdAt time.Time
	ttl       time.Duration
}

// live reports whether the entry may still be served at now.
func (e *entry[V]) live(now time.Time) bool {
	return now.Sub(e.createdAt) <= e.ttl
}

// TTL is a keyed cache with independent per-entry expiry. The zero value is
// not usable; construct one with [New]. All methods are safe for concurrent
// use.
type TTL[K comparable, V any] struct {
	cfg config

	mu    sync.Mutex
	items map[K]*entry[V]

	loadMu sync.Mutex
	loads  map[K]*call[V]

	lifeMu sync.Mutex
	stop   chan struct{}
	done   chan struct{}
}

var errLoaderPanicked = errors.New("cache: loader panicked")

// call deduplicates concurrent loads for the same key.
type call[V any] struct {
	wg  sync.WaitGroup
	val V
	err error
}

// New creates an empty cache. Without options entries live for
// [DefaultTTL] and the sweeper, once started, runs every
// [DefaultSweepInterval].
func New[K comparable, V any](opts ...Option) *TTL[K, V] {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}
	return &TTL[K, V]{
		cfg:   cfg,
		items: make(map[K]*entry[V]),
		loads: make(map[K]*call[V]),
	}
}

// Name returns the label the cache reports metrics under.
func (c *TTL[K, V]) Name() string { return c.cfg.name }

// DefaultTTL returns the TTL applied by [TTL.Set].
func (c *TTL[K, V]) DefaultTTL() time.Duration { return c.cfg.ttl }

// Set stores value under key with the default TTL, replacing any previous
// entry and restarting its age.
func (c *TTL[K, V]) Set(key K, value V) {
	c.SetWithTTL(key, value, c.cfg.ttl)
}

// SetWithTTL stores value under key with the given TTL. A ttl <= 0 means the
// default TTL.
func (c *TTL[K, V]) SetWithTTL(key K, value V, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.cfg.ttl
	}
	e := &entry[V]{value: value, createdAt: c.cfg.clock.Now(), ttl: ttl}

	c.mu.Lock()
	c.items[key] = e
	c.updateGauge()
	c.mu.Unlock()
}

// Get returns the live value stored under key. A stale entry is removed and
// reported as a miss.
func (c *TTL[K, V]) Get(key K) (V, bool) {
	v, ok := c.lookup(key)
	if ok {
		metrics.CacheHits.WithLabelValues(c.cfg.name).Inc()
	} else {
		metrics.CacheMisses.WithLabelValues(c.cfg.name).Inc()
	}
	return v, ok
}

// Has reports whether Get would return a value for key. It shares Get's
// staleness check and its side effect of removing a stale entry, but is not
// counted as a read.
func (c *TTL[K, V]) Has(key K) bool {
	_, ok := c.lookup(key)
	return ok
}

// lookup is Get without the hit and miss counters.
func (c *TTL[K, V]) lookup(key K) (V, bool) {
	now := c.cfg.clock.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.items[key]
	if ok && !e.live(now) {
		delete(c.items, key)
		c.updateGauge()
		metrics.CacheEvictions.WithLabelValues(c.cfg.name, "expired").Inc()
		ok = false
	}
	if !ok {
		var zero V
		return zero, false
	}
	return e.value, true
}

// Clear removes the entry for key. Clearing a missing key is a no-op.
func (c *TTL[K, V]) Clear(key K) {
	c.mu.Lock()
	delete(c.items, key)
	c.updateGauge()
	c.mu.Unlock()
}

// ClearAll removes every entry.
func (c *TTL[K, V]) ClearAll() {
	c.mu.Lock()
	clear(c.items)
	c.updateGauge()
	c.mu.Unlock()
}

// Sweep removes every entry that is stale at the time of the call and returns
// how many were removed.
func (c *TTL[K, V]) Sweep() int {
	now := c.cfg.clock.Now()

	c.mu.Lock()
	removed := 0
	for k, e := range c.items {
		if !e.live(now) {
			delete(c.items, k)
			removed++
		}
	}
	c.updateGauge()
	c.mu.Unlock()

	if removed > 0 {
		metrics.CacheEvictions.WithLabelValues(c.cfg.name, "sweep").Add(float64(removed))
		c.cfg.logger.Debug("cache swept", slog.String("cache", c.cfg.name), slog.Int("removed", removed))
	}
	return removed
}

// Size returns the number of stored entries. This is a storage metric, not a
// liveness metric: entries that are stale but have not yet been removed by a
// read or a sweep are counted.
func (c *TTL[K, V]) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// GetOrSet returns the live value for key. On a miss it calls loader once
// (deduplicating concurrent callers for the same key), stores the result with
// ttl, and returns it. Loader failures are returned and never cached.
func (c *TTL[K, V]) GetOrSet(ctx context.Context, key K, ttl time.Duration, loader func(context.Context) (V, error)) (V, error) {
	v, _, err := c.Load(ctx, key, ttl, loader)
	return v, err
}

// Load is GetOrSet that also reports whether the value was already cached.
// The lookup counts as exactly one hit or miss.
func (c *TTL[K, V]) Load(ctx context.Context, key K, ttl time.Duration, loader func(context.Context) (V, error)) (v V, hit bool, err error) {
	if v, ok := c.Get(key); ok {
		return v, true, nil
	}
	v, err = c.load(ctx, key, ttl, loader)
	return v, false, err
}

// load runs loader for key, sharing one run among concurrent callers.
func (c *TTL[K, V]) load(ctx context.Context, key K, ttl time.Duration, loader func(context.Context) (V, error)) (V, error) {
	c.loadMu.Lock()
	if l, ok := c.loads[key]; ok {
		c.loadMu.Unlock()
		l.wg.Wait()
		return l.val, l.err
	}

	l := &call[V]{}
	l.wg.Add(1)
	c.loads[key] = l
	c.loadMu.Unlock()

	defer func() {
		c.loadMu.Lock()
		delete(c.loads, key)
		c.loadMu.Unlock()
		l.wg.Done()
	}()

	// A panicking loader leaves l.err unset for waiters; give them an error.
	l.err = errLoaderPanicked
	l.val, l.err = loader(ctx)
	if l.err == nil {
		c.SetWithTTL(key, l.val, ttl)
	}
	return l.val, l.err
}

// updateGauge publishes the current entry count. Must be called with c.mu held.
func (c *TTL[K, V]) updateGauge() {
	metrics.CacheEntries.WithLabelValues(c.cfg.name).Set(float64(len(c.items)))
}
