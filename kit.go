package gorawrshield

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/Keksclan/goRawrShield/breaker"
	"github.com/Keksclan/goRawrShield/cache"
	"github.com/Keksclan/goRawrShield/netmon"
	"github.com/Keksclan/goRawrShield/ratelimit"
	"github.com/Keksclan/goRawrShield/retry"
	"github.com/Keksclan/goRawrShield/storage"
	"github.com/Keksclan/goRawrShield/tracing"
	"github.com/benbjohnson/clock"
)

// lifecycle is implemented by caches with a background sweeper.
type lifecycle interface {
	Start()
	Stop()
}

// Kit bundles the resilience components configured for one client. A Kit is
// safe for concurrent use.
type Kit struct {
	clock   clock.Clock
	logger  *slog.Logger
	plan    retry.Plan
	monitor *netmon.Monitor
	wait    time.Duration
	store   storage.Store
	breaker *breaker.Breaker
	limiter *ratelimit.Limiter
	tracing *tracing.Config

	cacheTTL      time.Duration
	sweepInterval time.Duration

	mu      sync.Mutex
	caches  []lifecycle
	running bool
}

// NewKit creates a Kit from opts applied on top of [DefaultOptions].
// Components not configured explicitly get defaults: an in-memory store and
// an HTTP reachability prober.
func NewKit(opts ...Option) *Kit {
	s := &settings{}
	for _, o := range DefaultOptions() {
		o(s)
	}
	for _, o := range opts {
		o(s)
	}

	if s.clock == nil {
		s.clock = clock.New()
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.store == nil {
		s.store = storage.NewMemory(storage.DefaultQuota)
	}
	if s.monitor == nil {
		p := s.prober
		if p == nil {
			p = netmon.NewHTTPProber("")
		}
		s.monitor = netmon.New(p,
			netmon.WithPollInterval(s.pollInterval),
			netmon.WithClock(s.clock),
			netmon.WithLogger(s.logger),
		)
	}

	k := &Kit{
		clock:         s.clock,
		logger:        s.logger,
		plan:          s.plan,
		monitor:       s.monitor,
		wait:          s.networkWait,
		store:         s.store,
		limiter:       s.limiter,
		tracing:       s.tracing,
		cacheTTL:      s.cacheTTL,
		sweepInterval: s.sweepInterval,
	}
	if s.breakerCfg != nil {
		k.breaker = breaker.New(*s.breakerCfg, s.clock)
	}
	return k
}

// Monitor returns the network monitor.
func (k *Kit) Monitor() *netmon.Monitor { return k.monitor }

// Store returns the key/value store.
func (k *Kit) Store() storage.Store { return k.store }

// Plan returns the retry schedule.
func (k *Kit) Plan() retry.Plan { return k.plan }

// Clock returns the clock shared by all components.
func (k *Kit) Clock() clock.Clock { return k.clock }

// Logger returns the logger shared by all components.
func (k *Kit) Logger() *slog.Logger { return k.logger }

// Breaker returns the circuit breaker, or nil when none was configured.
func (k *Kit) Breaker() *breaker.Breaker { return k.breaker }

// Start launches the sweeper of every cache created with [NewCache],
// including caches created later. It is idempotent.
func (k *Kit) Start() {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.running {
		return
	}
	k.running = true
	for _, c := range k.caches {
		c.Start()
	}
}

// Stop halts every cache sweeper. It is idempotent.
func (k *Kit) Stop() {
	k.mu.Lock()
	defer k.mu.Unlock()
	if !k.running {
		return
	}
	k.running = false
	for _, c := range k.caches {
		c.Stop()
	}
}

// Close stops the Kit and releases the store when it holds resources.
func (k *Kit) Close() error {
	k.Stop()
	switch st := k.store.(type) {
	case io.Closer:
		return st.Close()
	case interface{ Close() }:
		st.Close()
	}
	return nil
}

// NewCache creates a string-keyed TTL cache sharing the Kit's clock, logger
// and cache defaults. Its sweeper follows the Kit's Start and Stop.
func NewCache[V any](k *Kit, name string) *cache.TTL[string, V] {
	c := cache.New[string, V](
		cache.WithName(name),
		cache.WithDefaultTTL(k.cacheTTL),
		cache.WithSweepInterval(k.sweepInterval),
		cache.WithClock(k.clock),
		cache.WithLogger(k.logger),
	)

	k.mu.Lock()
	defer k.mu.Unlock()
	k.caches = append(k.caches, c)
	if k.running {
		c.Start()
	}
	return c
}

// guard runs op once under the Kit's policies: it waits for the network,
// consults the breaker and retries with the configured plan, pacing each
// attempt through the rate limiter. A panic in op counts as a breaker failure
// before it propagates.
func guard[T any](ctx context.Context, k *Kit, name string, op func(context.Context) (T, error)) (T, error) {
	var zero T

	if k.wait > 0 && !k.monitor.WaitForNetwork(ctx, k.wait) {
		return zero, ErrOffline
	}
	if k.breaker != nil && !k.breaker.Allow() {
		return zero, ErrCircuitOpen
	}

	if k.breaker != nil {
		defer func() {
			if r := recover(); r != nil {
				k.breaker.OnFailure()
				panic(r)
			}
		}()
	}

	v, err := retry.Do(ctx, k.plan, func(ctx context.Context) (T, error) {
		if err := k.limiter.Wait(ctx); err != nil {
			return zero, err
		}
		return op(ctx)
	},
		retry.WithName(name),
		retry.WithClock(k.clock),
		retry.WithLogger(k.logger),
	)

	if k.breaker != nil {
		if err != nil {
			k.breaker.OnFailure()
		} else {
			k.breaker.OnSuccess()
		}
	}
	return v, err
}
