package gorawrshield

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/Keksclan/goRawrShield/breaker"
	"github.com/Keksclan/goRawrShield/config"
	"github.com/Keksclan/goRawrShield/netmon"
	"github.com/Keksclan/goRawrShield/ratelimit"
	"github.com/Keksclan/goRawrShield/retry"
	"github.com/Keksclan/goRawrShield/storage"
	"github.com/Keksclan/goRawrShield/tracing"
	"github.com/benbjohnson/clock"
)

// Option configures a Kit.
type Option func(*settings)

// WithClock sets the clock shared by every component, mainly for tests.
func WithClock(clk clock.Clock) Option {
	return func(s *settings) { s.clock = clk }
}

// WithLogger sets the logger shared by every component.
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// WithRetryPlan sets the retry schedule used by fetches and submits.
func WithRetryPlan(p retry.Plan) Option {
	return func(s *settings) { s.plan = p }
}

// WithMonitor supplies a ready-made network monitor. It takes precedence
// over WithProber.
func WithMonitor(m *netmon.Monitor) Option {
	return func(s *settings) { s.monitor = m }
}

// WithProber sets the reachability check and the delay between checks used
// to build the Kit's network monitor.
func WithProber(p netmon.Prober, pollInterval time.Duration) Option {
	return func(s *settings) {
		s.prober = p
		s.pollInterval = pollInterval
	}
}

// WithNetworkWait makes fetches and submits wait up to d for the network
// before calling the operation. Zero disables the wait.
func WithNetworkWait(d time.Duration) Option {
	return func(s *settings) { s.networkWait = d }
}

// WithStore sets the key/value store exposed by Kit.Store.
func WithStore(st storage.Store) Option {
	return func(s *settings) { s.store = st }
}

// WithBreaker guards operations with a circuit breaker.
func WithBreaker(cfg breaker.Config) Option {
	return func(s *settings) { s.breakerCfg = &cfg }
}

// WithRateLimit paces operation attempts to rps per second with the given
// burst.
func WithRateLimit(rps float64, burst int) Option {
	return func(s *settings) { s.limiter = ratelimit.NewLimiter(rps, burst) }
}

// WithTracing enables OpenTelemetry spans for fetches and submits.
func WithTracing(cfg tracing.Config) Option {
	return func(s *settings) { s.tracing = &cfg }
}

// WithCacheDefaults sets the TTL and sweep interval of caches created with
// NewCache.
func WithCacheDefaults(ttl, sweepInterval time.Duration) Option {
	return func(s *settings) {
		s.cacheTTL = ttl
		s.sweepInterval = sweepInterval
	}
}

// FromConfig translates environment configuration into options. It opens the
// configured storage backend, so it can fail.
func FromConfig(cfg config.Config) ([]Option, error) {
	opts := []Option{
		WithRetryPlan(retry.Plan{MaxAttempts: cfg.RetryMaxAttempts, BaseDelay: cfg.RetryBaseDelay}),
		WithCacheDefaults(cfg.CacheTTL, cfg.CacheSweepInterval),
		WithProber(&netmon.HTTPProber{URL: cfg.ProbeURL, Timeout: cfg.ProbeTimeout}, cfg.PollInterval),
		WithNetworkWait(cfg.NetworkMaxWait),
	}

	switch cfg.StorageBackend {
	case config.StorageRistretto:
		st, err := storage.NewRistretto(int64(cfg.StorageQuota))
		if err != nil {
			return nil, fmt.Errorf("open ristretto storage: %w", err)
		}
		opts = append(opts, WithStore(st))
	case config.StorageRedis:
		st, err := storage.NewRedisFromURL(cfg.RedisURL, "rawrshield:")
		if err != nil {
			return nil, fmt.Errorf("open redis storage: %w", err)
		}
		opts = append(opts, WithStore(st))
	default:
		opts = append(opts, WithStore(storage.NewMemory(cfg.StorageQuota)))
	}

	if cfg.RateLimitRPS > 0 {
		opts = append(opts, WithRateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))
	}
	return opts, nil
}
