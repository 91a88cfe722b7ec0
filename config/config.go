// Package config loads process configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Storage backends accepted in Config.StorageBackend.
const (
	StorageMemory    = "memory"
	StorageRistretto = "ristretto"
	StorageRedis     = "redis"
)

// Config holds every tunable of the resilience toolkit. Fields map to
// RAWR_-prefixed environment variables.
type Config struct {
	CacheTTL           time.Duration `env:"CACHE_TTL" envDefault:"5m"`
	CacheSweepInterval time.Duration `env:"CACHE_SWEEP_INTERVAL" envDefault:"1m"`

	RetryMaxAttempts int           `env:"RETRY_MAX_ATTEMPTS" envDefault:"3"`
	RetryBaseDelay   time.Duration `env:"RETRY_BASE_DELAY" envDefault:"1s"`

	ProbeURL       string        `env:"PROBE_URL" envDefault:"https://www.gstatic.com/generate_204"`
	ProbeTimeout   time.Duration `env:"PROBE_TIMEOUT" envDefault:"5s"`
	PollInterval   time.Duration `env:"POLL_INTERVAL" envDefault:"1s"`
	NetworkMaxWait time.Duration `env:"NETWORK_MAX_WAIT" envDefault:"30s"`

	StorageBackend string `env:"STORAGE_BACKEND" envDefault:"memory"`
	StorageQuota   int    `env:"STORAGE_QUOTA" envDefault:"5242880"`
	RedisURL       string `env:"REDIS_URL"`

	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"1"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads the configuration from RAWR_* environment variables and
// validates it.
func Load() (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "RAWR_"}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every invalid setting.
func (c Config) Validate() error {
	var errs []error
	if c.CacheTTL <= 0 {
		errs = append(errs, errors.New("cache TTL must be positive"))
	}
	if c.CacheSweepInterval <= 0 {
		errs = append(errs, errors.New("cache sweep interval must be positive"))
	}
	if c.RetryMaxAttempts < 1 {
		errs = append(errs, errors.New("retry max attempts must be at least 1"))
	}
	if c.RetryBaseDelay < 0 {
		errs = append(errs, errors.New("retry base delay must not be negative"))
	}
	if c.PollInterval <= 0 {
		errs = append(errs, errors.New("poll interval must be positive"))
	}
	if c.StorageQuota <= 0 {
		errs = append(errs, errors.New("storage quota must be positive"))
	}
	switch c.StorageBackend {
	case StorageMemory, StorageRistretto:
	case StorageRedis:
		if c.RedisURL == "" {
			errs = append(errs, errors.New("redis storage requires RAWR_REDIS_URL"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown storage backend %q", c.StorageBackend))
	}
	if c.RateLimitRPS < 0 {
		errs = append(errs, errors.New("rate limit must not be negative"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}
