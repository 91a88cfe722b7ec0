package gorawrshield

import (
	"github.com/Keksclan/goRawrShield/cache"
	"github.com/Keksclan/goRawrShield/retry"
)

// DefaultOptions returns the recommended set of options: three attempts with
// a 1s linear backoff and five-minute cache entries swept every minute. The
// network wait stays disabled until WithNetworkWait is given.
func DefaultOptions() []Option {
	return []Option{
		WithRetryPlan(retry.DefaultPlan),
		WithCacheDefaults(cache.DefaultTTL, cache.DefaultSweepInterval),
	}
}
