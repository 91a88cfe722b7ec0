// Package metrics defines the Prometheus collectors shared by the resilience
// components. Collectors are registered on the default registry, so the
// handler returned by [Handler] exposes them without further wiring.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// CacheHits counts reads that returned a live entry.
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rawrshield_cache_hits_total",
			Help: "Total number of cache reads that returned a live entry",
		},
		[]string{"cache"},
	)

	// CacheMisses counts reads that found no live entry.
	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rawrshield_cache_misses_total",
			Help: "Total number of cache reads that found no live entry",
		},
		[]string{"cache"},
	)

	// CacheEvictions counts stale entries removed, by removal path.
	CacheEvictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rawrshield_cache_evictions_total",
			Help: "Total number of stale cache entries removed",
		},
		[]string{"cache", "reason"},
	)

	// CacheEntries tracks stored entries, stale ones included.
	CacheEntries = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "rawrshield_cache_entries",
			Help: "Number of entries currently stored, including stale entries not yet swept",
		},
		[]string{"cache"},
	)

	// RetryAttempts counts individual attempts made by the retry executor.
	RetryAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rawrshield_retry_attempts_total",
			Help: "Total number of operation attempts made by the retry executor",
		},
		[]string{"operation", "outcome"},
	)

	// RetryWait observes the delay inserted before each retry.
	RetryWait = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "rawrshield_retry_wait_seconds",
			Help:    "Delay inserted before a retry attempt in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	// Probes counts reachability probes by result.
	Probes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rawrshield_network_probes_total",
			Help: "Total number of network reachability probes",
		},
		[]string{"result"},
	)

	// BreakerTransitions counts circuit breaker state changes by target state.
	BreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rawrshield_breaker_transitions_total",
			Help: "Total number of circuit breaker state changes",
		},
		[]string{"breaker", "to"},
	)

	// Fallbacks counts operations that degraded to their fallback value.
	Fallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rawrshield_fallbacks_total",
			Help: "Total number of operations that returned their fallback value",
		},
		[]string{"operation"},
	)
)

// Handler returns an http.Handler that serves Prometheus metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}
