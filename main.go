// Package gorawrshield composes the resilience components (TTL cache, retry
// executor, network monitor and fallback wrapper) into ready-made paths for
// client code: [Fetcher] for reads that may be served stale or degraded, and
// [Submit] for writes whose failures must stay visible.
//
// The components themselves live in their own packages and never depend on
// each other; this package is the caller that wires them together.
package gorawrshield

import "errors"

var (
	// ErrOffline is returned when the network did not become reachable
	// within the configured wait.
	ErrOffline = errors.New("network unreachable")

	// ErrCircuitOpen is returned when the circuit breaker refuses a call.
	ErrCircuitOpen = errors.New("circuit breaker open")
)
