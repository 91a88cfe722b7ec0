package gorawrshield

import (
	"log/slog"
	"time"

	"github.com/Keksclan/goRawrShield/breaker"
	"github.com/Keksclan/goRawrShield/netmon"
	"github.com/Keksclan/goRawrShield/ratelimit"
	"github.com/Keksclan/goRawrShield/retry"
	"github.com/Keksclan/goRawrShield/storage"
	"github.com/Keksclan/goRawrShield/tracing"
	"github.com/benbjohnson/clock"
)

// settings holds the configuration assembled via functional options.
type settings struct {
	clock  clock.Clock
	logger *slog.Logger

	plan retry.Plan

	monitor      *netmon.Monitor
	prober       netmon.Prober
	pollInterval time.Duration
	networkWait  time.Duration

	store storage.Store

	breakerCfg *breaker.Config
	limiter    *ratelimit.Limiter
	tracing    *tracing.Config

	cacheTTL      time.Duration
	sweepInterval time.Duration
}
