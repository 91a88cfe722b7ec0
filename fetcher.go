package gorawrshield

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Keksclan/goRawrShield/cache"
	"github.com/Keksclan/goRawrShield/contextx"
	"github.com/Keksclan/goRawrShield/degrade"
	"github.com/Keksclan/goRawrShield/tracing"
	"go.opentelemetry.io/otel/attribute"
)

// Fetcher serves reads of T through a TTL cache. Misses run the operation
// under the Kit's policies; when that fails the caller gets a fallback value
// marked as degraded instead of an error.
type Fetcher[T any] struct {
	kit   *Kit
	cache *cache.TTL[string, T]
	name  string
}

// NewFetcher creates a Fetcher named name that stores results in c. A nil c
// gets a fresh cache from [NewCache].
func NewFetcher[T any](k *Kit, c *cache.TTL[string, T], name string) *Fetcher[T] {
	if c == nil {
		c = NewCache[T](k, name)
	}
	return &Fetcher[T]{kit: k, cache: c, name: name}
}

// Cache returns the cache backing f.
func (f *Fetcher[T]) Cache() *cache.TTL[string, T] { return f.cache }

// Fetch returns the cached value for key when it is still live. Otherwise it
// runs op (concurrent misses for the same key share one run), caches a
// successful result and returns it. A failed run yields fallback with
// Degraded set; failures are never cached.
func (f *Fetcher[T]) Fetch(ctx context.Context, key string, op func(context.Context) (T, error), fallback T) degrade.Result[T] {
	ctx = contextx.EnsureOperationID(ctx)
	log := contextx.Logger(ctx, f.kit.logger)

	ctx, span := tracing.Start(ctx, f.kit.tracing, "fetch "+f.name,
		attribute.String("rawrshield.operation", f.name),
		attribute.String("rawrshield.cache.key", key),
	)

	var hit bool
	res := degrade.WithFallbackContext(ctx, f.name, func(ctx context.Context) (T, error) {
		v, h, err := f.cache.Load(ctx, key, 0, func(ctx context.Context) (T, error) {
			return guard(ctx, f.kit, f.name, op)
		})
		hit = h
		return v, err
	}, fallback)

	span.SetAttributes(
		attribute.Bool("rawrshield.cache.hit", hit),
		attribute.Bool("rawrshield.degraded", res.Degraded),
	)
	if res.Degraded {
		log.Warn("fetch degraded to fallback",
			slog.String("operation", f.name),
			slog.String("key", key),
			slog.Any("error", res.Err),
		)
	}
	tracing.End(span, res.Err)
	return res
}

// Submit runs op under the Kit's policies without caching or fallback, for
// writes whose failure the caller must see. The error of the last attempt,
// [ErrOffline] or [ErrCircuitOpen] is returned as is. A panic in op ends the
// span with an error and is re-raised.
func Submit[T any](ctx context.Context, k *Kit, name string, op func(context.Context) (T, error)) (v T, err error) {
	ctx = contextx.EnsureOperationID(ctx)
	log := contextx.Logger(ctx, k.logger)

	ctx, span := tracing.Start(ctx, k.tracing, "submit "+name,
		attribute.String("rawrshield.operation", name),
	)
	defer func() {
		if r := recover(); r != nil {
			tracing.End(span, fmt.Errorf("operation panicked: %v", r))
			panic(r)
		}
		tracing.End(span, err)
	}()

	v, err = guard(ctx, k, name, op)
	if err != nil {
		log.Warn("submit failed", slog.String("operation", name), slog.Any("error", err))
	}
	return v, err
}
