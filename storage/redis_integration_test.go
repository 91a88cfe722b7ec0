package storage

import (
	"context"
	"os"
	"testing"
	"time"
)

func redisStore(t *testing.T) *Redis {
	t.Helper()
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set, skipping Redis integration test")
	}
	r := NewRedis(addr, "", 0, "rawrshield:test:")
	t.Cleanup(func() { _ = r.Close() })
	if err := r.Ping(t.Context()); err != nil {
		t.Fatalf("cannot reach Redis at %s: %v", addr, err)
	}
	return r
}

func TestRedis_GetSet(t *testing.T) {
	r := redisStore(t)
	ctx := t.Context()

	key := "getset:" + t.Name() + ":" + time.Now().Format(time.RFC3339Nano)

	_, ok, err := r.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if ok {
		t.Fatal("expected miss")
	}

	if err := r.Set(ctx, key, "v1"); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	val, ok, err := r.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if !ok || val != "v1" {
		t.Fatalf("got (%q, %v), want (%q, true)", val, ok, "v1")
	}
}

func TestRedis_UnreachableReturnsError(t *testing.T) {
	// Connect to a bogus address: the store itself reports the failure so
	// that the degrade helpers can absorb it.
	r := NewRedis("localhost:1", "", 0, "")
	t.Cleanup(func() { _ = r.Close() })

	ctx, cancel := context.WithTimeout(t.Context(), 500*time.Millisecond)
	defer cancel()

	if _, _, err := r.Get(ctx, "no-such-key"); err == nil {
		t.Fatal("expected an error from unreachable Redis")
	}
	if err := r.Set(ctx, "k", "v"); err == nil {
		t.Fatal("expected an error from unreachable Redis")
	}
}

func TestNewRedisFromURL_Invalid(t *testing.T) {
	if _, err := NewRedisFromURL("not-a-url://", ""); err == nil {
		t.Fatal("expected parse error")
	}
}
