package gorawrshield

import (
	"testing"
	"time"

	"github.com/Keksclan/goRawrShield/cache"
	"github.com/Keksclan/goRawrShield/config"
	"github.com/Keksclan/goRawrShield/netmon"
	"github.com/Keksclan/goRawrShield/retry"
	"github.com/Keksclan/goRawrShield/storage"
	"github.com/benbjohnson/clock"
)

var retryOnce = retry.Plan{MaxAttempts: 1, BaseDelay: time.Second}

func TestNewKit_Defaults(t *testing.T) {
	k := NewKit()
	t.Cleanup(func() { _ = k.Close() })

	if k.Plan() != retry.DefaultPlan {
		t.Fatalf("plan = %+v, want %+v", k.Plan(), retry.DefaultPlan)
	}
	if _, ok := k.Store().(*storage.Memory); !ok {
		t.Fatalf("store = %T, want *storage.Memory", k.Store())
	}
	if k.Monitor().PollInterval() != netmon.DefaultPollInterval {
		t.Fatalf("poll interval = %v, want %v", k.Monitor().PollInterval(), netmon.DefaultPollInterval)
	}
	if k.Breaker() != nil {
		t.Fatal("expected no breaker by default")
	}
}

func TestNewCache_UsesKitDefaults(t *testing.T) {
	k := NewKit(WithCacheDefaults(time.Minute, time.Hour))
	c := NewCache[int](k, "scores")
	if c.Name() != "scores" {
		t.Fatalf("name = %q, want %q", c.Name(), "scores")
	}
	if c.DefaultTTL() != time.Minute {
		t.Fatalf("ttl = %v, want %v", c.DefaultTTL(), time.Minute)
	}

	plain := NewCache[int](NewKit(), "plain")
	if plain.DefaultTTL() != cache.DefaultTTL {
		t.Fatalf("ttl = %v, want %v", plain.DefaultTTL(), cache.DefaultTTL)
	}
}

func TestKit_StartDrivesCacheSweepers(t *testing.T) {
	mock := clock.NewMock()
	k := NewKit(WithClock(mock), WithCacheDefaults(time.Second, time.Minute))
	t.Cleanup(func() { _ = k.Close() })

	before := NewCache[int](k, "before-start")
	before.Set("a", 1)

	k.Start()
	k.Start() // no-op

	after := NewCache[int](k, "after-start")
	after.Set("b", 2)

	mock.Add(time.Minute)

	deadline := time.Now().Add(2 * time.Second)
	for before.Size()+after.Size() != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("sweepers did not run, sizes = %d, %d", before.Size(), after.Size())
		}
		time.Sleep(time.Millisecond)
	}
}

func TestKit_CloseIsIdempotent(t *testing.T) {
	k := NewKit()
	k.Start()
	if err := k.Close(); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	if err := k.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}

func testConfig() config.Config {
	return config.Config{
		CacheTTL:           time.Minute,
		CacheSweepInterval: time.Minute,
		RetryMaxAttempts:   4,
		RetryBaseDelay:     250 * time.Millisecond,
		ProbeURL:           netmon.DefaultProbeURL,
		ProbeTimeout:       time.Second,
		PollInterval:       2 * time.Second,
		NetworkMaxWait:     10 * time.Second,
		StorageBackend:     config.StorageMemory,
		StorageQuota:       1024,
		RateLimitRPS:       5,
		RateLimitBurst:     1,
		LogLevel:           "info",
	}
}

func TestFromConfig_Memory(t *testing.T) {
	opts, err := FromConfig(testConfig())
	if err != nil {
		t.Fatalf("FromConfig: %v", err)
	}
	k := NewKit(opts...)
	t.Cleanup(func() { _ = k.Close() })

	want := retry.Plan{MaxAttempts: 4, BaseDelay: 250 * time.Millisecond}
	if k.Plan() != want {
		t.Fatalf("plan = %+v, want %+v", k.Plan(), want)
	}
	if k.Monitor().PollInterval() != 2*time.Second {
		t.Fatalf("poll interval = %v, want %v", k.Monitor().PollInterval(), 2*time.Second)
	}
	if _, ok := k.Store().(*storage.Memory); !ok {
		t.Fatalf("store = %T, want *storage.Memory", k.Store())
	}
}

func TestFromConfig_Ristretto(t *testing.T) {
	cfg := testConfig()
	cfg.StorageBackend = config.StorageRistretto

	opts, err := FromConfig(cfg)
	if err != nil {
		t.Fatalf("FromConfig: %v", err)
	}
	k := NewKit(opts...)
	t.Cleanup(func() { _ = k.Close() })

	if _, ok := k.Store().(*storage.Ristretto); !ok {
		t.Fatalf("store = %T, want *storage.Ristretto", k.Store())
	}
}

func TestFromConfig_InvalidRedisURL(t *testing.T) {
	cfg := testConfig()
	cfg.StorageBackend = config.StorageRedis
	cfg.RedisURL = "not a url"

	if _, err := FromConfig(cfg); err == nil {
		t.Fatal("expected error for invalid redis URL")
	}
}
