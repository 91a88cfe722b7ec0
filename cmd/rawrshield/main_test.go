package main

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetArgs(append(args, "--no-color", "--log-level", "error"))
	root.SetOut(&out)
	root.SetErr(&out)
	err := root.ExecuteContext(t.Context())
	return out.String(), err
}

func TestProbeCmd_Reachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(srv.Close)

	out, err := execute(t, "probe", "--url", srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(out) != "reachable" {
		t.Fatalf("got %q, want %q", out, "reachable")
	}
}

func TestProbeCmd_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	out, err := execute(t, "probe", "--url", srv.URL)
	if !errors.Is(err, errUnreachable) {
		t.Fatalf("got %v, want %v", err, errUnreachable)
	}
	if strings.TrimSpace(out) != "unreachable" {
		t.Fatalf("got %q, want %q", out, "unreachable")
	}
}

func TestFetchCmd_RepeatServedFromCache(t *testing.T) {
	var gets atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			gets.Add(1)
			_, _ = w.Write([]byte("42.5"))
		}
	}))
	t.Cleanup(srv.Close)
	t.Setenv("RAWR_PROBE_URL", srv.URL)

	out, err := execute(t, "fetch", srv.URL+"/price", "--repeat", "2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "42.5\n42.5\n" {
		t.Fatalf("got %q, want two bodies", out)
	}
	if n := gets.Load(); n != 1 {
		t.Fatalf("GET issued %d times, want 1", n)
	}
}

func TestFetchCmd_InvalidConfig(t *testing.T) {
	t.Setenv("RAWR_RETRY_MAX_ATTEMPTS", "0")

	if _, err := execute(t, "fetch", "http://example.invalid"); err == nil {
		t.Fatal("expected config error")
	}
}
