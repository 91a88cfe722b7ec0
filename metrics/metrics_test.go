package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestHandlerExposesCollectors(t *testing.T) {
	Fallbacks.WithLabelValues("metrics-test").Inc()

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), `rawrshield_fallbacks_total{operation="metrics-test"} 1`) {
		t.Fatal("expected fallback counter in exposition")
	}
}

func TestCountersAreIndependentPerLabel(t *testing.T) {
	CacheHits.WithLabelValues("metrics-a").Add(2)
	CacheHits.WithLabelValues("metrics-b").Inc()

	if got := testutil.ToFloat64(CacheHits.WithLabelValues("metrics-a")); got != 2 {
		t.Fatalf("hits a = %v, want 2", got)
	}
	if got := testutil.ToFloat64(CacheHits.WithLabelValues("metrics-b")); got != 1 {
		t.Fatalf("hits b = %v, want 1", got)
	}
}
