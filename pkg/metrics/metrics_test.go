package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestHTTPMetricsObserveRequest(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	m.ObserveRequest("GET", "/api/v1/cart", 200, 25*time.Millisecond)
	m.ObserveRequest("GET", "/api/v1/cart", 404, time.Millisecond)

	if got := testutil.ToFloat64(m.requests.WithLabelValues("GET", "/api/v1/cart", "2xx")); got != 1 {
		t.Fatalf("expected one 2xx request, got %v", got)
	}
	if got := testutil.ToFloat64(m.requests.WithLabelValues("GET", "/api/v1/cart", "4xx")); got != 1 {
		t.Fatalf("expected one 4xx request, got %v", got)
	}
}

func TestTriageMetricsOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewTriageMetrics(reg)

	m.IncUrgent()
	m.IncRecommended()
	m.IncRecommended()

	if got := testutil.ToFloat64(m.analyses.WithLabelValues("urgent")); got != 1 {
		t.Fatalf("expected one urgent analysis, got %v", got)
	}
	if got := testutil.ToFloat64(m.analyses.WithLabelValues("recommended")); got != 2 {
		t.Fatalf("expected two recommended analyses, got %v", got)
	}
}

func TestNilRegistererIsSafe(t *testing.T) {
	m := NewHTTPMetrics(nil)
	m.ObserveRequest("GET", "/", 200, time.Millisecond)

	tm := NewTriageMetrics(nil)
	tm.IncUrgent()
	tm.IncRecommended()
}
