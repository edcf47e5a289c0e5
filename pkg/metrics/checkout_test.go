package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNilRegistererIsNoop(t *testing.T) {
	m := NewCheckoutMetrics(nil)
	m.ObserveDuration("success", time.Second)
	m.IncSuccess("retail")
	m.IncFailure("empty_cart")
	m.IncSave("products", "success")
}

func TestCountersIncrement(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewCheckoutMetrics(reg)

	m.IncSuccess("wholesale")
	m.IncSuccess("wholesale")
	m.IncFailure("")
	m.IncSave("products", "failure")

	if got := testutil.ToFloat64(m.success.WithLabelValues("wholesale")); got != 2 {
		t.Fatalf("expected 2 successes, got %v", got)
	}
	if got := testutil.ToFloat64(m.failure.WithLabelValues("unknown")); got != 1 {
		t.Fatalf("expected empty reason to normalize to unknown, got %v", got)
	}
	if got := testutil.ToFloat64(m.saves.WithLabelValues("products", "failure")); got != 1 {
		t.Fatalf("expected 1 failed save, got %v", got)
	}
}
