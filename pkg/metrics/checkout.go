package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CheckoutMetrics records checkout outcomes and store save activity.
type CheckoutMetrics struct {
	duration *prometheus.HistogramVec
	success  *prometheus.CounterVec
	failure  *prometheus.CounterVec
	saves    *prometheus.CounterVec
}

// NewCheckoutMetrics registers the metrics on the provided registerer. A nil
// registerer yields a no-op recorder, which tests lean on.
func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	if reg == nil {
		return &CheckoutMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "checkout_duration_seconds",
		Help:    "Duration of checkout invocations in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_success_total",
		Help: "Completed checkouts.",
	}, []string{"sale_type"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_failure_total",
		Help: "Failed checkouts.",
	}, []string{"reason"})
	saves := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "store_save_total",
		Help: "Whole-collection saves against the store.",
	}, []string{"collection", "outcome"})
	reg.MustRegister(duration, success, failure, saves)
	return &CheckoutMetrics{
		duration: duration,
		success:  success,
		failure:  failure,
		saves:    saves,
	}
}

// ObserveDuration records how long a checkout took.
func (c *CheckoutMetrics) ObserveDuration(outcome string, duration time.Duration) {
	if c == nil || c.duration == nil {
		return
	}
	c.duration.WithLabelValues(normalizeLabel(outcome)).Observe(duration.Seconds())
}

// IncSuccess increments the success counter for the given sale type.
func (c *CheckoutMetrics) IncSuccess(saleType string) {
	if c == nil || c.success == nil {
		return
	}
	c.success.WithLabelValues(normalizeLabel(saleType)).Inc()
}

// IncFailure increments the failure counter for the given reason.
func (c *CheckoutMetrics) IncFailure(reason string) {
	if c == nil || c.failure == nil {
		return
	}
	c.failure.WithLabelValues(normalizeLabel(reason)).Inc()
}

// IncSave increments the store save counter.
func (c *CheckoutMetrics) IncSave(collection, outcome string) {
	if c == nil || c.saves == nil {
		return
	}
	c.saves.WithLabelValues(normalizeLabel(collection), normalizeLabel(outcome)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
