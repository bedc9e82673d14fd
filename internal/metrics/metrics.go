// Package metrics exposes Prometheus metrics for locality resolution.
//
// Usage:
//
//	metrics.RecordResolution("success", 120*time.Millisecond)
//	metrics.RecordClassifierStage("county")
//	metrics.RecordUpstreamRequest("200", 95*time.Millisecond)
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ResolutionsTotal counts resolve calls by outcome ("success" or an error kind).
	ResolutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "locality_resolutions_total",
			Help: "Total number of address resolutions by outcome",
		},
		[]string{"outcome"},
	)

	// ResolutionDuration tracks end-to-end resolve latency.
	ResolutionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "locality_resolution_duration_seconds",
			Help:    "Duration of address resolutions in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"outcome"},
	)

	// ClassifierStageTotal counts which classifier stage produced the city.
	ClassifierStageTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "locality_classifier_stage_total",
			Help: "Total number of cities chosen per classifier stage",
		},
		[]string{"stage"},
	)

	// UpstreamRequestDuration tracks geocoder call latency by HTTP status
	// ("error" when no response was received).
	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "locality_upstream_request_duration_seconds",
			Help:    "Duration of geocoding provider requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"status"},
	)

	// UpstreamBreakerState is 0 closed, 1 half-open, 2 open.
	UpstreamBreakerState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "locality_upstream_breaker_state",
			Help: "Circuit breaker state for the geocoding provider (0 closed, 1 half-open, 2 open)",
		},
	)
)

// RecordResolution records one resolve call.
func RecordResolution(outcome string, d time.Duration) {
	ResolutionsTotal.WithLabelValues(outcome).Inc()
	ResolutionDuration.WithLabelValues(outcome).Observe(d.Seconds())
}

// RecordClassifierStage records the stage that produced a city.
func RecordClassifierStage(stage string) {
	ClassifierStageTotal.WithLabelValues(stage).Inc()
}

// RecordUpstreamRequest records one provider call.
func RecordUpstreamRequest(status string, d time.Duration) {
	UpstreamRequestDuration.WithLabelValues(status).Observe(d.Seconds())
}

// SetBreakerState records the provider breaker state.
func SetBreakerState(state float64) {
	UpstreamBreakerState.Set(state)
}
