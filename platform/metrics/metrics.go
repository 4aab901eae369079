// Package metrics registers the Prometheus collectors exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "enquiry"

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency distribution",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "Current number of HTTP requests being processed",
		},
	)
)

// Intake metrics
var (
	EnquiriesCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "enquiries_created_total",
			Help:      "Total number of enquiries persisted",
		},
	)

	ReferenceCollisions = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reference_collisions_total",
			Help:      "Reference numbers regenerated after a uniqueness conflict",
		},
	)

	StatusUpdates = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "status_updates_total",
			Help:      "Admin status transitions by target status",
		},
		[]string{"status"},
	)

	EmailsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "emails_total",
			Help:      "Notification emails by template and outcome",
		},
		[]string{"template", "status"},
	)
)

// RecordEmail counts one delivery attempt.
func RecordEmail(template string, sent bool) {
	status := "sent"
	if !sent {
		status = "failed"
	}
	EmailsTotal.WithLabelValues(template, status).Inc()
}
