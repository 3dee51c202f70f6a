// Package metrics provides Prometheus metric collection for the admin API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is the metric collection interface consumed by services
// and middleware.
type Recorder interface {
	RecordProvisioningOutcome(stage string, success bool)
	RecordCompensation(success bool)
	RecordNotificationFailure()
	RecordOrphanedIdentities(count int)
	RecordHTTPRequest(method, path string, statusCode int, duration time.Duration)
}

// Collector is the Prometheus-backed Recorder implementation.
type Collector struct {
	provisioningTotal  *prometheus.CounterVec
	compensationTotal  *prometheus.CounterVec
	notificationFailed prometheus.Counter
	orphanedIdentities prometheus.Gauge
	httpRequests       *prometheus.CounterVec
	httpLatency        *prometheus.HistogramVec
}

// NewCollector creates a Collector and registers its metrics on the
// given registry.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		provisioningTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "secureplace_provisioning_total",
			Help: "Employee provisioning attempts by terminal stage and outcome",
		}, []string{"stage", "outcome"}),
		compensationTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "secureplace_compensation_total",
			Help: "Compensating identity deletions by outcome",
		}, []string{"outcome"}),
		notificationFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "secureplace_notification_failed_total",
			Help: "Welcome email deliveries that failed",
		}),
		orphanedIdentities: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "secureplace_orphaned_identities",
			Help: "Identities with no matching profile row found by the last reconciliation sweep",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "secureplace_http_requests_total",
			Help: "HTTP requests by method, route and status code",
		}, []string{"method", "path", "status_code"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "secureplace_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
	}

	reg.MustRegister(
		c.provisioningTotal,
		c.compensationTotal,
		c.notificationFailed,
		c.orphanedIdentities,
		c.httpRequests,
		c.httpLatency,
	)

	return c
}

// RecordProvisioningOutcome records a provisioning attempt terminating
// at the given stage.
func (c *Collector) RecordProvisioningOutcome(stage string, success bool) {
	c.provisioningTotal.WithLabelValues(stage, outcome(success)).Inc()
}

// RecordCompensation records a compensating identity deletion attempt.
func (c *Collector) RecordCompensation(success bool) {
	c.compensationTotal.WithLabelValues(outcome(success)).Inc()
}

// RecordNotificationFailure records a failed welcome email delivery.
func (c *Collector) RecordNotificationFailure() {
	c.notificationFailed.Inc()
}

// RecordOrphanedIdentities records the orphan count from a sweep.
func (c *Collector) RecordOrphanedIdentities(count int) {
	c.orphanedIdentities.Set(float64(count))
}

// RecordHTTPRequest records a served HTTP request.
func (c *Collector) RecordHTTPRequest(method, path string, statusCode int, duration time.Duration) {
	c.httpRequests.WithLabelValues(method, path, strconv.Itoa(statusCode)).Inc()
	c.httpLatency.WithLabelValues(method, path).Observe(duration.Seconds())
}

func outcome(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}

// Handler returns the HTTP handler for Prometheus scrapes.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
