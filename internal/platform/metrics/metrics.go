// Package metrics holds the prometheus collectors for the store and the
// local HTTP surface. Collectors live on their own registry so tests can
// build as many as they need.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles every collector the application records.
type Metrics struct {
	registry *prometheus.Registry

	SnapshotOps      *prometheus.CounterVec
	SnapshotDuration *prometheus.HistogramVec
	Records          *prometheus.GaugeVec
	HTTPRequests     *prometheus.CounterVec
	HTTPDuration     *prometheus.HistogramVec
}

// New creates and registers all collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		SnapshotOps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hms_snapshot_operations_total",
				Help: "Collection load/save attempts by outcome",
			},
			[]string{"op", "kind", "result"}, // result: "ok", "missing", "error"
		),
		SnapshotDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "hms_snapshot_duration_seconds",
				Help:    "Duration of collection load/save",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"op", "kind"},
		),
		Records: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "hms_records",
				Help: "Records currently held per collection",
			},
			[]string{"kind"},
		),
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hms_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "hms_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}
	m.registry.MustRegister(
		m.SnapshotOps,
		m.SnapshotDuration,
		m.Records,
		m.HTTPRequests,
		m.HTTPDuration,
	)
	return m
}

// ObserveSnapshot records one collection load or save.
func (m *Metrics) ObserveSnapshot(op, kind, result string, d time.Duration) {
	if m == nil {
		return
	}
	m.SnapshotOps.WithLabelValues(op, kind, result).Inc()
	m.SnapshotDuration.WithLabelValues(op, kind).Observe(d.Seconds())
}

// SetRecords publishes the current size of a collection.
func (m *Metrics) SetRecords(kind string, n int) {
	if m == nil {
		return
	}
	m.Records.WithLabelValues(kind).Set(float64(n))
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
