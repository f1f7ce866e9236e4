package telemetry

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/propmanager/backend/internal/domain/maintenance"
	"github.com/propmanager/backend/internal/domain/shared"
)

const metricsNamespace = "propmanager"

// Metrics owns a private Prometheus registry and the collectors exposed on /metrics.
type Metrics struct {
	registry *prometheus.Registry

	httpInFlight prometheus.Gauge
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	domainEvents           *prometheus.CounterVec
	maintenanceTransitions *prometheus.CounterVec
	reportSnapshots        *prometheus.CounterVec
	reportSnapshotDuration prometheus.Histogram
}

// NewMetrics registers the process, Go runtime and application collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		}, []string{"method", "route"}),
		domainEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "events",
			Name:      "published_total",
			Help:      "Domain events delivered by the event bus.",
		}, []string{"type"}),
		maintenanceTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "maintenance",
			Name:      "status_transitions_total",
			Help:      "Maintenance request status changes.",
		}, []string{"from", "to"}),
		reportSnapshots: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "reports",
			Name:      "snapshot_runs_total",
			Help:      "Scheduled report snapshot runs by result.",
		}, []string{"result"}),
		reportSnapshotDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "reports",
			Name:      "snapshot_duration_seconds",
			Help:      "Duration of scheduled report snapshot runs.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10),
		}),
	}

	m.registry.MustRegister(
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
		m.httpInFlight,
		m.httpRequests,
		m.httpDuration,
		m.domainEvents,
		m.maintenanceTransitions,
		m.reportSnapshots,
		m.reportSnapshotDuration,
	)
	return m
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the exposition format for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// RegisterDBStats exports database/sql pool statistics under dbName.
func (m *Metrics) RegisterDBStats(db *sql.DB, dbName string) error {
	return m.registry.Register(collectors.NewDBStatsCollector(db, dbName))
}

// HTTPStarted marks a request in flight and returns the function that records its outcome.
// route should be the matched route template, not the raw path.
func (m *Metrics) HTTPStarted() func(method, route string, status int) {
	start := time.Now()
	m.httpInFlight.Inc()
	return func(method, route string, status int) {
		m.httpInFlight.Dec()
		m.httpRequests.WithLabelValues(method, route, statusClass(status)).Inc()
		m.httpDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}

// RecordReportSnapshot matches the scheduler's result hook signature.
func (m *Metrics) RecordReportSnapshot(err error, d time.Duration) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	m.reportSnapshots.WithLabelValues(result).Inc()
	m.reportSnapshotDuration.Observe(d.Seconds())
}

// EventHandler returns a bus subscriber counting every delivered domain event.
func (m *Metrics) EventHandler() shared.EventHandler {
	return &eventCounter{metrics: m}
}

type eventCounter struct {
	metrics *Metrics
}

func (h *eventCounter) EventTypes() []string { return nil }

func (h *eventCounter) Handle(_ context.Context, event shared.DomainEvent) error {
	h.metrics.domainEvents.WithLabelValues(event.EventType()).Inc()
	if changed, ok := event.(*maintenance.StatusChangedEvent); ok {
		h.metrics.maintenanceTransitions.WithLabelValues(string(changed.From), string(changed.To)).Inc()
	}
	return nil
}

func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
