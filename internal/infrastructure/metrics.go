package infrastructure

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors shared across the HTTP layer
// and the ingestion pipeline.
type Metrics struct {
	Registry *prometheus.Registry

	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	RequestsInFlight prometheus.Gauge

	UploadsAccepted prometheus.Counter
	UploadsRejected prometheus.Counter
	ExportsWritten  *prometheus.CounterVec
	ViewsComputed   *prometheus.CounterVec
}

// NewMetrics creates the collector set on a dedicated registry so tests
// can build isolated instances.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		Registry: registry,
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "csatpulse_http_requests_total",
			Help: "HTTP requests processed, labeled by route, method and status class.",
		}, []string{"route", "method", "status"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "csatpulse_http_request_duration_seconds",
			Help:    "HTTP request latency distribution.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
		RequestsInFlight: factory.NewGauge(prometheus.GaugeOpts{
			Name: "csatpulse_http_requests_in_flight",
			Help: "HTTP requests currently being served.",
		}),
		UploadsAccepted: factory.NewCounter(prometheus.CounterOpts{
			Name: "csatpulse_uploads_accepted_total",
			Help: "Uploaded files successfully ingested.",
		}),
		UploadsRejected: factory.NewCounter(prometheus.CounterOpts{
			Name: "csatpulse_uploads_rejected_total",
			Help: "Uploaded files rejected during ingestion.",
		}),
		ExportsWritten: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "csatpulse_exports_written_total",
			Help: "CSV exports generated, labeled by dataset.",
		}, []string{"dataset"}),
		ViewsComputed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "csatpulse_views_computed_total",
			Help: "Dashboard views recomputed from the merged dataset, labeled by view.",
		}, []string{"view"}),
	}
}
