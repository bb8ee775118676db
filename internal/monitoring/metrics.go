package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instruments for one session table.
type Metrics struct {
	registry *prometheus.Registry

	// Session metrics
	SessionsActive  prometheus.Gauge
	SessionsCreated prometheus.Counter
	SessionsClosed  prometheus.Counter
	CreateErrors    *prometheus.CounterVec

	// I/O metrics
	ReadBytes    prometheus.Counter
	WrittenBytes prometheus.Counter

	// Teardown latency, including grace and reap windows
	CloseDuration prometheus.Histogram
}

// New creates a metrics collector on a fresh private registry.
func New() *Metrics {
	return NewWith(prometheus.NewRegistry())
}

// NewWith creates a metrics collector registered on reg.
func NewWith(reg *prometheus.Registry) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		SessionsActive: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "termbridge_sessions_active",
				Help: "Number of live sessions in the table",
			},
		),
		SessionsCreated: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "termbridge_sessions_created_total",
				Help: "Total number of sessions created",
			},
		),
		SessionsClosed: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "termbridge_sessions_closed_total",
				Help: "Total number of sessions closed",
			},
		),
		CreateErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "termbridge_session_create_errors_total",
				Help: "Total number of rejected session creations",
			},
			[]string{"reason"},
		),

		ReadBytes: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "termbridge_read_bytes_total",
				Help: "Total bytes drained from session masters",
			},
		),
		WrittenBytes: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "termbridge_written_bytes_total",
				Help: "Total bytes written to session masters",
			},
		),

		CloseDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "termbridge_session_close_duration_seconds",
				Help:    "Session close latency in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
			},
		),
	}
}

// Registry exposes the backing registry for exposition or scraping in
// tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordCreate records a successful session creation.
func (m *Metrics) RecordCreate(active int) {
	m.SessionsCreated.Inc()
	m.SessionsActive.Set(float64(active))
}

// RecordClose records a completed session close.
func (m *Metrics) RecordClose(active int, duration time.Duration) {
	m.SessionsClosed.Inc()
	m.SessionsActive.Set(float64(active))
	m.CloseDuration.Observe(duration.Seconds())
}

// RecordCreateError records a rejected creation by reason.
func (m *Metrics) RecordCreateError(reason string) {
	m.CreateErrors.WithLabelValues(reason).Inc()
}

// RecordRead adds drained bytes.
func (m *Metrics) RecordRead(bytes int) {
	m.ReadBytes.Add(float64(bytes))
}

// RecordWrite adds written bytes.
func (m *Metrics) RecordWrite(bytes int) {
	m.WrittenBytes.Add(float64(bytes))
}

// SetActive sets the live session gauge.
func (m *Metrics) SetActive(count int) {
	m.SessionsActive.Set(float64(count))
}
