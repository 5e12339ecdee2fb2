// Package metrics exposes node activity as Prometheus collectors.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "kindnest"

// Metrics holds the collectors updated by the sequencer and services.
type Metrics struct {
	registry *prometheus.Registry

	opsSubmitted  *prometheus.CounterVec
	opsApplied    *prometheus.CounterVec
	applyDuration *prometheus.HistogramVec
	queueDepth    prometheus.Gauge
	height        prometheus.Gauge
}

// New creates the collectors on a fresh registry, together with the Go
// runtime and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		opsSubmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ops_submitted_total",
			Help:      "Operations accepted for inclusion, by operation.",
		}, []string{"op"}),
		opsApplied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ops_applied_total",
			Help:      "Operations resolved by the applier, by operation, status and error code.",
		}, []string{"op", "status", "code"}),
		applyDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "apply_duration_seconds",
			Help:      "Time spent applying one operation, including the store commit.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 14),
		}, []string{"op"}),
		queueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "queue_depth",
			Help:      "Operations waiting for the applier.",
		}),
		height: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "ledger_height",
			Help:      "Number of operations applied to the ledger.",
		}),
	}

	m.registry.MustRegister(
		m.opsSubmitted,
		m.opsApplied,
		m.applyDuration,
		m.queueDepth,
		m.height,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Submitted counts an accepted submission.
func (m *Metrics) Submitted(op string) {
	m.opsSubmitted.WithLabelValues(op).Inc()
}

// Applied records the outcome of one operation. code is empty on success.
func (m *Metrics) Applied(op, status, code string, took time.Duration) {
	m.opsApplied.WithLabelValues(op, status, code).Inc()
	m.applyDuration.WithLabelValues(op).Observe(took.Seconds())
}

// SetQueueDepth reports how many operations are waiting.
func (m *Metrics) SetQueueDepth(n int) {
	m.queueDepth.Set(float64(n))
}

// SetHeight reports the current ledger height.
func (m *Metrics) SetHeight(h uint64) {
	m.height.Set(float64(h))
}
