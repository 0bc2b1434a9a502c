// Package metrics defines the Prometheus collectors exported by the server.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "billwise"

// Metrics holds every collector. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	RPCRequests      *prometheus.CounterVec
	RPCDuration      *prometheus.HistogramVec
	PaymentsApplied  *prometheus.CounterVec
	PaymentConflicts prometheus.Counter
	BillsDueSoon     prometheus.Gauge
	BillsOverdue     prometheus.Gauge
	RemindersSent    prometheus.Counter
}

// New registers all collectors, plus the Go and process collectors, on a
// fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		RPCRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rpc_requests_total",
			Help:      "RPC requests by procedure and result code.",
		}, []string{"procedure", "code"}),
		RPCDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_duration_seconds",
			Help:      "RPC latency by procedure.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure"}),
		PaymentsApplied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payments_applied_total",
			Help:      "Payments applied, by resulting bill status.",
		}, []string{"status"}),
		PaymentConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payment_conflicts_total",
			Help:      "Payment transactions retried after a concurrent modification.",
		}),
		BillsDueSoon: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "bills_due_soon",
			Help:      "Unpaid bills due within the reminder window at the last reminder run.",
		}),
		BillsOverdue: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "bills_overdue",
			Help:      "Unpaid bills past their due date at the last reminder run.",
		}),
		RemindersSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reminders_sent_total",
			Help:      "Reminder notifications delivered.",
		}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.RPCRequests,
		m.RPCDuration,
		m.PaymentsApplied,
		m.PaymentConflicts,
		m.BillsDueSoon,
		m.BillsOverdue,
		m.RemindersSent,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) PaymentApplied(status string) {
	if m == nil {
		return
	}
	m.PaymentsApplied.WithLabelValues(status).Inc()
}

func (m *Metrics) PaymentConflict() {
	if m == nil {
		return
	}
	m.PaymentConflicts.Inc()
}

func (m *Metrics) ObserveRPC(procedure, code string, seconds float64) {
	if m == nil {
		return
	}
	m.RPCRequests.WithLabelValues(procedure, code).Inc()
	m.RPCDuration.WithLabelValues(procedure).Observe(seconds)
}

func (m *Metrics) SetDueCounts(dueSoon, overdue int) {
	if m == nil {
		return
	}
	m.BillsDueSoon.Set(float64(dueSoon))
	m.BillsOverdue.Set(float64(overdue))
}

func (m *Metrics) ReminderSent() {
	if m == nil {
		return
	}
	m.RemindersSent.Inc()
}
