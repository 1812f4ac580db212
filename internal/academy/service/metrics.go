package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics holds the backend's business counters on a private registry so
// several instances can live in one test binary.
type Metrics struct {
	Registry *prometheus.Registry

	logins   *prometheus.CounterVec
	payments *prometheus.CounterVec
	expired  prometheus.Counter
}

// NewMetrics registers the counters plus the Go and process collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		Registry: reg,
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "academy",
			Name:      "logins_total",
			Help:      "Sign-in attempts by principal and outcome.",
		}, []string{"principal", "outcome"}),
		payments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "academy",
			Name:      "payments_total",
			Help:      "Payment status changes by resulting status.",
		}, []string{"status"}),
		expired: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "academy",
			Name:      "payments_expired_total",
			Help:      "Pending payments cancelled by housekeeping.",
		}),
	}
	reg.MustRegister(
		m.logins,
		m.payments,
		m.expired,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Login counts one sign-in attempt. Safe on a nil receiver.
func (m *Metrics) Login(principal, outcome string) {
	if m == nil {
		return
	}
	m.logins.WithLabelValues(principal, outcome).Inc()
}

// Payment counts a payment reaching status.
func (m *Metrics) Payment(status string) {
	if m == nil {
		return
	}
	m.payments.WithLabelValues(status).Inc()
}

// Expired counts payments cancelled by housekeeping.
func (m *Metrics) Expired(n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.expired.Add(float64(n))
}
