// internal/metrics/metrics.go
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// Metrics holds the engine's instrumentation. All methods are nil-safe so
// the engine can run without a metrics listener.
type Metrics struct {
	TransitionsApplied prometheus.Counter
	EffectsExecuted    prometheus.Counter
	CallsFailed        prometheus.Counter
	WindowsOpened      prometheus.Counter
	WindowsResolved    *prometheus.CounterVec
	Connected          prometheus.Gauge
}

// New registers and returns the metric set under the given namespace.
func New(namespace string) *Metrics {
	m := &Metrics{
		TransitionsApplied: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transitions_applied_total",
			Help:      "Total state transitions applied",
		}),
		EffectsExecuted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "effects_executed_total",
			Help:      "Total resume/cancel effects executed",
		}),
		CallsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "calls_failed_total",
			Help:      "Total outbound calls that failed",
		}),
		WindowsOpened: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "counter_windows_opened_total",
			Help:      "Total counter windows opened",
		}),
		WindowsResolved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "counter_windows_resolved_total",
			Help:      "Total counter windows resolved, by result",
		}, []string{"result"}),
		Connected: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "connected",
			Help:      "Whether the push channel is connected",
		}),
	}

	prometheus.MustRegister(
		m.TransitionsApplied,
		m.EffectsExecuted,
		m.CallsFailed,
		m.WindowsOpened,
		m.WindowsResolved,
		m.Connected,
	)

	return m
}

// Serve exposes /metrics on addr in a background goroutine.
func (m *Metrics) Serve(addr string, log *logrus.Logger) {
	if m == nil || addr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			log.WithError(err).Error("metrics listener stopped")
		}
	}()
}

func (m *Metrics) IncTransitions() {
	if m != nil {
		m.TransitionsApplied.Inc()
	}
}

func (m *Metrics) IncEffects() {
	if m != nil {
		m.EffectsExecuted.Inc()
	}
}

func (m *Metrics) IncCallsFailed() {
	if m != nil {
		m.CallsFailed.Inc()
	}
}

func (m *Metrics) IncWindowsOpened() {
	if m != nil {
		m.WindowsOpened.Inc()
	}
}

func (m *Metrics) IncWindowsResolved(result string) {
	if m != nil {
		m.WindowsResolved.WithLabelValues(result).Inc()
	}
}

func (m *Metrics) SetConnected(up bool) {
	if m == nil {
		return
	}
	if up {
		m.Connected.Set(1)
	} else {
		m.Connected.Set(0)
	}
}
