// Package prom exports xtail's emission counters to Prometheus.
// It follows Prometheus naming conventions: one counter family per outcome,
// labeled by severity.
package prom

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/trickstertwo/xtail"
)

// Metrics implements xtail.Metrics on top of prometheus counters.
type Metrics struct {
	emittedTotal    *prometheus.CounterVec
	suppressedTotal *prometheus.CounterVec
}

var _ xtail.Metrics = (*Metrics)(nil)

// New creates the counter families prefixed with namespace (default "xtail")
// and registers them with reg (default prometheus.DefaultRegisterer).
// It panics if registration fails, e.g. on duplicate names.
func New(namespace string, reg prometheus.Registerer) *Metrics {
	if namespace == "" {
		namespace = "xtail"
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		emittedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: fmt.Sprintf("%s_entries_emitted_total", namespace),
				Help: "Total log entries emitted, by severity.",
			},
			[]string{"level"},
		),
		suppressedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: fmt.Sprintf("%s_entries_suppressed_total", namespace),
				Help: "Total log calls suppressed by the production gate, by severity.",
			},
			[]string{"level"},
		),
	}

	reg.MustRegister(m.emittedTotal, m.suppressedTotal)
	return m
}

// Logged counts one emitted entry.
func (m *Metrics) Logged(level xtail.Level) {
	m.emittedTotal.WithLabelValues(levelLabel(level)).Inc()
}

// Suppressed counts one call dropped by the production gate.
func (m *Metrics) Suppressed(level xtail.Level) {
	m.suppressedTotal.WithLabelValues(levelLabel(level)).Inc()
}

var levelLabels = [...]string{"debug", "info", "warning", "error", "fatal"}

func levelLabel(l xtail.Level) string {
	if l >= xtail.LevelDebug && l <= xtail.LevelFatal {
		return levelLabels[int(l)]
	}
	return l.String()
}
