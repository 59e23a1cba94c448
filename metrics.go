package xtail

// Metrics receives counters from the logging path. Implementations must be
// safe for concurrent use.
type Metrics interface {
	// Logged is called once per emitted entry, after observers ran.
	Logged(level Level)
	// Suppressed is called once per call dropped by the production gate.
	Suppressed(level Level)
}

// NopMetrics discards all counts.
type NopMetrics struct{}

func (NopMetrics) Logged(Level)     {}
func (NopMetrics) Suppressed(Level) {}
