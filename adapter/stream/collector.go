package stream

import "github.com/trickstertwo/xtail"

// Collector receives write metrics. Implementations must be concurrency-safe.
type Collector interface {
	WroteEntry(level xtail.Level, durMS float64, size int, err error)
}

type NoopCollector struct{}

func (*NoopCollector) WroteEntry(level xtail.Level, durMS float64, size int, err error) {}
