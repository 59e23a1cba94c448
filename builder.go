package xtail

import "errors"

// ErrNoSink is returned by Build when no sink was provided.
var ErrNoSink = errors.New("xtail: sink required")

// Config for constructing a Logger (Factory data structure).
type Config struct {
	Sink       Sink
	Capacity   int   // history entries; DefaultCapacity when <= 0
	Production *bool // nil: DetectProduction decides the initial flag
	Observers  []Observer
	Metrics    Metrics // nil: NopMetrics
}

// Builder separates construction from representation (Builder pattern).
type Builder struct {
	cfg Config
}

func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) WithSink(s Sink) *Builder {
	b.cfg.Sink = s
	return b
}

func (b *Builder) WithCapacity(n int) *Builder {
	b.cfg.Capacity = n
	return b
}

func (b *Builder) WithProduction(on bool) *Builder {
	b.cfg.Production = &on
	return b
}

func (b *Builder) WithMetrics(m Metrics) *Builder {
	b.cfg.Metrics = m
	return b
}

func (b *Builder) AddObserver(o Observer) *Builder {
	b.cfg.Observers = append(b.cfg.Observers, o)
	return b
}

// Build constructs the Logger (Factory + Builder).
func (b *Builder) Build() (*Logger, error) {
	if b.cfg.Sink == nil {
		return nil, ErrNoSink
	}
	return newLogger(b.cfg), nil
}
