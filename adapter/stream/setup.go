package stream

import (
	"io"
	"os"

	"github.com/trickstertwo/xtail"
)

// Config is an explicit, code-first configuration for the stream sink.
// Use provides a single-call setup with no envs or side-imports.
type Config struct {
	// Writer routes all severities to this writer when WriterFactory is nil.
	// Defaults to os.Stdout.
	Writer io.Writer

	// WriterFactory optionally routes entries by severity.
	// When set, it takes precedence over Writer.
	WriterFactory WriterFactory

	// Core behavior (mirrors Options)
	Format       Format
	ErrorHandler ErrorHandler
	TimeFormat   string
	JSONTime     TimeEncoding
	BufferSize   int

	Collector Collector // optional write observability

	Capacity   int   // history entries; xtail.DefaultCapacity when <= 0
	Production *bool // nil: xtail.DetectProduction decides
	Metrics    xtail.Metrics
	Observers  []xtail.Observer
}

// Use builds an xtail.Logger backed by the stream sink with Config, sets it
// as the global logger, and returns it. No envs, no init-time magic.
func Use(cfg Config) *xtail.Logger {
	opts := Options{
		Format:       cfg.Format,
		ErrorHandler: cfg.ErrorHandler,
		TimeFormat:   cfg.TimeFormat,
		JSONTime:     cfg.JSONTime,
		BufferSize:   cfg.BufferSize,
	}

	var sink *Sink
	if cfg.WriterFactory != nil {
		sink = NewWithWriterFactory(cfg.WriterFactory, opts)
	} else {
		w := cfg.Writer
		if w == nil {
			w = os.Stdout
		}
		sink = New(w, opts)
	}

	if cfg.Collector != nil {
		sink.SetCollector(cfg.Collector)
	}

	b := xtail.NewBuilder().
		WithSink(sink).
		WithCapacity(cfg.Capacity).
		WithMetrics(cfg.Metrics)
	if cfg.Production != nil {
		b = b.WithProduction(*cfg.Production)
	}
	for _, o := range cfg.Observers {
		b = b.AddObserver(o)
	}

	logger, err := b.Build()
	if err != nil {
		panic(err)
	}

	xtail.SetGlobal(logger)
	return logger
}
