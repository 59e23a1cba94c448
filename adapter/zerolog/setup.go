package zerolog

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/trickstertwo/xtail"
)

// Config is an explicit, code-first configuration for zerolog + xtail.
// No envs, no hidden init, one call to Use.
type Config struct {
	Writer             io.Writer // default: os.Stdout
	Console            bool      // pretty console output instead of JSON
	ConsoleTimeFormat  string    // only used if Console==true; default time.RFC3339Nano
	TimestampFieldName string    // default "ts" (aligns with xtail's authoritative timestamp)

	Capacity   int   // history entries; xtail.DefaultCapacity when <= 0
	Production *bool // nil: xtail.DetectProduction decides
	Metrics    xtail.Metrics
	Observers  []xtail.Observer
}

// Use builds a zerolog-backed xtail logger from Config, wires it as the
// global xtail logger, and returns it. Timestamps come from xclock at emit
// time, so frozen/offset/calibrated clocks are respected.
func Use(cfg Config) *xtail.Logger {
	w := cfg.Writer
	if w == nil {
		w = os.Stdout
	}
	if cfg.TimestampFieldName == "" {
		cfg.TimestampFieldName = "ts"
	}

	var zl zerolog.Logger
	if cfg.Console {
		// Align console's leading timestamp column with our authoritative ts key
		zerolog.TimestampFieldName = cfg.TimestampFieldName
		cw := zerolog.ConsoleWriter{Out: w}
		if cfg.ConsoleTimeFormat == "" {
			cw.TimeFormat = time.RFC3339Nano
		} else {
			cw.TimeFormat = cfg.ConsoleTimeFormat
		}
		zl = zerolog.New(cw)
	} else {
		zl = zerolog.New(w)
	}

	// The backend accepts everything; suppression is xtail's production gate.
	zl = zl.Level(zerolog.DebugLevel)

	ad := NewWithTimestampKey(zl, cfg.TimestampFieldName)

	b := xtail.NewBuilder().
		WithSink(ad).
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
		// In practice, Build only fails with a nil sink which cannot happen
		// here. Keep panic to surface programming errors early.
		panic(err)
	}

	xtail.SetGlobal(logger)
	return logger
}
