package slog

import (
	"io"
	"log/slog"
	"os"

	"github.com/trickstertwo/xtail"
)

// Format selects the slog handler format.
type Format uint8

const (
	FormatJSON Format = iota + 1
	FormatText
)

// Config is an explicit, code-first configuration for slog + xtail.
// One call to Use wires a slog-backed xtail logger and sets it global.
type Config struct {
	Writer             io.Writer            // default: os.Stdout
	Format             Format               // JSON (default) or Text
	HandlerOptions     *slog.HandlerOptions // optional; Level is managed by Use via LevelVar
	TimestampFieldName string               // default "ts" (aligns with xtail's authoritative timestamp)

	Capacity   int   // history entries; xtail.DefaultCapacity when <= 0
	Production *bool // nil: xtail.DetectProduction decides
	Metrics    xtail.Metrics
	Observers  []xtail.Observer
}

// Use builds a slog-backed xtail logger from Config, sets it as global, and
// returns it.
func Use(cfg Config) *xtail.Logger {
	w := cfg.Writer
	if w == nil {
		w = os.Stdout
	}
	if cfg.TimestampFieldName == "" {
		cfg.TimestampFieldName = "ts"
	}
	opts := cfg.HandlerOptions
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}

	// The backend accepts everything; suppression is xtail's production gate.
	// The LevelVar stays reachable through SetBackendLevel.
	var lv slog.LevelVar
	lv.Set(slog.LevelDebug)
	opts.Level = &lv

	var h slog.Handler
	if cfg.Format == 0 || cfg.Format == FormatJSON {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	sl := slog.New(h)

	ad := NewWithTimestampKey(sl, &lv, cfg.TimestampFieldName)

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
		panic(err)
	}

	xtail.SetGlobal(logger)
	return logger
}
