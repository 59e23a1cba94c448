package zap

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/trickstertwo/xtail"
)

// Config is an explicit, code-first configuration for zap + xtail.
// No envs, no hidden init, one call to Use.
type Config struct {
	Writer             io.Writer             // default: os.Stdout
	Console            bool                  // pretty console-like output via zapcore.NewConsoleEncoder
	EncoderConfig      zapcore.EncoderConfig // if zero, a sensible default is used
	TimestampFieldName string                // default "ts" (aligns with xtail's authoritative timestamp)

	Capacity   int             // history entries; xtail.DefaultCapacity when <= 0
	Production *bool           // nil: xtail.DetectProduction decides
	Metrics    xtail.Metrics   // optional instrumentation
	Observers  []xtail.Observer
}

// Use builds a zap-backed xtail logger from Config, wires it as the global
// xtail logger, and returns it. Timestamps come from xclock at emit time, so
// frozen/offset/calibrated clocks are respected.
func Use(cfg Config) *xtail.Logger {
	w := cfg.Writer
	if w == nil {
		w = os.Stdout
	}
	if cfg.TimestampFieldName == "" {
		cfg.TimestampFieldName = "ts"
	}

	// Encoder config defaults: do not let zap inject its own time (xtail provides "ts")
	encCfg := cfg.EncoderConfig
	if encCfg.TimeKey == "" && encCfg.LevelKey == "" && encCfg.MessageKey == "" && encCfg.EncodeTime == nil {
		encCfg = zapcore.EncoderConfig{
			TimeKey:        "", // xtail injects "ts"
			LevelKey:       "level",
			MessageKey:     "message",
			EncodeLevel:    zapcore.LowercaseLevelEncoder,
			EncodeTime:     zapcore.RFC3339NanoTimeEncoder, // used if you yourself add zap.Time fields
			EncodeDuration: zapcore.StringDurationEncoder,
		}
	} else {
		// Ensure zap itself doesn't add an extra time field
		encCfg.TimeKey = ""
	}

	var enc zapcore.Encoder
	if cfg.Console {
		enc = zapcore.NewConsoleEncoder(encCfg)
	} else {
		enc = zapcore.NewJSONEncoder(encCfg)
	}

	sink := zapcore.AddSync(w)

	// The backend accepts everything; suppression is xtail's production gate.
	// The AtomicLevel stays reachable through SetBackendLevel.
	al := zap.NewAtomicLevelAt(zapcore.DebugLevel)
	core := zapcore.NewCore(enc, sink, al)

	zl := zap.New(core,
		zap.AddStacktrace(zapcore.FatalLevel+1), // effectively off; xtail attaches its own stacks
	)

	ad := NewWithTimestampKey(zl, &al, cfg.TimestampFieldName)

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
