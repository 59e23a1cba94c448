package zap

import (
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/trickstertwo/xtail"
)

// Adapter bridges xtail to go.uber.org/zap with low overhead.
//
// Optimizations:
//   - Uses Logger.Check(level, msg) to skip field construction when the
//     backend filters the level.
//   - Guarantees RFC3339Nano "ts" precision by writing it as a string field.
//
// Optional behavior:
//   - SetBackendLevel leverages zap.AtomicLevel when provided at construction
//     time to adjust the backend's own filter. If no AtomicLevel is provided,
//     SetBackendLevel is a no-op (xtail's production gate still applies).
type Adapter struct {
	l     *zap.Logger
	al    *zap.AtomicLevel // optional, enables SetBackendLevel
	tsKey string           // timestamp field key; default "ts"
}

var _ xtail.Sink = (*Adapter)(nil)

// New creates an adapter for the provided zap logger.
func New(l *zap.Logger) *Adapter {
	if l == nil {
		l = zap.NewNop()
	}
	return &Adapter{l: l, tsKey: "ts"}
}

// NewWithAtomicLevel creates an adapter and wires a zap.AtomicLevel so
// SetBackendLevel can dynamically adjust the backend's filter.
func NewWithAtomicLevel(l *zap.Logger, al *zap.AtomicLevel) *Adapter {
	if l == nil {
		l = zap.NewNop()
	}
	return &Adapter{l: l, al: al, tsKey: "ts"}
}

// NewWithTimestampKey lets callers override the timestamp field key (default "ts").
func NewWithTimestampKey(l *zap.Logger, al *zap.AtomicLevel, tsKey string) *Adapter {
	if l == nil {
		l = zap.NewNop()
	}
	if tsKey == "" {
		tsKey = "ts"
	}
	return &Adapter{l: l, al: al, tsKey: tsKey}
}

// Write emits a single entry.
//   - Uses xtail's authoritative timestamp as tsKey with RFC3339Nano precision.
//   - Maps LevelFatal to Error to avoid os.Exit in library code; the original
//     severity is preserved in a "severity" field.
func (a *Adapter) Write(e xtail.Entry) {
	zlvl := toZapLevel(e.Level)

	// Fast path: skip if disabled. Avoids building fields.
	ce := a.l.Check(zlvl, e.Message)
	if ce == nil {
		return
	}

	zfs := make([]zap.Field, 0, 6)
	zfs = append(zfs,
		zap.String(a.tsKey, e.At.UTC().Format(time.RFC3339Nano)),
		zap.String("caller_class", e.CallerClass),
		zap.String("caller_method", e.CallerMethod),
		zap.Int("line", e.Line),
	)
	if e.Level == xtail.LevelFatal {
		zfs = append(zfs, zap.String("severity", e.Level.String()))
	}
	if e.Stack != "" {
		zfs = append(zfs, zap.String("stack", e.Stack))
	}

	ce.Write(zfs...)
}

// SetBackendLevel updates the backend filter when an AtomicLevel was
// supplied. If not provided, this is a no-op (xtail filtering still applies).
func (a *Adapter) SetBackendLevel(l xtail.Level) {
	if a.al == nil {
		return
	}
	a.al.SetLevel(toZapLevel(l))
}

func toZapLevel(l xtail.Level) zapcore.Level {
	switch {
	case l <= xtail.LevelDebug:
		return zapcore.DebugLevel
	case l <= xtail.LevelInfo:
		return zapcore.InfoLevel
	case l <= xtail.LevelWarning:
		return zapcore.WarnLevel
	default:
		// Avoid Fatal/DPanic to prevent exits in library code.
		return zapcore.ErrorLevel
	}
}
