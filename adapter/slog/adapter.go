package slog

import (
	"context"
	"log/slog"

	"github.com/trickstertwo/xtail"
)

// Adapter bridges xtail to the standard library's log/slog (Adapter
// Strategy). It builds slog.Attrs directly for low overhead and uses
// LogAttrs.
type Adapter struct {
	l     *slog.Logger
	lv    *slog.LevelVar // optional, enables SetBackendLevel
	tsKey string         // timestamp field key; default "ts"
}

var _ xtail.Sink = (*Adapter)(nil)

// New creates an adapter for the provided slog logger.
func New(l *slog.Logger) *Adapter {
	if l == nil {
		l = slog.Default()
	}
	return &Adapter{l: l, tsKey: "ts"}
}

// NewWithLevelVar creates an adapter and wires a slog.LevelVar so
// SetBackendLevel can dynamically adjust the handler's filter.
func NewWithLevelVar(l *slog.Logger, lv *slog.LevelVar) *Adapter {
	if l == nil {
		l = slog.Default()
	}
	return &Adapter{l: l, lv: lv, tsKey: "ts"}
}

// NewWithTimestampKey names the timestamp attribute something other than
// "ts". A nil LevelVar disables SetBackendLevel.
func NewWithTimestampKey(l *slog.Logger, lv *slog.LevelVar, tsKey string) *Adapter {
	if l == nil {
		l = slog.Default()
	}
	if tsKey == "" {
		tsKey = "ts"
	}
	return &Adapter{l: l, lv: lv, tsKey: tsKey}
}

// Write emits a single entry through LogAttrs. The handler's own "time" key
// reflects the moment of the write; the authoritative xtail timestamp
// travels in tsKey.
func (a *Adapter) Write(e xtail.Entry) {
	slvl := toSlogLevel(e.Level)
	if !a.l.Enabled(context.Background(), slvl) {
		return
	}

	attrs := make([]slog.Attr, 0, 6)
	attrs = append(attrs,
		slog.Time(a.tsKey, e.At),
		slog.String("caller_class", e.CallerClass),
		slog.String("caller_method", e.CallerMethod),
		slog.Int("line", e.Line),
	)
	if e.Level == xtail.LevelFatal {
		attrs = append(attrs, slog.String("severity", e.Level.String()))
	}
	if e.Stack != "" {
		attrs = append(attrs, slog.String("stack", e.Stack))
	}

	a.l.LogAttrs(context.Background(), slvl, e.Message, attrs...)
}

// SetBackendLevel updates the handler filter when a LevelVar was supplied.
func (a *Adapter) SetBackendLevel(l xtail.Level) {
	if a.lv == nil {
		return
	}
	a.lv.Set(toSlogLevel(l))
}

// toSlogLevel maps xtail severities onto slog's sparse scale. Fatal lands on
// Error; slog has no fatal and the process must not exit from library code.
func toSlogLevel(l xtail.Level) slog.Level {
	switch {
	case l <= xtail.LevelDebug:
		return slog.LevelDebug
	case l <= xtail.LevelInfo:
		return slog.LevelInfo
	case l <= xtail.LevelWarning:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}
