package zerolog

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/trickstertwo/xtail"
)

// Adapter bridges xtail to rs/zerolog with low overhead.
//
// Optimizations:
//   - Fast pre-check using GetLevel() to avoid allocating a zerolog.Event
//     when the level is disabled.
//   - Uses Logger.WithLevel(...) to avoid a level switch at call sites.
type Adapter struct {
	l     zerolog.Logger
	tsKey string
}

var _ xtail.Sink = (*Adapter)(nil)

func New(l zerolog.Logger) *Adapter {
	return &Adapter{l: l, tsKey: "ts"}
}

// NewWithTimestampKey names the timestamp field something other than "ts".
func NewWithTimestampKey(l zerolog.Logger, tsKey string) *Adapter {
	if tsKey == "" {
		tsKey = "ts"
	}
	return &Adapter{l: l, tsKey: tsKey}
}

// Write emits a single entry.
//   - Single authoritative timestamp provided by xtail passed as "ts".
//   - Fatal is treated as error level to avoid os.Exit side-effects; the
//     original severity travels in a "severity" field.
func (a *Adapter) Write(e xtail.Entry) {
	zlvl := mapLevel(e.Level)

	// Fast path: drop early if below logger's min level (no Event allocation).
	if zlvl < a.l.GetLevel() {
		return
	}

	ev := a.l.WithLevel(zlvl)

	// Ensure RFC3339Nano precision regardless of zerolog.TimeFieldFormat defaults.
	// Using a string avoids global config changes and keeps output deterministic.
	ev.Str(a.tsKey, e.At.UTC().Format(time.RFC3339Nano))

	ev.Str("caller_class", e.CallerClass)
	ev.Str("caller_method", e.CallerMethod)
	ev.Int("line", e.Line)
	if e.Level == xtail.LevelFatal {
		ev.Str("severity", e.Level.String())
	}
	if e.Stack != "" {
		ev.Str("stack", e.Stack)
	}

	ev.Msg(e.Message)
}

// SetBackendLevel propagates a floor into zerolog's own filter.
func (a *Adapter) SetBackendLevel(l xtail.Level) {
	a.l = a.l.Level(mapLevel(l))
}

// mapLevel converts xtail.Level to zerolog.Level.
// xtail.LevelFatal is mapped to Error to avoid zerolog.Fatal() (which would
// exit the process).
func mapLevel(l xtail.Level) zerolog.Level {
	switch {
	case l <= xtail.LevelDebug:
		return zerolog.DebugLevel
	case l <= xtail.LevelInfo:
		return zerolog.InfoLevel
	case l <= xtail.LevelWarning:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}
