package xtail

import (
	"fmt"
	"runtime/debug"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/trickstertwo/xclock"
)

// Logger is the logging service object. It gates calls on the production
// flag, captures caller identity, appends to history, forwards to the sink,
// and notifies observers, in that order, all on the calling goroutine.
// All methods are safe for concurrent use.
type Logger struct {
	sink    Sink
	history *history
	metrics Metrics

	production atomic.Bool

	// Observers: lock-free reads via atomic.Value; synchronized updates via
	// obsMu. Stored value is []registration and MUST be treated as
	// immutable by readers.
	observers atomic.Value // holds []registration
	obsMu     sync.Mutex
}

// registration pairs an observer with its removal token.
type registration struct {
	id uuid.UUID
	o  Observer
}

// Factory: internal constructor.
func newLogger(cfg Config) *Logger {
	l := &Logger{
		sink:    cfg.Sink,
		history: NewHistory(cfg.Capacity),
		metrics: cfg.Metrics,
	}
	if l.metrics == nil {
		l.metrics = NopMetrics{}
	}
	if cfg.Production != nil {
		l.production.Store(*cfg.Production)
	} else {
		l.production.Store(DetectProduction())
	}
	if len(cfg.Observers) > 0 {
		regs := make([]registration, 0, len(cfg.Observers))
		for _, o := range cfg.Observers {
			regs = append(regs, registration{id: uuid.New(), o: o})
		}
		l.observers.Store(regs)
	} else {
		l.observers.Store(([]registration)(nil))
	}
	return l
}

// Facade: global access (Singleton + Facade).
var global atomic.Pointer[Logger]

// SetGlobal sets the process-wide Logger (Singleton setter).
func SetGlobal(l *Logger) { global.Store(l) }

// L returns the process-wide Logger; panics if unset to surface
// misconfiguration early.
func L() *Logger {
	l := global.Load()
	if l == nil {
		panic("xtail: global logger not set. Build one and call xtail.SetGlobal(...)")
	}
	return l
}

// ProductionMode reports the current production flag.
func (l *Logger) ProductionMode() bool { return l.production.Load() }

// SetProduction overrides the production flag. It takes effect for the
// next logging call and may be changed any number of times.
func (l *Logger) SetProduction(on bool) { l.production.Store(on) }

// Enabled reports whether a call at 'level' would be emitted right now.
// Debug, Info, and Warning are suppressed in production mode; Error and
// Fatal always pass.
func (l *Logger) Enabled(level Level) bool {
	return level.Visible(l.minVisible())
}

func (l *Logger) minVisible() Level {
	if l.production.Load() {
		return LevelError
	}
	return LevelDebug
}

// Severity entry points. Each takes a single message value; nil is
// recorded as the literal text "null".

func (l *Logger) Debug(v any)   { l.log(LevelDebug, v) }
func (l *Logger) Info(v any)    { l.log(LevelInfo, v) }
func (l *Logger) Warning(v any) { l.log(LevelWarning, v) }
func (l *Logger) Error(v any)   { l.log(LevelError, v) }

// Fatal records at the highest severity. It only classifies; it does not
// terminate the process.
func (l *Logger) Fatal(v any) { l.log(LevelFatal, v) }

// Printf-style variants.

func (l *Logger) Debugf(format string, args ...any)   { l.logf(LevelDebug, format, args) }
func (l *Logger) Infof(format string, args ...any)    { l.logf(LevelInfo, format, args) }
func (l *Logger) Warningf(format string, args ...any) { l.logf(LevelWarning, format, args) }
func (l *Logger) Errorf(format string, args ...any)   { l.logf(LevelError, format, args) }
func (l *Logger) Fatalf(format string, args ...any)   { l.logf(LevelFatal, format, args) }

// Exception records err at Error severity with the current stack trace
// attached. It is never suppressed.
func (l *Logger) Exception(err error) { l.logException(err) }

// log and logf gate before doing any work: a suppressed call must not
// render the message or resolve the call site.
func (l *Logger) log(level Level, v any) {
	if !l.Enabled(level) {
		l.metrics.Suppressed(level)
		return
	}
	l.emit(level, messageText(v), "")
}

func (l *Logger) logf(level Level, format string, args []any) {
	if !l.Enabled(level) {
		l.metrics.Suppressed(level)
		return
	}
	l.emit(level, fmt.Sprintf(format, args...), "")
}

func (l *Logger) logException(err error) {
	// Error severity passes every gate; no suppression check needed.
	msg := "null"
	if err != nil {
		msg = fmt.Sprintf("%T: %v", err, err)
	}
	l.emit(LevelError, msg, string(debug.Stack()))
}

// emit builds the entry and publishes it: history first, then sink, then
// observers. It expects to sit exactly three frames below the user's call
// site (exported wrapper -> log/logf/logException -> emit).
func (l *Logger) emit(level Level, msg, stack string) {
	class, method, line := callSite(3)

	// Single authoritative timestamp from xclock.
	e := Entry{
		Level:        level,
		Message:      msg,
		CallerClass:  class,
		CallerMethod: method,
		Line:         line,
		At:           xclock.Now(),
		Stack:        stack,
	}

	l.history.Append(e)
	l.sink.Write(e)
	l.notify(e)
	l.metrics.Logged(level)
}

// notify runs after the entry is durably in history. The snapshot is
// loaded without locks so a callback may log, subscribe, or unsubscribe
// without deadlocking.
func (l *Logger) notify(e Entry) {
	v := l.observers.Load()
	if v == nil {
		return
	}
	regs := v.([]registration)
	for i := range regs {
		notifyOne(regs[i].o, e)
	}
}

// notifyOne isolates observer panics: one failing observer must not stop
// delivery to the rest or take down the logging caller.
func notifyOne(o Observer, e Entry) {
	defer func() { _ = recover() }()
	o.OnLog(e)
}

// Subscribe registers o and returns its removal token. Duplicate
// registrations are independent; each is invoked once per entry, in
// registration order.
func (l *Logger) Subscribe(o Observer) uuid.UUID {
	l.obsMu.Lock()
	defer l.obsMu.Unlock()
	id := uuid.New()
	l.observers.Store(append(l.snapshotRegs(), registration{id: id, o: o}))
	return id
}

// SubscribeFunc registers a plain function observer.
func (l *Logger) SubscribeFunc(f func(Entry)) uuid.UUID {
	return l.Subscribe(ObserverFunc(f))
}

// Unsubscribe removes the registration identified by token. Unknown or
// already-removed tokens are a no-op.
func (l *Logger) Unsubscribe(token uuid.UUID) {
	l.obsMu.Lock()
	defer l.obsMu.Unlock()
	cur := l.snapshotRegs()
	for i := range cur {
		if cur[i].id == token {
			next := append(cur[:i], cur[i+1:]...)
			if len(next) == 0 {
				next = nil
			}
			l.observers.Store(next)
			return
		}
	}
}

// snapshotRegs returns a fresh copy safe to mutate; callers hold obsMu.
func (l *Logger) snapshotRegs() []registration {
	v := l.observers.Load()
	if v == nil {
		return nil
	}
	cur := v.([]registration)
	if len(cur) == 0 {
		return nil
	}
	out := make([]registration, len(cur))
	copy(out, cur)
	return out
}

// History returns a snapshot of retained entries, oldest first.
func (l *Logger) History() []Entry { return l.history.Snapshot() }

// HistoryLen reports the number of retained entries without copying.
func (l *Logger) HistoryLen() int { return l.history.Len() }

// Clear empties the history.
func (l *Logger) Clear() { l.history.Clear() }

// Dump renders the history as one detailed line per entry.
func (l *Logger) Dump() string {
	var b strings.Builder
	for _, e := range l.history.Snapshot() {
		b.WriteString(e.Detail())
		b.WriteByte('\n')
	}
	return b.String()
}
