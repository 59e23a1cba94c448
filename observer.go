package xtail

// Observer is notified for each emitted entry (Observer pattern).
// Callbacks run synchronously on the goroutine that logged, after the
// entry is already in history, so calling back into the logger is safe.
type Observer interface {
	OnLog(e Entry)
}

// ObserverFunc adapter.
type ObserverFunc func(Entry)

func (f ObserverFunc) OnLog(e Entry) { f(e) }
