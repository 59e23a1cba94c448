package xtail

import (
	"errors"
	"strings"
	"testing"
)

// The facade tests mutate the process-wide logger, so none of them run in
// parallel. Each installs its own instance before exercising the package
// functions.

func TestGlobalUnsetPanics(t *testing.T) {
	prev := global.Load()
	global.Store(nil)
	defer global.Store(prev)
	defer func() {
		if recover() == nil {
			t.Fatal("L() did not panic with no global logger installed")
		}
	}()
	L()
}

func TestFacadeDelegatesToGlobal(t *testing.T) {
	prev := global.Load()
	defer global.Store(prev)

	logger, sink := newTestLogger(t)
	SetGlobal(logger)

	Info("via facade")

	e := sink.last(t)
	if e.Message != "via facade" || e.Level != LevelInfo {
		t.Fatalf("entry = %+v", e)
	}
	if e.CallerClass != "facade_test" {
		t.Fatalf("CallerClass = %q, want %q", e.CallerClass, "facade_test")
	}
	if e.CallerMethod != "TestFacadeDelegatesToGlobal" {
		t.Fatalf("CallerMethod = %q", e.CallerMethod)
	}
	if HistoryLen() != 1 {
		t.Fatalf("HistoryLen = %d, want 1", HistoryLen())
	}
}

func TestFacadeSeverityFunctions(t *testing.T) {
	prev := global.Load()
	defer global.Store(prev)

	logger, _ := newTestLogger(t)
	SetGlobal(logger)

	Debug("d")
	Warningf("w%d", 1)
	Error("e")
	Fatal("f")
	Exception(errors.New("boom"))

	snap := History()
	if len(snap) != 5 {
		t.Fatalf("history has %d entries, want 5", len(snap))
	}
	if snap[1].Message != "w1" || snap[1].Level != LevelWarning {
		t.Fatalf("formatted warning entry = %+v", snap[1])
	}
	last := snap[4]
	if last.Level != LevelError || !strings.Contains(last.Message, "boom") {
		t.Fatalf("exception entry = %+v", last)
	}
	if last.Stack == "" {
		t.Fatal("exception entry has no stack")
	}

	Clear()
	if Dump() != "" {
		t.Fatal("Dump not empty after Clear")
	}
}

func TestFacadeProductionToggle(t *testing.T) {
	prev := global.Load()
	defer global.Store(prev)

	logger, sink := newTestLogger(t)
	SetGlobal(logger)

	SetProduction(true)
	if !ProductionMode() {
		t.Fatal("ProductionMode = false after SetProduction(true)")
	}
	Debug("hidden")
	if sink.count() != 0 {
		t.Fatal("suppressed call reached the sink")
	}

	SetProduction(false)
	Debug("shown")
	if sink.count() != 1 {
		t.Fatal("development call did not reach the sink")
	}
}

func TestFacadeSubscription(t *testing.T) {
	prev := global.Load()
	defer global.Store(prev)

	logger, _ := newTestLogger(t)
	SetGlobal(logger)

	rec := &recorder{}
	token := Subscribe(rec)
	Info("one")
	Unsubscribe(token)
	Info("two")

	if got := rec.messages(); len(got) != 1 || got[0] != "one" {
		t.Fatalf("observer saw %v, want [one]", got)
	}
}

func TestUseSinkInstallsGlobal(t *testing.T) {
	prev := global.Load()
	defer global.Store(prev)

	sink := &stubSink{}
	rec := &recorder{}
	logger := UseSink(sink, rec)

	if L() != logger {
		t.Fatal("UseSink did not install the returned logger")
	}
	logger.SetProduction(false)

	Info("wired")
	if sink.count() != 1 {
		t.Fatal("sink not wired")
	}
	if got := rec.messages(); len(got) != 1 {
		t.Fatalf("observer saw %v", got)
	}
}

func TestNewInstallsDefault(t *testing.T) {
	prev := global.Load()
	defer global.Store(prev)

	logger := New()
	if logger == nil || L() != logger {
		t.Fatal("New did not install a global logger")
	}
	if logger.HistoryLen() != 0 {
		t.Fatal("fresh logger has history entries")
	}
}
