package xtail

import (
	"errors"
	"testing"
	"time"
)

func TestMessageText(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   any
		want string
	}{
		{nil, "null"},
		{"plain", "plain"},
		{42, "42"},
		{3.5, "3.5"},
		{true, "true"},
		{errors.New("boom"), "boom"},
	}
	for _, c := range cases {
		if got := messageText(c.in); got != c.want {
			t.Fatalf("messageText(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestEntrySummary(t *testing.T) {
	t.Parallel()

	e := Entry{
		Level:       LevelError,
		Message:     "disk full",
		CallerClass: "storage",
	}
	if got := e.Summary(); got != "[storage] disk full" {
		t.Fatalf("Summary = %q", got)
	}
}

func TestEntryDetail(t *testing.T) {
	t.Parallel()

	e := Entry{
		Level:        LevelWarning,
		Message:      "latency high",
		CallerClass:  "gateway",
		CallerMethod: "Poll",
		Line:         42,
		At:           time.Date(2025, 3, 9, 13, 4, 5, 0, time.UTC),
	}
	want := "[13:04:05] [WARNING] [gateway.Poll:42] latency high"
	if got := e.Detail(); got != want {
		t.Fatalf("Detail = %q, want %q", got, want)
	}
}

func TestEntryColor(t *testing.T) {
	t.Parallel()

	e := Entry{Level: LevelFatal}
	if got := e.Color(); got != ColorRed {
		t.Fatalf("Color = %v, want %v", got, ColorRed)
	}
}
