package stream

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/trickstertwo/xtail"
)

func testEntry(level xtail.Level, msg string) xtail.Entry {
	return xtail.Entry{
		Level:        level,
		Message:      msg,
		CallerClass:  "core",
		CallerMethod: "Tick",
		Line:         7,
		At:           time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC),
	}
}

func TestTextFormat(t *testing.T) {
	var buf bytes.Buffer
	s := New(&buf, Options{Format: FormatText})

	s.Write(testEntry(xtail.LevelInfo, "ready"))

	want := "ts=2024-12-31T23:59:59Z level=info caller=core.Tick:7 msg=ready\n"
	if got := buf.String(); got != want {
		t.Fatalf("line = %q, want %q", got, want)
	}
}

func TestTextQuotesUnsafeMessages(t *testing.T) {
	var buf bytes.Buffer
	s := New(&buf, Options{Format: FormatText})

	s.Write(testEntry(xtail.LevelWarning, "cache warm"))

	if got := buf.String(); !strings.Contains(got, `msg="cache warm"`) {
		t.Fatalf("unsafe message not quoted: %q", got)
	}
}

func TestTextStackStaysOneLine(t *testing.T) {
	var buf bytes.Buffer
	s := New(&buf, Options{Format: FormatText})

	e := testEntry(xtail.LevelError, "boom")
	e.Stack = "goroutine 1 [running]:\nmain.main()"
	s.Write(e)

	got := buf.String()
	if strings.Count(got, "\n") != 1 {
		t.Fatalf("stack broke the one-line invariant: %q", got)
	}
	if !strings.Contains(got, `stack="goroutine 1 [running]:\nmain.main()"`) {
		t.Fatalf("stack not escaped: %q", got)
	}
}

func TestTextCustomTimeFormat(t *testing.T) {
	var buf bytes.Buffer
	s := New(&buf, Options{Format: FormatText, TimeFormat: "15:04:05"})

	s.Write(testEntry(xtail.LevelInfo, "x"))

	if got := buf.String(); !strings.HasPrefix(got, "ts=23:59:59 ") {
		t.Fatalf("custom time format ignored: %q", got)
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	s := New(&buf, Options{Format: FormatJSON})

	e := testEntry(xtail.LevelFatal, "unrecoverable")
	e.Stack = "goroutine 1 [running]:"
	s.Write(e)

	var m map[string]any
	if err := json.Unmarshal(buf.Bytes(), &m); err != nil {
		t.Fatalf("invalid json: %v; line=%s", err, buf.String())
	}
	if m["level"] != "fatal" || m["message"] != "unrecoverable" {
		t.Fatalf("fields mismatch: %v", m)
	}
	if m["ts"] != e.At.Format(time.RFC3339Nano) {
		t.Fatalf("ts mismatch: %v", m["ts"])
	}
	if m["caller_class"] != "core" || m["caller_method"] != "Tick" || m["line"] != float64(7) {
		t.Fatalf("caller fields mismatch: %v", m)
	}
	if m["stack"] != "goroutine 1 [running]:" {
		t.Fatalf("stack mismatch: %v", m)
	}
}

func TestJSONTimeEncodings(t *testing.T) {
	e := testEntry(xtail.LevelInfo, "x")

	var millis bytes.Buffer
	New(&millis, Options{Format: FormatJSON, JSONTime: TimeUnixMillis}).Write(e)
	var m map[string]any
	if err := json.Unmarshal(millis.Bytes(), &m); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if m["ts"] != float64(e.At.UnixMilli()) {
		t.Fatalf("millis ts mismatch: %v", m["ts"])
	}

	var nanos bytes.Buffer
	New(&nanos, Options{Format: FormatJSON, JSONTime: TimeUnixNanos}).Write(e)
	if err := json.Unmarshal(nanos.Bytes(), &m); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if m["ts"] != float64(e.At.UnixNano()) {
		t.Fatalf("nanos ts mismatch: %v", m["ts"])
	}
}

func TestJSONEscapesMessage(t *testing.T) {
	var buf bytes.Buffer
	s := New(&buf, Options{Format: FormatJSON})

	s.Write(testEntry(xtail.LevelInfo, "tab\there \"quoted\""))

	var m map[string]any
	if err := json.Unmarshal(buf.Bytes(), &m); err != nil {
		t.Fatalf("escaping broke the document: %v; line=%s", err, buf.String())
	}
	if m["message"] != "tab\there \"quoted\"" {
		t.Fatalf("round-trip mismatch: %q", m["message"])
	}
}

func TestLevelRouting(t *testing.T) {
	var std, errs bytes.Buffer
	factory := &LevelWriterFactory{
		Default: &std,
		LevelWriter: map[xtail.Level]io.Writer{
			xtail.LevelError: &errs,
			xtail.LevelFatal: &errs,
		},
	}
	s := NewWithWriterFactory(factory, Options{Format: FormatText})

	s.Write(testEntry(xtail.LevelDebug, "a"))
	s.Write(testEntry(xtail.LevelWarning, "b"))
	s.Write(testEntry(xtail.LevelError, "c"))
	s.Write(testEntry(xtail.LevelFatal, "d"))

	if got := std.String(); !strings.Contains(got, "msg=a") || !strings.Contains(got, "msg=b") || strings.Contains(got, "msg=c") {
		t.Fatalf("default writer:\n%s", got)
	}
	if got := errs.String(); !strings.Contains(got, "msg=c") || !strings.Contains(got, "msg=d") {
		t.Fatalf("error writer:\n%s", got)
	}
}

type failingWriter struct{ err error }

func (w failingWriter) Write([]byte) (int, error) { return 0, w.err }

func TestErrorHandlerAndStats(t *testing.T) {
	var handled []error
	s := New(failingWriter{err: errors.New("pipe closed")}, Options{
		ErrorHandler: func(err error) { handled = append(handled, err) },
	})

	s.Write(testEntry(xtail.LevelInfo, "lost"))

	if len(handled) != 1 || handled[0].Error() != "pipe closed" {
		t.Fatalf("handler saw %v", handled)
	}
	if st := s.Stats(); st.WriteErrors != 1 || st.Written != 0 {
		t.Fatalf("stats = %+v", st)
	}

	s.ResetStats()
	if st := s.Stats(); st.WriteErrors != 0 {
		t.Fatalf("stats after reset = %+v", st)
	}
}

type recordingCollector struct {
	mu     sync.Mutex
	levels []xtail.Level
	sizes  []int
}

func (c *recordingCollector) WroteEntry(level xtail.Level, durMS float64, size int, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.levels = append(c.levels, level)
	c.sizes = append(c.sizes, size)
}

func TestCollectorReceivesWrites(t *testing.T) {
	var buf bytes.Buffer
	s := New(&buf, Options{Format: FormatText})
	col := &recordingCollector{}
	s.SetCollector(col)

	s.Write(testEntry(xtail.LevelWarning, "w"))

	col.mu.Lock()
	defer col.mu.Unlock()
	if len(col.levels) != 1 || col.levels[0] != xtail.LevelWarning {
		t.Fatalf("collector levels = %v", col.levels)
	}
	if col.sizes[0] != buf.Len() {
		t.Fatalf("collector size = %d, want %d", col.sizes[0], buf.Len())
	}
}

func TestConcurrentWrites(t *testing.T) {
	var buf bytes.Buffer
	s := New(&buf, Options{Format: FormatText})

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				s.Write(testEntry(xtail.LevelInfo, "p"))
			}
		}()
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 400 {
		t.Fatalf("wrote %d lines, want 400", len(lines))
	}
	for _, line := range lines {
		if !strings.HasPrefix(line, "ts=") || !strings.HasSuffix(line, "msg=p") {
			t.Fatalf("interleaved line: %q", line)
		}
	}
	if st := s.Stats(); st.Written != 400 {
		t.Fatalf("stats = %+v", st)
	}
}

func TestUse_WiresGlobal(t *testing.T) {
	var buf bytes.Buffer
	off := false
	logger := Use(Config{Writer: &buf, Format: FormatText, Production: &off})

	logger.Info("ready")
	if !strings.Contains(buf.String(), "msg=ready") {
		t.Fatalf("returned logger not wired: %s", buf.String())
	}

	buf.Reset()
	xtail.Error("via facade")
	if got := buf.String(); !strings.Contains(got, "caller=stream_test.TestUse_WiresGlobal:") {
		t.Fatalf("facade not wired: %s", got)
	}
}
