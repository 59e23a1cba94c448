package stream

import (
	"io"
	"testing"

	"github.com/trickstertwo/xtail"
)

func BenchmarkText(b *testing.B) {
	s := New(io.Discard, Options{Format: FormatText})
	e := testEntry(xtail.LevelInfo, "bench")
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Write(e)
	}
}

func BenchmarkJSON(b *testing.B) {
	s := New(io.Discard, Options{Format: FormatJSON})
	e := testEntry(xtail.LevelInfo, "bench")
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Write(e)
	}
}

func BenchmarkJSON_WithStack(b *testing.B) {
	s := New(io.Discard, Options{Format: FormatJSON})
	e := testEntry(xtail.LevelError, "bench")
	e.Stack = "goroutine 1 [running]:\nmain.main()\n\t/srv/app/main.go:10 +0x20"
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Write(e)
	}
}
