package stream

import (
	"io"

	"github.com/trickstertwo/xtail"
)

// Format defines the output format for log entries
type Format uint8

const (
	FormatText Format = iota + 1
	FormatJSON
)

// ErrorHandler defines how write errors are handled
type ErrorHandler func(error)

// TimeEncoding controls how the "ts" field is encoded in JSON.
type TimeEncoding uint8

const (
	TimeRFC3339Nano TimeEncoding = iota + 1 // default
	TimeUnixMillis                          // numeric, t.UnixMilli()
	TimeUnixNanos                           // numeric, t.UnixNano()
)

// Options configures the sink behavior
type Options struct {
	Format       Format
	ErrorHandler ErrorHandler
	TimeFormat   string       // text format only; default RFC3339Nano
	JSONTime     TimeEncoding // default TimeRFC3339Nano

	// Buffer tuning: initial capacity of format buffer.
	// Defaults to 2048 when <= 0.
	BufferSize int
}

// WriterFactory allows custom writers per severity
type WriterFactory interface {
	GetWriter(level xtail.Level) io.Writer
}

type DefaultWriterFactory struct{ Writer io.Writer }

func (f *DefaultWriterFactory) GetWriter(level xtail.Level) io.Writer { return f.Writer }

type LevelWriterFactory struct {
	Default     io.Writer
	LevelWriter map[xtail.Level]io.Writer
}

func (f *LevelWriterFactory) GetWriter(level xtail.Level) io.Writer {
	if w, ok := f.LevelWriter[level]; ok {
		return w
	}
	return f.Default
}
