package stream

import (
	"github.com/trickstertwo/xtail"
)

// Formatter writes one full output line for an entry.
type Formatter interface {
	FormatLogLine(buf *buffer, e xtail.Entry, opts Options)
}

var levelLower = [...]string{"debug", "info", "warning", "error", "fatal"}

func levelText(l xtail.Level) string {
	if l >= xtail.LevelDebug && l <= xtail.LevelFatal {
		return levelLower[int(l)]
	}
	return l.String()
}

type TextFormatter struct{}

var (
	textTsPrefix     = []byte("ts=")
	textLevelPrefix  = []byte(" level=")
	textCallerPrefix = []byte(" caller=")
	textMsgPrefix    = []byte(" msg=")
	textStackPrefix  = []byte(" stack=")
)

func (f *TextFormatter) FormatLogLine(buf *buffer, e xtail.Entry, opts Options) {
	buf.writeBytes(textTsPrefix)
	if opts.TimeFormat != "" {
		var tmp [64]byte
		b := e.At.AppendFormat(tmp[:0], opts.TimeFormat)
		buf.writeBytes(b)
	} else {
		appendRFC3339Nano(buf, e.At)
	}

	buf.writeBytes(textLevelPrefix)
	buf.writeString(levelText(e.Level))

	buf.writeBytes(textCallerPrefix)
	buf.writeString(e.CallerClass)
	buf.writeByte('.')
	buf.writeString(e.CallerMethod)
	buf.writeByte(':')
	appendInt64(buf, int64(e.Line))

	buf.writeBytes(textMsgPrefix)
	appendTextString(buf, e.Message)

	if e.Stack != "" {
		buf.writeBytes(textStackPrefix)
		appendQuoted(buf, e.Stack)
	}

	buf.writeByte('\n')
}

type JSONFormatter struct{}

func (f *JSONFormatter) FormatLogLine(buf *buffer, e xtail.Entry, opts Options) {
	buf.writeByte('{')

	switch opts.JSONTime {
	case TimeUnixMillis:
		buf.writeString(`"ts":`)
		appendInt64(buf, e.At.UnixMilli())
	case TimeUnixNanos:
		buf.writeString(`"ts":`)
		appendInt64(buf, e.At.UnixNano())
	default: // RFC3339Nano
		buf.writeString(`"ts":"`)
		appendRFC3339Nano(buf, e.At)
		buf.writeByte('"')
	}

	buf.writeString(`,"level":`)
	appendQuoted(buf, levelText(e.Level))

	buf.writeString(`,"message":`)
	appendQuoted(buf, e.Message)

	buf.writeString(`,"caller_class":`)
	appendQuoted(buf, e.CallerClass)

	buf.writeString(`,"caller_method":`)
	appendQuoted(buf, e.CallerMethod)

	buf.writeString(`,"line":`)
	appendInt64(buf, int64(e.Line))

	if e.Stack != "" {
		buf.writeString(`,"stack":`)
		appendQuoted(buf, e.Stack)
	}

	buf.writeByte('}')
	buf.writeByte('\n')
}
