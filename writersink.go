package xtail

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// ErrorHandler receives sink write failures.
type ErrorHandler func(error)

func defaultErrorHandler(err error) { fmt.Fprintf(os.Stderr, "xtail: sink write: %v\n", err) }

// WriterSinkConfig configures the built-in writer sink. Zero values pick
// the default pairing: Info and Warning to os.Stdout, Error to os.Stderr.
type WriterSinkConfig struct {
	Info    io.Writer
	Warning io.Writer
	Error   io.Writer

	// ErrorHandler is invoked with write failures. Default prints to stderr.
	ErrorHandler ErrorHandler
}

// WriterSink routes each entry's detailed line to one of three writers:
// Debug/Info to the informational channel, Warning to the warning channel,
// Error/Fatal to the error channel. Writes are serialized by a mutex.
type WriterSink struct {
	mu      sync.Mutex
	info    io.Writer
	warning io.Writer
	err     io.Writer
	onErr   ErrorHandler
}

// NewWriterSink builds a sink from cfg, filling in defaults for any nil
// writer or handler.
func NewWriterSink(cfg WriterSinkConfig) *WriterSink {
	if cfg.Info == nil {
		cfg.Info = os.Stdout
	}
	if cfg.Warning == nil {
		cfg.Warning = os.Stdout
	}
	if cfg.Error == nil {
		cfg.Error = os.Stderr
	}
	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = defaultErrorHandler
	}
	return &WriterSink{
		info:    cfg.Info,
		warning: cfg.Warning,
		err:     cfg.Error,
		onErr:   cfg.ErrorHandler,
	}
}

func (s *WriterSink) channel(level Level) io.Writer {
	switch {
	case level >= LevelError:
		return s.err
	case level >= LevelWarning:
		return s.warning
	default:
		return s.info
	}
}

// Write prints the entry's detailed line, followed by its stack trace
// block when one is attached.
func (s *WriterSink) Write(e Entry) {
	w := s.channel(e.Level)

	line := e.Detail()
	if e.Stack != "" {
		if strings.HasSuffix(e.Stack, "\n") {
			line = line + "\n" + e.Stack
		} else {
			line = line + "\n" + e.Stack + "\n"
		}
	} else {
		line += "\n"
	}

	s.mu.Lock()
	_, err := io.WriteString(w, line)
	s.mu.Unlock()
	if err != nil {
		s.onErr(err)
	}
}
