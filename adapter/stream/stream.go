package stream

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/trickstertwo/xtail"
)

// Sink is a dependency-free writer sink with pooled formatting buffers and
// per-severity writer routing. Entries are written on the calling goroutine.
type Sink struct {
	// immutable after construction
	writerFactory WriterFactory
	opts          Options
	formatter     Formatter

	// write path
	mu         sync.Mutex
	collector  atomic.Value // holds Collector
	measureDur atomic.Bool

	// counters
	st stats

	// fast path for single writer
	singleWriter bool
	w            io.Writer
}

var _ xtail.Sink = (*Sink)(nil)

func defaultErrorHandler(err error) { fmt.Fprintf(os.Stderr, "xtail: stream write: %v\n", err) }

// New creates a Sink writing every severity to w.
func New(w io.Writer, opts Options) *Sink {
	return NewWithWriterFactory(&DefaultWriterFactory{Writer: w}, opts)
}

// NewWithWriterFactory creates a Sink that resolves the destination per
// severity through factory.
func NewWithWriterFactory(factory WriterFactory, opts Options) *Sink {
	if factory == nil {
		factory = &DefaultWriterFactory{Writer: os.Stdout}
	}
	if opts.Format == 0 {
		opts.Format = FormatText
	}
	if opts.ErrorHandler == nil {
		opts.ErrorHandler = defaultErrorHandler
	}
	if opts.JSONTime == 0 {
		opts.JSONTime = TimeRFC3339Nano
	}
	if opts.BufferSize <= 0 {
		opts.BufferSize = 2048
	}

	var formatter Formatter
	if opts.Format == FormatJSON {
		formatter = &JSONFormatter{}
	} else {
		formatter = &TextFormatter{}
	}

	s := &Sink{
		writerFactory: factory,
		opts:          opts,
		formatter:     formatter,
	}

	s.collector.Store(Collector(&NoopCollector{}))
	s.measureDur.Store(false)

	if df, ok := factory.(*DefaultWriterFactory); ok {
		s.singleWriter = true
		s.w = df.Writer
	}
	return s
}

// SetCollector installs a collector; when not Noop, durations are measured.
func (s *Sink) SetCollector(c Collector) {
	if c == nil {
		c = &NoopCollector{}
	}
	s.collector.Store(c)
	_, isNoop := c.(*NoopCollector)
	s.measureDur.Store(!isNoop)
}

// Stats returns a snapshot of internal counters.
func (s *Sink) Stats() StatsSnapshot { return s.st.snapshot() }

// ResetStats resets internal counters.
func (s *Sink) ResetStats() { s.st.reset() }

// Write formats and writes one entry.
func (s *Sink) Write(e xtail.Entry) {
	measure := s.measureDur.Load()
	c := s.collector.Load().(Collector)

	var start time.Time
	if measure {
		start = time.Now()
	}
	buf := getBufWithCap(s.opts.BufferSize)
	defer putBuf(buf)

	s.formatter.FormatLogLine(buf, e, s.opts)

	var w io.Writer
	if s.singleWriter {
		w = s.w
	} else {
		w = s.writerFactory.GetWriter(e.Level)
	}
	if w == nil {
		return
	}

	s.mu.Lock()
	n, err := w.Write(buf.b)
	s.mu.Unlock()

	var durMS float64
	if measure {
		durMS = float64(time.Since(start)) / float64(time.Millisecond)
	}
	if err != nil {
		s.st.writeErrors.Add(1)
		s.opts.ErrorHandler(err)
	} else {
		s.st.written.Add(1)
	}
	c.WroteEntry(e.Level, durMS, n, err)
}
