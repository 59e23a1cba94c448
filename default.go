package xtail

// Default creates a logger backed by a WriterSink on the default channel
// pairing (stdout, stdout, stderr), DefaultCapacity history, and an
// environment-detected production flag.
func Default() *Logger {
	return newLogger(Config{Sink: NewWriterSink(WriterSinkConfig{})})
}

// New creates a default logger (via Default) and sets it as global.
// It returns the global logger for convenience.
func New() *Logger {
	l := Default()
	SetGlobal(l)
	return l
}

// UseSink builds a logger around the given sink, sets it as global, and
// returns it. Single line, explicit, no envs beyond the production-mode
// default detection.
func UseSink(sink Sink, observers ...Observer) *Logger {
	l, err := NewBuilder().WithSink(sink).Build()
	if err != nil {
		// Only a nil sink fails Build; surface the programming error early.
		panic(err)
	}
	for _, o := range observers {
		l.Subscribe(o)
	}
	SetGlobal(l)
	return l
}
