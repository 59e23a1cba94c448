package stream

import "sync/atomic"

type stats struct {
	written     atomic.Uint64
	writeErrors atomic.Uint64
}

// StatsSnapshot is a point-in-time counters snapshot.
type StatsSnapshot struct {
	Written     uint64
	WriteErrors uint64
}

func (s *stats) snapshot() StatsSnapshot {
	return StatsSnapshot{
		Written:     s.written.Load(),
		WriteErrors: s.writeErrors.Load(),
	}
}

func (s *stats) reset() {
	s.written.Store(0)
	s.writeErrors.Store(0)
}
