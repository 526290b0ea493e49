package console

import "sync/atomic"

type stats struct {
	written atomic.Uint64
	failed  atomic.Uint64
}

// StatsSnapshot is a point-in-time counters snapshot.
type StatsSnapshot struct {
	Written uint64
	Failed  uint64
}

func (s *stats) snapshot() StatsSnapshot {
	return StatsSnapshot{
		Written: s.written.Load(),
		Failed:  s.failed.Load(),
	}
}

func (s *stats) reset() {
	s.written.Store(0)
	s.failed.Store(0)
}
