package bollywood

import "sync/atomic"

// metrics are pool-scoped counters exposed to the host process (spec.md
// §4.5a). Grounded on najoast-sngo's core/actor.go Stats() idiom, scoped
// here to the pool rather than an individual actor since spec.md gives an
// actor no dedicated goroutine to report from.
type metrics struct {
	messagesProcessed atomic.Int64
	handlerPanics     atomic.Int64
}

func newMetrics() *metrics {
	return &metrics{}
}

// Snapshot is a read-only copy of the pool's counters at one instant.
type Snapshot struct {
	MessagesProcessed int64
	HandlerPanics     int64
}

func (m *metrics) snapshot() Snapshot {
	return Snapshot{
		MessagesProcessed: m.messagesProcessed.Load(),
		HandlerPanics:     m.handlerPanics.Load(),
	}
}

// Metrics returns a snapshot of this system's worker pool counters.
func (s *System) Metrics() Snapshot {
	return s.pool.metrics.snapshot()
}
