// Package obs collects lightweight pipeline counters.
package obs

import (
	"sync/atomic"

	"main/internal/schema"
)

const maxEventKind = int(schema.EventInquiry)

// Metrics counts dispatched events per kind and tracks the dispatch
// queue high-water mark plus feed replay outcomes.
type Metrics struct {
	eventCounts   [maxEventKind + 1]uint64
	queueHighMark uint64
	replayed      uint64
	malformed     uint64
	failed        uint64
}

// Snapshot captures the current metrics values.
type Snapshot struct {
	EventCounts   map[schema.EventKind]uint64
	QueueHighMark uint64
	Replayed      uint64
	Malformed     uint64
	Failed        uint64
}

// NewMetrics allocates a metrics container.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// IncEvent increments the counter for an event kind.
func (m *Metrics) IncEvent(kind schema.EventKind) {
	if m == nil {
		return
	}
	idx := int(kind)
	if idx >= 0 && idx < len(m.eventCounts) {
		atomic.AddUint64(&m.eventCounts[idx], 1)
	}
}

// ObserveQueueDepth raises the queue high-water mark when exceeded.
func (m *Metrics) ObserveQueueDepth(depth int) {
	if m == nil || depth < 0 {
		return
	}
	d := uint64(depth)
	for {
		mark := atomic.LoadUint64(&m.queueHighMark)
		if d <= mark {
			return
		}
		if atomic.CompareAndSwapUint64(&m.queueHighMark, mark, d) {
			return
		}
	}
}

// AddReplay accumulates one feed replay's outcome counts.
func (m *Metrics) AddReplay(replayed, malformed, failed int) {
	if m == nil {
		return
	}
	atomic.AddUint64(&m.replayed, uint64(replayed))
	atomic.AddUint64(&m.malformed, uint64(malformed))
	atomic.AddUint64(&m.failed, uint64(failed))
}

// Snapshot returns a copy of the current metrics values.
func (m *Metrics) Snapshot() Snapshot {
	if m == nil {
		return Snapshot{}
	}
	eventCounts := make(map[schema.EventKind]uint64)
	for i := range m.eventCounts {
		if v := atomic.LoadUint64(&m.eventCounts[i]); v > 0 {
			eventCounts[schema.EventKind(i)] = v
		}
	}
	return Snapshot{
		EventCounts:   eventCounts,
		QueueHighMark: atomic.LoadUint64(&m.queueHighMark),
		Replayed:      atomic.LoadUint64(&m.replayed),
		Malformed:     atomic.LoadUint64(&m.malformed),
		Failed:        atomic.LoadUint64(&m.failed),
	}
}
