package execution

import (
	"fmt"
	"hash/fnv"
	"time"
)

// IDSource produces order identifiers for execution legs.
type IDSource interface {
	NextID(cusip string) string
}

// ClockIDSource hashes the wall-clock timestamp and a sequence number
// together with the bond identifier. Non-deterministic across runs;
// tests inject their own source.
type ClockIDSource struct {
	now func() time.Time
	seq uint64
}

// NewClockIDSource creates an id source backed by the system clock.
func NewClockIDSource() *ClockIDSource {
	return &ClockIDSource{now: time.Now}
}

// NextID returns the cusip followed by a hex hash.
func (s *ClockIDSource) NextID(cusip string) string {
	s.seq++
	h := fnv.New64a()
	fmt.Fprintf(h, "%d-%d-%s", s.now().UTC().UnixNano(), s.seq, cusip)
	return fmt.Sprintf("%s%016x", cusip, h.Sum64())
}
