package stream

import "math/rand"

// SizeSource produces quantities for streamed quote sides.
type SizeSource interface {
	VisibleSize() int64
	HiddenSize() int64
}

// sizeUnit is the lot multiplier for streamed sizes.
const sizeUnit = 10_000_000

// RandSizeSource draws each size uniformly from {1..10} lots.
type RandSizeSource struct {
	rng *rand.Rand
}

// NewRandSizeSource creates a size source over the given generator.
func NewRandSizeSource(rng *rand.Rand) *RandSizeSource {
	return &RandSizeSource{rng: rng}
}

// VisibleSize returns a visible quantity.
func (s *RandSizeSource) VisibleSize() int64 {
	return int64(s.rng.Intn(10)+1) * sizeUnit
}

// HiddenSize returns a hidden quantity.
func (s *RandSizeSource) HiddenSize() int64 {
	return int64(s.rng.Intn(10)+1) * sizeUnit
}
