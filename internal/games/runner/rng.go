package runner

import "math/rand"

// RNG supplies uniformly distributed values in [0, 1).
// *math/rand.Rand satisfies it; tests substitute fixed sequences.
type RNG interface {
	Float64() float64
}

// NewSeededRNG returns a deterministic RNG for the given seed.
func NewSeededRNG(seed int64) RNG {
	return rand.New(rand.NewSource(seed))
}
