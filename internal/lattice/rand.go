package lattice

import "math/rand"

// Rand is the single source of randomness used by the engine: initial
// conditions, noise terms, chaos jitter and anchor tags all draw from it.
// *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	Uint32() uint32
}

// NewRand returns a seeded generator suitable for [WithRand].
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// uniform draws from [lo, hi).
func uniform(rng Rand, lo, hi float64) float64 {
	return lo + (hi-lo)*rng.Float64()
}
