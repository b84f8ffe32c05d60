package metrics

import "github.com/san-kum/synclattice/internal/lattice"

// Stability is the fraction of samples whose coherence stayed at or above
// threshold.
type Stability struct {
	name      string
	threshold float64
	locked    int
	samples   int
}

func NewStability(threshold float64) *Stability {
	return &Stability{
		name:      "stability",
		threshold: threshold,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(sample lattice.Sample) {
	s.samples++
	if sample.Coherence >= s.threshold {
		s.locked++
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 0
	}
	return float64(s.locked) / float64(s.samples)
}

func (s *Stability) Reset() {
	s.locked = 0
	s.samples = 0
}
