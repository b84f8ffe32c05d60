package lattice

import "math"

const (
	// EntropyBins is the number of equal-width phase bins over [0, 2π).
	EntropyBins = 36
	// HistoryCap is the number of metric samples retained.
	HistoryCap = 101
)

var maxEntropy = math.Log(EntropyBins)

// Sample is one metrics reading.
type Sample struct {
	Coherence float64 `json:"coherence"`
	Entropy   float64 `json:"entropy"`
	Step      uint64  `json:"step"`
}

// Coherence is the Kuramoto order parameter |⟨e^{iθ}⟩| from pre-summed
// sines and cosines of n phases.
func Coherence(sumSin, sumCos float64, n int) float64 {
	if n == 0 {
		return 0
	}
	s := sumSin / float64(n)
	c := sumCos / float64(n)
	return clamp(math.Sqrt(s*s+c*c), 0, 1)
}

// PhaseCoherence computes Coherence directly from a set of nodes.
func PhaseCoherence(nodes []Node) float64 {
	var sumSin, sumCos float64
	for _, n := range nodes {
		sin, cos := math.Sincos(n.Theta)
		sumSin += sin
		sumCos += cos
	}
	return Coherence(sumSin, sumCos, len(nodes))
}

// PhaseBin maps a phase in [0, 2π) to one of EntropyBins bins.
func PhaseBin(theta float64) int {
	b := int(theta / TwoPi * EntropyBins)
	if b < 0 {
		return 0
	}
	if b >= EntropyBins {
		return EntropyBins - 1
	}
	return b
}

// NormalizedEntropy is the Shannon entropy of the phase histogram divided
// by ln(EntropyBins): 0 when every phase shares a bin, 1 when spread evenly.
func NormalizedEntropy(nodes []Node) float64 {
	if len(nodes) == 0 {
		return 0
	}
	var counts [EntropyBins]int
	for _, n := range nodes {
		counts[PhaseBin(n.Theta)]++
	}
	total := float64(len(nodes))
	h := 0.0
	for _, c := range counts {
		if c == 0 {
			continue
		}
		p := float64(c) / total
		h -= p * math.Log(p)
	}
	return clamp(h/maxEntropy, 0, 1)
}

// History is a bounded, oldest-first record of samples.
type History struct {
	cap     int
	samples []Sample
}

func NewHistory(capacity int) *History {
	return &History{cap: capacity, samples: make([]Sample, 0, capacity+1)}
}

// Append adds s and evicts the oldest sample past capacity.
func (h *History) Append(s Sample) {
	h.samples = append(h.samples, s)
	if len(h.samples) > h.cap {
		copy(h.samples, h.samples[1:])
		h.samples = h.samples[:h.cap]
	}
}

func (h *History) Len() int { return len(h.samples) }

// Last returns the newest sample.
func (h *History) Last() (Sample, bool) {
	if len(h.samples) == 0 {
		return Sample{}, false
	}
	return h.samples[len(h.samples)-1], true
}

// Samples returns a copy of the retained samples.
func (h *History) Samples() []Sample {
	out := make([]Sample, len(h.samples))
	copy(out, h.samples)
	return out
}
