package metrics

import "github.com/san-kum/synclattice/internal/lattice"

type MeanEntropy struct {
	name    string
	sum     float64
	samples int
}

func NewMeanEntropy() *MeanEntropy {
	return &MeanEntropy{name: "mean_entropy"}
}

func (m *MeanEntropy) Name() string { return m.name }

func (m *MeanEntropy) Observe(s lattice.Sample) {
	m.sum += s.Entropy
	m.samples++
}

func (m *MeanEntropy) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *MeanEntropy) Reset() {
	m.sum = 0
	m.samples = 0
}
