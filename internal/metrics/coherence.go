package metrics

import (
	"math"

	"github.com/san-kum/synclattice/internal/lattice"
)

// MeanCoherence averages the order parameter over a run.
type MeanCoherence struct {
	name    string
	sum     float64
	samples int
}

func NewMeanCoherence() *MeanCoherence {
	return &MeanCoherence{name: "mean_coherence"}
}

func (m *MeanCoherence) Name() string { return m.name }

func (m *MeanCoherence) Observe(s lattice.Sample) {
	m.sum += s.Coherence
	m.samples++
}

func (m *MeanCoherence) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *MeanCoherence) Reset() {
	m.sum = 0
	m.samples = 0
}

// PeakCoherence tracks the highest order parameter seen.
type PeakCoherence struct {
	name string
	peak float64
}

func NewPeakCoherence() *PeakCoherence {
	return &PeakCoherence{name: "peak_coherence"}
}

func (p *PeakCoherence) Name() string { return p.name }

func (p *PeakCoherence) Observe(s lattice.Sample) {
	p.peak = math.Max(p.peak, s.Coherence)
}

func (p *PeakCoherence) Value() float64 { return p.peak }

func (p *PeakCoherence) Reset() { p.peak = 0 }

// SyncTime records the first step whose coherence reaches threshold, or -1.
type SyncTime struct {
	name      string
	threshold float64
	step      float64
}

func NewSyncTime(threshold float64) *SyncTime {
	return &SyncTime{name: "sync_time", threshold: threshold, step: -1}
}

func (s *SyncTime) Name() string { return s.name }

func (s *SyncTime) Observe(sample lattice.Sample) {
	if s.step < 0 && sample.Coherence >= s.threshold {
		s.step = float64(sample.Step)
	}
}

func (s *SyncTime) Value() float64 { return s.step }

func (s *SyncTime) Reset() { s.step = -1 }
