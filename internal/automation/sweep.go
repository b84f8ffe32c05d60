package automation

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/synclattice/internal/dynamo"
	"github.com/san-kum/synclattice/internal/lattice"
	"github.com/san-kum/synclattice/internal/sim"
)

// CouplingSweep runs one lattice per coupling value in [Min, Max], every
// run starting from the same seed.
type CouplingSweep struct {
	Base     lattice.Config
	Min, Max float64
	NumSteps int
	Steps    int
	Seed     int64
	// Limit bounds concurrent runs; <= 0 means unbounded.
	Limit int
	// Tail is the number of trailing samples averaged into MeanCoherence.
	Tail int
}

// SweepResult summarises the end state of one coupling value.
type SweepResult struct {
	Coupling       float64 `json:"coupling"`
	FinalCoherence float64 `json:"final_coherence"`
	MeanCoherence  float64 `json:"mean_coherence"`
	FinalEntropy   float64 `json:"final_entropy"`
}

// Values returns the coupling values visited, in order.
func (s *CouplingSweep) Values() []float64 {
	if s.NumSteps == 1 {
		return []float64{s.Min}
	}
	vals := make([]float64, s.NumSteps)
	step := (s.Max - s.Min) / float64(s.NumSteps-1)
	for i := range vals {
		vals[i] = s.Min + float64(i)*step
	}
	return vals
}

func (s *CouplingSweep) validate() error {
	if s.NumSteps < 1 {
		return fmt.Errorf("%w: sweep needs at least one point, got %d", dynamo.ErrParameterBounds, s.NumSteps)
	}
	if s.Min < 0 || s.Max < s.Min {
		return fmt.Errorf("%w: coupling range [%v, %v]", dynamo.ErrParameterBounds, s.Min, s.Max)
	}
	if s.Steps < 1 {
		return fmt.Errorf("%w: steps must be positive, got %d", dynamo.ErrParameterBounds, s.Steps)
	}
	return nil
}

func (s *CouplingSweep) Run(ctx context.Context, logger *slog.Logger) ([]SweepResult, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}
	tail := s.Tail
	if tail <= 0 || tail > s.Steps {
		tail = s.Steps
	}

	values := s.Values()
	results := make([]SweepResult, len(values))

	g, ctx := errgroup.WithContext(ctx)
	if s.Limit > 0 {
		g.SetLimit(s.Limit)
	}
	for i, k := range values {
		idx, coupling := i, k
		g.Go(func() error {
			cfg := s.Base
			cfg.Coupling = coupling
			eng, err := lattice.NewEngine(cfg, lattice.WithSeed(s.Seed))
			if err != nil {
				return err
			}
			res, err := sim.New(eng, logger).Run(ctx, sim.Config{Steps: s.Steps, SampleEvery: 1, ValidateState: true})
			if err != nil {
				return fmt.Errorf("coupling %.4f: %w", coupling, err)
			}

			mean := 0.0
			for _, sample := range res.Samples[len(res.Samples)-tail:] {
				mean += sample.Coherence
			}
			results[idx] = SweepResult{
				Coupling:       coupling,
				FinalCoherence: lattice.PhaseCoherence(res.Final.Nodes),
				MeanCoherence:  mean / float64(tail),
				FinalEntropy:   lattice.NormalizedEntropy(res.Final.Nodes),
			}
			logger.Debug("sweep point done", "coupling", coupling, "coherence", results[idx].FinalCoherence)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
