package sim

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/synclattice/internal/lattice"
)

// Ensemble runs the same lattice configuration from consecutive seeds.
type Ensemble struct {
	lattice   lattice.Config
	numRuns   int
	seedStart int64
	limit     int
	schedule  []Injection
}

func NewEnsemble(cfg lattice.Config, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{lattice: cfg, numRuns: numRuns, seedStart: seedStart}
}

// SetLimit bounds the number of concurrent runs; n <= 0 means unbounded.
func (e *Ensemble) SetLimit(n int) { e.limit = n }

// Schedule queues the same injections on every member run.
func (e *Ensemble) Schedule(inj ...Injection) { e.schedule = append(e.schedule, inj...) }

func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, e.numRuns)

	g, ctx := errgroup.WithContext(ctx)
	if e.limit > 0 {
		g.SetLimit(e.limit)
	}
	for i := 0; i < e.numRuns; i++ {
		idx := i
		g.Go(func() error {
			eng, err := lattice.NewEngine(e.lattice, lattice.WithSeed(e.seedStart+int64(idx)))
			if err != nil {
				return err
			}
			s := New(eng, slog.Default().With("run", idx))
			for _, m := range DefaultMetrics() {
				s.AddMetric(m)
			}
			s.Schedule(e.schedule...)
			results[idx], err = s.Run(ctx, cfg)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
