package sim

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/san-kum/synclattice/internal/dynamo"
	"github.com/san-kum/synclattice/internal/lattice"
	"github.com/san-kum/synclattice/internal/metrics"
)

// Simulator drives an engine for a fixed number of ticks, applying
// scheduled injections between ticks.
type Simulator struct {
	eng       *lattice.Engine
	metrics   []Metric
	observers []Observer
	schedule  []Injection
	logger    *slog.Logger
}

func New(eng *lattice.Engine, logger *slog.Logger) *Simulator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Simulator{
		eng:       eng,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
		logger:    logger,
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Schedule queues injections; ones sharing a step run in the order given.
func (s *Simulator) Schedule(inj ...Injection) {
	s.schedule = append(s.schedule, inj...)
	sort.SliceStable(s.schedule, func(i, j int) bool { return s.schedule[i].At < s.schedule[j].At })
}

func (s *Simulator) Engine() *lattice.Engine { return s.eng }

// DefaultMetrics is the summary set recorded for every stored run.
func DefaultMetrics() []Metric {
	return []Metric{
		metrics.NewMeanCoherence(),
		metrics.NewPeakCoherence(),
		metrics.NewMeanEntropy(),
		metrics.NewSyncTime(0.9),
		metrics.NewStability(0.8),
	}
}

func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if cfg.Steps < 0 {
		return nil, fmt.Errorf("%w: steps must be >= 0, got %d", dynamo.ErrParameterBounds, cfg.Steps)
	}
	every := cfg.SampleEvery
	if every <= 0 {
		every = 1
	}

	result := &Result{
		Samples:   make([]lattice.Sample, 0, cfg.Steps/every+1),
		Manifests: make([]*lattice.Manifest, 0),
		Metrics:   make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	pending := s.schedule
	for i := 0; i < cfg.Steps; i++ {
		select {
		case <-ctx.Done():
			s.finish(result)
			return result, &dynamo.SimulationError{
				Step:    s.eng.Step(),
				Wrapped: fmt.Errorf("%w: %w", dynamo.ErrContextCanceled, ctx.Err()),
			}
		default:
		}

		pending = s.applyDue(pending, result)

		sample := s.eng.Tick()
		result.StepsTaken++

		for _, m := range s.metrics {
			m.Observe(sample)
		}
		for _, obs := range s.observers {
			obs.OnTick(sample, s.eng.Grid())
		}
		if sample.Step%uint64(every) == 0 {
			result.Samples = append(result.Samples, sample)
		}

		if cfg.ValidateState {
			if idx := s.eng.Grid().Valid(); idx >= 0 {
				s.finish(result)
				return result, &dynamo.SimulationError{
					Step:    s.eng.Step(),
					Wrapped: fmt.Errorf("%w: node %d", dynamo.ErrInvalidState, idx),
				}
			}
		}
	}

	s.applyDue(pending, result)
	s.finish(result)
	return result, nil
}

// applyDue runs every queued injection whose step has been reached and
// returns the rest.
func (s *Simulator) applyDue(pending []Injection, result *Result) []Injection {
	for len(pending) > 0 && pending[0].At <= s.eng.Step() {
		inj := pending[0]
		pending = pending[1:]
		m := s.eng.Inject(inj.Command)
		s.logger.Debug("injection applied",
			"step", s.eng.Step(),
			"pattern", inj.Command.Pattern,
			"x", inj.Command.TargetX,
			"y", inj.Command.TargetY,
			"radius", inj.Command.Radius,
		)
		if m != nil {
			result.Manifests = append(result.Manifests, m)
			s.logger.Info("anchors placed", "step", s.eng.Step(), "placed", m.Placed(), "skipped", m.Skipped)
		}
	}
	return pending
}

func (s *Simulator) finish(result *Result) {
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	result.Final = s.eng.Grid().Clone()
}
