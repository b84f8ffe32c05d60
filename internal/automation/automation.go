package automation

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/synclattice/internal/config"
	"github.com/san-kum/synclattice/internal/lattice"
	"github.com/san-kum/synclattice/internal/sim"
)

// Scenario is a scripted sequence of injections against one lattice run.
type Scenario struct {
	Name        string          `yaml:"name"`
	Description string          `yaml:"description"`
	Config      Overrides       `yaml:"config"`
	Injections  []sim.Injection `yaml:"injections"`
}

// Overrides replaces individual run settings; unset fields keep the base.
type Overrides struct {
	GridSize *int     `yaml:"grid_size"`
	Coupling *float64 `yaml:"coupling"`
	Noise    *float64 `yaml:"noise"`
	Dt       *float64 `yaml:"dt"`
	Seed     *int64   `yaml:"seed"`
	Steps    *int     `yaml:"steps"`
}

// Apply writes every set override into cfg.
func (o Overrides) Apply(cfg *config.Config) {
	if o.GridSize != nil {
		cfg.GridSize = *o.GridSize
	}
	if o.Coupling != nil {
		cfg.Coupling = *o.Coupling
	}
	if o.Noise != nil {
		cfg.Noise = *o.Noise
	}
	if o.Dt != nil {
		cfg.Dt = *o.Dt
	}
	if o.Seed != nil {
		cfg.Seed = *o.Seed
	}
	if o.Steps != nil {
		cfg.Steps = *o.Steps
	}
}

// LoadScenario loads a scenario from a YAML file and normalises its
// pattern names.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if err := scenario.normalize(); err != nil {
		return nil, err
	}
	return &scenario, nil
}

func (s *Scenario) normalize() error {
	for i := range s.Injections {
		p, err := lattice.ParsePattern(string(s.Injections[i].Command.Pattern))
		if err != nil {
			return fmt.Errorf("injection %d: %w", i+1, err)
		}
		s.Injections[i].Command.Pattern = p
	}
	return nil
}

// RunScenario builds an engine from cfg with the scenario's overrides and
// runs it to completion.
func RunScenario(ctx context.Context, scenario *Scenario, base *config.Config, logger *slog.Logger) (*sim.Result, error) {
	cfg := *base
	scenario.Config.Apply(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	eng, err := lattice.NewEngine(cfg.Lattice(), lattice.WithSeed(cfg.Seed), lattice.WithWorkers(cfg.Workers))
	if err != nil {
		return nil, err
	}

	logger.Info("running scenario", "name", scenario.Name, "injections", len(scenario.Injections), "steps", cfg.Steps)

	s := sim.New(eng, logger)
	for _, m := range sim.DefaultMetrics() {
		s.AddMetric(m)
	}
	s.Schedule(scenario.Injections...)

	result, err := s.Run(ctx, sim.Config{Steps: cfg.Steps, SampleEvery: cfg.SampleEvery, ValidateState: true})
	if err != nil {
		return result, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}
	return result, nil
}
