package sim

import "github.com/san-kum/synclattice/internal/lattice"

// Metric folds every tick's sample into one summary value.
type Metric interface {
	Name() string
	Observe(s lattice.Sample)
	Value() float64
	Reset()
}

// Observer sees each sample together with the generation produced by the
// tick. The grid must not be retained past the call.
type Observer interface {
	OnTick(s lattice.Sample, g *lattice.Grid)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(s lattice.Sample, g *lattice.Grid)

func (f ObserverFunc) OnTick(s lattice.Sample, g *lattice.Grid) { f(s, g) }

// Injection schedules a command to run just before tick At.
type Injection struct {
	At      uint64          `yaml:"at" json:"at"`
	Command lattice.Command `yaml:",inline" json:"command"`
}

type Config struct {
	Steps         int
	SampleEvery   int
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Steps:         1000,
		SampleEvery:   1,
		ValidateState: true,
	}
}

type Result struct {
	Samples    []lattice.Sample
	Manifests  []*lattice.Manifest
	Metrics    map[string]float64
	StepsTaken int
	Final      *lattice.Grid
}
