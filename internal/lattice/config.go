package lattice

import (
	"fmt"
	"math"
)

// Config holds the physical parameters of a lattice. Coupling, Noise and
// Dt may change between ticks; GridSize is fixed for the life of a grid.
type Config struct {
	GridSize int     `json:"grid_size" yaml:"grid_size"`
	Coupling float64 `json:"coupling" yaml:"coupling"`
	Noise    float64 `json:"noise" yaml:"noise"`
	Dt       float64 `json:"dt" yaml:"dt"`
}

func DefaultConfig() Config {
	return Config{
		GridSize: 32,
		Coupling: 0.5,
		Noise:    0.02,
		Dt:       0.05,
	}
}

// Validate reports the first field outside its domain, wrapped in
// ErrInvalidConfig.
func (c Config) Validate() error {
	if c.GridSize <= 0 {
		return fmt.Errorf("%w: grid size must be positive, got %d", ErrInvalidConfig, c.GridSize)
	}
	if !finite(c.Coupling) || c.Coupling < 0 {
		return fmt.Errorf("%w: coupling must be a finite value >= 0, got %v", ErrInvalidConfig, c.Coupling)
	}
	if !finite(c.Noise) || c.Noise < 0 {
		return fmt.Errorf("%w: noise must be a finite value >= 0, got %v", ErrInvalidConfig, c.Noise)
	}
	if !finite(c.Dt) || c.Dt <= 0 {
		return fmt.Errorf("%w: dt must be a finite value > 0, got %v", ErrInvalidConfig, c.Dt)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
