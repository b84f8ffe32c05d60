package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/synclattice/internal/lattice"
)

const (
	DefaultGridSize    = 32
	DefaultCoupling    = 0.5
	DefaultNoise       = 0.02
	DefaultDt          = 0.05
	DefaultSteps       = 1000
	DefaultFrameRate   = 30
	DefaultSampleEvery = 1
)

type Config struct {
	GridSize    int     `yaml:"grid_size"`
	Coupling    float64 `yaml:"coupling"`
	Noise       float64 `yaml:"noise"`
	Dt          float64 `yaml:"dt"`
	Seed        int64   `yaml:"seed"`
	Steps       int     `yaml:"steps"`
	Workers     int     `yaml:"workers"`
	FrameRate   int     `yaml:"fps"`
	SampleEvery int     `yaml:"sample_every"`
}

func DefaultConfig() *Config {
	return &Config{
		GridSize:    DefaultGridSize,
		Coupling:    DefaultCoupling,
		Noise:       DefaultNoise,
		Dt:          DefaultDt,
		Steps:       DefaultSteps,
		Workers:     1,
		FrameRate:   DefaultFrameRate,
		SampleEvery: DefaultSampleEvery,
	}
}

func Load(path string) (*Config, error) {
	return LoadOnto(path, DefaultConfig())
}

// LoadOnto reads path over a copy of base, so keys absent from the file
// keep base's values.
func LoadOnto(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := *base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Lattice extracts the physical parameters handed to the engine.
func (c *Config) Lattice() lattice.Config {
	return lattice.Config{
		GridSize: c.GridSize,
		Coupling: c.Coupling,
		Noise:    c.Noise,
		Dt:       c.Dt,
	}
}

func (c *Config) Validate() error {
	if err := c.Lattice().Validate(); err != nil {
		return err
	}
	if c.Steps < 0 {
		return fmt.Errorf("%w: steps must be >= 0, got %d", lattice.ErrInvalidConfig, c.Steps)
	}
	if c.FrameRate <= 0 {
		return fmt.Errorf("%w: fps must be positive, got %d", lattice.ErrInvalidConfig, c.FrameRate)
	}
	if c.SampleEvery <= 0 {
		return fmt.Errorf("%w: sample_every must be positive, got %d", lattice.ErrInvalidConfig, c.SampleEvery)
	}
	return nil
}
