package config

import "sort"

// Presets are named starting points for common regimes of the lattice.
var Presets = map[string]*Config{
	"calm": {
		GridSize: 32, Coupling: 0.2, Noise: 0.005, Dt: 0.05, Steps: 1000,
		Workers: 1, FrameRate: 30, SampleEvery: 1,
	},
	"critical": {
		GridSize: 48, Coupling: 0.6, Noise: 0.05, Dt: 0.05, Steps: 2000,
		Workers: 0, FrameRate: 30, SampleEvery: 1,
	},
	"turbulent": {
		GridSize: 48, Coupling: 0.1, Noise: 0.4, Dt: 0.05, Steps: 2000,
		Workers: 0, FrameRate: 30, SampleEvery: 1,
	},
	"entrain": {
		GridSize: 32, Coupling: 1.5, Noise: 0.01, Dt: 0.04, Steps: 3000,
		Workers: 1, FrameRate: 30, SampleEvery: 5,
	},
	"frozen": {
		GridSize: 24, Coupling: 0, Noise: 0, Dt: 0.05, Steps: 500,
		Workers: 1, FrameRate: 30, SampleEvery: 1,
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
