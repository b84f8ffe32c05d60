package lattice

import "math"

const (
	TwoPi = 2 * math.Pi

	MinR     = 0.1
	MaxR     = 2.0
	MinAlpha = -1.0
	MaxAlpha = 2.0

	// HebbianRate scales frequency drift toward neighbouring phases.
	HebbianRate = 0.01
	// HomeostaticRate scales gain drift toward TargetAmp.
	HomeostaticRate = 0.05
	// TitanDrift is the fraction of its own omega a Titan advances per tick.
	TitanDrift = 0.1
)

// TargetAmp is the amplitude homeostasis pulls every oscillator toward.
var TargetAmp = math.Sqrt(0.5)

// Node is one oscillator of the lattice.
type Node struct {
	Theta float64 `json:"theta"`
	Omega float64 `json:"omega"`
	R     float64 `json:"r"`
	Alpha float64 `json:"alpha"`
	Titan bool    `json:"titan,omitempty"`
	Spark bool    `json:"spark,omitempty"`
}

// Valid reports whether every field is finite.
func (n Node) Valid() bool {
	for _, v := range [...]float64{n.Theta, n.Omega, n.R, n.Alpha} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Tags are the optional labels carried by anchors placed along a spiral.
type Tags struct {
	Identity  string `json:"identity"`
	Signature string `json:"signature"`
}

// WrapPhase maps any finite angle into [0, 2π).
func WrapPhase(theta float64) float64 {
	theta = math.Mod(theta, TwoPi)
	if theta < 0 {
		theta += TwoPi
	}
	// -tiny + 2π rounds up to exactly 2π
	if theta >= TwoPi {
		theta = 0
	}
	return theta
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
