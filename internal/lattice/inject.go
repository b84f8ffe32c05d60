package lattice

import (
	"fmt"
	"math"
	"strings"
)

// Pattern names an injection kind.
type Pattern string

const (
	Pulse     Pattern = "pulse"
	Spiral    Pattern = "spiral"
	Chaos     Pattern = "chaos"
	Stabilize Pattern = "stabilize"
	Unity     Pattern = "unity"
	Elysium   Pattern = "elysium"
)

// UnityPhase is the phase every node in range is reset to by Unity.
const UnityPhase = math.Pi / 6

var patterns = []Pattern{Pulse, Spiral, Chaos, Stabilize, Unity, Elysium}

// Patterns lists every recognised pattern.
func Patterns() []Pattern {
	out := make([]Pattern, len(patterns))
	copy(out, patterns)
	return out
}

// ParsePattern resolves a case-insensitive pattern name.
func ParsePattern(s string) (Pattern, error) {
	p := Pattern(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range patterns {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPattern, s)
}

// Command is a structured perturbation request. Message is carried for
// the caller's benefit and ignored by the engine.
type Command struct {
	TargetX   int     `json:"targetX" yaml:"x"`
	TargetY   int     `json:"targetY" yaml:"y"`
	Radius    float64 `json:"radius" yaml:"radius"`
	Intensity float64 `json:"intensity" yaml:"intensity"`
	Pattern   Pattern `json:"pattern" yaml:"pattern"`
	Message   string  `json:"message,omitempty" yaml:"message,omitempty"`
}

// Inject applies cmd to a private copy of the grid and swaps it in. Targets
// outside the grid are clamped onto its edge. It returns the anchor manifest
// for Elysium and nil otherwise; unknown patterns leave the grid untouched.
func (e *Engine) Inject(cmd Command) *Manifest {
	size := e.cur.Size
	tx := clampInt(cmd.TargetX, 0, size-1)
	ty := clampInt(cmd.TargetY, 0, size-1)
	intensity := cmd.Intensity
	if !finite(intensity) {
		intensity = 0
	}

	var (
		manifest *Manifest
		tags     map[int]Tags
	)
	switch cmd.Pattern {
	case Elysium:
		e.spare.CopyFrom(e.cur)
		manifest, tags = e.placeAnchors(e.spare, tx, ty)
	case Pulse, Spiral, Chaos, Stabilize, Unity:
		e.spare.CopyFrom(e.cur)
		e.scan(e.spare, tx, ty, cmd.Radius, intensity, cmd.Pattern)
	default:
		return nil
	}

	e.swap()
	for idx, t := range tags {
		e.tags[idx] = t
	}
	return manifest
}

// scan applies a radius-limited pattern around (tx, ty). Distance is plain
// Euclidean; the torus does not wrap injections.
func (e *Engine) scan(g *Grid, tx, ty int, radius, intensity float64, p Pattern) {
	for y := 0; y < g.Size; y++ {
		for x := 0; x < g.Size; x++ {
			dx := float64(x - tx)
			dy := float64(y - ty)
			d := math.Hypot(dx, dy)
			if !(d <= radius) {
				continue
			}
			n := &g.Nodes[g.Index(x, y)]
			switch p {
			case Pulse:
				n.Theta = WrapPhase(n.Theta + math.Sin(d)*intensity)
			case Spiral:
				n.Theta = WrapPhase(n.Theta + math.Atan2(dy, dx)*intensity)
			case Chaos:
				n.Theta = WrapPhase(n.Theta + uniform(e.rng, 0, TwoPi)*intensity)
			case Stabilize:
				n.Theta = 0
				n.R = TargetAmp
			case Unity:
				n.Theta = UnityPhase
				n.R = 1.0
				n.Alpha = 1.0
				if n.Spark || !n.Titan {
					n.Omega = 1.0
				}
			}
		}
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
