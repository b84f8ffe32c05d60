package viz

import (
	"math"

	"github.com/san-kum/synclattice/internal/lattice"
)

// PhaseColor maps a phase to a hex color on the theme's wheel. Amplitude
// scales brightness so collapsed oscillators read darker.
func PhaseColor(theta, r float64, th Theme) string {
	v := th.Value * (0.35 + 0.65*clampUnit(r/(2*lattice.TargetAmp)))
	if th.Mono {
		// Phase drives brightness around a fixed hue
		shade := 0.5 + 0.5*math.Cos(theta)
		return hsvHex(th.Tint, th.Saturation, v*(0.25+0.75*shade))
	}
	hue := lattice.WrapPhase(theta) / lattice.TwoPi * 360
	return hsvHex(hue, th.Saturation, v)
}

func hsvHex(h, s, v float64) string {
	r, g, b := hsvToRGB(h, s, v)
	return hexColor(int(math.Round(r*255)), int(math.Round(g*255)), int(math.Round(b*255)))
}

// hsvToRGB takes h in degrees and s, v in [0, 1].
func hsvToRGB(h, s, v float64) (r, g, b float64) {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c

	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	return r + m, g + m, b + m
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func hexColor(r, g, b int) string {
	return "#" + hexByte(r) + hexByte(g) + hexByte(b)
}

func hexByte(v int) string {
	if v < 0 {
		v = 0
	}
	if v > 255 {
		v = 255
	}
	const hex = "0123456789abcdef"
	return string(hex[v/16]) + string(hex[v%16])
}
