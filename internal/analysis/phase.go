package analysis

import (
	"strings"

	"github.com/san-kum/synclattice/internal/lattice"
)

// Portrait holds the (coherence, entropy) trajectory of a run.
type Portrait struct {
	Points []struct{ X, Y float64 }
}

// GeneratePortrait maps each sample to a point with coherence on X and
// entropy on Y. A synchronizing run drifts toward the lower right.
func GeneratePortrait(samples []lattice.Sample) *Portrait {
	portrait := &Portrait{
		Points: make([]struct{ X, Y float64 }, 0, len(samples)),
	}
	for _, s := range samples {
		portrait.Points = append(portrait.Points, struct{ X, Y float64 }{X: s.Coherence, Y: s.Entropy})
	}
	return portrait
}

// PortraitToASCII draws the trajectory on a width x height canvas spanning
// the unit square, since both metrics are normalized to [0, 1].
func PortraitToASCII(portrait *Portrait, width, height int) string {
	if portrait == nil || len(portrait.Points) == 0 || width < 2 || height < 2 {
		return ""
	}

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}

	// Axes on the left and bottom edges
	for row := 0; row < height; row++ {
		canvas[row][0] = '│'
	}
	for col := 0; col < width; col++ {
		canvas[height-1][col] = '─'
	}
	canvas[height-1][0] = '└'

	last := len(portrait.Points) - 1
	for i, p := range portrait.Points {
		col := int(clampUnit(p.X) * float64(width-1))
		row := height - 1 - int(clampUnit(p.Y)*float64(height-1))

		mark := '•'
		if i == last {
			mark = '●'
		}
		canvas[row][col] = mark
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
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
