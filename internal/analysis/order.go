package analysis

import (
	"math"

	"github.com/san-kum/synclattice/internal/lattice"
)

// LocalOrder returns, for every node, the magnitude of the mean phasor of
// the node and its four neighbors. Values lie in [0, 1].
func LocalOrder(g *lattice.Grid) []float64 {
	topo := lattice.NewTopology(g.Size)
	out := make([]float64, g.Len())

	for i := range g.Nodes {
		sx, sy := math.Cos(g.Nodes[i].Theta), math.Sin(g.Nodes[i].Theta)
		for _, j := range topo.Of(i) {
			sx += math.Cos(g.Nodes[j].Theta)
			sy += math.Sin(g.Nodes[j].Theta)
		}
		out[i] = math.Hypot(sx, sy) / 5
	}
	return out
}

// Defect is a plaquette whose phases wind by a full turn. (X, Y) is the
// plaquette's top-left corner.
type Defect struct {
	X, Y   int
	Charge int
}

// FindDefects scans every plaquette of the torus and reports those with a
// non-zero winding number. Charges over the whole torus sum to zero.
func FindDefects(g *lattice.Grid) []Defect {
	var defects []Defect
	n := g.Size
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			x1, y1 := (x+1)%n, (y+1)%n
			loop := [4]float64{
				g.Nodes[g.Index(x, y)].Theta,
				g.Nodes[g.Index(x1, y)].Theta,
				g.Nodes[g.Index(x1, y1)].Theta,
				g.Nodes[g.Index(x, y1)].Theta,
			}
			sum := 0.0
			for k := 0; k < 4; k++ {
				sum += phaseDiff(loop[(k+1)%4], loop[k])
			}
			if q := int(math.Round(sum / lattice.TwoPi)); q != 0 {
				defects = append(defects, Defect{X: x, Y: y, Charge: q})
			}
		}
	}
	return defects
}

// phaseDiff returns a-b wrapped into (-π, π].
func phaseDiff(a, b float64) float64 {
	d := math.Mod(a-b, lattice.TwoPi)
	if d > math.Pi {
		d -= lattice.TwoPi
	} else if d <= -math.Pi {
		d += lattice.TwoPi
	}
	return d
}
