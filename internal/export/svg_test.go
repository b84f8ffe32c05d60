package export

import (
	"strings"
	"testing"

	"github.com/san-kum/synclattice/internal/lattice"
)

func TestGridToSVG(t *testing.T) {
	g := lattice.NewUniformGrid(4, lattice.Node{Theta: 0, R: lattice.TargetAmp})
	g.Nodes[5].Titan = true

	out := GridToSVG(g, 10, []lattice.Anchor{{X: 1, Y: 2, Identity: "anchor-00-deadbeef"}})
	if !strings.HasPrefix(out, "<?xml") || !strings.HasSuffix(out, "</svg>") {
		t.Fatal("not an svg document")
	}
	if !strings.Contains(out, `width="40"`) {
		t.Error("expected 40px canvas for 4 nodes at scale 10")
	}
	// background + 16 cells + 1 titan outline
	if got := strings.Count(out, "<rect"); got != 18 {
		t.Errorf("rect count = %d, want 18", got)
	}
	if !strings.Contains(out, "anchor-00-deadbeef") {
		t.Error("anchor identity missing")
	}
	if GridToSVG(nil, 10, nil) != "" {
		t.Error("nil grid should render empty")
	}
}

func TestSeriesToSVG(t *testing.T) {
	out := SeriesToSVG([]float64{0, 0.5, 1}, 100, 50, "#00ffff")
	if !strings.Contains(out, `stroke="#00ffff"`) {
		t.Error("stroke color missing")
	}
	if strings.Count(out, " L") != 2 {
		t.Errorf("expected 2 line segments, got %d", strings.Count(out, " L"))
	}
	if SeriesToSVG([]float64{1}, 100, 50, "#fff") != "" {
		t.Error("single point should render empty")
	}
}
