package analysis

import (
	"math"
	"strings"
	"testing"

	"github.com/san-kum/synclattice/internal/lattice"
)

func TestFFT_Impulse(t *testing.T) {
	data := []float64{1, 0, 0, 0, 0, 0, 0, 0}
	out := FFT(data)
	for k, v := range out {
		if math.Abs(real(v)-1) > 1e-12 || math.Abs(imag(v)) > 1e-12 {
			t.Errorf("bin %d = %v, want 1", k, v)
		}
	}
}

func TestPowerSpectrum_PadsAndRemovesMean(t *testing.T) {
	data := make([]float64, 100)
	for i := range data {
		data[i] = 5
	}
	ps := PowerSpectrum(data)
	if len(ps) != 64 {
		t.Fatalf("len = %d, want 64", len(ps))
	}
	for k, v := range ps {
		if v > 1e-9 {
			t.Errorf("bin %d = %v, want 0 for a constant series", k, v)
		}
	}
	if PowerSpectrum(nil) != nil {
		t.Error("empty series should have no spectrum")
	}
}

func TestDominantPeriod(t *testing.T) {
	tests := []struct {
		name        string
		period      float64
		sampleEvery int
		want        float64
	}{
		{"period 16", 16, 1, 16},
		{"period 32", 32, 1, 32},
		{"sampled every 2", 8, 2, 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := make([]float64, 256)
			for i := range data {
				data[i] = math.Sin(2 * math.Pi * float64(i) / tt.period)
			}
			got := DominantPeriod(data, tt.sampleEvery)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("DominantPeriod = %v, want %v", got, tt.want)
			}
		})
	}

	if got := DominantPeriod([]float64{1, 1, 1, 1}, 1); got != 0 {
		t.Errorf("flat series period = %v, want 0", got)
	}
}

func TestLocalOrder(t *testing.T) {
	g := lattice.NewUniformGrid(6, lattice.Node{Theta: 1, R: 1})
	for i, v := range LocalOrder(g) {
		if math.Abs(v-1) > 1e-12 {
			t.Fatalf("node %d local order = %v, want 1", i, v)
		}
	}

	// Checkerboard of opposite phases: each node sees itself against four
	// opposite neighbors.
	for i := range g.Nodes {
		x, y := g.Coords(i)
		if (x+y)%2 == 1 {
			g.Nodes[i].Theta = 1 + math.Pi
		}
	}
	for i, v := range LocalOrder(g) {
		if math.Abs(v-0.6) > 1e-9 {
			t.Fatalf("node %d local order = %v, want 0.6", i, v)
		}
	}
}

func TestFindDefects(t *testing.T) {
	g := lattice.NewUniformGrid(16, lattice.Node{R: 1})
	if d := FindDefects(g); len(d) != 0 {
		t.Fatalf("uniform grid has %d defects", len(d))
	}

	cx, cy := 8.5, 8.5
	for i := range g.Nodes {
		x, y := g.Coords(i)
		g.Nodes[i].Theta = lattice.WrapPhase(math.Atan2(float64(y)-cy, float64(x)-cx))
	}

	defects := FindDefects(g)
	total := 0
	core := false
	for _, d := range defects {
		total += d.Charge
		if d.X == 8 && d.Y == 8 {
			core = true
			if d.Charge != 1 {
				t.Errorf("core charge = %d, want 1", d.Charge)
			}
		}
	}
	if !core {
		t.Error("no defect found at the vortex core")
	}
	if total != 0 {
		t.Errorf("net charge on torus = %d, want 0", total)
	}
}

func TestLyapunovExponent(t *testing.T) {
	cfg := lattice.Config{GridSize: 8, Coupling: 0.5, Noise: 0, Dt: 0.05}
	grid := lattice.NewGrid(8, lattice.NewRand(3))

	lambda, err := LyapunovExponent(cfg, grid, 3, 200, 1e-6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.IsNaN(lambda) || math.IsInf(lambda, 0) {
		t.Fatalf("lambda = %v", lambda)
	}

	if _, err := LyapunovExponent(cfg, grid, 3, 10, 0); err == nil {
		t.Error("expected error for zero perturbation")
	}
}

func TestPortrait(t *testing.T) {
	samples := []lattice.Sample{
		{Coherence: 0.1, Entropy: 0.9, Step: 0},
		{Coherence: 0.5, Entropy: 0.5, Step: 1},
		{Coherence: 0.95, Entropy: 0.1, Step: 2},
	}
	p := GeneratePortrait(samples)
	if len(p.Points) != 3 {
		t.Fatalf("points = %d, want 3", len(p.Points))
	}

	art := PortraitToASCII(p, 20, 10)
	lines := strings.Split(strings.TrimRight(art, "\n"), "\n")
	if len(lines) != 10 {
		t.Fatalf("rows = %d, want 10", len(lines))
	}
	if !strings.ContainsRune(art, '●') {
		t.Error("last point not marked")
	}
	if PortraitToASCII(nil, 20, 10) != "" {
		t.Error("nil portrait should render empty")
	}
}
