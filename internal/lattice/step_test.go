package lattice_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/synclattice/internal/lattice"
)

var _ = Describe("Engine.Tick", func() {
	It("keeps a uniform uncoupled lattice uniform and coherent", func() {
		cfg := lattice.Config{GridSize: 8, Coupling: 0, Noise: 0, Dt: 0.05}
		eng := newEngine(cfg, lattice.WithGrid(lattice.NewUniformGrid(8, restNode)))

		sample := eng.Tick()

		Expect(sample.Coherence).To(BeNumerically("~", 1.0, 1e-9))
		first := eng.Grid().Nodes[0]
		for _, n := range eng.Grid().Nodes {
			Expect(n).To(Equal(first))
		}
		Expect(eng.Step()).To(Equal(uint64(1)))
	})

	It("holds every bound under strong coupling and noise", func() {
		cfg := lattice.Config{GridSize: 16, Coupling: 10, Noise: 1.0, Dt: 0.1}
		eng := newEngine(cfg, lattice.WithSeed(7))
		for i := 0; i < 300; i++ {
			s := eng.Tick()
			Expect(s.Coherence).To(BeNumerically(">=", 0))
			Expect(s.Coherence).To(BeNumerically("<=", 1))
			Expect(s.Entropy).To(BeNumerically(">=", 0))
			Expect(s.Entropy).To(BeNumerically("<=", 1))
			expectBounded(eng.Grid())
		}
	})

	It("leaves Titans untouched apart from their own drift", func() {
		cfg := lattice.Config{GridSize: 40, Coupling: 2, Noise: 0.3, Dt: 0.05}
		eng := newEngine(cfg, lattice.WithSeed(3))
		before := eng.Snapshot()
		Expect(eng.Grid().Titans()).To(BeNumerically(">", 0))

		for i := 0; i < 50; i++ {
			eng.Tick()
		}
		after := eng.Grid().Nodes
		for i, n := range before {
			if !n.Titan {
				continue
			}
			Expect(after[i]).To(Equal(n))
			Expect(after[i].Omega).To(BeZero())
		}
	})

	It("advances a Titan at a tenth of its own frequency", func() {
		g := lattice.NewUniformGrid(3, restNode)
		g.Nodes[4] = lattice.Node{Theta: 1.0, Omega: 2.0, R: 1.0, Alpha: 1.0, Titan: true}
		eng := newEngine(lattice.Config{GridSize: 3, Coupling: 1, Noise: 0, Dt: 0.5}, lattice.WithGrid(g))

		eng.Tick()

		titan := eng.Grid().Nodes[4]
		Expect(titan.Theta).To(BeNumerically("~", 1.0+2.0*0.5*lattice.TitanDrift, 1e-12))
		Expect(titan.R).To(Equal(1.0))
		Expect(titan.Alpha).To(Equal(1.0))
	})

	It("reads only the previous generation", func() {
		const size = 7
		proto := lattice.Node{Theta: 0.3, Omega: 1.0, R: 0.7, Alpha: 0.1}
		cfg := lattice.Config{GridSize: size, Coupling: 0.8, Noise: 0, Dt: 0.05}

		ref := newEngine(cfg, lattice.WithGrid(lattice.NewUniformGrid(size, proto)))
		ref.Tick()
		want := ref.Grid().Nodes[0]

		g := lattice.NewUniformGrid(size, proto)
		center := g.Index(3, 3)
		g.Nodes[center].Theta = 2.0
		eng := newEngine(cfg, lattice.WithGrid(g))
		eng.Tick()

		for i, n := range eng.Grid().Nodes {
			x, y := g.Coords(i)
			if torusDistance(x, y, 3, 3, size) >= 2 {
				Expect(n).To(Equal(want), "node (%d,%d) saw a value written this tick", x, y)
			}
		}
		for _, j := range lattice.Neighbors(center, size) {
			Expect(eng.Grid().Nodes[j]).NotTo(Equal(want))
		}
	})

	It("reports the generation it consumed", func() {
		g := lattice.NewUniformGrid(4, restNode)
		for i := range g.Nodes {
			if i%2 == 1 {
				g.Nodes[i].Theta = 3.0
			}
		}
		eng := newEngine(lattice.Config{GridSize: 4, Coupling: 1, Noise: 0, Dt: 0.1}, lattice.WithGrid(g))
		pre := eng.Snapshot()

		s := eng.Tick()

		Expect(s.Step).To(Equal(uint64(0)))
		Expect(s.Coherence).To(BeNumerically("~", lattice.PhaseCoherence(pre), 1e-12))
		Expect(s.Entropy).To(BeNumerically("~", lattice.NormalizedEntropy(pre), 1e-12))
	})

	It("retains only the newest samples", func() {
		eng := newEngine(lattice.Config{GridSize: 4, Coupling: 0.5, Noise: 0, Dt: 0.05})
		for i := 0; i < 150; i++ {
			eng.Tick()
		}
		hist := eng.History()
		Expect(hist).To(HaveLen(lattice.HistoryCap))
		Expect(hist[0].Step).To(Equal(uint64(49)))
		Expect(hist[len(hist)-1].Step).To(Equal(uint64(149)))
	})

	Describe("determinism", func() {
		run := func(cfg lattice.Config, opts ...lattice.Option) []lattice.Node {
			eng := newEngine(cfg, opts...)
			for i := 0; i < 100; i++ {
				eng.Tick()
			}
			return eng.Snapshot()
		}

		It("repeats bit-identically without noise", func() {
			cfg := lattice.Config{GridSize: 12, Coupling: 0.7, Noise: 0, Dt: 0.05}
			Expect(run(cfg, lattice.WithSeed(11))).To(Equal(run(cfg, lattice.WithSeed(11))))
		})

		It("repeats bit-identically with seeded noise", func() {
			cfg := lattice.Config{GridSize: 12, Coupling: 0.7, Noise: 0.2, Dt: 0.05}
			Expect(run(cfg, lattice.WithSeed(5))).To(Equal(run(cfg, lattice.WithSeed(5))))
		})

		It("does not depend on the worker count", func() {
			cfg := lattice.Config{GridSize: 48, Coupling: 0.7, Noise: 0.2, Dt: 0.05}
			serial := run(cfg, lattice.WithSeed(9), lattice.WithWorkers(1))
			parallel := run(cfg, lattice.WithSeed(9), lattice.WithWorkers(4))
			Expect(parallel).To(Equal(serial))
		})
	})
})

var _ = Describe("Engine configuration", func() {
	It("rejects invalid parameters", func() {
		for _, cfg := range []lattice.Config{
			{GridSize: 0, Coupling: 1, Noise: 0, Dt: 0.1},
			{GridSize: 4, Coupling: -1, Noise: 0, Dt: 0.1},
			{GridSize: 4, Coupling: 1, Noise: -0.1, Dt: 0.1},
			{GridSize: 4, Coupling: 1, Noise: 0, Dt: 0},
		} {
			_, err := lattice.NewEngine(cfg)
			Expect(err).To(MatchError(lattice.ErrInvalidConfig))
		}
	})

	It("rejects a grid of the wrong size", func() {
		_, err := lattice.NewEngine(lattice.DefaultConfig(), lattice.WithGrid(lattice.NewUniformGrid(3, restNode)))
		Expect(err).To(MatchError(lattice.ErrGridMismatch))
	})

	It("applies new coupling without touching the grid", func() {
		eng := newEngine(lattice.Config{GridSize: 6, Coupling: 0.1, Noise: 0, Dt: 0.05}, lattice.WithSeed(2))
		before := eng.Snapshot()

		Expect(eng.SetConfig(lattice.Config{GridSize: 6, Coupling: 2, Noise: 0, Dt: 0.05})).To(Succeed())

		Expect(eng.Snapshot()).To(Equal(before))
		Expect(eng.Config().Coupling).To(Equal(2.0))
	})

	It("rebuilds the grid when the size changes", func() {
		eng := newEngine(lattice.Config{GridSize: 6, Coupling: 0.1, Noise: 0, Dt: 0.05}, lattice.WithSeed(2))
		eng.Tick()
		eng.Inject(lattice.Command{TargetX: 3, TargetY: 3, Pattern: lattice.Elysium})

		Expect(eng.SetConfig(lattice.Config{GridSize: 10, Coupling: 0.1, Noise: 0, Dt: 0.05})).To(Succeed())

		Expect(eng.Grid().Nodes).To(HaveLen(100))
		Expect(eng.Step()).To(BeZero())
		Expect(eng.History()).To(BeEmpty())
		Expect(eng.TagCount()).To(BeZero())
	})
})

func torusDistance(x0, y0, x1, y1, size int) int {
	dx := abs(x0 - x1)
	dy := abs(y0 - y1)
	return min(dx, size-dx) + min(dy, size-dy)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
