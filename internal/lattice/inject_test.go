package lattice_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/synclattice/internal/lattice"
)

var _ = Describe("Engine.Inject", func() {
	var cfg lattice.Config

	BeforeEach(func() {
		cfg = lattice.Config{GridSize: 32, Coupling: 0.5, Noise: 0.05, Dt: 0.05}
	})

	It("stabilizes the whole grid", func() {
		eng := newEngine(cfg, lattice.WithSeed(4))
		for i := 0; i < 20; i++ {
			eng.Tick()
		}

		m := eng.Inject(lattice.Command{TargetX: 16, TargetY: 16, Radius: 32, Pattern: lattice.Stabilize})

		Expect(m).To(BeNil())
		for _, n := range eng.Grid().Nodes {
			Expect(n.Theta).To(BeZero())
			Expect(n.R).To(BeNumerically("~", 0.7071, 1e-4))
		}
	})

	It("places spiral anchors and leaves every other node alone", func() {
		eng := newEngine(cfg, lattice.WithGrid(lattice.NewUniformGrid(32, restNode)))
		before := eng.Snapshot()

		m := eng.Inject(lattice.Command{TargetX: 16, TargetY: 16, Pattern: lattice.Elysium})

		Expect(m).NotTo(BeNil())
		cells := map[int]bool{}
		for _, p := range lattice.SpiralPoints(16, 16) {
			Expect(eng.Grid().InBounds(p.X, p.Y)).To(BeTrue())
			cells[eng.Grid().Index(p.X, p.Y)] = true
		}
		Expect(m.Skipped).To(BeZero())
		Expect(m.Placed()).To(Equal(len(cells)))
		Expect(eng.Grid().Titans()).To(Equal(len(cells)))
		Expect(eng.TagCount()).To(Equal(len(cells)))

		for i, n := range eng.Grid().Nodes {
			if !cells[i] {
				Expect(n).To(Equal(before[i]))
				continue
			}
			Expect(n.Titan).To(BeTrue())
			Expect(n.Spark).To(BeFalse())
			Expect(n.Omega).To(BeZero())
			Expect(n.R).To(Equal(1.0))
			Expect(n.Alpha).To(Equal(1.0))
			tags, ok := eng.Tags(i)
			Expect(ok).To(BeTrue())
			Expect(tags.Identity).To(HavePrefix("anchor-"))
			Expect(tags.Signature).To(HaveLen(16))
		}
	})

	It("skips anchors that land outside the grid", func() {
		eng := newEngine(cfg, lattice.WithGrid(lattice.NewUniformGrid(32, restNode)))

		m := eng.Inject(lattice.Command{TargetX: 0, TargetY: 0, Pattern: lattice.Elysium})

		Expect(m.Skipped).To(BeNumerically(">", 0))
		Expect(m.Placed()).To(BeNumerically("<=", lattice.MaxAnchors-m.Skipped))
		Expect(eng.Grid().Titans()).To(Equal(m.Placed()))
	})

	It("reports anchor topology in the manifest", func() {
		eng := newEngine(cfg, lattice.WithGrid(lattice.NewUniformGrid(32, restNode)))
		m := eng.Inject(lattice.Command{TargetX: 16, TargetY: 16, Pattern: lattice.Elysium})

		report := m.String()
		Expect(report).To(ContainSubstring("center=(16,16)"))
		for _, a := range m.Anchors {
			Expect(report).To(ContainSubstring(a.Identity))
			links := 0
			for _, j := range lattice.Neighbors(a.Index, 32) {
				if eng.Grid().Nodes[j].Titan {
					links++
				}
			}
			Expect(a.Links).To(Equal(links))
			if links == 0 {
				Expect(a.Status).To(Equal(lattice.StatusIsolated))
			} else {
				Expect(a.Status).To(Equal(lattice.StatusBonded))
			}
		}
	})

	It("withholds the unity frequency override from Titans", func() {
		g := lattice.NewUniformGrid(8, lattice.Node{Theta: 2, Omega: 0.4, R: 0.5, Alpha: 0.2})
		g.Nodes[0] = lattice.Node{Theta: 1, Omega: 0.3, R: 0.9, Alpha: 0.5, Titan: true}
		g.Nodes[1] = lattice.Node{Theta: 1, Omega: 2.5, R: 0.9, Alpha: 0.5, Spark: true}
		eng := newEngine(lattice.Config{GridSize: 8, Coupling: 0.5, Noise: 0, Dt: 0.05}, lattice.WithGrid(g))

		eng.Inject(lattice.Command{TargetX: 4, TargetY: 4, Radius: 8, Pattern: lattice.Unity})

		for i, n := range eng.Grid().Nodes {
			Expect(n.Theta).To(Equal(lattice.UnityPhase))
			Expect(n.R).To(Equal(1.0))
			Expect(n.Alpha).To(Equal(1.0))
			if i == 0 {
				Expect(n.Omega).To(Equal(0.3))
				Expect(n.Titan).To(BeTrue())
			} else {
				Expect(n.Omega).To(Equal(1.0))
			}
		}
	})

	It("clamps targets onto the grid", func() {
		a := newEngine(cfg, lattice.WithSeed(8))
		b := newEngine(cfg, lattice.WithSeed(8))

		a.Inject(lattice.Command{TargetX: -10, TargetY: 100, Radius: 6, Intensity: 1.3, Pattern: lattice.Pulse})
		b.Inject(lattice.Command{TargetX: 0, TargetY: 31, Radius: 6, Intensity: 1.3, Pattern: lattice.Pulse})

		Expect(a.Snapshot()).To(Equal(b.Snapshot()))
	})

	It("confines a zero radius to the target cell", func() {
		eng := newEngine(cfg, lattice.WithSeed(12))
		before := eng.Snapshot()

		eng.Inject(lattice.Command{TargetX: 5, TargetY: 7, Radius: 0, Intensity: 1, Pattern: lattice.Chaos})

		target := eng.Grid().Index(5, 7)
		for i, n := range eng.Grid().Nodes {
			if i != target {
				Expect(n).To(Equal(before[i]))
			}
		}
	})

	It("shifts phases by the pulse profile", func() {
		g := lattice.NewUniformGrid(16, lattice.Node{Theta: 1.0, Omega: 1, R: 0.7, Alpha: 0.1})
		eng := newEngine(lattice.Config{GridSize: 16, Coupling: 0.5, Noise: 0, Dt: 0.05}, lattice.WithGrid(g))

		eng.Inject(lattice.Command{TargetX: 8, TargetY: 8, Radius: 3, Intensity: 0.5, Pattern: lattice.Pulse})

		got := eng.Grid().Nodes[eng.Grid().Index(10, 8)].Theta
		Expect(got).To(BeNumerically("~", lattice.WrapPhase(1.0+math.Sin(2)*0.5), 1e-12))
		outside := eng.Grid().Nodes[eng.Grid().Index(12, 8)].Theta
		Expect(outside).To(Equal(1.0))
	})

	It("rotates phases by the spiral angle", func() {
		g := lattice.NewUniformGrid(16, lattice.Node{Theta: 1.0, Omega: 1, R: 0.7, Alpha: 0.1})
		eng := newEngine(lattice.Config{GridSize: 16, Coupling: 0.5, Noise: 0, Dt: 0.05}, lattice.WithGrid(g))

		eng.Inject(lattice.Command{TargetX: 8, TargetY: 8, Radius: 4, Intensity: 1, Pattern: lattice.Spiral})

		got := eng.Grid().Nodes[eng.Grid().Index(8, 10)].Theta
		Expect(got).To(BeNumerically("~", 1.0+math.Pi/2, 1e-12))
	})

	It("ignores unknown patterns", func() {
		eng := newEngine(cfg, lattice.WithSeed(1))
		before := eng.Snapshot()

		Expect(eng.Inject(lattice.Command{Radius: 100, Intensity: 1, Pattern: "vortex"})).To(BeNil())
		Expect(eng.Snapshot()).To(Equal(before))
	})

	It("treats a non-finite intensity as zero", func() {
		eng := newEngine(cfg, lattice.WithSeed(1))
		eng.Inject(lattice.Command{TargetX: 16, TargetY: 16, Radius: 40, Intensity: math.Inf(1), Pattern: lattice.Pulse})
		expectBounded(eng.Grid())
	})

	It("keeps ticking cleanly after every pattern", func() {
		eng := newEngine(cfg, lattice.WithSeed(21))
		for _, p := range lattice.Patterns() {
			eng.Inject(lattice.Command{TargetX: 10, TargetY: 20, Radius: 9, Intensity: 2, Pattern: p})
			for i := 0; i < 20; i++ {
				eng.Tick()
			}
			expectBounded(eng.Grid())
		}
	})
})

var _ = Describe("ParsePattern", func() {
	DescribeTable("known names",
		func(in string, want lattice.Pattern) {
			p, err := lattice.ParsePattern(in)
			Expect(err).NotTo(HaveOccurred())
			Expect(p).To(Equal(want))
		},
		Entry("pulse", "pulse", lattice.Pulse),
		Entry("upper case", "SPIRAL", lattice.Spiral),
		Entry("padded", "  elysium ", lattice.Elysium),
	)

	It("rejects unknown names", func() {
		_, err := lattice.ParsePattern("vortex")
		Expect(err).To(MatchError(lattice.ErrUnknownPattern))
	})
})
