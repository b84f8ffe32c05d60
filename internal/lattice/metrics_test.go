package lattice_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/synclattice/internal/lattice"
)

var _ = Describe("Metrics", func() {
	It("gives full entropy for one phase per bin", func() {
		g := lattice.NewUniformGrid(6, restNode)
		for i := range g.Nodes {
			g.Nodes[i].Theta = (float64(i) + 0.5) * lattice.TwoPi / lattice.EntropyBins
		}
		Expect(lattice.NormalizedEntropy(g.Nodes)).To(BeNumerically("~", 1.0, 1e-12))
		Expect(lattice.PhaseCoherence(g.Nodes)).To(BeNumerically("~", 0, 1e-9))
	})

	It("gives zero entropy and full coherence for identical phases", func() {
		g := lattice.NewUniformGrid(6, lattice.Node{Theta: 2.5, R: 1})
		Expect(lattice.NormalizedEntropy(g.Nodes)).To(BeNumerically("~", 0, 1e-12))
		Expect(lattice.PhaseCoherence(g.Nodes)).To(BeNumerically("~", 1, 1e-12))
	})

	It("cancels opposite phases", func() {
		nodes := []lattice.Node{{Theta: 0}, {Theta: math.Pi}}
		Expect(lattice.PhaseCoherence(nodes)).To(BeNumerically("~", 0, 1e-12))
		Expect(lattice.NormalizedEntropy(nodes)).To(BeNumerically("~", math.Log(2)/math.Log(36), 1e-12))
	})

	It("handles an empty snapshot", func() {
		Expect(lattice.Coherence(0, 0, 0)).To(BeZero())
		Expect(lattice.NormalizedEntropy(nil)).To(BeZero())
	})

	DescribeTable("PhaseBin",
		func(theta float64, bin int) {
			Expect(lattice.PhaseBin(theta)).To(Equal(bin))
		},
		Entry("zero", 0.0, 0),
		Entry("second bin", 1.5*lattice.TwoPi/36, 1),
		Entry("middle", math.Pi, 18),
		Entry("just below 2π", math.Nextafter(lattice.TwoPi, 0), 35),
	)

	It("evicts the oldest sample past capacity", func() {
		h := lattice.NewHistory(3)
		_, ok := h.Last()
		Expect(ok).To(BeFalse())
		for i := 0; i < 5; i++ {
			h.Append(lattice.Sample{Step: uint64(i)})
		}
		Expect(h.Len()).To(Equal(3))
		steps := []uint64{}
		for _, s := range h.Samples() {
			steps = append(steps, s.Step)
		}
		Expect(steps).To(Equal([]uint64{2, 3, 4}))
		last, ok := h.Last()
		Expect(ok).To(BeTrue())
		Expect(last.Step).To(Equal(uint64(4)))
	})

	It("wraps phases into [0, 2π)", func() {
		Expect(lattice.WrapPhase(-0.5)).To(BeNumerically("~", lattice.TwoPi-0.5, 1e-12))
		Expect(lattice.WrapPhase(lattice.TwoPi)).To(BeZero())
		Expect(lattice.WrapPhase(-1e-18)).To(BeNumerically("<", lattice.TwoPi))
		Expect(lattice.WrapPhase(7 * math.Pi)).To(BeNumerically("~", math.Pi, 1e-9))
	})
})
