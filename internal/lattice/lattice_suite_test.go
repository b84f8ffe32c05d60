package lattice_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/synclattice/internal/lattice"
)

func TestLattice(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Lattice Suite")
}

var restNode = lattice.Node{Theta: 0, Omega: 1.0, R: 0.7071, Alpha: 0.1}

func newEngine(cfg lattice.Config, opts ...lattice.Option) *lattice.Engine {
	GinkgoHelper()
	eng, err := lattice.NewEngine(cfg, opts...)
	Expect(err).NotTo(HaveOccurred())
	return eng
}

// expectBounded checks every per-node invariant that must hold after a tick.
func expectBounded(g *lattice.Grid) {
	GinkgoHelper()
	Expect(g.Nodes).To(HaveLen(g.Size * g.Size))
	Expect(g.Valid()).To(Equal(-1))
	for _, n := range g.Nodes {
		Expect(n.Theta).To(BeNumerically(">=", 0))
		Expect(n.Theta).To(BeNumerically("<", lattice.TwoPi))
		Expect(n.R).To(BeNumerically(">=", lattice.MinR))
		Expect(n.R).To(BeNumerically("<=", lattice.MaxR))
		Expect(n.Alpha).To(BeNumerically(">=", lattice.MinAlpha))
		Expect(n.Alpha).To(BeNumerically("<=", lattice.MaxAlpha))
	}
}
