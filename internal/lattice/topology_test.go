package lattice_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/synclattice/internal/lattice"
)

var _ = Describe("Neighbors", func() {
	It("wraps every edge of the torus", func() {
		// 4x4: index 0 is the top-left corner
		Expect(lattice.Neighbors(0, 4)).To(Equal([4]int{3, 1, 12, 4}))
		// bottom-right corner
		Expect(lattice.Neighbors(15, 4)).To(Equal([4]int{14, 12, 11, 3}))
	})

	It("returns interior neighbours without wrapping", func() {
		Expect(lattice.Neighbors(5, 4)).To(Equal([4]int{4, 6, 1, 9}))
	})

	It("is symmetric", func() {
		const size = 5
		for i := 0; i < size*size; i++ {
			for _, j := range lattice.Neighbors(i, size) {
				Expect(lattice.Neighbors(j, size)).To(ContainElement(i))
			}
		}
	})

	DescribeTable("cached topology matches the pure function",
		func(size int) {
			topo := lattice.NewTopology(size)
			Expect(topo.Size()).To(Equal(size))
			for i := 0; i < size*size; i++ {
				Expect(topo.Of(i)).To(Equal(lattice.Neighbors(i, size)))
			}
		},
		Entry("single cell", 1),
		Entry("two by two", 2),
		Entry("odd size", 7),
		Entry("even size", 16),
	)
})
