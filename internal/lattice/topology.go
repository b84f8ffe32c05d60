package lattice

// Neighbors returns the left, right, up and down neighbours of index on a
// size×size torus.
func Neighbors(index, size int) [4]int {
	x, y := index%size, index/size
	left := (x - 1 + size) % size
	right := (x + 1) % size
	up := (y - 1 + size) % size
	down := (y + 1) % size
	return [4]int{
		y*size + left,
		y*size + right,
		up*size + x,
		down*size + x,
	}
}

// Topology caches Neighbors for every index of one grid size.
type Topology struct {
	size  int
	table [][4]int
}

func NewTopology(size int) *Topology {
	t := &Topology{size: size, table: make([][4]int, size*size)}
	for i := range t.table {
		t.table[i] = Neighbors(i, size)
	}
	return t
}

func (t *Topology) Size() int { return t.size }

// Of returns the cached neighbours of index.
func (t *Topology) Of(index int) [4]int { return t.table[index] }
