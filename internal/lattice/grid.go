package lattice

const (
	// TitanFraction is the share of nodes created as anchors.
	TitanFraction = 0.01
	// SparkFraction is the share of non-anchor nodes created as perturbators.
	SparkFraction = 0.05
)

// Grid is a size×size torus of nodes stored row-major.
type Grid struct {
	Size  int    `json:"size"`
	Nodes []Node `json:"nodes"`
}

// NewGrid builds a randomised grid: uniform phases, a sprinkling of
// Titans with frozen frequency, a few Sparks with elevated frequency, and
// amplitudes near TargetAmp.
func NewGrid(size int, rng Rand) *Grid {
	g := &Grid{Size: size, Nodes: make([]Node, size*size)}
	for i := range g.Nodes {
		n := Node{Theta: uniform(rng, 0, TwoPi)}
		switch {
		case rng.Float64() < TitanFraction:
			n.Titan = true
		case rng.Float64() < SparkFraction:
			n.Spark = true
			n.Omega = uniform(rng, 2.0, 3.0)
		default:
			n.Omega = uniform(rng, 0.5, 1.5)
		}
		n.R = TargetAmp + uniform(rng, -0.05, 0.05)
		n.Alpha = uniform(rng, 0.1, 0.15)
		g.Nodes[i] = n
	}
	return g
}

// NewUniformGrid builds a grid where every node equals proto.
func NewUniformGrid(size int, proto Node) *Grid {
	g := &Grid{Size: size, Nodes: make([]Node, size*size)}
	for i := range g.Nodes {
		g.Nodes[i] = proto
	}
	return g
}

// Len returns the number of nodes, always Size².
func (g *Grid) Len() int { return len(g.Nodes) }

// Index converts lattice coordinates to a linear index.
func (g *Grid) Index(x, y int) int { return y*g.Size + x }

// Coords converts a linear index to lattice coordinates.
func (g *Grid) Coords(i int) (x, y int) { return i % g.Size, i / g.Size }

// InBounds reports whether (x, y) lies on the grid without wrapping.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Size && y >= 0 && y < g.Size
}

// Clone returns an independent deep copy.
func (g *Grid) Clone() *Grid {
	c := &Grid{Size: g.Size, Nodes: make([]Node, len(g.Nodes))}
	copy(c.Nodes, g.Nodes)
	return c
}

// CopyFrom overwrites g with src; both must share a size.
func (g *Grid) CopyFrom(src *Grid) {
	g.Size = src.Size
	copy(g.Nodes, src.Nodes)
}

// Valid returns the index of the first node with a non-finite field, or -1.
func (g *Grid) Valid() int {
	for i, n := range g.Nodes {
		if !n.Valid() {
			return i
		}
	}
	return -1
}

// Titans counts anchor nodes.
func (g *Grid) Titans() int {
	count := 0
	for _, n := range g.Nodes {
		if n.Titan {
			count++
		}
	}
	return count
}
