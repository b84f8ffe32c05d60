package lattice

import "fmt"

// Engine owns a double-buffered grid and advances it one tick at a time.
type Engine struct {
	cfg     Config
	rng     Rand
	workers int

	cur, spare *Grid
	topo       *Topology
	step       uint64
	tags       map[int]Tags
	history    *History

	// scratch buffers reused by every tick
	xs, ys, noise []float64
}

type Option func(*Engine)

// WithRand routes all randomness through rng.
func WithRand(rng Rand) Option {
	return func(e *Engine) { e.rng = rng }
}

// WithSeed is shorthand for WithRand(NewRand(seed)).
func WithSeed(seed int64) Option {
	return func(e *Engine) { e.rng = NewRand(seed) }
}

// WithWorkers splits the per-node update across n goroutines. Results are
// identical for every n; n <= 0 means GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(e *Engine) { e.workers = n }
}

// WithGrid starts the engine from a copy of g instead of random initial
// conditions.
func WithGrid(g *Grid) Option {
	return func(e *Engine) { e.cur = g.Clone() }
}

func NewEngine(cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{cfg: cfg, workers: 1}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = NewRand(1)
	}
	if e.cur == nil {
		e.cur = NewGrid(cfg.GridSize, e.rng)
	}
	if e.cur.Size != cfg.GridSize || e.cur.Len() != cfg.GridSize*cfg.GridSize {
		return nil, fmt.Errorf("%w: grid %d, config %d", ErrGridMismatch, e.cur.Size, cfg.GridSize)
	}
	e.reset()
	return e, nil
}

// reset sizes every buffer for the current grid and clears run state.
func (e *Engine) reset() {
	n := e.cur.Len()
	e.spare = e.cur.Clone()
	e.topo = NewTopology(e.cur.Size)
	e.step = 0
	e.tags = make(map[int]Tags)
	e.history = NewHistory(HistoryCap)
	e.xs = make([]float64, n)
	e.ys = make([]float64, n)
	e.noise = make([]float64, 2*n)
}

// SetConfig applies cfg from the next tick on. A different GridSize
// rebuilds the grid from fresh random initial conditions and clears the
// step counter, tags and history.
func (e *Engine) SetConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	resize := cfg.GridSize != e.cfg.GridSize
	e.cfg = cfg
	if resize {
		e.cur = NewGrid(cfg.GridSize, e.rng)
		e.reset()
	}
	return nil
}

// Reset replaces the grid with fresh random initial conditions.
func (e *Engine) Reset() {
	e.cur = NewGrid(e.cfg.GridSize, e.rng)
	e.reset()
}

func (e *Engine) Config() Config { return e.cfg }

// Step returns the number of ticks applied so far.
func (e *Engine) Step() uint64 { return e.step }

// Grid returns the current generation. It stays valid until the next Tick
// or Inject, which reuse the other buffer.
func (e *Engine) Grid() *Grid { return e.cur }

// Snapshot returns an independent copy of the current nodes.
func (e *Engine) Snapshot() []Node {
	nodes := make([]Node, e.cur.Len())
	copy(nodes, e.cur.Nodes)
	return nodes
}

// History returns a copy of the retained metric samples, oldest first.
func (e *Engine) History() []Sample { return e.history.Samples() }

// Tags returns the labels of an anchor placed along a spiral.
func (e *Engine) Tags(index int) (Tags, bool) {
	t, ok := e.tags[index]
	return t, ok
}

// TagCount returns the number of tagged anchors.
func (e *Engine) TagCount() int { return len(e.tags) }

func (e *Engine) swap() {
	e.cur, e.spare = e.spare, e.cur
}
