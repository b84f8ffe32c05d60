package lattice

import (
	"math"

	"github.com/san-kum/synclattice/internal/dynamo"
)

// minChunk keeps small grids on the calling goroutine.
const minChunk = 256

// Tick advances the lattice by one dt and returns the metrics sample of the
// generation it consumed. The sample describes the state before this tick's
// update, tagged with the step counter value at that time.
func (e *Engine) Tick() Sample {
	cur := e.cur.Nodes
	n := len(cur)

	var sumSin, sumCos float64
	for i, node := range cur {
		sin, cos := math.Sincos(node.Theta)
		e.xs[i] = node.R * cos
		e.ys[i] = node.R * sin
		sumSin += sin
		sumCos += cos
	}

	sample := Sample{
		Coherence: Coherence(sumSin, sumCos, n),
		Entropy:   NormalizedEntropy(cur),
		Step:      e.step,
	}
	e.history.Append(sample)

	eta := e.cfg.Noise
	if eta > 0 {
		for i := range e.noise {
			e.noise[i] = uniform(e.rng, -eta, eta)
		}
	} else {
		clear(e.noise)
	}

	next := e.spare.Nodes
	dynamo.ParallelFor(n, minChunk, e.workers, func(start, end int) {
		for i := start; i < end; i++ {
			next[i] = e.advance(i, cur)
		}
	})

	e.swap()
	e.step++
	return sample
}

// advance computes node i of the next generation from the previous one.
func (e *Engine) advance(i int, cur []Node) Node {
	self := cur[i]
	dt := e.cfg.Dt

	if self.Titan {
		self.Theta = WrapPhase(self.Theta + self.Omega*dt*TitanDrift)
		return self
	}

	k := e.cfg.Coupling
	x, y := e.xs[i], e.ys[i]

	var diffX, diffY, pull float64
	for _, j := range e.topo.Of(i) {
		diffX += e.xs[j] - x
		diffY += e.ys[j] - y
		pull += math.Sin(cur[j].Theta - self.Theta)
	}

	// dz/dt = (α + iω)z − |z|²z + K·Σ(z_j − z) + ξ
	gain := self.Alpha - self.R*self.R
	dX := gain*x - self.Omega*y + k*diffX + e.noise[2*i]
	dY := gain*y + self.Omega*x + k*diffY + e.noise[2*i+1]

	nx := x + dX*dt
	ny := y + dY*dt

	r := clamp(math.Hypot(nx, ny), MinR, MaxR)
	self.Theta = WrapPhase(math.Atan2(ny, nx))
	self.Omega += HebbianRate * k * pull * dt
	self.Alpha = clamp(self.Alpha+HomeostaticRate*(TargetAmp-r)*r*dt, MinAlpha, MaxAlpha)
	self.R = r
	return self
}
