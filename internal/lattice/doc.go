// Package lattice implements a 2-D toroidal lattice of coupled Stuart–Landau
// oscillators with adaptive plasticity.
//
// The package is organised around a single [Engine]:
//
//   - [Grid]: fixed size² array of [Node] records in row-major order
//   - [Neighbors]: toroidal 4-neighbourhood of a linear index
//   - [Engine.Tick]: one Euler step of the coupled complex amplitudes,
//     Hebbian frequency drift, homeostatic gain and bounded noise
//   - [Coherence], [NormalizedEntropy]: scalar synchronisation metrics
//   - [Engine.Inject]: localised phase patterns and spiral anchor placement
//
// # Update discipline
//
// Every tick reads only the previous generation and writes a spare buffer,
// which is then swapped in. Injections follow the same rule, so a reader of
// [Engine.Grid] never sees a partially updated generation.
//
// # Example
//
//	eng, _ := lattice.NewEngine(lattice.DefaultConfig(), lattice.WithSeed(42))
//	for i := 0; i < 500; i++ {
//	    s := eng.Tick()
//	    fmt.Println(s.Step, s.Coherence, s.Entropy)
//	}
//	eng.Inject(lattice.Command{TargetX: 16, TargetY: 16, Radius: 6, Intensity: 1, Pattern: lattice.Pulse})
//
// # Thread Safety
//
// Engine instances are NOT thread-safe. Callers serialize Tick and Inject;
// the engine keeps no internal queue.
package lattice
