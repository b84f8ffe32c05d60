// Package analysis provides post-run tools for lattice simulations.
//
// Temporal tools work on a recorded metric series:
//
//   - [PowerSpectrum]: magnitude spectrum of a series via radix-2 FFT
//   - [DominantPeriod]: period of the strongest non-DC oscillation
//   - [GeneratePortrait]: coherence versus entropy trajectory
//
// Spatial tools work on a single grid snapshot:
//
//   - [LocalOrder]: per-node Kuramoto order over the 4-neighborhood
//   - [FindDefects]: phase singularities (spiral cores) by plaquette winding
//
// [LyapunovExponent] estimates the largest exponent by running two engines
// from a grid and a slightly perturbed copy of it:
//
//	lambda, err := analysis.LyapunovExponent(cfg, grid, seed, 2000, 1e-6)
//	if err == nil && lambda > 0 {
//	    // nearby states separate
//	}
package analysis
