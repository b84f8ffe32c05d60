// Package dynamo provides shared simulation primitives used across the
// lattice engine, the run driver and the tooling around them:
//
//   - [ParallelFor]: chunked fan-out over an index range
//   - [SimulationError]: wraps a failure with the step it happened at
//   - domain sentinel errors checked with [errors.Is]
//
// # Thread Safety
//
// [ParallelFor] blocks until every chunk has returned. The callback must only
// write to indices inside its own [start, end) range.
package dynamo
