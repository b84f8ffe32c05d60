// Package viz provides the terminal front end for lattice simulations.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Model]: live view of an engine with injections at a movable cursor
//   - [RunInteractive]: preset picker that opens a live view
//   - [PhaseColor]: maps a node's phase and amplitude to a theme color
//
// # Key Bindings
//
//	Space   - Pause/Resume simulation
//	R       - Reset to fresh initial conditions
//	T       - Cycle color themes
//	Tab/↑↓  - Select and tune coupling, noise, dt, radius, intensity
//	hjkl    - Move the injection cursor
//	p s c z u e - Inject pulse, spiral, chaos, stabilize, unity, elysium
//	?       - Show help overlay
package viz
