package lattice

import "errors"

var (
	// ErrInvalidConfig indicates a lattice configuration outside its domain.
	ErrInvalidConfig = errors.New("lattice: invalid config")

	// ErrUnknownPattern indicates an injection pattern name that is not recognised.
	ErrUnknownPattern = errors.New("lattice: unknown pattern")

	// ErrGridMismatch indicates a supplied grid whose size disagrees with the config.
	ErrGridMismatch = errors.New("lattice: grid size does not match config")
)
