package quota

import "errors"

// Quota domain errors
var (
	// ErrConflict signals a concurrent consume/release race. The engine retries
	// the atomic operation once before surfacing it.
	ErrConflict = errors.New("concurrent quota mutation detected")

	ErrNegativeRelease = errors.New("release would drive quota count below zero")
)
