// SPDX-License-Identifier: MIT
// Package thermal: functional configuration for the propagation solver.

package thermal

import "fmt"

// DEFAULTS - single source of truth for zero-value behavior.
const (
	// DefaultHeatCapacity is the water specific heat capacity in J/(kg·K) at
	// typical grid temperature level.
	DefaultHeatCapacity = 4190.0

	// DefaultResidualTolerance bounds ‖(I−M)·θ − b‖∞ for an accepted pass,
	// matching the hydraulic solver's conservation tolerance.
	DefaultResidualTolerance = 1e-10
)

// Options holds the solver configuration. Fields are unexported; public APIs
// consume ...Option.
type Options struct {
	heatCapacity float64
	tolerance    float64
}

// Option mutates Options during New.
type Option func(*Options)

// defaultOptions mirrors the Default* constants.
func defaultOptions() Options {
	return Options{
		heatCapacity: DefaultHeatCapacity,
		tolerance:    DefaultResidualTolerance,
	}
}

// WithHeatCapacity sets the fluid heat capacity in J/(kg·K). Panics if
// c ≤ 0.
func WithHeatCapacity(c float64) Option {
	if c <= 0 {
		panic(fmt.Sprintf("thermal: WithHeatCapacity(%v): heat capacity must be > 0", c))
	}

	return func(o *Options) { o.heatCapacity = c }
}

// WithResidualTolerance sets the accepted propagation residual.
// Panics if tol ≤ 0.
func WithResidualTolerance(tol float64) Option {
	if tol <= 0 {
		panic(fmt.Sprintf("thermal: WithResidualTolerance(%v): tolerance must be > 0", tol))
	}

	return func(o *Options) { o.tolerance = tol }
}
