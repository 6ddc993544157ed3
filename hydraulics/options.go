// SPDX-License-Identifier: MIT
// Package hydraulics: functional configuration for the per-timestep solver.
// Defaults are documented constants; option constructors panic on
// nonsensical values (programmer error), never return them as runtime
// errors.

package hydraulics

import "fmt"

// DEFAULTS - single source of truth for zero-value behavior.
const (
	// DefaultDensity is the water density in kg/m³ at typical grid supply
	// temperature (~80 °C).
	DefaultDensity = 971.78

	// DefaultViscosity is the dynamic viscosity in Pa·s at the same
	// temperature level.
	DefaultViscosity = 3.5e-4

	// DefaultPumpEfficiency is the circulation pump's overall efficiency.
	DefaultPumpEfficiency = 1.0

	// DefaultResidualTolerance bounds ‖A·ṁ − d‖∞ for an accepted solve.
	// For a tree the system is exactly determined; anything above numerical
	// noise signals inconsistent inputs.
	DefaultResidualTolerance = 1e-10
)

// LossPolicy selects how per-branch losses aggregate into the grid-wide
// pressure loss. The set is closed.
type LossPolicy uint8

const (
	// CriticalPathPolicy takes the maximum producer→consumer path loss: the
	// circulating pump must overcome the worst branch, and all other
	// branches are assumed throttled to match. This is a modeling
	// simplification, kept explicit so alternatives can slot in.
	CriticalPathPolicy LossPolicy = iota
)

// Options holds the solver configuration. Fields are unexported; public APIs
// consume ...Option.
type Options struct {
	density   float64
	viscosity float64
	pumpEta   float64
	tolerance float64
	policy    LossPolicy
}

// Option mutates Options during New.
type Option func(*Options)

// defaultOptions mirrors the Default* constants.
func defaultOptions() Options {
	return Options{
		density:   DefaultDensity,
		viscosity: DefaultViscosity,
		pumpEta:   DefaultPumpEfficiency,
		tolerance: DefaultResidualTolerance,
		policy:    CriticalPathPolicy,
	}
}

// WithDensity sets the fluid density in kg/m³. Panics if rho ≤ 0.
func WithDensity(rho float64) Option {
	if rho <= 0 {
		panic(fmt.Sprintf("hydraulics: WithDensity(%v): density must be > 0", rho))
	}

	return func(o *Options) { o.density = rho }
}

// WithViscosity sets the dynamic viscosity in Pa·s. Panics if mu ≤ 0.
func WithViscosity(mu float64) Option {
	if mu <= 0 {
		panic(fmt.Sprintf("hydraulics: WithViscosity(%v): viscosity must be > 0", mu))
	}

	return func(o *Options) { o.viscosity = mu }
}

// WithPumpEfficiency sets the pump efficiency. Panics unless 0 < eta ≤ 1.
func WithPumpEfficiency(eta float64) Option {
	if eta <= 0 || eta > 1 {
		panic(fmt.Sprintf("hydraulics: WithPumpEfficiency(%v): efficiency must be in (0, 1]", eta))
	}

	return func(o *Options) { o.pumpEta = eta }
}

// WithResidualTolerance sets the accepted conservation residual.
// Panics if tol ≤ 0.
func WithResidualTolerance(tol float64) Option {
	if tol <= 0 {
		panic(fmt.Sprintf("hydraulics: WithResidualTolerance(%v): tolerance must be > 0", tol))
	}

	return func(o *Options) { o.tolerance = tol }
}

// WithLossPolicy selects the global-loss aggregation policy. Panics on an
// undeclared policy value.
func WithLossPolicy(p LossPolicy) Option {
	if p != CriticalPathPolicy {
		panic(fmt.Sprintf("hydraulics: WithLossPolicy(%d): unknown policy", p))
	}

	return func(o *Options) { o.policy = p }
}
