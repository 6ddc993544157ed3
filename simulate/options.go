// SPDX-License-Identifier: MIT
// Package simulate: functional configuration for the orchestrator.

package simulate

import (
	"fmt"

	"github.com/fjernvarme/dhgrid/hydraulics"
	"github.com/fjernvarme/dhgrid/thermal"
)

// DefaultWorkers runs the timesteps sequentially, in order.
const DefaultWorkers = 1

// Options holds the orchestrator configuration. Fields are unexported;
// public APIs consume ...Option.
type Options struct {
	workers   int
	hydraulic []hydraulics.Option
	thermal   []thermal.Option
}

// Option mutates Options during New.
type Option func(*Options)

// defaultOptions mirrors the Default* constants.
func defaultOptions() Options {
	return Options{workers: DefaultWorkers}
}

// WithWorkers bounds the number of timesteps solved concurrently. The
// timesteps are independent, so any n ≥ 1 yields the same tables; 1 keeps
// strict sequential order. Panics if n < 1.
func WithWorkers(n int) Option {
	if n < 1 {
		panic(fmt.Sprintf("simulate: WithWorkers(%d): need at least one worker", n))
	}

	return func(o *Options) { o.workers = n }
}

// WithHydraulics forwards options to the per-step hydraulic solver.
func WithHydraulics(opts ...hydraulics.Option) Option {
	return func(o *Options) { o.hydraulic = append(o.hydraulic, opts...) }
}

// WithThermal forwards options to the per-step thermal solver.
func WithThermal(opts ...thermal.Option) Option {
	return func(o *Options) { o.thermal = append(o.thermal, opts...) }
}
