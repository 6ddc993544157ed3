// SPDX-License-Identifier: MIT
// Package thermal: sentinel error set. Solve wraps these with node context
// where useful; tests match via errors.Is.

package thermal

import "errors"

var (
	// ErrNilTopology indicates a nil *core.Topology was passed to New.
	ErrNilTopology = errors.New("thermal: topology is nil")

	// ErrNilFlow indicates Solve was called without a direction-corrected
	// view of the grid. Temperatures propagate along actual flow; without it
	// there is nothing to propagate on.
	ErrNilFlow = errors.New("thermal: flow view is nil")

	// ErrDimensionMismatch indicates the mass-flow vector does not have one
	// entry per pipe.
	ErrDimensionMismatch = errors.New("thermal: mass-flow vector is not pipe-indexed")

	// ErrUnknownNode indicates a temperature drop references a node ID that
	// is not part of the topology.
	ErrUnknownNode = errors.New("thermal: unknown node id in temperature drops")

	// ErrNotConsumer indicates a temperature drop was supplied for a node
	// that is not a consumer.
	ErrNotConsumer = errors.New("thermal: temperature drop for non-consumer node")

	// ErrNoBoundaryPath indicates a node that no boundary-temperature node
	// feeds: after direction correction no water reaches it, so its
	// temperature is undefined. Reporting zero instead would be silently
	// wrong.
	ErrNoBoundaryPath = errors.New("thermal: node receives no water from any boundary")

	// ErrResidual indicates the propagation residual ‖(I−M)·θ − b‖∞ exceeded
	// the configured tolerance and the solved temperatures cannot be
	// trusted.
	ErrResidual = errors.New("thermal: propagation residual above tolerance")
)
