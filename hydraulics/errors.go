// SPDX-License-Identifier: MIT
// Package hydraulics: sentinel error set. Algorithms return these sentinels,
// wrapped with node/pipe context where useful; tests match via errors.Is.

package hydraulics

import "errors"

var (
	// ErrNilTopology indicates a nil *core.Topology was passed to New.
	ErrNilTopology = errors.New("hydraulics: topology is nil")

	// ErrUnknownNode indicates a mass-flow draw references a node ID that is
	// not part of the topology.
	ErrUnknownNode = errors.New("hydraulics: unknown node id in draws")

	// ErrNotConsumer indicates a mass-flow draw was supplied for a node that
	// is not a consumer. Producer generation is derived, never prescribed.
	ErrNotConsumer = errors.New("hydraulics: draw for non-consumer node")

	// ErrResidual indicates the conservation residual ‖A·ṁ − d‖∞ exceeded
	// the configured tolerance. The inputs are inconsistent; the timestep
	// has no valid solution and the run must abort.
	ErrResidual = errors.New("hydraulics: mass-flow balance residual above tolerance")

	// ErrNoProducerPath indicates a consumer that cannot be reached from the
	// producer in the flow-direction-corrected grid.
	ErrNoProducerPath = errors.New("hydraulics: consumer unreachable from producer")

	// ErrNonPhysical indicates a non-physical argument (zero or negative
	// diameter, length, or negative roughness) to a dimensioning routine.
	ErrNonPhysical = errors.New("hydraulics: non-physical argument")

	// ErrBadBracket indicates the bisection bracket [low, high] does not
	// enclose the requested pressure drop.
	ErrBadBracket = errors.New("hydraulics: bracket does not enclose target pressure drop")
)
