// SPDX-License-Identifier: MIT
// Package simulate: sentinel error set for input assembly. Topology errors
// come from package core, per-step numerical errors from the solver
// packages; both pass through wrapped, match with errors.Is.

package simulate

import "errors"

var (
	// ErrNotPrepared indicates Solve was called before a successful Prepare.
	ErrNotPrepared = errors.New("simulate: no prepared inputs, call Prepare first")

	// ErrEmptySeries indicates a required series (supply or ambient
	// temperature) is missing or covers zero steps.
	ErrEmptySeries = errors.New("simulate: required series is empty")

	// ErrSeriesLength indicates the input series disagree on the number of
	// timesteps.
	ErrSeriesLength = errors.New("simulate: series length mismatch")

	// ErrUnknownNode indicates an input series references a node ID that is
	// not part of the grid.
	ErrUnknownNode = errors.New("simulate: unknown node id in input series")

	// ErrNotConsumer indicates a mass-flow or temperature-drop series for a
	// node that is not a consumer.
	ErrNotConsumer = errors.New("simulate: input series for non-consumer node")
)
