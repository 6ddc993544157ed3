// SPDX-License-Identifier: MIT
// Package core: sentinel error set.
// All public operations return these sentinels (possibly wrapped with
// fmt.Errorf("...: %w", ErrX) for node/pipe context); tests match them via
// errors.Is. Panics are reserved for programmer errors in option handling.

package core

import "errors"

var (
	// ErrNilNetwork indicates a nil *Network was passed to NewTopology.
	ErrNilNetwork = errors.New("core: network is nil")

	// ErrEmptyNodeID indicates a node with an empty ID was added.
	ErrEmptyNodeID = errors.New("core: node ID is empty")

	// ErrUnknownRole indicates a node role outside Producer/Consumer/Fork.
	ErrUnknownRole = errors.New("core: unknown node role")

	// ErrDuplicateNode indicates two nodes share the same ID.
	ErrDuplicateNode = errors.New("core: duplicate node ID")

	// ErrNodeNotFound indicates a pipe references a node that was never added.
	ErrNodeNotFound = errors.New("core: node not found")

	// ErrDuplicatePipe indicates two pipes share the same (from, to, key).
	ErrDuplicatePipe = errors.New("core: duplicate pipe identity")

	// ErrPipeAttribute indicates a pipe with missing or non-physical
	// attributes (length ≤ 0, diameter ≤ 0, or negative U-value).
	ErrPipeAttribute = errors.New("core: invalid pipe attribute")

	// ErrNotATree indicates the network is disconnected or cyclic.
	// Looped grids are rejected up front; they are not a runtime condition.
	ErrNotATree = errors.New("core: network is not a tree")

	// ErrNoProducer indicates the network has no producer node.
	ErrNoProducer = errors.New("core: no producer in network")

	// ErrMultiProducer indicates more than one producer node. The mass-flow
	// balance assumes a single source; multi-producer allocation is out of
	// scope.
	ErrMultiProducer = errors.New("core: multiple producers in network")

	// ErrNoConsumer indicates the network has no consumer node.
	ErrNoConsumer = errors.New("core: no consumer in network")

	// ErrHeightUnsupported indicates a node carries a height attribute.
	// Hydrostatic terms are not modeled; the attribute is rejected so the
	// caller cannot mistake the results for a height-aware solution.
	ErrHeightUnsupported = errors.New("core: node height is not supported")

	// ErrDimensionMismatch indicates a vector indexed by pipes or nodes has
	// the wrong length for this topology.
	ErrDimensionMismatch = errors.New("core: dimension mismatch")

	// ErrPipeIndex indicates a pipe (column) index outside [0, PipeCount).
	ErrPipeIndex = errors.New("core: pipe index out of range")
)
