// Package core defines the district-heating network topology model: nodes,
// pipes, the Network container, and the validated Topology used by the
// hydraulic and thermal solvers.
//
// Overview:
//
//   - Network is a directed multigraph under construction: nodes carry a Role
//     (Producer, Consumer or Fork) and optional localized-loss coefficients,
//     pipes carry length, diameter and a heat-transfer coefficient. The stored
//     pipe direction From→To fixes the sign convention for mass flow; physical
//     flow may run against it and is then reported negative.
//   - Topology freezes a Network after validation. A valid network is a tree
//     (connected, |pipes| = |nodes|−1) with exactly one producer and at least
//     one consumer. Topology exposes the signed incidence matrix, stable
//     node/pipe index mappings, the role partition, and OrientByFlow, which
//     produces a direction-corrected view of the grid for path queries and
//     temperature propagation.
//
// Incidence convention:
//
//	The incidence matrix A is |nodes| × |pipes| with A[i][j] = −1 where pipe j
//	leaves node i (its tail) and +1 where it enters (its head). For a tree the
//	matrix has full column rank, so the conservation system A·ṁ = d is exactly
//	determined. Under this orientation a pipe whose water physically runs
//	From→To solves to a negative mass flow.
//
// Lifecycle:
//
//	Build a Network with AddNode/AddPipe, hand it to NewTopology once, then
//	treat both as immutable. Topology and every view derived from it are
//	read-only and safe to share across goroutines without locking.
//
// Error handling (sentinel errors, match with errors.Is):
//
//   - ErrNotATree          — the graph is disconnected or contains a cycle.
//   - ErrNoProducer        — no producer node present.
//   - ErrMultiProducer     — more than one producer (single-source model).
//   - ErrNoConsumer        — nothing draws heat from the grid.
//   - ErrHeightUnsupported — node heights are not modeled; reject, don't guess.
//   - ErrPipeAttribute     — missing or non-physical length/diameter/U-value.
package core
