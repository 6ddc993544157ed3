// Package hydraulics computes the per-timestep flow state of a tree-shaped
// district heating grid: pipe mass flows, Reynolds numbers, friction
// factors, distributed and localized pressure losses, the critical-path
// global loss, and the circulation pump power.
//
// Solve pipeline (one timestep):
//
//  1. Mass-flow balance. The node demand vector holds each consumer's draw
//     as a negative entry and closes conservation by assigning minus the sum
//     of all other entries to the single producer. The conservation system
//     A·ṁ = d over the signed incidence matrix is solved by least squares —
//     exactly determined for a tree, with the residual checked against a
//     fixed tolerance so an inconsistent demand vector cannot pass silently.
//  2. Reynolds number Re = 4·|ṁ| / (π·μ·D) per pipe.
//  3. Darcy friction factor λ = 0.07 · Re^−0.13 · D^−0.14 — the single-regime
//     correlation of the operating model. (Pipe dimensioning uses the full
//     multi-regime routines in dimension.go instead.)
//  4. Distributed loss Δp = 2 · 8·λ·L·ṁ² / (ρ·π²·D⁵); the factor 2 covers
//     the supply and return legs lumped into one pipe.
//  5. Localized loss Δp = 8·ζ·ṁ² / (ρ·π²·D⁴) with ζ the sum of the upstream
//     node's outlet and the downstream node's inlet coefficients under the
//     actual flow direction; nodes without fittings contribute nothing.
//  6. Global loss: on the flow-direction-corrected view of the grid, the
//     producer-rooted shortest-path loss is computed per consumer; the grid
//     loss is the maximum over consumers — the critical path the pump must
//     overcome, all other branches assumed throttled to match.
//  7. Pump power P = ṁ_total · Δp_global / (η·ρ).
//
// Sign convention: a pipe's mass flow is reported relative to its stored
// From→To direction under the incidence orientation of package core, so
// water physically running From→To appears as a negative value. All loss
// formulas are even in ṁ; only direction handling reads the sign.
//
// The solver is stateless: Solve allocates its own workspace per call and
// may be invoked from many goroutines at once.
//
// dimension.go holds the separate, reusable dimensioning utilities:
// PressureDrop with laminar / turbulent-smooth / transition / rough regimes
// (iterative solves of the implicit Prandtl–Kármán and Colebrook equations),
// and the MaxVelocity root finders built on top of it.
//
// Error handling (sentinel errors, match with errors.Is):
//
//   - ErrNilTopology    — nil topology passed to New.
//   - ErrUnknownNode    — a draw references a node ID not in the topology.
//   - ErrNotConsumer    — a draw references a producer or fork node.
//   - ErrResidual       — conservation residual above tolerance: the demand
//     vector is inconsistent or a non-tree slipped validation. Fatal.
//   - ErrNoProducerPath — a consumer is unreachable from the producer in the
//     flow-corrected view.
//   - ErrNonPhysical    — non-physical argument to a dimensioning routine.
//   - ErrBadBracket     — bisection bracket does not enclose the target.
package hydraulics
