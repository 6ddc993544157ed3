// Package thermal propagates supply and return temperatures through a
// tree-shaped district heating grid and accounts the heat lost to the
// ground, one timestep at a time. It consumes the mass flows and the
// flow-direction-corrected view produced by package hydraulics.
//
// Pipe model: a pipe is a lumped exponential heat exchanger. Water entering
// at T_in leaves at
//
//	T_out = T_env + (T_in − T_env) · exp(−U·π·D·L / (c·ṁ))
//
// with U the pipe's heat-transfer coefficient, D and L its inner diameter
// and length, c the fluid heat capacity and ṁ the magnitude of its mass
// flow. All node temperatures are solved in excess form θ = T − T_env, so
// the ambient offset drops out of the linear algebra and is added back at
// the end.
//
// Two passes per timestep, each a linear system over the nodes:
//
//  1. Inlet pass. The producer's supply temperature is the only boundary.
//     Every other node mixes its incoming pipes (under the corrected flow
//     direction), each contribution weighted by its mass flow and attenuated
//     by the pipe's exponential decay. Written as (I − M)·θ = b, where a
//     boundary row is the identity with its known θ on the right-hand side
//     and M holds the flow-weighted decay coefficients.
//  2. Return pass. The flow direction is mirrored; the boundaries are the
//     consumers, each returning water at its solved inlet temperature minus
//     its configured temperature drop. The same system shape yields the
//     return temperatures everywhere, including the mixed temperature at
//     forks where branches meet again.
//
// Both solves go through the same least-squares routine as the hydraulic
// pass and enforce the same kind of residual tolerance. A node that
// receives no water from any boundary (a branch cut off by still pipes)
// makes the pass fail with ErrNoBoundaryPath rather than report a spurious
// temperature.
//
// Heat loss per pipe is c·ṁ·|Δθ| per pass, with Δθ read off the solved node
// vector across the pipe's endpoints; the pipe total is the sum of both
// passes and the grid total the sum over pipes. Still pipes lose nothing.
//
// The solver is stateless in the same way as the hydraulic one: Solve
// allocates per-call workspace and is safe for concurrent use.
//
// Error handling (sentinel errors, match with errors.Is):
//
//   - ErrNilTopology      — nil topology passed to New.
//   - ErrNilFlow          — Solve called without a direction-corrected view.
//   - ErrDimensionMismatch — mass-flow vector is not pipe-indexed.
//   - ErrUnknownNode      — a temperature drop references an unknown node ID.
//   - ErrNotConsumer      — a temperature drop for a producer or fork node.
//   - ErrNoBoundaryPath   — a node receives no water from any boundary node.
//   - ErrResidual         — propagation residual above tolerance. Fatal.
package thermal
