// Package simulate runs a district heating grid through a sequence of
// timesteps and collects the results into named tables. It owns the
// lifecycle the solver packages stay out of: topology validation up front,
// input-series assembly, per-step hydraulic and thermal solves, and result
// aggregation.
//
// Usage:
//
//	sim, err := simulate.New(net)                // validates the topology
//	err = sim.Prepare(simulate.Inputs{...})      // checks the series
//	res, err := sim.Solve(ctx)                   // runs every timestep
//	flows, _ := res.Table(simulate.TableMassFlow)
//
// New freezes the network via core.NewTopology, so a grid that is not a
// tree or lacks its single producer fails before any series is touched.
// Prepare checks that every input series covers the same number of steps
// and references only consumer nodes; consumers without a mass-flow or
// temperature-drop series draw nothing and drop nothing. Solve then runs
// the timesteps — independent of each other by construction — either in
// order (the default) or concurrently under a WithWorkers limit, every
// step writing its own rows of the preallocated tables. The first failing
// step aborts the run with its step index in the error; no partial results
// are returned.
//
// Result tables are keyed by the Table* constants: per-pipe columns follow
// the topology's pipe order, per-node columns its node order, and the
// global and producer tables carry a single column.
//
// Error handling (sentinel errors, match with errors.Is):
//
//   - ErrNotPrepared  — Solve called before a successful Prepare.
//   - ErrEmptySeries  — a required series is missing or has no steps.
//   - ErrSeriesLength — input series disagree on the number of steps.
//   - ErrUnknownNode  — a series references a node ID not in the grid.
//   - ErrNotConsumer  — a series references a producer or fork node.
//
// Topology errors surface from New unchanged (core sentinels); per-step
// numerical errors surface from Solve wrapped with the step index
// (hydraulics and thermal sentinels).
package simulate
