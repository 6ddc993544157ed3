// Package hydraulics: the per-timestep flow solver.

package hydraulics

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/fjernvarme/dhgrid/core"
)

// flowEps is the mass flow below which a pipe counts as still water: no
// Reynolds number, no friction, no loss.
const flowEps = 1e-12

// Solver computes the hydraulic state of one timestep. It holds only the
// immutable topology and configuration; Solve allocates per-call workspace,
// so a single Solver may serve many goroutines.
type Solver struct {
	top *core.Topology
	cfg Options
}

// Result is the hydraulic state of one timestep. All per-pipe slices follow
// the topology's pipe (column) order.
type Result struct {
	// MassFlow is the solved pipe mass flow in kg/s, signed relative to the
	// stored From→To direction (negative = water runs From→To; see package
	// doc).
	MassFlow []float64

	// Reynolds is the per-pipe Reynolds number (dimensionless, ≥ 0).
	Reynolds []float64

	// Friction is the per-pipe Darcy friction factor of the operating
	// correlation; zero for still pipes.
	Friction []float64

	// DistributedLoss is the per-pipe distributed pressure loss in Pa,
	// covering supply and return legs.
	DistributedLoss []float64

	// LocalizedLoss is the per-pipe localized (fitting) pressure loss in Pa.
	LocalizedLoss []float64

	// GlobalLoss is the grid-wide pressure loss in Pa under the configured
	// loss policy.
	GlobalLoss float64

	// PumpPower is the circulation pump power in W.
	PumpPower float64

	// Production is the producer's total mass flow in kg/s (the sum of all
	// consumer draws).
	Production float64

	// Flow is the flow-direction-corrected view of the grid; the thermal
	// solver propagates temperatures along it.
	Flow *core.Directed
}

// New creates a hydraulic solver for the given validated topology.
// Returns ErrNilTopology if top is nil.
func New(top *core.Topology, opts ...Option) (*Solver, error) {
	if top == nil {
		return nil, ErrNilTopology
	}
	cfg := defaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Solver{top: top, cfg: cfg}, nil
}

// Solve computes the flow state for one timestep.
//
// draws maps consumer node IDs to their mass-flow draw in kg/s (positive
// quantities); consumers absent from the map draw nothing. Draws for
// non-consumer or unknown nodes are rejected — producer generation is always
// derived from global conservation, never prescribed.
func (s *Solver) Solve(draws map[string]float64) (*Result, error) {
	d, production, err := s.demand(draws)
	if err != nil {
		return nil, err
	}

	flows, err := s.solveFlows(d)
	if err != nil {
		return nil, err
	}

	// Physical orientation: under the core incidence convention a negative
	// solved flow runs From→To, so the sign vector handed to the direction
	// remap is the negated solution.
	oriented := make([]float64, len(flows))
	for j, m := range flows {
		oriented[j] = -m
	}
	flowDir, err := s.top.OrientByFlow(oriented)
	if err != nil {
		return nil, err
	}

	res := &Result{
		MassFlow:        flows,
		Reynolds:        make([]float64, len(flows)),
		Friction:        make([]float64, len(flows)),
		DistributedLoss: make([]float64, len(flows)),
		LocalizedLoss:   make([]float64, len(flows)),
		Production:      production,
		Flow:            flowDir,
	}
	s.pipeLosses(res)

	if err := s.globalLoss(res); err != nil {
		return nil, err
	}
	res.PumpPower = production * res.GlobalLoss / (s.cfg.pumpEta * s.cfg.density)

	return res, nil
}

// demand assembles the node demand vector: consumers are negative sinks, the
// producer closes conservation with minus the sum of all other entries, and
// forks stay zero. Returns the vector and the producer total.
func (s *Solver) demand(draws map[string]float64) ([]float64, float64, error) {
	d := make([]float64, s.top.NodeCount())
	var total float64
	for id, draw := range draws {
		i, ok := s.top.Index(id)
		if !ok {
			return nil, 0, fmt.Errorf("node %q: %w", id, ErrUnknownNode)
		}
		if s.top.Node(i).Role != core.RoleConsumer {
			return nil, 0, fmt.Errorf("node %q (%s): %w", id, s.top.Node(i).Role, ErrNotConsumer)
		}
		d[i] = -draw
		total += draw
	}
	d[s.top.ProducerIndex()] = total

	return d, total, nil
}

// solveFlows solves A·ṁ = d by least squares and enforces the residual
// tolerance. The system is exactly determined for a tree; least squares
// merely tolerates floating-point noise.
func (s *Solver) solveFlows(d []float64) ([]float64, error) {
	inc := s.top.Incidence()
	b := mat.NewVecDense(len(d), d)

	var x mat.VecDense
	if err := x.SolveVec(inc, b); err != nil {
		// A reported condition number still carries a valid solution; the
		// residual check below is the arbiter. Anything else is fatal.
		var cond mat.Condition
		if !errors.As(err, &cond) {
			return nil, fmt.Errorf("hydraulics: mass-flow solve: %w", err)
		}
	}

	var r mat.VecDense
	r.MulVec(inc, &x)
	r.SubVec(&r, b)
	if resid := mat.Norm(&r, math.Inf(1)); resid > s.cfg.tolerance {
		return nil, fmt.Errorf("residual %.3e > %.3e: %w", resid, s.cfg.tolerance, ErrResidual)
	}

	flows := make([]float64, s.top.PipeCount())
	for j := range flows {
		flows[j] = x.AtVec(j)
	}

	return flows, nil
}

// pipeLosses fills Reynolds, friction and the two loss vectors.
func (s *Solver) pipeLosses(res *Result) {
	rho, mu := s.cfg.density, s.cfg.viscosity
	for j, m := range res.MassFlow {
		am := math.Abs(m)
		if am < flowEps {
			continue // still pipe: all quantities stay zero
		}
		p := s.top.Pipe(j)
		dm := p.DiameterM()

		re := 4 * am / (math.Pi * mu * dm)
		lam := 0.07 * math.Pow(re, -0.13) * math.Pow(dm, -0.14)

		res.Reynolds[j] = re
		res.Friction[j] = lam
		// Factor 2: supply and return legs share the trench.
		res.DistributedLoss[j] = 2 * 8 * lam * p.Length * m * m / (rho * math.Pi * math.Pi * math.Pow(dm, 5))

		up := s.top.Node(res.Flow.Upstream(j))
		down := s.top.Node(res.Flow.Downstream(j))
		if zeta := up.ZetaOutlet + down.ZetaInlet; zeta > 0 {
			res.LocalizedLoss[j] = 8 * zeta * m * m / (rho * math.Pi * math.Pi * math.Pow(dm, 4))
		}
	}
}

// globalLoss aggregates branch losses into the grid-wide loss under the
// configured policy.
func (s *Solver) globalLoss(res *Result) error {
	weights := make([]float64, len(res.MassFlow))
	for j := range weights {
		weights[j] = res.DistributedLoss[j] + res.LocalizedLoss[j]
	}
	dist := shortestLosses(res.Flow, s.top.ProducerIndex(), weights)

	switch s.cfg.policy {
	case CriticalPathPolicy:
		var worst float64
		for _, c := range s.top.ConsumerIndices() {
			if math.IsInf(dist[c], 1) {
				return fmt.Errorf("consumer %q: %w", s.top.Node(c).ID, ErrNoProducerPath)
			}
			if dist[c] > worst {
				worst = dist[c]
			}
		}
		res.GlobalLoss = worst
	}

	return nil
}
