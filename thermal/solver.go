// Package thermal: the per-timestep temperature propagation solver.

package thermal

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/fjernvarme/dhgrid/core"
)

// flowEps is the mass flow below which a pipe counts as still water: it
// carries no heat and contributes to no mixing.
const flowEps = 1e-12

// Solver computes the temperature state of one timestep. It holds only the
// immutable topology and configuration; Solve allocates per-call workspace,
// so a single Solver may serve many goroutines.
type Solver struct {
	top *core.Topology
	cfg Options
}

// Conditions are the boundary temperatures of one timestep.
type Conditions struct {
	// Supply is the producer's supply temperature in °C.
	Supply float64

	// Ambient is the environment temperature in °C that pipes lose heat
	// against.
	Ambient float64

	// Drop maps consumer node IDs to their temperature drop in K (inlet
	// minus return). Consumers absent from the map return water at their
	// inlet temperature.
	Drop map[string]float64
}

// Result is the temperature state of one timestep. Per-node slices follow
// the topology's node (row) order, per-pipe slices its pipe (column) order.
type Result struct {
	// Inlet is the supply-side temperature at each node in °C.
	Inlet []float64

	// Return is the return-side temperature at each node in °C.
	Return []float64

	// Loss is the per-pipe heat loss in W, supply and return legs summed.
	Loss []float64

	// Global is the grid-wide heat loss in W.
	Global float64
}

// New creates a thermal solver for the given validated topology.
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

// Solve computes the temperature state for one timestep.
//
// flow is the direction-corrected view and massFlow the pipe mass-flow
// vector, both produced by the hydraulic solve of the same timestep; only
// flow magnitudes matter here. cond supplies the boundary temperatures.
func (s *Solver) Solve(flow *core.Directed, massFlow []float64, cond Conditions) (*Result, error) {
	if flow == nil {
		return nil, ErrNilFlow
	}
	if len(massFlow) != s.top.PipeCount() {
		return nil, fmt.Errorf("mass-flow length %d, pipes %d: %w",
			len(massFlow), s.top.PipeCount(), ErrDimensionMismatch)
	}
	drops, err := s.consumerDrops(cond.Drop)
	if err != nil {
		return nil, err
	}

	absFlow := make([]float64, len(massFlow))
	decay := make([]float64, len(massFlow))
	for j, m := range massFlow {
		am := math.Abs(m)
		if am < flowEps {
			continue // still pipe: carries nothing
		}
		p := s.top.Pipe(j)
		absFlow[j] = am
		decay[j] = math.Exp(-p.HeatTransferCoefficient * math.Pi * p.DiameterM() * p.Length /
			(s.cfg.heatCapacity * am))
	}

	n := s.top.NodeCount()
	isBound := make([]bool, n)
	bound := make([]float64, n)

	// Inlet pass: the producer holds the only known temperature.
	isBound[s.top.ProducerIndex()] = true
	bound[s.top.ProducerIndex()] = cond.Supply - cond.Ambient
	thetaIn, err := s.propagate(flow, absFlow, decay, isBound, bound, false)
	if err != nil {
		return nil, fmt.Errorf("inlet pass: %w", err)
	}

	// Return pass: every consumer returns at its solved inlet temperature
	// minus its drop, and the flow direction mirrors.
	isBound[s.top.ProducerIndex()] = false
	for _, c := range s.top.ConsumerIndices() {
		isBound[c] = true
		bound[c] = thetaIn[c] - drops[c]
	}
	thetaRet, err := s.propagate(flow, absFlow, decay, isBound, bound, true)
	if err != nil {
		return nil, fmt.Errorf("return pass: %w", err)
	}

	res := &Result{
		Inlet:  make([]float64, n),
		Return: make([]float64, n),
		Loss:   make([]float64, s.top.PipeCount()),
	}
	for i := 0; i < n; i++ {
		res.Inlet[i] = cond.Ambient + thetaIn[i]
		res.Return[i] = cond.Ambient + thetaRet[i]
	}
	for j := range res.Loss {
		if absFlow[j] < flowEps {
			continue
		}
		u, v := flow.Upstream(j), flow.Downstream(j)
		dIn := math.Abs(thetaIn[u] - thetaIn[v])
		dRet := math.Abs(thetaRet[u] - thetaRet[v])
		res.Loss[j] = s.cfg.heatCapacity * absFlow[j] * (dIn + dRet)
		res.Global += res.Loss[j]
	}

	return res, nil
}

// consumerDrops validates the drop map and spreads it over node indices.
// Consumers without an entry keep a zero drop.
func (s *Solver) consumerDrops(drop map[string]float64) ([]float64, error) {
	d := make([]float64, s.top.NodeCount())
	for id, dt := range drop {
		i, ok := s.top.Index(id)
		if !ok {
			return nil, fmt.Errorf("node %q: %w", id, ErrUnknownNode)
		}
		if s.top.Node(i).Role != core.RoleConsumer {
			return nil, fmt.Errorf("node %q (%s): %w", id, s.top.Node(i).Role, ErrNotConsumer)
		}
		d[i] = dt
	}

	return d, nil
}

// propagate solves one pass of (I − M)·θ = b over the excess temperatures.
//
// Boundary rows are the identity with the known θ on the right-hand side.
// Every other node averages the nodes feeding it, each contribution weighted
// by pipe mass flow and attenuated by the pipe's decay factor. reverse flips
// the propagation against the corrected flow direction for the return pass.
func (s *Solver) propagate(flow *core.Directed, absFlow, decay []float64,
	isBound []bool, bound []float64, reverse bool) ([]float64, error) {

	n := s.top.NodeCount()
	a := mat.NewDense(n, n, nil)
	b := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		a.Set(i, i, 1)
		if isBound[i] {
			b.SetVec(i, bound[i])
			continue
		}

		feeds := flow.Incoming(i)
		if reverse {
			feeds = flow.Outgoing(i)
		}
		var total float64
		for _, j := range feeds {
			total += absFlow[j]
		}
		if total < flowEps {
			return nil, fmt.Errorf("node %q: %w", s.top.Node(i).ID, ErrNoBoundaryPath)
		}
		for _, j := range feeds {
			if absFlow[j] < flowEps {
				continue
			}
			u := flow.Upstream(j)
			if reverse {
				u = flow.Downstream(j)
			}
			a.Set(i, u, a.At(i, u)-absFlow[j]*decay[j]/total)
		}
	}

	var x mat.VecDense
	if err := x.SolveVec(a, b); err != nil {
		// A reported condition number still carries a valid solution; the
		// residual check below is the arbiter. Anything else is fatal.
		var cond mat.Condition
		if !errors.As(err, &cond) {
			return nil, fmt.Errorf("thermal: propagation solve: %w", err)
		}
	}

	var r mat.VecDense
	r.MulVec(a, &x)
	r.SubVec(&r, b)
	if resid := mat.Norm(&r, math.Inf(1)); resid > s.cfg.tolerance {
		return nil, fmt.Errorf("residual %.3e > %.3e: %w", resid, s.cfg.tolerance, ErrResidual)
	}

	theta := make([]float64, n)
	for i := range theta {
		theta[i] = x.AtVec(i)
	}

	return theta, nil
}
