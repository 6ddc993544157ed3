// Package simulate: the timestep orchestrator.

package simulate

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/fjernvarme/dhgrid/core"
	"github.com/fjernvarme/dhgrid/hydraulics"
	"github.com/fjernvarme/dhgrid/thermal"
)

// Inputs are the time series of one run. All series must cover the same
// number of timesteps; SupplyTemp and AmbientTemp are required, the
// per-consumer maps may omit consumers (they then draw nothing and drop
// nothing).
type Inputs struct {
	// MassFlow maps consumer node IDs to their draw series in kg/s
	// (positive quantities).
	MassFlow map[string][]float64

	// TemperatureDrop maps consumer node IDs to their temperature-drop
	// series in K.
	TemperatureDrop map[string][]float64

	// SupplyTemp is the producer's supply temperature series in °C.
	SupplyTemp []float64

	// AmbientTemp is the environment temperature series in °C.
	AmbientTemp []float64
}

// Simulator runs a validated grid through its timesteps. Create with New,
// feed with Prepare, run with Solve; a Simulator may be re-Prepared and
// re-run, but not concurrently with itself.
type Simulator struct {
	top *core.Topology
	cfg Options

	hyd *hydraulics.Solver
	thm *thermal.Solver

	in    Inputs
	steps int
	ready bool
}

// New validates net and builds the per-step solvers. Topology errors (not a
// tree, producer count, height attributes) surface unchanged from package
// core.
func New(net *core.Network, opts ...Option) (*Simulator, error) {
	top, err := core.NewTopology(net)
	if err != nil {
		return nil, err
	}
	cfg := defaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	hyd, err := hydraulics.New(top, cfg.hydraulic...)
	if err != nil {
		return nil, err
	}
	thm, err := thermal.New(top, cfg.thermal...)
	if err != nil {
		return nil, err
	}

	return &Simulator{top: top, cfg: cfg, hyd: hyd, thm: thm}, nil
}

// Topology returns the validated topology the run operates on.
func (s *Simulator) Topology() *core.Topology { return s.top }

// Prepare validates the input series and arms the simulator. It fails on a
// missing or empty required series, on series of unequal length, and on
// map keys that do not name consumer nodes.
func (s *Simulator) Prepare(in Inputs) error {
	s.ready = false
	steps := len(in.SupplyTemp)
	if steps == 0 || len(in.AmbientTemp) == 0 {
		return ErrEmptySeries
	}
	if len(in.AmbientTemp) != steps {
		return fmt.Errorf("supply %d steps, ambient %d: %w",
			steps, len(in.AmbientTemp), ErrSeriesLength)
	}
	if err := s.checkConsumerSeries("mass flow", in.MassFlow, steps); err != nil {
		return err
	}
	if err := s.checkConsumerSeries("temperature drop", in.TemperatureDrop, steps); err != nil {
		return err
	}

	s.in = in
	s.steps = steps
	s.ready = true

	return nil
}

func (s *Simulator) checkConsumerSeries(kind string, series map[string][]float64, steps int) error {
	for id, vals := range series {
		i, ok := s.top.Index(id)
		if !ok {
			return fmt.Errorf("%s for node %q: %w", kind, id, ErrUnknownNode)
		}
		if s.top.Node(i).Role != core.RoleConsumer {
			return fmt.Errorf("%s for node %q (%s): %w", kind, id, s.top.Node(i).Role, ErrNotConsumer)
		}
		if len(vals) != steps {
			return fmt.Errorf("%s for node %q: %d steps, want %d: %w",
				kind, id, len(vals), steps, ErrSeriesLength)
		}
	}

	return nil
}

// Solve runs every prepared timestep and assembles the result tables.
//
// The timesteps are independent; with the default single worker they run
// in order, under WithWorkers(n) up to n run concurrently, each writing
// its own preallocated table rows. The first failing step cancels the
// rest and Solve returns its error, wrapped with the step index; no
// partial results are returned.
func (s *Simulator) Solve(ctx context.Context) (*Results, error) {
	if !s.ready {
		return nil, ErrNotPrepared
	}
	res := newResults(s.top, s.steps)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.workers)
	for t := 0; t < s.steps; t++ {
		if gctx.Err() != nil {
			break // a step already failed or the caller gave up
		}
		t := t
		g.Go(func() error {
			if err := s.step(t, res); err != nil {
				return fmt.Errorf("timestep %d: %w", t, err)
			}

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return res, nil
}

// step solves one timestep and writes its rows.
func (s *Simulator) step(t int, res *Results) error {
	draws := make(map[string]float64, len(s.in.MassFlow))
	for id, series := range s.in.MassFlow {
		draws[id] = series[t]
	}
	hres, err := s.hyd.Solve(draws)
	if err != nil {
		return err
	}

	drops := make(map[string]float64, len(s.in.TemperatureDrop))
	for id, series := range s.in.TemperatureDrop {
		drops[id] = series[t]
	}
	tres, err := s.thm.Solve(hres.Flow, hres.MassFlow, thermal.Conditions{
		Supply:  s.in.SupplyTemp[t],
		Ambient: s.in.AmbientTemp[t],
		Drop:    drops,
	})
	if err != nil {
		return err
	}

	copy(res.tables[TableMassFlow].Rows[t], hres.MassFlow)
	copy(res.tables[TableDistLosses].Rows[t], hres.DistributedLoss)
	copy(res.tables[TableLocLosses].Rows[t], hres.LocalizedLoss)
	copy(res.tables[TableHeatLosses].Rows[t], tres.Loss)
	copy(res.tables[TableTempInlet].Rows[t], tres.Inlet)
	copy(res.tables[TableTempReturn].Rows[t], tres.Return)
	res.tables[TableGlobalLosses].Rows[t][0] = hres.GlobalLoss
	res.tables[TablePumpPower].Rows[t][0] = hres.PumpPower
	res.tables[TableGlobalHeat].Rows[t][0] = tres.Global

	return nil
}
