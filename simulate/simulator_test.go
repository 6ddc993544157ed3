package simulate_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fjernvarme/dhgrid/core"
	"github.com/fjernvarme/dhgrid/simulate"
	"github.com/fjernvarme/dhgrid/thermal"
)

// grid builds the three-branch reference network: one producer feeding two
// consumers over a fork.
func grid(t *testing.T) *core.Network {
	t.Helper()
	net := core.NewNetwork()
	require.NoError(t, net.AddNode(core.Node{ID: "P", Role: core.RoleProducer}))
	require.NoError(t, net.AddNode(core.Node{ID: "F", Role: core.RoleFork}))
	require.NoError(t, net.AddNode(core.Node{ID: "C1", Role: core.RoleConsumer}))
	require.NoError(t, net.AddNode(core.Node{ID: "C2", Role: core.RoleConsumer}))
	require.NoError(t, net.AddPipe(core.Pipe{
		From: "P", To: "F", Length: 50, Diameter: 150, HeatTransferCoefficient: 10,
	}))
	require.NoError(t, net.AddPipe(core.Pipe{
		From: "F", To: "C1", Length: 30, Diameter: 150, HeatTransferCoefficient: 10,
	}))
	require.NoError(t, net.AddPipe(core.Pipe{
		From: "F", To: "C2", Length: 30, Diameter: 150, HeatTransferCoefficient: 10,
	}))

	return net
}

// steady repeats one operating point over the given number of steps.
func steady(steps int) simulate.Inputs {
	rep := func(v float64) []float64 {
		s := make([]float64, steps)
		for i := range s {
			s[i] = v
		}

		return s
	}

	return simulate.Inputs{
		MassFlow:        map[string][]float64{"C1": rep(1.0), "C2": rep(1.5)},
		TemperatureDrop: map[string][]float64{"C1": rep(30), "C2": rep(30)},
		SupplyTemp:      rep(90),
		AmbientTemp:     rep(10),
	}
}

func TestEndToEnd(t *testing.T) {
	sim, err := simulate.New(grid(t))
	require.NoError(t, err)
	require.NoError(t, sim.Prepare(steady(2)))

	res, err := sim.Solve(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, res.Steps)
	require.Equal(t, []string{
		simulate.TableGlobalHeat,
		simulate.TableGlobalLosses,
		simulate.TableTempInlet,
		simulate.TableTempReturn,
		simulate.TableDistLosses,
		simulate.TableHeatLosses,
		simulate.TableLocLosses,
		simulate.TableMassFlow,
		simulate.TablePumpPower,
	}, res.Keys())

	// The trunk carries both consumers; negative means water runs as
	// stored, producer towards fork.
	flows, ok := res.Table(simulate.TableMassFlow)
	require.True(t, ok)
	require.Equal(t, []string{"P-F", "F-C1", "F-C2"}, flows.Columns)
	require.InDelta(t, -2.5, flows.Rows[0][0], 1e-9)
	require.InDelta(t, -1.0, flows.Rows[0][1], 1e-9)
	require.InDelta(t, -1.5, flows.Rows[0][2], 1e-9)

	// Consumers see water cooler than the supply but warmer than the
	// ground.
	inlet, ok := res.Table(simulate.TableTempInlet)
	require.True(t, ok)
	require.Equal(t, []string{"P", "F", "C1", "C2"}, inlet.Columns)
	for _, col := range []int{2, 3} {
		require.Greater(t, inlet.Rows[0][col], 10.0)
		require.Less(t, inlet.Rows[0][col], 90.0)
	}

	heat, ok := res.Table(simulate.TableGlobalHeat)
	require.True(t, ok)
	require.Greater(t, heat.Rows[0][0], 0.0)

	pump, ok := res.Table(simulate.TablePumpPower)
	require.True(t, ok)
	require.Equal(t, []string{"P"}, pump.Columns)
	require.Greater(t, pump.Rows[0][0], 0.0)

	// Identical inputs, identical rows.
	require.Equal(t, flows.Rows[0], flows.Rows[1])
	require.Equal(t, inlet.Rows[0], inlet.Rows[1])
}

func TestSolve_ParallelMatchesSequential(t *testing.T) {
	const steps = 16
	in := steady(steps)
	// Vary the operating point so every step has distinct rows.
	for i := 0; i < steps; i++ {
		in.MassFlow["C1"][i] = 0.5 + 0.1*float64(i)
		in.MassFlow["C2"][i] = 2.0 - 0.05*float64(i)
		in.SupplyTemp[i] = 85 + float64(i%5)
	}

	run := func(workers int) *simulate.Results {
		sim, err := simulate.New(grid(t), simulate.WithWorkers(workers))
		require.NoError(t, err)
		require.NoError(t, sim.Prepare(in))
		res, err := sim.Solve(context.Background())
		require.NoError(t, err)

		return res
	}

	seq, par := run(1), run(4)
	for _, key := range seq.Keys() {
		want, _ := seq.Table(key)
		got, ok := par.Table(key)
		require.True(t, ok, key)
		require.Equal(t, want.Rows, got.Rows, key)
	}
}

func TestPrepare_Guards(t *testing.T) {
	sim, err := simulate.New(grid(t))
	require.NoError(t, err)

	in := steady(2)
	in.SupplyTemp = nil
	require.ErrorIs(t, sim.Prepare(in), simulate.ErrEmptySeries)

	in = steady(2)
	in.AmbientTemp = in.AmbientTemp[:1]
	require.ErrorIs(t, sim.Prepare(in), simulate.ErrSeriesLength)

	in = steady(2)
	in.MassFlow["C1"] = in.MassFlow["C1"][:1]
	require.ErrorIs(t, sim.Prepare(in), simulate.ErrSeriesLength)

	in = steady(2)
	in.MassFlow["nope"] = []float64{1, 1}
	require.ErrorIs(t, sim.Prepare(in), simulate.ErrUnknownNode)

	in = steady(2)
	in.TemperatureDrop["F"] = []float64{30, 30}
	require.ErrorIs(t, sim.Prepare(in), simulate.ErrNotConsumer)
}

func TestSolve_NotPrepared(t *testing.T) {
	sim, err := simulate.New(grid(t))
	require.NoError(t, err)

	_, err = sim.Solve(context.Background())
	require.ErrorIs(t, err, simulate.ErrNotPrepared)

	// A failed Prepare disarms a previously armed simulator.
	require.NoError(t, sim.Prepare(steady(2)))
	in := steady(2)
	in.SupplyTemp = nil
	require.Error(t, sim.Prepare(in))
	_, err = sim.Solve(context.Background())
	require.ErrorIs(t, err, simulate.ErrNotPrepared)
}

func TestNew_TopologyErrors(t *testing.T) {
	net := grid(t)
	// Parallel trunk closes a loop.
	require.NoError(t, net.AddPipe(core.Pipe{
		From: "P", To: "F", Key: 1, Length: 50, Diameter: 150, HeatTransferCoefficient: 10,
	}))

	_, err := simulate.New(net)
	require.ErrorIs(t, err, core.ErrNotATree)
}

func TestSolve_StepErrorCarriesIndex(t *testing.T) {
	sim, err := simulate.New(grid(t))
	require.NoError(t, err)

	// Step 1 starves C2, cutting its branch off from the boundary.
	in := steady(3)
	in.MassFlow["C2"][1] = 0
	require.NoError(t, sim.Prepare(in))

	_, err = sim.Solve(context.Background())
	require.ErrorIs(t, err, thermal.ErrNoBoundaryPath)
	require.ErrorContains(t, err, "timestep 1")
}

func TestSolve_CanceledContext(t *testing.T) {
	sim, err := simulate.New(grid(t))
	require.NoError(t, err)
	require.NoError(t, sim.Prepare(steady(4)))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = sim.Solve(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
