// Package hydraulics_test validates the per-timestep flow solver: sign
// conventions, conservation, loss formulas, the critical-path aggregation
// and the input guards.
package hydraulics_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fjernvarme/dhgrid/core"
	"github.com/fjernvarme/dhgrid/hydraulics"
)

// grid builds P ── F ── C1 / C2 with the given branch lengths.
func grid(t *testing.T, trunk, branch1, branch2 float64) *core.Topology {
	t.Helper()
	n := core.NewNetwork()
	require.NoError(t, n.AddNode(core.Node{ID: "P", Role: core.RoleProducer}))
	require.NoError(t, n.AddNode(core.Node{ID: "F", Role: core.RoleFork}))
	require.NoError(t, n.AddNode(core.Node{ID: "C1", Role: core.RoleConsumer}))
	require.NoError(t, n.AddNode(core.Node{ID: "C2", Role: core.RoleConsumer}))
	require.NoError(t, n.AddPipe(core.Pipe{From: "P", To: "F", Length: trunk, Diameter: 150, HeatTransferCoefficient: 10}))
	require.NoError(t, n.AddPipe(core.Pipe{From: "F", To: "C1", Length: branch1, Diameter: 150, HeatTransferCoefficient: 10}))
	require.NoError(t, n.AddPipe(core.Pipe{From: "F", To: "C2", Length: branch2, Diameter: 150, HeatTransferCoefficient: 10}))
	top, err := core.NewTopology(n)
	require.NoError(t, err)

	return top
}

func TestSolve_MassFlowSigns(t *testing.T) {
	s, err := hydraulics.New(grid(t, 50, 30, 30))
	require.NoError(t, err)

	res, err := s.Solve(map[string]float64{"C1": 1.0, "C2": 1.5})
	require.NoError(t, err)

	// Water runs From→To on every pipe, so all solved flows are negative;
	// the trunk carries the full 2.5 kg/s.
	require.InDelta(t, -2.5, res.MassFlow[0], 1e-9)
	require.InDelta(t, -1.0, res.MassFlow[1], 1e-9)
	require.InDelta(t, -1.5, res.MassFlow[2], 1e-9)
	require.InDelta(t, 2.5, res.Production, 1e-12)

	// The corrected view keeps the stored directions.
	for j := 0; j < 3; j++ {
		require.False(t, res.Flow.Reversed(j))
	}
}

func TestSolve_ConservationAtFork(t *testing.T) {
	top := grid(t, 50, 30, 30)
	s, err := hydraulics.New(top)
	require.NoError(t, err)

	res, err := s.Solve(map[string]float64{"C1": 0.7, "C2": 2.2})
	require.NoError(t, err)

	// Signed flows at the fork must cancel exactly: incidence row of F
	// dotted with the flow vector.
	f, _ := top.Index("F")
	inc := top.Incidence()
	var sum float64
	for j := 0; j < top.PipeCount(); j++ {
		sum += inc.At(f, j) * res.MassFlow[j]
	}
	require.InDelta(t, 0, sum, 1e-9)
}

func TestSolve_ReynoldsAndFriction(t *testing.T) {
	s, err := hydraulics.New(grid(t, 50, 30, 30))
	require.NoError(t, err)

	res, err := s.Solve(map[string]float64{"C1": 1.0, "C2": 1.5})
	require.NoError(t, err)

	// Re = 4·|ṁ| / (π·μ·D) with the default viscosity and D = 0.15 m.
	wantRe := 4 * 2.5 / (math.Pi * hydraulics.DefaultViscosity * 0.15)
	require.InDelta(t, wantRe, res.Reynolds[0], wantRe*1e-9)

	wantLam := 0.07 * math.Pow(wantRe, -0.13) * math.Pow(0.15, -0.14)
	require.InDelta(t, wantLam, res.Friction[0], wantLam*1e-9)

	wantDp := 2 * 8 * wantLam * 50 * 2.5 * 2.5 /
		(hydraulics.DefaultDensity * math.Pi * math.Pi * math.Pow(0.15, 5))
	require.InDelta(t, wantDp, res.DistributedLoss[0], wantDp*1e-9)
}

func TestSolve_MonotonicLossGrowth(t *testing.T) {
	draws := map[string]float64{"C1": 1.0, "C2": 1.5}

	short, err := hydraulics.New(grid(t, 50, 30, 30))
	require.NoError(t, err)
	long, err := hydraulics.New(grid(t, 80, 30, 30))
	require.NoError(t, err)

	resShort, err := short.Solve(draws)
	require.NoError(t, err)
	resLong, err := long.Solve(draws)
	require.NoError(t, err)

	// A longer trunk strictly increases its distributed loss and the grid
	// loss; the branches are untouched.
	require.Greater(t, resLong.DistributedLoss[0], resShort.DistributedLoss[0])
	require.Equal(t, resShort.DistributedLoss[1], resLong.DistributedLoss[1])
	require.Greater(t, resLong.GlobalLoss, resShort.GlobalLoss)
}

func TestSolve_SymmetryUnderReversal(t *testing.T) {
	build := func(from, to string) *core.Topology {
		n := core.NewNetwork()
		require.NoError(t, n.AddNode(core.Node{ID: "P", Role: core.RoleProducer}))
		require.NoError(t, n.AddNode(core.Node{ID: "C", Role: core.RoleConsumer}))
		require.NoError(t, n.AddPipe(core.Pipe{From: from, To: to, Length: 40, Diameter: 100, HeatTransferCoefficient: 5}))
		top, err := core.NewTopology(n)
		require.NoError(t, err)

		return top
	}

	fwd, err := hydraulics.New(build("P", "C"))
	require.NoError(t, err)
	rev, err := hydraulics.New(build("C", "P"))
	require.NoError(t, err)

	draws := map[string]float64{"C": 1.2}
	resFwd, err := fwd.Solve(draws)
	require.NoError(t, err)
	resRev, err := rev.Solve(draws)
	require.NoError(t, err)

	// Reversing the stored direction flips the sign and nothing else.
	require.InDelta(t, -resFwd.MassFlow[0], resRev.MassFlow[0], 1e-12)
	require.InDelta(t, resFwd.DistributedLoss[0], resRev.DistributedLoss[0], 1e-12)
	require.InDelta(t, resFwd.GlobalLoss, resRev.GlobalLoss, 1e-12)
	require.InDelta(t, resFwd.PumpPower, resRev.PumpPower, 1e-12)
}

func TestSolve_LocalizedLosses(t *testing.T) {
	n := core.NewNetwork()
	require.NoError(t, n.AddNode(core.Node{ID: "P", Role: core.RoleProducer}))
	require.NoError(t, n.AddNode(core.Node{ID: "F", Role: core.RoleFork, ZetaOutlet: 2.0}))
	require.NoError(t, n.AddNode(core.Node{ID: "C1", Role: core.RoleConsumer, ZetaInlet: 3.3}))
	require.NoError(t, n.AddNode(core.Node{ID: "C2", Role: core.RoleConsumer}))
	require.NoError(t, n.AddPipe(core.Pipe{From: "P", To: "F", Length: 50, Diameter: 150}))
	require.NoError(t, n.AddPipe(core.Pipe{From: "F", To: "C1", Length: 30, Diameter: 150}))
	require.NoError(t, n.AddPipe(core.Pipe{From: "F", To: "C2", Length: 30, Diameter: 150}))
	top, err := core.NewTopology(n)
	require.NoError(t, err)

	s, err := hydraulics.New(top)
	require.NoError(t, err)
	res, err := s.Solve(map[string]float64{"C1": 1.0, "C2": 1.5})
	require.NoError(t, err)

	rho := hydraulics.DefaultDensity
	d4 := math.Pow(0.15, 4)

	// Trunk: no fittings at P or on F's inlet side.
	require.Zero(t, res.LocalizedLoss[0])
	// F→C1 passes the fork's outlet and the consumer's inlet fitting.
	want1 := 8 * (2.0 + 3.3) * 1.0 * 1.0 / (rho * math.Pi * math.Pi * d4)
	require.InDelta(t, want1, res.LocalizedLoss[1], want1*1e-9)
	// F→C2 passes only the fork's outlet fitting.
	want2 := 8 * 2.0 * 1.5 * 1.5 / (rho * math.Pi * math.Pi * d4)
	require.InDelta(t, want2, res.LocalizedLoss[2], want2*1e-9)
}

func TestSolve_CriticalPathAndPumpPower(t *testing.T) {
	s, err := hydraulics.New(grid(t, 50, 30, 60))
	require.NoError(t, err)

	res, err := s.Solve(map[string]float64{"C1": 1.0, "C2": 1.5})
	require.NoError(t, err)

	// The C2 branch is longer and carries more flow: it is the critical
	// path. Grid loss = trunk + worst branch.
	wantGlobal := res.DistributedLoss[0] + res.DistributedLoss[2]
	require.InDelta(t, wantGlobal, res.GlobalLoss, wantGlobal*1e-12)
	require.Greater(t, res.GlobalLoss, res.DistributedLoss[0]+res.DistributedLoss[1])

	wantPump := 2.5 * res.GlobalLoss / (hydraulics.DefaultPumpEfficiency * hydraulics.DefaultDensity)
	require.InDelta(t, wantPump, res.PumpPower, wantPump*1e-12)
	require.Greater(t, res.PumpPower, 0.0)
}

func TestSolve_ZeroDrawConsumer(t *testing.T) {
	s, err := hydraulics.New(grid(t, 50, 30, 30))
	require.NoError(t, err)

	// C2 absent from the draws: its branch stands still, every quantity on
	// it stays zero, and the solve succeeds.
	res, err := s.Solve(map[string]float64{"C1": 1.0})
	require.NoError(t, err)
	require.InDelta(t, -1.0, res.MassFlow[0], 1e-9)
	require.Zero(t, res.Reynolds[2])
	require.Zero(t, res.Friction[2])
	require.Zero(t, res.DistributedLoss[2])
}

func TestSolve_DrawGuards(t *testing.T) {
	s, err := hydraulics.New(grid(t, 50, 30, 30))
	require.NoError(t, err)

	_, err = s.Solve(map[string]float64{"nope": 1.0})
	require.ErrorIs(t, err, hydraulics.ErrUnknownNode)

	_, err = s.Solve(map[string]float64{"F": 1.0})
	require.ErrorIs(t, err, hydraulics.ErrNotConsumer)

	_, err = s.Solve(map[string]float64{"P": 1.0})
	require.ErrorIs(t, err, hydraulics.ErrNotConsumer)
}

func TestNew_NilTopology(t *testing.T) {
	_, err := hydraulics.New(nil)
	require.ErrorIs(t, err, hydraulics.ErrNilTopology)
}
