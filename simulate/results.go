// Package simulate: result table assembly.

package simulate

import (
	"sort"
	"strconv"

	"github.com/fjernvarme/dhgrid/core"
)

// Table keys of a completed run.
const (
	TableMassFlow      = "pipes-mass_flow"
	TableDistLosses    = "pipes-dist_pressure_losses"
	TableLocLosses     = "pipes-loc_pressure_losses"
	TableGlobalLosses  = "global-pressure_losses"
	TablePumpPower     = "producers-pump_power"
	TableTempInlet     = "nodes-temp_inlet"
	TableTempReturn    = "nodes-temp_return"
	TableHeatLosses    = "pipes-heat_losses"
	TableGlobalHeat    = "global-heat_losses"
)

// Table is one time-indexed result quantity: Rows[t][c] holds timestep t of
// the series named Columns[c].
type Table struct {
	Columns []string
	Rows    [][]float64
}

// Results holds every table of a completed run.
type Results struct {
	// Steps is the number of solved timesteps (rows in every table).
	Steps int

	tables map[string]*Table
}

// Table returns the named table, or false for a key this run never
// produced.
func (r *Results) Table(key string) (*Table, bool) {
	t, ok := r.tables[key]

	return t, ok
}

// Keys returns the table keys, sorted.
func (r *Results) Keys() []string {
	keys := make([]string, 0, len(r.tables))
	for k := range r.tables {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}

// newResults preallocates every table so concurrent timesteps can write
// their rows without coordination.
func newResults(top *core.Topology, steps int) *Results {
	pipeCols := make([]string, top.PipeCount())
	for j, p := range top.Pipes() {
		pipeCols[j] = pipeName(p)
	}
	nodeCols := make([]string, top.NodeCount())
	for i, n := range top.Nodes() {
		nodeCols[i] = n.ID
	}

	r := &Results{Steps: steps, tables: make(map[string]*Table, 9)}
	for _, key := range []string{TableMassFlow, TableDistLosses, TableLocLosses, TableHeatLosses} {
		r.tables[key] = newTable(pipeCols, steps)
	}
	for _, key := range []string{TableTempInlet, TableTempReturn} {
		r.tables[key] = newTable(nodeCols, steps)
	}
	r.tables[TableGlobalLosses] = newTable([]string{"global"}, steps)
	r.tables[TableGlobalHeat] = newTable([]string{"global"}, steps)
	r.tables[TablePumpPower] = newTable([]string{top.Producer().ID}, steps)

	return r
}

func newTable(cols []string, steps int) *Table {
	rows := make([][]float64, steps)
	for t := range rows {
		rows[t] = make([]float64, len(cols))
	}

	return &Table{Columns: cols, Rows: rows}
}

// pipeName labels a pipe column; the parallel-edge key only shows when set.
func pipeName(p *core.Pipe) string {
	name := p.From + "-" + p.To
	if p.Key != 0 {
		name += "-" + strconv.Itoa(p.Key)
	}

	return name
}
