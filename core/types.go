// Package core: node and pipe value types shared by the whole module.
// This file declares Role, Node and Pipe; Network and Topology live in
// network.go and topology.go.

package core

// Role classifies a node's function in the grid. The set is closed: every
// solver switch over Role is exhaustive.
type Role uint8

const (
	// RoleProducer marks the heat source. Exactly one per valid topology;
	// its mass-flow balance entry closes global conservation.
	RoleProducer Role = iota

	// RoleConsumer marks a heat sink drawing mass flow from the grid.
	RoleConsumer

	// RoleFork marks a junction: no injection or draw, flows only split or
	// merge here.
	RoleFork
)

// String returns the lowercase role name, or "unknown" for invalid values.
func (r Role) String() string {
	switch r {
	case RoleProducer:
		return "producer"
	case RoleConsumer:
		return "consumer"
	case RoleFork:
		return "fork"
	default:
		return "unknown"
	}
}

// valid reports whether r is one of the three declared roles.
func (r Role) valid() bool { return r <= RoleFork }

// Node is a junction, source or sink of the grid.
//
// X and Y carry the geographic position for round-tripping; they never enter
// any calculation. ZetaInlet and ZetaOutlet are dimensionless localized-loss
// coefficients of the fittings at this node (valve, tee); zero means no
// fitting and contributes no loss. Height is rejected by NewTopology: the
// hydraulic model carries no hydrostatic term.
type Node struct {
	// ID uniquely identifies the node within its Network.
	ID string

	// Label is a free-form display name; it carries no semantics.
	Label string

	// Role is the node's function: producer, consumer or fork.
	Role Role

	// X, Y is the geographic position. Unused numerically.
	X, Y float64

	// Height is an optional elevation in meters. Unsupported: a non-nil
	// value makes NewTopology fail with ErrHeightUnsupported.
	Height *float64

	// ZetaInlet is the localized-loss coefficient applied to water entering
	// the node. Zero means none.
	ZetaInlet float64

	// ZetaOutlet is the localized-loss coefficient applied to water leaving
	// the node. Zero means none.
	ZetaOutlet float64
}

// Pipe connects two nodes. A pipe lumps the supply and return legs of the
// trench into a single edge; the distributed pressure-loss formula accounts
// for both.
//
// The stored From→To direction defines the positive mass-flow sign
// convention. Key separates parallel pipes between the same pair of nodes
// (a multigraph feature; parallel pipes always fail the tree check, but the
// container itself permits them).
type Pipe struct {
	// From is the tail node ID.
	From string

	// To is the head node ID.
	To string

	// Key distinguishes parallel pipes between the same endpoints.
	Key int

	// Length is the trench length in meters.
	Length float64

	// Diameter is the inner pipe diameter in millimeters.
	Diameter float64

	// HeatTransferCoefficient is the U-value of the trench in W/(m·K),
	// referred to the pipe surface π·D·L.
	HeatTransferCoefficient float64
}

// DiameterM returns the inner diameter converted to meters, the unit every
// correlation works in.
func (p Pipe) DiameterM() float64 { return p.Diameter / 1000.0 }
