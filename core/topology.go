// Package core: the frozen, validated Topology and its direction views.

package core

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Topology is the validated, immutable view of a Network that the solvers
// consume. It is created once per simulation run; every accessor is safe for
// concurrent use.
//
// Node and pipe indices are stable: nodes keep their insertion order, pipes
// keep theirs. The incidence matrix columns follow the pipe order.
type Topology struct {
	nodes []*Node
	index map[string]int // node ID → row index
	pipes []*Pipe
	tails []int // per pipe: node index of From
	heads []int // per pipe: node index of To

	producer  int
	consumers []int

	inc *mat.Dense // |nodes| × |pipes|, −1 at tail, +1 at head
}

// NewTopology validates net and freezes it into a Topology.
//
// Validation, in order:
//  1. net non-nil (ErrNilNetwork), at least two nodes.
//  2. Tree shape: |pipes| = |nodes|−1 and connected (ErrNotATree).
//  3. Exactly one producer (ErrNoProducer / ErrMultiProducer) and at least
//     one consumer (ErrNoConsumer).
//  4. No node carries a height attribute (ErrHeightUnsupported).
//
// A topology that fails here is a configuration error: nothing downstream
// runs, no timestep is attempted.
func NewTopology(net *Network) (*Topology, error) {
	if net == nil {
		return nil, ErrNilNetwork
	}
	nodes := net.Nodes()
	pipes := net.Pipes()
	n, e := len(nodes), len(pipes)
	if n < 2 {
		return nil, fmt.Errorf("%d node(s): %w", n, ErrNotATree)
	}
	if e != n-1 {
		return nil, fmt.Errorf("%d nodes, %d pipes: %w", n, e, ErrNotATree)
	}

	t := &Topology{
		nodes:    nodes,
		index:    make(map[string]int, n),
		pipes:    pipes,
		tails:    make([]int, e),
		heads:    make([]int, e),
		producer: -1,
	}
	for i, node := range nodes {
		t.index[node.ID] = i
	}
	for j, p := range pipes {
		t.tails[j] = t.index[p.From]
		t.heads[j] = t.index[p.To]
	}

	if !t.connected() {
		return nil, fmt.Errorf("disconnected network: %w", ErrNotATree)
	}

	for i, node := range nodes {
		switch node.Role {
		case RoleProducer:
			if t.producer >= 0 {
				return nil, fmt.Errorf("nodes %q and %q: %w",
					nodes[t.producer].ID, node.ID, ErrMultiProducer)
			}
			t.producer = i
		case RoleConsumer:
			t.consumers = append(t.consumers, i)
		}
		if node.Height != nil {
			return nil, fmt.Errorf("node %q: %w", node.ID, ErrHeightUnsupported)
		}
	}
	if t.producer < 0 {
		return nil, ErrNoProducer
	}
	if len(t.consumers) == 0 {
		return nil, ErrNoConsumer
	}

	t.inc = mat.NewDense(n, e, nil)
	for j := range pipes {
		t.inc.Set(t.tails[j], j, -1)
		t.inc.Set(t.heads[j], j, +1)
	}

	return t, nil
}

// connected reports whether the undirected view of the graph is connected.
// BFS from node 0 over an adjacency list built once. Time: O(V+E).
func (t *Topology) connected() bool {
	adj := make([][]int, len(t.nodes))
	for j := range t.pipes {
		adj[t.tails[j]] = append(adj[t.tails[j]], t.heads[j])
		adj[t.heads[j]] = append(adj[t.heads[j]], t.tails[j])
	}
	seen := make([]bool, len(t.nodes))
	queue := []int{0}
	seen[0] = true
	count := 1
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		for _, v := range adj[u] {
			if !seen[v] {
				seen[v] = true
				count++
				queue = append(queue, v)
			}
		}
	}

	return count == len(t.nodes)
}

// NodeCount returns the number of nodes (incidence rows).
func (t *Topology) NodeCount() int { return len(t.nodes) }

// PipeCount returns the number of pipes (incidence columns).
func (t *Topology) PipeCount() int { return len(t.pipes) }

// Node returns the node at row index i. Panics on out-of-range access, as
// index handling is the caller's invariant.
func (t *Topology) Node(i int) *Node { return t.nodes[i] }

// Pipe returns the pipe at column index j.
func (t *Topology) Pipe(j int) *Pipe { return t.pipes[j] }

// Nodes returns the nodes in row order. The slice is shared; read-only.
func (t *Topology) Nodes() []*Node { return t.nodes }

// Pipes returns the pipes in column order. The slice is shared; read-only.
func (t *Topology) Pipes() []*Pipe { return t.pipes }

// Index returns the row index of the node with the given ID.
func (t *Topology) Index(id string) (int, bool) {
	i, ok := t.index[id]

	return i, ok
}

// Producer returns the unique producer node.
func (t *Topology) Producer() *Node { return t.nodes[t.producer] }

// ProducerIndex returns the producer's row index.
func (t *Topology) ProducerIndex() int { return t.producer }

// ConsumerIndices returns the row indices of all consumer nodes, in node
// order. The slice is shared; read-only.
func (t *Topology) ConsumerIndices() []int { return t.consumers }

// Incidence returns the signed incidence matrix: −1 where the pipe leaves
// the node, +1 where it enters. The matrix is shared and must not be
// mutated.
func (t *Topology) Incidence() *mat.Dense { return t.inc }

// PipeEndpoints returns the stored tail and head node IDs of the pipe at
// column j; it maps a pipe-indexed vector entry back onto the topology.
// Returns ErrPipeIndex if j is out of range.
func (t *Topology) PipeEndpoints(j int) (from, to string, err error) {
	if j < 0 || j >= len(t.pipes) {
		return "", "", ErrPipeIndex
	}

	return t.pipes[j].From, t.pipes[j].To, nil
}

// OrientByFlow builds a direction-corrected view of the grid: every pipe
// whose entry in signs is negative is reversed, pipes with a zero or
// positive entry keep their stored direction. The supplied vector is read
// once and not retained.
//
// Returns ErrDimensionMismatch if signs is not pipe-indexed.
func (t *Topology) OrientByFlow(signs []float64) (*Directed, error) {
	if len(signs) != len(t.pipes) {
		return nil, fmt.Errorf("signs length %d, pipes %d: %w",
			len(signs), len(t.pipes), ErrDimensionMismatch)
	}
	d := &Directed{
		top:      t,
		from:     make([]int, len(t.pipes)),
		to:       make([]int, len(t.pipes)),
		reversed: make([]bool, len(t.pipes)),
		out:      make([][]int, len(t.nodes)),
		in:       make([][]int, len(t.nodes)),
	}
	for j := range t.pipes {
		u, v := t.tails[j], t.heads[j]
		if signs[j] < 0 {
			u, v = v, u
			d.reversed[j] = true
		}
		d.from[j], d.to[j] = u, v
		d.out[u] = append(d.out[u], j)
		d.in[v] = append(d.in[v], j)
	}

	return d, nil
}

// Directed is a direction-corrected, read-only view of a Topology produced
// by OrientByFlow. Its edges point the way water actually moves, so path
// queries from the producer and temperature propagation can follow flow.
type Directed struct {
	top      *Topology
	from, to []int
	reversed []bool
	out, in  [][]int
}

// Topology returns the underlying topology.
func (d *Directed) Topology() *Topology { return d.top }

// Upstream returns the node index water enters pipe j from.
func (d *Directed) Upstream(j int) int { return d.from[j] }

// Downstream returns the node index water leaves pipe j into.
func (d *Directed) Downstream(j int) int { return d.to[j] }

// Reversed reports whether pipe j runs against its stored direction.
func (d *Directed) Reversed(j int) bool { return d.reversed[j] }

// Outgoing returns the pipe indices carrying water away from node i.
// The slice is shared; read-only.
func (d *Directed) Outgoing(i int) []int { return d.out[i] }

// Incoming returns the pipe indices carrying water into node i.
// The slice is shared; read-only.
func (d *Directed) Incoming(i int) []int { return d.in[i] }
