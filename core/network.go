// Package core: the Network container.
// Network is the mutable construction stage; validation and the frozen,
// solver-facing view happen in NewTopology.

package core

import "fmt"

// Network is a directed multigraph of nodes and pipes under construction.
//
// It performs local validation only (IDs, endpoint existence, physical pipe
// attributes). Global structure — tree shape, role counts — is checked once
// by NewTopology. Network is not safe for concurrent mutation; freeze it via
// NewTopology before sharing.
type Network struct {
	nodes map[string]*Node
	order []string // node IDs in insertion order
	pipes []*Pipe
}

// NewNetwork creates an empty Network.
func NewNetwork() *Network {
	return &Network{nodes: make(map[string]*Node)}
}

// AddNode adds a node to the network.
// Returns ErrEmptyNodeID, ErrUnknownRole, or ErrDuplicateNode.
func (n *Network) AddNode(node Node) error {
	if node.ID == "" {
		return ErrEmptyNodeID
	}
	if !node.Role.valid() {
		return fmt.Errorf("node %q: %w", node.ID, ErrUnknownRole)
	}
	if _, exists := n.nodes[node.ID]; exists {
		return fmt.Errorf("node %q: %w", node.ID, ErrDuplicateNode)
	}
	clone := node
	n.nodes[node.ID] = &clone
	n.order = append(n.order, node.ID)

	return nil
}

// AddPipe adds a pipe between two existing nodes.
// Returns ErrNodeNotFound for a missing endpoint, ErrDuplicatePipe for a
// repeated (from, to, key) identity, and ErrPipeAttribute when length or
// diameter is not strictly positive or the U-value is negative.
func (n *Network) AddPipe(pipe Pipe) error {
	if _, ok := n.nodes[pipe.From]; !ok {
		return fmt.Errorf("pipe tail %q: %w", pipe.From, ErrNodeNotFound)
	}
	if _, ok := n.nodes[pipe.To]; !ok {
		return fmt.Errorf("pipe head %q: %w", pipe.To, ErrNodeNotFound)
	}
	if pipe.Length <= 0 {
		return fmt.Errorf("pipe %s→%s: length %v m: %w", pipe.From, pipe.To, pipe.Length, ErrPipeAttribute)
	}
	if pipe.Diameter <= 0 {
		return fmt.Errorf("pipe %s→%s: diameter %v mm: %w", pipe.From, pipe.To, pipe.Diameter, ErrPipeAttribute)
	}
	if pipe.HeatTransferCoefficient < 0 {
		return fmt.Errorf("pipe %s→%s: U-value %v W/(m·K): %w",
			pipe.From, pipe.To, pipe.HeatTransferCoefficient, ErrPipeAttribute)
	}
	for _, p := range n.pipes {
		if p.From == pipe.From && p.To == pipe.To && p.Key == pipe.Key {
			return fmt.Errorf("pipe %s→%s key %d: %w", pipe.From, pipe.To, pipe.Key, ErrDuplicatePipe)
		}
	}
	clone := pipe
	n.pipes = append(n.pipes, &clone)

	return nil
}

// Node returns the node with the given ID, or false if absent.
// The returned pointer is shared; treat it as read-only.
func (n *Network) Node(id string) (*Node, bool) {
	node, ok := n.nodes[id]

	return node, ok
}

// Nodes returns all nodes in insertion order.
func (n *Network) Nodes() []*Node {
	out := make([]*Node, 0, len(n.order))
	for _, id := range n.order {
		out = append(out, n.nodes[id])
	}

	return out
}

// Pipes returns all pipes in insertion order.
func (n *Network) Pipes() []*Pipe {
	out := make([]*Pipe, len(n.pipes))
	copy(out, n.pipes)

	return out
}

// NodesByRole returns the nodes with the given role, in insertion order.
func (n *Network) NodesByRole(r Role) []*Node {
	var out []*Node
	for _, id := range n.order {
		if n.nodes[id].Role == r {
			out = append(out, n.nodes[id])
		}
	}

	return out
}

// NodeCount returns the number of nodes.
func (n *Network) NodeCount() int { return len(n.order) }

// PipeCount returns the number of pipes.
func (n *Network) PipeCount() int { return len(n.pipes) }
