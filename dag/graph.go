// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package dag

import (
	"fmt"
	"maps"
)

// Graph is a task modeled as a directed acyclic graph of nodes. Graphs are
// single-threaded values; analysis methods may temporarily extend the graph
// with dummy nodes but always restore it before returning.
type Graph struct {
	nodes []*Node
	edges []Edge
	out   [][]int
	in    [][]int
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{}
}

// AddNode appends a node with a copy of the given parameters and returns its
// id.
func (g *Graph) AddNode(params map[string]int) NodeID {
	id := NodeID(len(g.nodes))
	g.nodes = append(g.nodes, &Node{ID: id, params: maps.Clone(params)})
	if g.nodes[id].params == nil {
		g.nodes[id].params = make(map[string]int)
	}
	g.out = append(g.out, nil)
	g.in = append(g.in, nil)
	return id
}

// AddNodeWithID adds a node under an explicit id. Ids must be added densely
// in ascending order so that each id equals its index.
func (g *Graph) AddNodeWithID(id NodeID, params map[string]int) error {
	switch {
	case id < 0:
		return fmt.Errorf("node id %d: %w", id, ErrUnknownNode)
	case int(id) < len(g.nodes):
		return fmt.Errorf("node id %d: %w", id, ErrDuplicateNode)
	case int(id) > len(g.nodes):
		return fmt.Errorf("node id %d out of sequence, expected %d", id, len(g.nodes))
	}
	g.AddNode(params)
	return nil
}

// AddEdge adds a directed edge. Adding an edge to or from a missing node
// panics.
func (g *Graph) AddEdge(from, to NodeID, weight int) {
	g.mustHave(from)
	g.mustHave(to)
	idx := len(g.edges)
	g.edges = append(g.edges, Edge{From: from, To: to, Weight: weight})
	g.out[from] = append(g.out[from], idx)
	g.in[to] = append(g.in[to], idx)
}

// SetParam sets a parameter on an existing node. It is meant for
// construction and for applying analysis results such as priorities; the
// schedulers never call it on a caller's graph.
func (g *Graph) SetParam(id NodeID, key string, value int) {
	g.mustHave(id)
	g.nodes[id].params[key] = value
}

// ApplyParams sets key on every node in values.
func (g *Graph) ApplyParams(key string, values map[NodeID]int) {
	for id, v := range values {
		g.SetParam(id, key, v)
	}
}

func (g *Graph) NumNodes() int {
	return len(g.nodes)
}

func (g *Graph) NumEdges() int {
	return len(g.edges)
}

// Node returns the node with the given id, panicking if there is none.
func (g *Graph) Node(id NodeID) *Node {
	g.mustHave(id)
	return g.nodes[id]
}

// Nodes returns the graph's nodes in id order.
func (g *Graph) Nodes() []*Node {
	nodes := make([]*Node, len(g.nodes))
	copy(nodes, g.nodes)
	return nodes
}

// Edges returns the graph's edges in insertion order.
func (g *Graph) Edges() []Edge {
	edges := make([]Edge, len(g.edges))
	copy(edges, g.edges)
	return edges
}

// Clone returns a deep copy of the graph.
func (g *Graph) Clone() *Graph {
	c := &Graph{
		nodes: make([]*Node, len(g.nodes)),
		edges: make([]Edge, len(g.edges)),
		out:   make([][]int, len(g.out)),
		in:    make([][]int, len(g.in)),
	}
	for i, n := range g.nodes {
		c.nodes[i] = n.clone()
	}
	copy(c.edges, g.edges)
	for i := range g.out {
		c.out[i] = append([]int(nil), g.out[i]...)
		c.in[i] = append([]int(nil), g.in[i]...)
	}
	return c
}

func (g *Graph) has(id NodeID) bool {
	return id >= 0 && int(id) < len(g.nodes)
}

func (g *Graph) mustHave(id NodeID) {
	if !g.has(id) {
		panic(fmt.Sprintf("node %d does not exist", id))
	}
}

// removeNode deletes a node and its edges. Nodes with higher ids are
// renumbered down by one; only dummy nodes ever follow the real ones, so real
// node ids are never disturbed.
func (g *Graph) removeNode(id NodeID) {
	g.nodes = append(g.nodes[:id], g.nodes[id+1:]...)
	for i := int(id); i < len(g.nodes); i++ {
		g.nodes[i].ID = NodeID(i)
	}
	renumber := func(n NodeID) NodeID {
		if n > id {
			return n - 1
		}
		return n
	}
	edges := g.edges[:0]
	for _, e := range g.edges {
		if e.From == id || e.To == id {
			continue
		}
		edges = append(edges, Edge{From: renumber(e.From), To: renumber(e.To), Weight: e.Weight})
	}
	g.edges = edges
	g.out = make([][]int, len(g.nodes))
	g.in = make([][]int, len(g.nodes))
	for i, e := range g.edges {
		g.out[e.From] = append(g.out[e.From], i)
		g.in[e.To] = append(g.in[e.To], i)
	}
}

func (g *Graph) Format(f fmt.State, verb rune) {
	if !f.Flag('+') {
		fmt.Fprintf(f, "DAG(%d nodes, %d edges)", len(g.nodes), len(g.edges))
		return
	}
	fmt.Fprint(f, "DAG{")
	for i, n := range g.nodes {
		if i > 0 {
			fmt.Fprint(f, " ")
		}
		fmt.Fprintf(f, "%+v", n)
	}
	for _, e := range g.edges {
		fmt.Fprintf(f, " n%d->n%d", e.From, e.To)
	}
	fmt.Fprint(f, "}")
}
