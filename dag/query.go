// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package dag

import (
	"fmt"

	"github.com/gammazero/deque"
)

// SourceNodes returns the nodes without incoming edges, in id order.
func (g *Graph) SourceNodes() []NodeID {
	var ids []NodeID
	for i := range g.nodes {
		if len(g.in[i]) == 0 {
			ids = append(ids, NodeID(i))
		}
	}
	return ids
}

// SinkNodes returns the nodes without outgoing edges, in id order.
func (g *Graph) SinkNodes() []NodeID {
	var ids []NodeID
	for i := range g.nodes {
		if len(g.out[i]) == 0 {
			ids = append(ids, NodeID(i))
		}
	}
	return ids
}

// Volume returns the sum of all execution times. It panics if any node lacks
// an execution time.
func (g *Graph) Volume() int {
	sum := 0
	for _, n := range g.nodes {
		sum += n.ExecutionTime()
	}
	return sum
}

// TotalCost returns the sum of execution times over the given nodes.
func (g *Graph) TotalCost(ids []NodeID) int {
	sum := 0
	for _, id := range ids {
		sum += g.Node(id).ExecutionTime()
	}
	return sum
}

// Predecessors returns the direct predecessors of id in edge insertion order,
// or nil if there are none.
func (g *Graph) Predecessors(id NodeID) []NodeID {
	g.mustHave(id)
	var ids []NodeID
	for _, e := range g.in[id] {
		ids = append(ids, g.edges[e].From)
	}
	return ids
}

// Successors returns the direct successors of id in edge insertion order, or
// nil if there are none.
func (g *Graph) Successors(id NodeID) []NodeID {
	g.mustHave(id)
	var ids []NodeID
	for _, e := range g.out[id] {
		ids = append(ids, g.edges[e].To)
	}
	return ids
}

// InDegree returns the number of incoming edges of id.
func (g *Graph) InDegree(id NodeID) int {
	g.mustHave(id)
	return len(g.in[id])
}

// Ancestors returns every node from which id is reachable, in breadth-first
// discovery order, or nil if there are none.
func (g *Graph) Ancestors(id NodeID) []NodeID {
	return g.reachable(id, g.Predecessors)
}

// Descendants returns every node reachable from id, in breadth-first
// discovery order, or nil if there are none.
func (g *Graph) Descendants(id NodeID) []NodeID {
	return g.reachable(id, g.Successors)
}

func (g *Graph) reachable(id NodeID, next func(NodeID) []NodeID) []NodeID {
	g.mustHave(id)
	seen := make([]bool, len(g.nodes))
	seen[id] = true
	var found []NodeID
	var q deque.Deque[NodeID]
	q.PushBack(id)
	for q.Len() > 0 {
		for _, n := range next(q.PopFront()) {
			if !seen[n] {
				seen[n] = true
				found = append(found, n)
				q.PushBack(n)
			}
		}
	}
	return found
}

// ParallelNodes returns the nodes that are neither ancestors nor descendants
// of id, in id order, or nil if there are none.
func (g *Graph) ParallelNodes(id NodeID) []NodeID {
	related := make([]bool, len(g.nodes))
	related[id] = true
	for _, n := range g.Ancestors(id) {
		related[n] = true
	}
	for _, n := range g.Descendants(id) {
		related[n] = true
	}
	var ids []NodeID
	for i, r := range related {
		if !r {
			ids = append(ids, NodeID(i))
		}
	}
	return ids
}

// Period returns the period carried by the graph's head node: the first
// source node that has one.
func (g *Graph) Period() (int, bool) {
	for _, id := range g.SourceNodes() {
		if p, ok := g.nodes[id].Param(Period); ok {
			return p, true
		}
	}
	return 0, false
}

// MustPeriod returns the graph's period, panicking if there is none.
func (g *Graph) MustPeriod() int {
	p, ok := g.Period()
	if !ok {
		panic(ErrMissingPeriod.Error())
	}
	return p
}

// Offset returns the release offset carried by the head node, or 0.
func (g *Graph) Offset() int {
	for _, id := range g.SourceNodes() {
		if o, ok := g.nodes[id].Param(Offset); ok {
			return o
		}
	}
	return 0
}

// EndToEndDeadline returns the first end-to-end deadline found on any node.
func (g *Graph) EndToEndDeadline() (int, bool) {
	for _, n := range g.nodes {
		if d, ok := n.Param(EndToEndDeadline); ok {
			return d, true
		}
	}
	return 0, false
}

// RelativeDeadline returns the explicit end-to-end deadline if present and
// the period otherwise. It panics if the graph has neither.
func (g *Graph) RelativeDeadline() int {
	if d, ok := g.EndToEndDeadline(); ok {
		return d
	}
	if p, ok := g.Period(); ok {
		return p
	}
	panic(fmt.Sprintf("graph has neither %s nor %s", EndToEndDeadline, Period))
}
