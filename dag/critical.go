// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package dag

import (
	"fmt"
	"slices"

	"github.com/gammazero/deque"
)

// TopologicalOrder returns the nodes in an order where every edge points
// forward. Initial sources are taken in id order and newly freed nodes in
// edge insertion order, so the result is deterministic. It returns ErrCycle
// if no such order exists.
func (g *Graph) TopologicalOrder() ([]NodeID, error) {
	remaining := make([]int, len(g.nodes))
	var q deque.Deque[NodeID]
	for i := range g.nodes {
		remaining[i] = len(g.in[i])
		if remaining[i] == 0 {
			q.PushBack(NodeID(i))
		}
	}
	order := make([]NodeID, 0, len(g.nodes))
	for q.Len() > 0 {
		id := q.PopFront()
		order = append(order, id)
		for _, e := range g.out[id] {
			to := g.edges[e].To
			remaining[to]--
			if remaining[to] == 0 {
				q.PushBack(to)
			}
		}
	}
	if len(order) != len(g.nodes) {
		return nil, ErrCycle
	}
	return order, nil
}

func (g *Graph) mustTopologicalOrder() []NodeID {
	order, err := g.TopologicalOrder()
	if err != nil {
		panic(err.Error())
	}
	return order
}

// Validate checks that the graph is acyclic and that every node has an
// execution time.
func (g *Graph) Validate() error {
	if _, err := g.TopologicalOrder(); err != nil {
		return err
	}
	for _, n := range g.nodes {
		et, ok := n.Param(ExecutionTime)
		if !ok {
			return fmt.Errorf("node %d: %w", n.ID, ErrMissingExecutionTime)
		}
		if et < 0 {
			return fmt.Errorf("node %d has negative execution_time %d", n.ID, et)
		}
	}
	return nil
}

// EarliestStartTimes returns, indexed by node id, the earliest time each node
// can start given unlimited cores. It panics if the graph has a cycle.
func (g *Graph) EarliestStartTimes() []int {
	est := make([]int, len(g.nodes))
	for _, id := range g.mustTopologicalOrder() {
		for _, e := range g.in[id] {
			from := g.edges[e].From
			est[id] = max(est[id], est[from]+g.nodes[from].ExecutionTime())
		}
		if est[id] < 0 {
			panic(fmt.Sprintf("negative earliest start time %d for node %d", est[id], id))
		}
	}
	return est
}

// LatestStartTimes returns, indexed by node id, the latest time each node can
// start without delaying the end of the graph. Sinks are anchored so that
// they finish at the graph's makespan; with a single sink this is the sink's
// earliest start time.
func (g *Graph) LatestStartTimes() []int {
	return g.latestStartTimes(g.EarliestStartTimes())
}

func (g *Graph) latestStartTimes(est []int) []int {
	order := g.mustTopologicalOrder()
	horizon := 0
	for _, id := range g.SinkNodes() {
		horizon = max(horizon, est[id]+g.nodes[id].ExecutionTime())
	}
	lst := make([]int, len(g.nodes))
	for _, id := range slices.Backward(order) {
		et := g.nodes[id].ExecutionTime()
		if len(g.out[id]) == 0 {
			lst[id] = horizon - et
			continue
		}
		first := true
		for _, e := range g.out[id] {
			v := lst[g.edges[e].To] - et
			if first || v < lst[id] {
				lst[id] = v
				first = false
			}
		}
	}
	return lst
}

// LatestFinishTimes returns, indexed by node id, each node's latest start
// time plus its execution time.
func (g *Graph) LatestFinishTimes() []int {
	lft := g.LatestStartTimes()
	for i, n := range g.nodes {
		lft[i] += n.ExecutionTime()
	}
	return lft
}

type partialPath struct {
	last NodeID
	path []NodeID
}

// CriticalPaths returns every longest path from a source to a sink. Paths
// are enumerated breadth first following edge insertion order, so the result
// is deterministic.
func (g *Graph) CriticalPaths() [][]NodeID {
	sink := g.AddDummySink()
	source := g.AddDummySource()
	defer func() {
		g.RemoveDummySource()
		g.RemoveDummySink()
	}()

	est := g.EarliestStartTimes()
	lst := g.latestStartTimes(est)

	var paths [][]NodeID
	var q deque.Deque[partialPath]
	q.PushBack(partialPath{last: source, path: []NodeID{source}})
	for q.Len() > 0 {
		p := q.PopFront()
		if p.last == sink {
			paths = append(paths, p.path[1:len(p.path)-1])
			continue
		}
		for _, e := range g.out[p.last] {
			to := g.edges[e].To
			// A transitive edge between two zero-slack nodes is not tight.
			if est[to] != lst[to] || est[to] != est[p.last]+g.nodes[p.last].ExecutionTime() {
				continue
			}
			path := make([]NodeID, len(p.path), len(p.path)+1)
			copy(path, p.path)
			q.PushBack(partialPath{last: to, path: append(path, to)})
		}
	}
	return paths
}

// CriticalPath returns the first of the graph's critical paths.
func (g *Graph) CriticalPath() []NodeID {
	paths := g.CriticalPaths()
	if len(paths) == 0 {
		return nil
	}
	return paths[0]
}

// CriticalPathLength returns the summed execution time along a critical
// path.
func (g *Graph) CriticalPathLength() int {
	return g.TotalCost(g.CriticalPath())
}

// NonCriticalNodes returns the nodes not on the first critical path, in id
// order, or nil if every node is on it.
func (g *Graph) NonCriticalNodes() []NodeID {
	onPath := make([]bool, len(g.nodes))
	for _, id := range g.CriticalPath() {
		onPath[id] = true
	}
	var ids []NodeID
	for i, c := range onPath {
		if !c {
			ids = append(ids, NodeID(i))
		}
	}
	return ids
}
