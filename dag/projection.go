// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package dag

import (
	"github.com/gammazero/deque"
)

// Projection is a view of a subset of a graph's nodes. Nodes keep their ids
// from the underlying graph, and only edges between members are visible.
type Projection struct {
	g       *Graph
	members []bool
	count   int
}

// Project returns a projection over the given nodes.
func (g *Graph) Project(ids []NodeID) *Projection {
	p := &Projection{g: g, members: make([]bool, len(g.nodes))}
	for _, id := range ids {
		g.mustHave(id)
		if !p.members[id] {
			p.members[id] = true
			p.count++
		}
	}
	return p
}

// ProjectAll returns a projection over every node of the graph.
func (g *Graph) ProjectAll() *Projection {
	p := &Projection{g: g, members: make([]bool, len(g.nodes)), count: len(g.nodes)}
	for i := range p.members {
		p.members[i] = true
	}
	return p
}

func (p *Projection) Graph() *Graph {
	return p.g
}

func (p *Projection) Len() int {
	return p.count
}

func (p *Projection) Contains(id NodeID) bool {
	return p.g.has(id) && p.members[id]
}

// Nodes returns the member ids in id order.
func (p *Projection) Nodes() []NodeID {
	ids := make([]NodeID, 0, p.count)
	for i, m := range p.members {
		if m {
			ids = append(ids, NodeID(i))
		}
	}
	return ids
}

// Without returns a new projection with the given nodes removed.
func (p *Projection) Without(ids []NodeID) *Projection {
	q := &Projection{g: p.g, members: make([]bool, len(p.members)), count: p.count}
	copy(q.members, p.members)
	for _, id := range ids {
		if q.Contains(id) {
			q.members[id] = false
			q.count--
		}
	}
	return q
}

func (p *Projection) Successors(id NodeID) []NodeID {
	return p.filter(p.g.Successors(id))
}

func (p *Projection) Predecessors(id NodeID) []NodeID {
	return p.filter(p.g.Predecessors(id))
}

func (p *Projection) filter(ids []NodeID) []NodeID {
	var out []NodeID
	for _, id := range ids {
		if p.members[id] {
			out = append(out, id)
		}
	}
	return out
}

// Sources returns members without member predecessors.
func (p *Projection) Sources() []NodeID {
	var ids []NodeID
	for _, id := range p.Nodes() {
		if len(p.Predecessors(id)) == 0 {
			ids = append(ids, id)
		}
	}
	return ids
}

// Sinks returns members without member successors.
func (p *Projection) Sinks() []NodeID {
	var ids []NodeID
	for _, id := range p.Nodes() {
		if len(p.Successors(id)) == 0 {
			ids = append(ids, id)
		}
	}
	return ids
}

func (p *Projection) Volume() int {
	return p.g.TotalCost(p.Nodes())
}

// Components splits the projection into weakly connected components, ordered
// by their lowest member id.
func (p *Projection) Components() []*Projection {
	seen := make([]bool, len(p.members))
	var comps []*Projection
	for _, start := range p.Nodes() {
		if seen[start] {
			continue
		}
		seen[start] = true
		ids := []NodeID{start}
		var q deque.Deque[NodeID]
		q.PushBack(start)
		for q.Len() > 0 {
			id := q.PopFront()
			for _, n := range append(p.Predecessors(id), p.Successors(id)...) {
				if !seen[n] {
					seen[n] = true
					ids = append(ids, n)
					q.PushBack(n)
				}
			}
		}
		comps = append(comps, p.g.Project(ids))
	}
	return comps
}

// CriticalPath returns a longest path through the members by summed
// execution time. Ties go to the lowest sink id and, walking back, to the
// first predecessor in edge order.
func (p *Projection) CriticalPath() []NodeID {
	if p.count == 0 {
		return nil
	}
	finish := make([]int, len(p.members))
	for _, id := range p.g.mustTopologicalOrder() {
		if !p.members[id] {
			continue
		}
		start := 0
		for _, pred := range p.Predecessors(id) {
			start = max(start, finish[pred])
		}
		finish[id] = start + p.g.nodes[id].ExecutionTime()
	}
	var last NodeID = -1
	for _, id := range p.Sinks() {
		if last < 0 || finish[id] > finish[last] {
			last = id
		}
	}
	path := []NodeID{last}
	for {
		start := finish[last] - p.g.nodes[last].ExecutionTime()
		next := NodeID(-1)
		for _, pred := range p.Predecessors(last) {
			if finish[pred] == start {
				next = pred
				break
			}
		}
		if next < 0 {
			break
		}
		path = append(path, next)
		last = next
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
