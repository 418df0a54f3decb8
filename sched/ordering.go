// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package sched

import (
	"cmp"
	"slices"

	"github.com/petenewcomb/dagsched-go/dag"
)

// Ordering decides which ready node a list scheduler allocates first. Key is
// called once per run with the scheduler's private copy of the graph (which
// includes its dummy boundary nodes) and returns a key function; ready nodes
// are allocated in ascending key order, ties broken by node id.
type Ordering interface {
	Key(g *dag.Graph) func(dag.NodeID) int
}

// OrderingFunc adapts a function to the Ordering interface.
type OrderingFunc func(g *dag.Graph) func(dag.NodeID) int

func (f OrderingFunc) Key(g *dag.Graph) func(dag.NodeID) int {
	return f(g)
}

// FixedPriority orders nodes by their priority parameter, lowest first.
var FixedPriority Ordering = ParamOrdering(dag.Priority)

// ParamOrdering orders nodes by the named parameter, lowest first. Real
// nodes missing the parameter cause a panic when compared.
func ParamOrdering(key string) Ordering {
	return OrderingFunc(func(g *dag.Graph) func(dag.NodeID) int {
		return func(id dag.NodeID) int {
			n := g.Node(id)
			if n.IsDummy() {
				return 0
			}
			return n.MustParam(key)
		}
	})
}

// LatestFinishTime orders nodes by their latest finish time, earliest first.
var LatestFinishTime Ordering = OrderingFunc(func(g *dag.Graph) func(dag.NodeID) int {
	lft := g.LatestFinishTimes()
	return func(id dag.NodeID) int {
		return lft[id]
	}
})

// DeadlineFactor orders nodes by their earliest start time plus the share
// of the deadline assigned to them (integer_scaled_deadline divided by
// deadline_factor). Graphs whose nodes carry no deadline_factor fall back to
// latest finish time.
var DeadlineFactor Ordering = OrderingFunc(func(g *dag.Graph) func(dag.NodeID) int {
	factored := false
	for _, n := range g.Nodes() {
		if _, ok := n.Param(dag.DeadlineFactor); ok {
			factored = true
			break
		}
	}
	if !factored {
		return LatestFinishTime.Key(g)
	}
	est := g.EarliestStartTimes()
	return func(id dag.NodeID) int {
		n := g.Node(id)
		if n.IsDummy() {
			return est[id]
		}
		return est[id] + n.MustParam(dag.IntegerScaledDeadline)/n.MustParam(dag.DeadlineFactor)
	}
})

func sortReady(ready []dag.NodeID, key func(dag.NodeID) int) {
	slices.SortFunc(ready, func(a, b dag.NodeID) int {
		return cmp.Or(cmp.Compare(key(a), key(b)), cmp.Compare(a, b))
	})
}
