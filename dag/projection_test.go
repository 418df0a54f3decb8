// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package dag_test

import (
	"testing"

	"github.com/petenewcomb/dagsched-go/dag"
	"github.com/petenewcomb/dagsched-go/internal/dagtest"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestProjection(t *testing.T) {
	chk := require.New(t)
	g := dagtest.Diamond()
	p := g.Project([]dag.NodeID{1, 2, 4, 5, 7, 7})
	chk.Equal(5, p.Len())
	chk.Equal([]dag.NodeID{1, 2, 4, 5, 7}, p.Nodes())
	chk.True(p.Contains(7))
	chk.False(p.Contains(0))
	chk.False(p.Contains(42))
	chk.Equal([]dag.NodeID{1, 2}, p.Sources())
	chk.Equal([]dag.NodeID{7}, p.Sinks())
	chk.Equal([]dag.NodeID{4, 5}, p.Predecessors(7))
	chk.Nil(p.Predecessors(1))
	chk.Equal(32, p.Volume())
	chk.Equal([]dag.NodeID{2, 5, 7}, p.CriticalPath())

	q := p.Without([]dag.NodeID{7, 0})
	chk.Equal(4, q.Len())
	chk.Equal(5, p.Len())
	comps := q.Components()
	chk.Len(comps, 2)
	chk.Equal([]dag.NodeID{1, 4}, comps[0].Nodes())
	chk.Equal([]dag.NodeID{2, 5}, comps[1].Nodes())

	chk.Nil(g.Project(nil).CriticalPath())
	chk.Equal(8, g.NumNodes())
}

func TestAssignCriticalPathPriorities(t *testing.T) {
	chk := require.New(t)
	g := dagtest.Diamond()
	prio := g.AssignCriticalPathPriorities()
	chk.Equal(map[dag.NodeID]int{0: 0, 2: 1, 5: 2, 7: 3, 1: 4, 4: 5, 3: 6, 6: 7}, prio)

	g.ApplyParams(dag.Priority, prio)
	chk.Equal(1, g.Node(2).MustParam(dag.Priority))
}

func TestAssignCriticalPathPrioritiesCoversEveryNode(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		chk := require.New(t)
		g := dagtest.NewGraph(t, &dagtest.DefaultConfig)
		prio := g.AssignCriticalPathPriorities()
		chk.Len(prio, g.NumNodes())
		seen := make(map[int]bool)
		for _, p := range prio {
			chk.False(seen[p], "priority %d assigned twice", p)
			seen[p] = true
			chk.Less(p, g.NumNodes())
		}
		for id, p := range prio {
			if p == 0 {
				chk.Empty(g.Predecessors(id))
			}
		}
	})
}
