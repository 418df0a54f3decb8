// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package dagtest

import (
	"fmt"

	"github.com/petenewcomb/dagsched-go/dag"
	"pgregory.net/rapid"
)

// NewGraph draws a random acyclic graph.
func NewGraph(t *rapid.T, config *Config) *dag.Graph {
	return newGraph(t, &config.Graph, "Graph")
}

func newGraph(t *rapid.T, config *GraphConfig, name string) *dag.Graph {
	g := dag.New()
	n := config.NodeCount.Draw(t, name+".NodeCount")
	for i := range n {
		g.AddNode(map[string]int{
			dag.ExecutionTime: config.ExecutionTime.Draw(t, fmt.Sprintf("%s.n%d.ExecutionTime", name, i)),
		})
	}
	edge := Chance(config.EdgeProbability)
	for to := 1; to < n; to++ {
		for from := range to {
			if edge.Draw(t, fmt.Sprintf("%s.n%d->n%d", name, from, to)) {
				g.AddEdge(dag.NodeID(from), dag.NodeID(to), 0)
			}
		}
	}
	t.Logf("%s: %+v", name, g)
	return g
}

// NewSet draws a random task set. Each graph's head node carries a period
// drawn from config.Set.Periods and an offset smaller than that period.
func NewSet(t *rapid.T, config *Config) dag.Set {
	count := config.Set.DAGCount.Draw(t, "Set.DAGCount")
	set := make(dag.Set, count)
	for i := range set {
		name := fmt.Sprintf("Set.DAG#%d", i)
		g := newGraph(t, &config.Graph, name)
		period := rapid.SampledFrom(config.Set.Periods).Draw(t, name+".Period")
		offset := min(config.Set.Offset.Draw(t, name+".Offset"), period-1)
		head := g.SourceNodes()[0]
		g.SetParam(head, dag.Period, period)
		g.SetParam(head, dag.Offset, offset)
		set[i] = g
	}
	return set
}

// Chain returns a graph whose nodes run strictly one after another with the
// given execution times.
func Chain(costs ...int) *dag.Graph {
	g := dag.New()
	for i, c := range costs {
		id := g.AddNode(map[string]int{dag.ExecutionTime: c})
		if i > 0 {
			g.AddEdge(id-1, id, 0)
		}
	}
	return g
}

// Diamond returns a fan-out/fan-in graph of eight nodes with costs
// [3,6,9,6,4,3,5,10] whose middle branch 0->2->5->7 is the unique critical
// path, of length 25.
func Diamond() *dag.Graph {
	g := dag.New()
	for _, c := range []int{3, 6, 9, 6, 4, 3, 5, 10} {
		g.AddNode(map[string]int{dag.ExecutionTime: c})
	}
	for _, e := range [][2]dag.NodeID{{0, 1}, {0, 2}, {0, 3}, {1, 4}, {2, 5}, {3, 6}, {4, 7}, {5, 7}, {6, 7}} {
		g.AddEdge(e[0], e[1], 0)
	}
	return g
}
