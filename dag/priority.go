// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package dag

import (
	"github.com/gammazero/deque"
)

// AssignCriticalPathPriorities ranks nodes by repeatedly taking the longest
// path of what remains of the graph. Nodes on the overall critical path get
// priorities 0, 1, 2, ... in path order; the remaining nodes are split into
// connected components and processed the same way, first in first out.
// Lower values mean higher priority. The result can be applied with
// ApplyParams(Priority, ...) and consumed by fixed-priority ordering.
func (g *Graph) AssignCriticalPathPriorities() map[NodeID]int {
	priorities := make(map[NodeID]int, len(g.nodes))
	next := 0
	var work deque.Deque[*Projection]
	work.PushBack(g.ProjectAll())
	for work.Len() > 0 {
		p := work.PopFront()
		if p.Len() == 0 {
			continue
		}
		path := p.CriticalPath()
		for _, id := range path {
			priorities[id] = next
			next++
		}
		for _, c := range p.Without(path).Components() {
			work.PushBack(c)
		}
	}
	return priorities
}
