// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package dag

// AddDummySource adds a zero-cost node with an edge to every current source
// node and returns its id. It panics if a dummy source already exists.
func (g *Graph) AddDummySource() NodeID {
	if _, ok := g.findDummy(dummySource); ok {
		panic("dummy source node already exists")
	}
	sources := g.SourceNodes()
	id := g.AddNode(map[string]int{ExecutionTime: 0})
	g.nodes[id].dummy = dummySource
	for _, s := range sources {
		g.AddEdge(id, s, 0)
	}
	return id
}

// AddDummySink adds a zero-cost node with an edge from every current sink
// node and returns its id. It panics if a dummy sink already exists.
func (g *Graph) AddDummySink() NodeID {
	if _, ok := g.findDummy(dummySink); ok {
		panic("dummy sink node already exists")
	}
	sinks := g.SinkNodes()
	id := g.AddNode(map[string]int{ExecutionTime: 0})
	g.nodes[id].dummy = dummySink
	for _, s := range sinks {
		g.AddEdge(s, id, 0)
	}
	return id
}

// RemoveDummySource removes the dummy source node, panicking if there is
// none.
func (g *Graph) RemoveDummySource() {
	id, ok := g.findDummy(dummySource)
	if !ok {
		panic("dummy source node does not exist")
	}
	g.removeNode(id)
}

// RemoveDummySink removes the dummy sink node, panicking if there is none.
func (g *Graph) RemoveDummySink() {
	id, ok := g.findDummy(dummySink)
	if !ok {
		panic("dummy sink node does not exist")
	}
	g.removeNode(id)
}

func (g *Graph) findDummy(kind dummyKind) (NodeID, bool) {
	for i := len(g.nodes) - 1; i >= 0; i-- {
		if g.nodes[i].dummy == kind {
			return NodeID(i), true
		}
	}
	return 0, false
}
