// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package dag

import (
	"fmt"
	"maps"
	"slices"
)

// NodeID identifies a node within its graph. It always equals the node's
// index in the graph's node table.
type NodeID int

// Well-known parameter keys.
const (
	ExecutionTime         = "execution_time"
	Period                = "period"
	Offset                = "offset"
	EndToEndDeadline      = "end_to_end_deadline"
	Priority              = "priority"
	DeadlineFactor        = "deadline_factor"
	IntegerScaledDeadline = "integer_scaled_deadline"
)

type dummyKind int

const (
	notDummy dummyKind = iota
	dummySource
	dummySink
)

// Node is a sub-job of a task graph. Its parameters are integer attributes
// fixed when the node is added; scheduler scratch state never lives here.
type Node struct {
	ID     NodeID
	params map[string]int
	dummy  dummyKind
}

// Param returns the value of the named parameter and whether it is present.
func (n *Node) Param(key string) (int, bool) {
	v, ok := n.params[key]
	return v, ok
}

// MustParam returns the value of the named parameter, panicking if it is
// absent.
func (n *Node) MustParam(key string) int {
	v, ok := n.params[key]
	if !ok {
		panic(fmt.Sprintf("node %d has no %s", n.ID, key))
	}
	return v
}

// ExecutionTime returns the node's cost in ticks.
func (n *Node) ExecutionTime() int {
	return n.MustParam(ExecutionTime)
}

// Params returns a copy of the node's parameter table.
func (n *Node) Params() map[string]int {
	return maps.Clone(n.params)
}

// IsDummy reports whether the node is a temporary source or sink added for
// analysis or scheduling.
func (n *Node) IsDummy() bool {
	return n.dummy != notDummy
}

func (n *Node) clone() *Node {
	return &Node{
		ID:     n.ID,
		params: maps.Clone(n.params),
		dummy:  n.dummy,
	}
}

func (n *Node) Format(f fmt.State, verb rune) {
	switch n.dummy {
	case dummySource:
		fmt.Fprintf(f, "n%d(source)", n.ID)
		return
	case dummySink:
		fmt.Fprintf(f, "n%d(sink)", n.ID)
		return
	}
	if !f.Flag('+') {
		fmt.Fprintf(f, "n%d", n.ID)
		return
	}
	fmt.Fprintf(f, "n%d{", n.ID)
	for i, k := range slices.Sorted(maps.Keys(n.params)) {
		if i > 0 {
			fmt.Fprint(f, " ")
		}
		fmt.Fprintf(f, "%s=%d", k, n.params[k])
	}
	fmt.Fprint(f, "}")
}

// Edge is a directed precedence edge. Weight is a communication cost carried
// for reporting; it is not simulated.
type Edge struct {
	From   NodeID
	To     NodeID
	Weight int
}
