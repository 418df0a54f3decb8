// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package sched

import (
	"github.com/petenewcomb/dagsched-go/dag"
)

// Instance identifies one periodic release of a DAG.
type Instance struct {
	DAGID            int
	JobID            int
	ReleaseTime      int
	AbsoluteDeadline int
}

// Priority computes the ready-queue key of a node of a released instance.
// Lower keys run first; the DAG-set scheduler breaks ties by node id, then
// dag id, then job id.
type Priority interface {
	Key(inst Instance, n *dag.Node) int
}

// PriorityFunc adapts a function to the Priority interface.
type PriorityFunc func(inst Instance, n *dag.Node) int

func (f PriorityFunc) Key(inst Instance, n *dag.Node) int {
	return f(inst, n)
}

// ParamPriority uses the named node parameter as a fixed priority.
func ParamPriority(key string) Priority {
	return PriorityFunc(func(_ Instance, n *dag.Node) int {
		return n.MustParam(key)
	})
}

// EarliestDeadline prefers nodes of the instance with the earliest absolute
// deadline (global EDF).
var EarliestDeadline Priority = PriorityFunc(func(inst Instance, _ *dag.Node) int {
	return inst.AbsoluteDeadline
})
