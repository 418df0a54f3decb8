// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package sched

import (
	"fmt"

	"github.com/petenewcomb/dagsched-go/dag"
)

// DAGState is the lifecycle state of a DAG's current instance.
type DAGState int

const (
	Waiting DAGState = iota
	Ready
	Running
)

func (s DAGState) String() string {
	switch s {
	case Waiting:
		return "Waiting"
	case Ready:
		return "Ready"
	case Running:
		return "Running"
	default:
		return fmt.Sprintf("DAGState(%d)", int(s))
	}
}

// dagManager tracks one DAG across its periodic releases. Per-instance
// precedence counters are reset on every release.
type dagManager struct {
	graph        *dag.Graph
	period       int
	offset       int
	deadline     int
	requirement  int
	state        DAGState
	releaseCount int
	inst         Instance
	started      bool
	running      int
	done         int
	preDone      []int
	held         []*job
}

func newDAGManager(g *dag.Graph, requirement int) *dagManager {
	return &dagManager{
		graph:       g,
		period:      g.MustPeriod(),
		offset:      g.Offset(),
		deadline:    g.RelativeDeadline(),
		requirement: requirement,
		preDone:     make([]int, g.NumNodes()),
	}
}

func (m *dagManager) nextReleaseTime() int {
	return m.offset + m.period*m.releaseCount
}

func (m *dagManager) release(dagID, now int) {
	if m.state != Waiting {
		panic(fmt.Sprintf("dag %d released while %v", dagID, m.state))
	}
	m.inst = Instance{
		DAGID:            dagID,
		JobID:            m.releaseCount,
		ReleaseTime:      now,
		AbsoluteDeadline: now + m.deadline,
	}
	m.releaseCount++
	m.state = Ready
	m.started = false
	m.running = 0
	m.done = 0
	clear(m.preDone)
}

// skip forfeits the current release slot so the next one stays on the
// period grid.
func (m *dagManager) skip() {
	m.releaseCount++
}

func (m *dagManager) start() {
	if m.state != Ready {
		panic(fmt.Sprintf("dag %d started while %v", m.inst.DAGID, m.state))
	}
	m.state = Running
}

func (m *dagManager) complete() {
	if m.state != Running {
		panic(fmt.Sprintf("dag %d completed while %v", m.inst.DAGID, m.state))
	}
	m.state = Waiting
}

// predecessorDone records a completed predecessor of id and reports whether
// id is now ready.
func (m *dagManager) predecessorDone(id dag.NodeID) bool {
	m.preDone[id]++
	return m.preDone[id] == m.graph.InDegree(id)
}
