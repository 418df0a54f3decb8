// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package sched_test

import (
	"fmt"
	"os"
	"testing"

	"github.com/petenewcomb/dagsched-go/dag"
	"github.com/petenewcomb/dagsched-go/internal/dagtest"
	"github.com/petenewcomb/dagsched-go/processor"
	"github.com/petenewcomb/dagsched-go/sched"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"pgregory.net/rapid"
)

func schedule(g *dag.Graph, ordering sched.Ordering, cores int) (*sched.ListScheduler, int, []dag.NodeID) {
	s := sched.NewListScheduler(ordering)
	s.SetGraph(g)
	s.SetProcessor(processor.New[*dag.Node](cores))
	length, order := s.Schedule()
	return s, length, order
}

func TestListSchedulerChain(t *testing.T) {
	chk := require.New(t)
	s, length, order := schedule(dagtest.Chain(52, 40), sched.LatestFinishTime, 2)
	chk.Equal(92, length)
	chk.Equal([]dag.NodeID{0, 1}, order)

	log := s.Log()
	chk.Equal(92, log.ScheduleLength)
	chk.Equal(2, log.ProcessorInfo.NumberOfCores)
	chk.Equal(92, log.DAGInfo.CriticalPathLength)
	chk.Equal([]sched.JobLog{
		{CoreID: 0, NodeID: 0, StartTime: 0, FinishTime: 52, Finished: true},
		{CoreID: 0, NodeID: 1, StartTime: 52, FinishTime: 92, Finished: true},
	}, log.NodeLogs)
	chk.Equal(92, log.ProcessorLog.CoreLogs[0].TotalProcTime)
	chk.Equal(0, log.ProcessorLog.CoreLogs[1].TotalProcTime)
	chk.InDelta(1.0, log.ProcessorLog.CoreLogs[0].Utilization, 1e-9)
	chk.InDelta(0.5, log.ProcessorLog.AverageUtilization, 1e-9)
	chk.InDelta(0.25, log.ProcessorLog.VarianceUtilization, 1e-9)
}

func TestListSchedulerLatestFinishTime(t *testing.T) {
	chk := require.New(t)
	_, length, order := schedule(dagtest.Diamond(), sched.LatestFinishTime, 2)
	chk.Equal(31, length)
	chk.Equal([]dag.NodeID{0, 3, 1, 2, 4, 6, 5, 7}, order)
}

func TestListSchedulerFixedPriority(t *testing.T) {
	chk := require.New(t)
	g := dagtest.Diamond()
	g.ApplyParams(dag.Priority, g.AssignCriticalPathPriorities())
	_, length, order := schedule(g, sched.FixedPriority, 2)
	chk.Equal(34, length)
	chk.Equal([]dag.NodeID{0, 2, 1, 4, 5, 3, 6, 7}, order)

	// With unlimited cores the ordering no longer matters.
	_, length, _ = schedule(g, sched.FixedPriority, 8)
	chk.Equal(25, length)
}

func TestListSchedulerMissingPriority(t *testing.T) {
	chk := require.New(t)
	g := dag.New()
	g.AddNode(map[string]int{dag.ExecutionTime: 1})
	g.AddNode(map[string]int{dag.ExecutionTime: 1})
	chk.Panics(func() { schedule(g, sched.FixedPriority, 1) })
}

func TestListSchedulerDeadlineFactor(t *testing.T) {
	chk := require.New(t)
	g := dag.New()
	g.AddNode(map[string]int{dag.ExecutionTime: 5, dag.IntegerScaledDeadline: 20, dag.DeadlineFactor: 2})
	g.AddNode(map[string]int{dag.ExecutionTime: 5, dag.IntegerScaledDeadline: 9, dag.DeadlineFactor: 3})
	_, length, order := schedule(g, sched.DeadlineFactor, 1)
	chk.Equal(10, length)
	chk.Equal([]dag.NodeID{1, 0}, order)

	// Without factors the ordering falls back to latest finish time.
	_, _, order = schedule(dagtest.Diamond(), sched.DeadlineFactor, 2)
	chk.Equal([]dag.NodeID{0, 3, 1, 2, 4, 6, 5, 7}, order)
}

func TestListSchedulerCustomOrdering(t *testing.T) {
	chk := require.New(t)
	// Prefer the highest id among ready nodes.
	reverse := sched.OrderingFunc(func(g *dag.Graph) func(dag.NodeID) int {
		return func(id dag.NodeID) int { return -int(id) }
	})
	_, _, order := schedule(dagtest.Diamond(), reverse, 1)
	chk.Equal([]dag.NodeID{0, 3, 6, 2, 5, 1, 4, 7}, order)
}

func TestListSchedulerMisuse(t *testing.T) {
	chk := require.New(t)
	s := sched.NewListScheduler(sched.LatestFinishTime)
	chk.PanicsWithValue("graph was not set", func() { s.Schedule() })
	s.SetGraph(dagtest.Chain(1))
	chk.PanicsWithValue("processor was not set", func() { s.Schedule() })

	_, err := s.DumpLog(t.TempDir(), "lft")
	chk.Error(err)

	g := dagtest.Chain(1, 1)
	g.AddEdge(1, 0, 0)
	s.SetGraph(g)
	s.SetProcessor(processor.New[*dag.Node](1))
	chk.PanicsWithValue("graph contains a cycle", func() { s.Schedule() })
}

func TestListSchedulerDumpLog(t *testing.T) {
	chk := require.New(t)
	s := sched.NewListScheduler(sched.LatestFinishTime, sched.WithLogger(zaptest.NewLogger(t)))
	s.SetGraph(dagtest.Diamond())
	s.SetProcessor(processor.New[*dag.Node](3))
	s.Schedule()
	path, err := s.DumpLog(t.TempDir(), "lft")
	chk.NoError(err)
	data, err := os.ReadFile(path)
	chk.NoError(err)
	chk.Contains(string(data), "schedule_length: ")
	chk.Contains(string(data), "node_logs:")
}

func TestListSchedulerProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		chk := require.New(t)
		g := dagtest.NewGraph(t, &dagtest.DefaultConfig)
		cores := dagtest.DefaultConfig.Cores.Draw(t, "cores")
		before := fmt.Sprintf("%+v", g)
		s, length, order := schedule(g, sched.LatestFinishTime, cores)
		chk.Equal(before, fmt.Sprintf("%+v", g))

		chk.Len(order, g.NumNodes())
		seen := make(map[dag.NodeID]bool)
		for _, id := range order {
			chk.False(seen[id], "node %d allocated twice", id)
			seen[id] = true
		}

		logs := s.Log().NodeLogs
		chk.Len(logs, g.NumNodes())
		finish := make([]int, g.NumNodes())
		maxFinish := 0
		for _, l := range logs {
			chk.True(l.Finished)
			chk.Equal(g.Node(dag.NodeID(l.NodeID)).ExecutionTime(), l.FinishTime-l.StartTime)
			finish[l.NodeID] = l.FinishTime
			maxFinish = max(maxFinish, l.FinishTime)
		}
		for _, l := range logs {
			for _, pred := range g.Predecessors(dag.NodeID(l.NodeID)) {
				chk.GreaterOrEqual(l.StartTime, finish[pred], "node %d started before predecessor %d finished", l.NodeID, pred)
			}
			for _, o := range logs {
				if o.NodeID != l.NodeID && o.CoreID == l.CoreID {
					chk.True(o.FinishTime <= l.StartTime || l.FinishTime <= o.StartTime,
						"nodes %d and %d overlap on core %d", l.NodeID, o.NodeID, l.CoreID)
				}
			}
		}

		chk.Equal(maxFinish, length)
		chk.GreaterOrEqual(length, g.CriticalPathLength())
		chk.GreaterOrEqual(length*cores, g.Volume())
		chk.LessOrEqual(length, g.Volume())

		busy := 0
		for _, c := range s.Log().ProcessorLog.CoreLogs {
			busy += c.TotalProcTime
		}
		chk.Equal(g.Volume(), busy)

		length2, order2 := s.Schedule()
		chk.Equal(length, length2)
		chk.Equal(order, order2)
	})
}
