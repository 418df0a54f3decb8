// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package sched

import (
	"errors"

	"github.com/petenewcomb/dagsched-go/dag"
	"github.com/petenewcomb/dagsched-go/internal/report"
	"github.com/petenewcomb/dagsched-go/processor"
	"go.uber.org/zap"
)

// DAGScheduler schedules one DAG to completion on a processor.
type DAGScheduler interface {
	SetGraph(g *dag.Graph)
	SetProcessor(p *processor.Processor[*dag.Node])
	// Schedule returns the schedule length and the order in which nodes
	// were allocated.
	Schedule() (int, []dag.NodeID)
	Log() *DAGSchedulerLog
	DumpLog(dir, algorithm string) (string, error)
}

// Cost of each of the two boundary nodes added around a scheduled graph.
const dummyExecutionTime = 1

// ListScheduler is a non-preemptive list scheduler whose node ordering is
// pluggable.
type ListScheduler struct {
	ordering Ordering
	logger   *zap.Logger
	graph    *dag.Graph
	proc     *processor.Processor[*dag.Node]
	log      *DAGSchedulerLog
}

var _ DAGScheduler = (*ListScheduler)(nil)

// NewListScheduler returns a scheduler that allocates ready nodes in the
// order given by ordering. Only WithLogger applies to it.
func NewListScheduler(ordering Ordering, opts ...Option) *ListScheduler {
	o := buildOptions(opts)
	return &ListScheduler{
		ordering: ordering,
		logger:   o.logger,
	}
}

// SetGraph sets the graph to schedule. The graph is never modified.
func (s *ListScheduler) SetGraph(g *dag.Graph) {
	s.graph = g
}

// SetProcessor sets the processor to schedule on. It is reset at the start
// of every run.
func (s *ListScheduler) SetProcessor(p *processor.Processor[*dag.Node]) {
	s.proc = p
}

// Log returns the record of the most recent run, or nil.
func (s *ListScheduler) Log() *DAGSchedulerLog {
	return s.log
}

// DumpLog writes the most recent run's record as YAML into dir and returns
// the file's path.
func (s *ListScheduler) DumpLog(dir, algorithm string) (string, error) {
	if s.log == nil {
		return "", errors.New("no schedule has been run")
	}
	return report.DumpFile(dir, algorithm, s.log)
}

// Schedule runs the graph to completion. Nodes are allocated to the lowest
// idle core whenever one is free; the processor then advances until at least
// one node completes, and successors whose predecessors have all completed
// become ready. Schedule panics if the graph or processor is unset or the
// graph has a cycle.
func (s *ListScheduler) Schedule() (int, []dag.NodeID) {
	if s.graph == nil {
		panic("graph was not set")
	}
	if s.proc == nil {
		panic("processor was not set")
	}
	if _, err := s.graph.TopologicalOrder(); err != nil {
		panic(err.Error())
	}

	g := s.graph.Clone()
	source := g.AddDummySource()
	sink := g.AddDummySink()
	g.SetParam(source, dag.ExecutionTime, dummyExecutionTime)
	g.SetParam(sink, dag.ExecutionTime, dummyExecutionTime)
	key := s.ordering.Key(g)

	proc := s.proc
	proc.Reset()
	log := &DAGSchedulerLog{
		DAGInfo:       s.graph.Info(),
		ProcessorInfo: ProcessorInfo{NumberOfCores: proc.NumCores()},
		ProcessorLog:  newProcessorLog(proc.NumCores()),
	}
	logs := make(jobLogs)
	preDone := make([]int, g.NumNodes())
	ready := []dag.NodeID{source}
	var order []dag.NodeID
	now := 0

	for {
		sortReady(ready, key)
		for len(ready) > 0 {
			core, ok := proc.IdleCoreIndex()
			if !ok {
				break
			}
			id := ready[0]
			ready = ready[1:]
			proc.Allocate(core, g.Node(id))
			if g.Node(id).IsDummy() {
				continue
			}
			order = append(order, id)
			logs.allocate(jobKey{nodeID: id}, core, now-dummyExecutionTime)
			s.logger.Debug("allocated node",
				zap.Int("time", now-dummyExecutionTime),
				zap.Int("core", core),
				zap.Int("node", int(id)))
		}

		if proc.IdleCount() == proc.NumCores() {
			panic("no node is running or ready")
		}

		var finished []dag.NodeID
		for len(finished) == 0 {
			results := proc.Tick()
			now++
			for core, r := range results {
				if r.State == processor.Idle {
					continue
				}
				if !r.Job.IsDummy() {
					log.ProcessorLog.addBusyTick(core)
				}
				if r.State == processor.Completed {
					finished = append(finished, r.Job.ID)
				}
			}
		}

		if len(finished) == 1 && finished[0] == sink {
			break
		}
		for _, id := range finished {
			if !g.Node(id).IsDummy() {
				logs.finish(jobKey{nodeID: id}, now-dummyExecutionTime)
				s.logger.Debug("finished node",
					zap.Int("time", now-dummyExecutionTime),
					zap.Int("node", int(id)))
			}
			for _, succ := range g.Successors(id) {
				preDone[succ]++
				if preDone[succ] == g.InDegree(succ) {
					ready = append(ready, succ)
				}
			}
		}
	}

	length := now - 2*dummyExecutionTime
	log.ScheduleLength = length
	log.NodeLogs = logs.sorted()
	log.ProcessorLog.calculate(length)
	s.log = log
	s.logger.Debug("schedule complete", zap.Int("length", length), zap.Int("nodes", len(order)))
	return length, order
}
