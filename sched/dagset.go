// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package sched

import (
	"errors"
	"fmt"

	"github.com/gammazero/deque"
	"github.com/petenewcomb/dagsched-go/dag"
	"github.com/petenewcomb/dagsched-go/internal/report"
	"github.com/petenewcomb/dagsched-go/processor"
	"go.uber.org/zap"
)

// DAGSetScheduler simulates the periodic release and global scheduling of a
// set of DAGs over one hyperperiod.
type DAGSetScheduler struct {
	set      dag.Set
	numCores int
	opts     options
	log      *DAGSetSchedulerLog
}

// NewDAGSetScheduler returns a scheduler for a copy of set on numCores
// cores. It returns an error if the set is malformed or a core requirement
// cannot be met by the processor.
func NewDAGSetScheduler(set dag.Set, numCores int, opts ...Option) (*DAGSetScheduler, error) {
	if numCores <= 0 {
		return nil, fmt.Errorf("number of cores must be positive, got %d", numCores)
	}
	if err := set.Validate(); err != nil {
		return nil, err
	}
	o := buildOptions(opts)
	for dagID, req := range o.requirements {
		if dagID < 0 || dagID >= len(set) {
			return nil, fmt.Errorf("core requirement for unknown dag %d", dagID)
		}
		if req <= 0 || req > numCores {
			return nil, fmt.Errorf("dag %d requires %d cores, must be between 1 and %d", dagID, req, numCores)
		}
	}
	return &DAGSetScheduler{
		set:      set.Clone(),
		numCores: numCores,
		opts:     o,
	}, nil
}

// Log returns the record of the most recent run, or nil.
func (s *DAGSetScheduler) Log() *DAGSetSchedulerLog {
	return s.log
}

// DumpLog writes the most recent run's record as YAML into dir and returns
// the file's path.
func (s *DAGSetScheduler) DumpLog(dir, algorithm string) (string, error) {
	if s.log == nil {
		return "", errors.New("no schedule has been run")
	}
	return report.DumpFile(dir, algorithm, s.log)
}

// Schedule runs the simulation until the hyperperiod and returns the final
// time. Each tick releases due instances, starts ready ones whose core
// requirement fits, allocates (and optionally preempts) ready nodes, advances
// the processor and propagates completions. Instances still running at the
// end are left unfinished in the log.
func (s *DAGSetScheduler) Schedule() int {
	r := s.newRun()
	horizon := dag.HyperPeriod(s.set)
	for r.now < horizon {
		r.release()
		r.start()
		r.allocate()
		r.tick()
	}
	s.log = r.finish()
	s.opts.logger.Debug("simulation complete", zap.Int("time", r.now))
	return r.now
}

type dagSetRun struct {
	s        *DAGSetScheduler
	logger   *zap.Logger
	proc     *processor.Processor[*job]
	managers []*dagManager
	capped   bool
	ready    readyQueue
	logs     jobLogs
	dagLogs  []DAGLog
	procLog  ProcessorLog
	now      int
}

func (s *DAGSetScheduler) newRun() *dagSetRun {
	r := &dagSetRun{
		s:        s,
		logger:   s.opts.logger,
		proc:     processor.New[*job](s.numCores),
		managers: make([]*dagManager, len(s.set)),
		capped:   s.opts.requirements != nil,
		logs:     make(jobLogs),
		dagLogs:  make([]DAGLog, len(s.set)),
		procLog:  newProcessorLog(s.numCores),
	}
	for dagID, g := range s.set {
		req, ok := s.opts.requirements[dagID]
		if !ok {
			req = 1
		}
		r.managers[dagID] = newDAGManager(g, req)
		r.dagLogs[dagID].DAGID = dagID
	}
	return r
}

func (r *dagSetRun) release() {
	for dagID, m := range r.managers {
		if r.now != m.nextReleaseTime() {
			continue
		}
		if m.state != Waiting {
			r.logger.Warn("release skipped, previous instance still active",
				zap.Int("time", r.now),
				zap.Int("dag", dagID),
				zap.Int("job", m.inst.JobID),
				zap.Stringer("state", m.state))
			m.skip()
			continue
		}
		m.release(dagID, r.now)
		r.dagLogs[dagID].ReleaseTimes = append(r.dagLogs[dagID].ReleaseTimes, r.now)
		for _, id := range m.graph.SourceNodes() {
			m.held = append(m.held, r.newJob(m, id))
		}
		r.logger.Debug("released",
			zap.Int("time", r.now),
			zap.Int("dag", dagID),
			zap.Int("job", m.inst.JobID),
			zap.Int("deadline", m.inst.AbsoluteDeadline))
	}
}

// start moves ready instances to running. Without core requirements every
// ready instance starts at once; with them, an instance starts only when its
// requirement fits in the cores not reserved by running instances.
func (r *dagSetRun) start() {
	reserved := 0
	for _, m := range r.managers {
		if m.state == Running {
			reserved += m.requirement
		}
	}
	for dagID, m := range r.managers {
		if m.state != Ready {
			continue
		}
		if r.capped && m.requirement > r.s.numCores-reserved {
			continue
		}
		m.start()
		reserved += m.requirement
		for _, j := range m.held {
			r.ready.push(j)
		}
		m.held = nil
		r.logger.Debug("started",
			zap.Int("time", r.now),
			zap.Int("dag", dagID),
			zap.Int("job", m.inst.JobID),
			zap.Int("cores", m.requirement))
	}
}

func (r *dagSetRun) allocate() {
	var deferred deque.Deque[*job]
	for {
		j, ok := r.ready.peek()
		if !ok {
			break
		}
		m := r.managers[j.dagID]
		if r.capped && m.running >= m.requirement {
			r.ready.pop()
			deferred.PushBack(j)
			continue
		}
		core, ok := r.proc.IdleCoreIndex()
		if !ok {
			core, ok = r.preemptFor(j)
			if !ok {
				break
			}
		}
		r.ready.pop()
		r.assign(core, j)
	}
	for deferred.Len() > 0 {
		r.ready.push(deferred.PopFront())
	}
}

// preemptFor frees the core running the job with the largest key if that
// key is strictly larger than j's.
func (r *dagSetRun) preemptFor(j *job) (int, bool) {
	if !r.s.opts.preemptive {
		return 0, false
	}
	key, core, ok := r.proc.MaxValueAndIndex(func(v *job) int { return v.key })
	if !ok || key <= j.key {
		return 0, false
	}
	victim := r.proc.Preempt(core)
	r.managers[victim.dagID].running--
	r.logs.preempt(victim.logKey(), r.now)
	r.ready.push(victim)
	r.logger.Debug("preempted",
		zap.Int("time", r.now),
		zap.Int("core", core),
		zap.Stringer("victim", victim),
		zap.Stringer("by", j))
	return core, true
}

func (r *dagSetRun) assign(core int, j *job) {
	m := r.managers[j.dagID]
	r.proc.Allocate(core, j)
	m.running++
	r.logs.allocate(j.logKey(), core, r.now)
	if !m.started {
		m.started = true
		r.dagLogs[j.dagID].StartTimes = append(r.dagLogs[j.dagID].StartTimes, r.now)
	}
	r.logger.Debug("allocated",
		zap.Int("time", r.now),
		zap.Int("core", core),
		zap.Stringer("job", j))
}

func (r *dagSetRun) tick() {
	results := r.proc.Tick()
	r.now++
	for core, res := range results {
		if res.State == processor.Idle {
			continue
		}
		r.procLog.addBusyTick(core)
		if res.State == processor.Completed {
			r.complete(res.Job)
		}
	}
}

func (r *dagSetRun) complete(j *job) {
	m := r.managers[j.dagID]
	m.running--
	m.done++
	r.logs.finish(j.logKey(), r.now)
	for _, succ := range m.graph.Successors(j.node.ID) {
		if m.predecessorDone(succ) {
			r.ready.push(r.newJob(m, succ))
		}
	}
	if m.done < m.graph.NumNodes() {
		return
	}
	m.complete()
	r.dagLogs[j.dagID].FinishTimes = append(r.dagLogs[j.dagID].FinishTimes, r.now)
	r.logger.Debug("instance finished",
		zap.Int("time", r.now),
		zap.Int("dag", j.dagID),
		zap.Int("job", j.jobID),
		zap.Int("response", r.now-m.inst.ReleaseTime))
}

func (r *dagSetRun) newJob(m *dagManager, id dag.NodeID) *job {
	n := m.graph.Node(id)
	return &job{
		dagID: m.inst.DAGID,
		jobID: m.inst.JobID,
		node:  n,
		key:   r.s.opts.priority.Key(m.inst, n),
	}
}

func (r *dagSetRun) finish() *DAGSetSchedulerLog {
	r.procLog.calculate(r.now)
	for i := range r.dagLogs {
		r.dagLogs[i].calculate()
	}
	return &DAGSetSchedulerLog{
		DAGSetInfo:    r.s.set.Info(),
		ProcessorInfo: ProcessorInfo{NumberOfCores: r.s.numCores},
		Horizon:       r.now,
		DAGLogs:       r.dagLogs,
		JobLogs:       r.logs.sorted(),
		ProcessorLog:  r.procLog,
	}
}
