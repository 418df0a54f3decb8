// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package processor models a homogeneous multicore processor that executes
// jobs in whole ticks. Each core runs at most one job at a time; Tick
// advances every busy core by one unit and reports which jobs completed.
// Preemption frees a core immediately and hands the job back to the caller
// without any record of its progress.
package processor

import (
	"fmt"
)

// Job is anything a core can execute.
type Job interface {
	ExecutionTime() int
}

// State describes what a core did during a tick.
type State int

const (
	Idle State = iota
	Running
	Completed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Running:
		return "Running"
	case Completed:
		return "Completed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Result is a core's outcome for one tick. Job is set for Running and
// Completed results.
type Result[T Job] struct {
	State State
	Job   T
}

// Core is a snapshot of one core.
type Core[T Job] struct {
	Idle      bool
	Job       T
	Remaining int
}

type core[T Job] struct {
	busy      bool
	job       T
	remaining int
}

// Processor is a fixed-size array of identical cores.
type Processor[T Job] struct {
	cores []core[T]
}

// New returns a processor with numCores idle cores.
func New[T Job](numCores int) *Processor[T] {
	if numCores <= 0 {
		panic("processor must have at least one core")
	}
	return &Processor[T]{
		cores: make([]core[T], numCores),
	}
}

func (p *Processor[T]) NumCores() int {
	return len(p.cores)
}

// Core returns a snapshot of core i.
func (p *Processor[T]) Core(i int) Core[T] {
	c := &p.cores[i]
	return Core[T]{Idle: !c.busy, Job: c.job, Remaining: c.remaining}
}

// Reset makes every core idle, dropping any assigned jobs.
func (p *Processor[T]) Reset() {
	clear(p.cores)
}

// Allocate assigns job to core i, which must be idle. A job with zero cost
// still occupies its core for one tick.
func (p *Processor[T]) Allocate(i int, job T) {
	c := &p.cores[i]
	if c.busy {
		panic(fmt.Sprintf("core %d is not idle", i))
	}
	et := job.ExecutionTime()
	if et < 0 {
		panic(fmt.Sprintf("job has negative execution time %d", et))
	}
	c.busy = true
	c.job = job
	c.remaining = et
}

// Preempt frees core i, which must be busy, and returns the job it was
// running. The job's progress is discarded.
func (p *Processor[T]) Preempt(i int) T {
	c := &p.cores[i]
	if !c.busy {
		panic(fmt.Sprintf("core %d is idle", i))
	}
	job := c.job
	*c = core[T]{}
	return job
}

// Tick advances every busy core by one unit and returns each core's
// outcome, indexed by core.
func (p *Processor[T]) Tick() []Result[T] {
	results := make([]Result[T], len(p.cores))
	for i := range p.cores {
		c := &p.cores[i]
		if !c.busy {
			continue
		}
		c.remaining--
		if c.remaining > 0 {
			results[i] = Result[T]{State: Running, Job: c.job}
			continue
		}
		results[i] = Result[T]{State: Completed, Job: c.job}
		*c = core[T]{}
	}
	return results
}

// IdleCoreIndex returns the lowest-indexed idle core.
func (p *Processor[T]) IdleCoreIndex() (int, bool) {
	for i := range p.cores {
		if !p.cores[i].busy {
			return i, true
		}
	}
	return 0, false
}

func (p *Processor[T]) IdleCount() int {
	n := 0
	for i := range p.cores {
		if !p.cores[i].busy {
			n++
		}
	}
	return n
}

// MaxValueAndIndex returns the largest key over the jobs on busy cores and
// the lowest index of a core holding it. It returns false if every core is
// idle.
func (p *Processor[T]) MaxValueAndIndex(key func(T) int) (value int, index int, ok bool) {
	for i := range p.cores {
		c := &p.cores[i]
		if !c.busy {
			continue
		}
		if v := key(c.job); !ok || v > value {
			value, index, ok = v, i, true
		}
	}
	return value, index, ok
}
