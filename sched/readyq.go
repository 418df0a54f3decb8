// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package sched

import (
	"cmp"
	"fmt"

	"github.com/addrummond/heap"
	"github.com/petenewcomb/dagsched-go/dag"
)

// job is one node of one released DAG instance.
type job struct {
	dagID int
	jobID int
	node  *dag.Node
	key   int
}

func (j *job) ExecutionTime() int {
	return j.node.ExecutionTime()
}

func (j *job) logKey() jobKey {
	return jobKey{dagID: j.dagID, jobID: j.jobID, nodeID: j.node.ID}
}

func (j *job) String() string {
	return fmt.Sprintf("dag%d/job%d/n%d(key=%d)", j.dagID, j.jobID, j.node.ID, j.key)
}

type readyEntry struct {
	job *job
}

func (a *readyEntry) Cmp(b *readyEntry) int {
	return cmp.Or(
		cmp.Compare(a.job.key, b.job.key),
		cmp.Compare(a.job.node.ID, b.job.node.ID),
		cmp.Compare(a.job.dagID, b.job.dagID),
		cmp.Compare(a.job.jobID, b.job.jobID),
	)
}

// readyQueue holds ready jobs ordered by key, node id, dag id and job id.
type readyQueue struct {
	h heap.Heap[readyEntry, heap.Min]
}

func (q *readyQueue) push(j *job) {
	heap.PushOrderable(&q.h, readyEntry{job: j})
}

func (q *readyQueue) pop() (*job, bool) {
	e, ok := heap.PopOrderable(&q.h)
	return e.job, ok
}

func (q *readyQueue) peek() (*job, bool) {
	e, ok := heap.Peek(&q.h)
	return e.job, ok
}
