// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package sched simulates scheduling of DAG tasks on a multicore processor
// in whole ticks.
//
// ListScheduler runs a single DAG to completion with non-preemptive list
// scheduling: ready nodes are ordered by a pluggable Ordering and allocated
// to the lowest idle core, and the processor advances until some node
// completes. Two unit-cost boundary nodes bracket each run and are excluded
// from the reported length and execution order.
//
// DAGSetScheduler releases every DAG of a set periodically over one
// hyperperiod and schedules the nodes of all live instances from a single
// ready queue ordered by a pluggable Priority, optionally preempting the
// lowest-priority running node. Preemption restarts the interrupted node from
// scratch when it is next allocated. A release that comes due while the
// previous instance of the same DAG is still active is skipped.
// WithCoreRequirements adds federated partitioning: instances reserve cores
// when they start and never run more nodes at once than they reserved.
//
// Per-run state such as predecessor completion counts is owned by each run,
// so the graphs passed in are never modified and repeated runs are
// independent.
package sched
