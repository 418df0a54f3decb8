// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package federated implements the federated scheduling admission test.
// Each high-utilization DAG (volume greater than its deadline) receives a
// dedicated set of cores large enough to finish within its deadline; the
// remaining low-utilization DAGs share what is left, which must exceed twice
// their summed utilization.
package federated

import (
	"fmt"
	"math"

	"github.com/petenewcomb/dagsched-go/dag"
)

// Unschedulable reasons.
const (
	ReasonCriticalPath    = "critical path exceeds deadline"
	ReasonHighUtilization = "insufficient cores for high-utilization tasks"
	ReasonLowUtilization  = "insufficient cores for low-utilization tasks"
)

// Result is the admission verdict. When Schedulable is false, Reason names
// the failing condition and Shortfall the number of missing cores.
type Result struct {
	Schedulable bool   `yaml:"schedulable"`
	HighCores   int    `yaml:"high_cores,omitempty"`
	LowCores    int    `yaml:"low_cores,omitempty"`
	Reason      string `yaml:"reason,omitempty"`
	Shortfall   int    `yaml:"shortfall,omitempty"`
}

func (r Result) String() string {
	if r.Schedulable {
		return fmt.Sprintf("Schedulable{high_cores: %d, low_cores: %d}", r.HighCores, r.LowCores)
	}
	return fmt.Sprintf("Unschedulable{reason: %q, shortfall: %d}", r.Reason, r.Shortfall)
}

// Check runs the admission test for set on numCores cores. DAGs are
// considered in set order and the first failing condition is returned.
func Check(set dag.Set, numCores int) Result {
	r, _ := Allocate(set, numCores)
	return r
}

// Allocate runs the admission test and, when the set is schedulable, also
// returns the number of cores each DAG requires, keyed by dag id:
// high-utilization DAGs get their dedicated count and low-utilization DAGs
// one core.
func Allocate(set dag.Set, numCores int) (Result, map[int]int) {
	remaining := numCores
	lowUtilization := 0.0
	requirements := make(map[int]int, len(set))
	for dagID, g := range set {
		deadline := g.RelativeDeadline()
		volume := g.Volume()
		cp := g.CriticalPathLength()
		if cp > deadline {
			return Result{Reason: ReasonCriticalPath}, nil
		}
		utilization := float64(volume) / float64(deadline)
		if utilization > 1.0 {
			// No finite number of cores absorbs extra work with zero slack, so
			// this fails on the critical path before any core count is computed.
			if cp == deadline {
				return Result{Reason: ReasonCriticalPath}, nil
			}
			cores := dedicatedCores(volume, cp, deadline)
			if cores > remaining {
				return Result{Reason: ReasonHighUtilization, Shortfall: cores - remaining}, nil
			}
			remaining -= cores
			requirements[dagID] = cores
		} else {
			lowUtilization += utilization
			requirements[dagID] = 1
		}
	}
	if float64(remaining) > 2*lowUtilization {
		return Result{
			Schedulable: true,
			HighCores:   numCores - remaining,
			LowCores:    remaining,
		}, requirements
	}
	return Result{
		Reason:    ReasonLowUtilization,
		Shortfall: int(math.Ceil(2*lowUtilization - float64(remaining))),
	}, nil
}

// DedicatedCores returns the number of cores g needs to finish within
// deadline when it has them to itself. It panics if the critical path does
// not fit within the deadline.
func DedicatedCores(g *dag.Graph, deadline int) int {
	cp := g.CriticalPathLength()
	if cp >= deadline {
		panic(fmt.Sprintf("critical path length %d does not fit deadline %d", cp, deadline))
	}
	return dedicatedCores(g.Volume(), cp, deadline)
}

func dedicatedCores(volume, cp, deadline int) int {
	return int(math.Ceil(float64(volume-cp) / float64(deadline-cp)))
}
