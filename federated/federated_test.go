// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package federated_test

import (
	"testing"

	"github.com/petenewcomb/dagsched-go/dag"
	"github.com/petenewcomb/dagsched-go/federated"
	"github.com/petenewcomb/dagsched-go/internal/dagtest"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// newHighDAG returns a fork of volume 14 and critical path 8 with period 10,
// which needs 3 dedicated cores.
func newHighDAG() *dag.Graph {
	g := dag.New()
	g.AddNode(map[string]int{dag.ExecutionTime: 4, dag.Period: 10})
	g.AddNode(map[string]int{dag.ExecutionTime: 4})
	g.AddNode(map[string]int{dag.ExecutionTime: 3})
	g.AddNode(map[string]int{dag.ExecutionTime: 3})
	g.AddEdge(0, 1, 0)
	g.AddEdge(0, 2, 0)
	g.AddEdge(0, 3, 0)
	return g
}

// newLowDAG returns a fork of volume 14 with period 30.
func newLowDAG() *dag.Graph {
	g := dag.New()
	g.AddNode(map[string]int{dag.ExecutionTime: 4, dag.Period: 30})
	g.AddNode(map[string]int{dag.ExecutionTime: 4})
	g.AddNode(map[string]int{dag.ExecutionTime: 6})
	g.AddEdge(0, 1, 0)
	g.AddEdge(0, 2, 0)
	return g
}

func TestSchedulable(t *testing.T) {
	chk := require.New(t)
	set := dag.Set{newHighDAG(), newHighDAG(), newLowDAG()}
	r, req := federated.Allocate(set, 40)
	chk.Equal(federated.Result{Schedulable: true, HighCores: 6, LowCores: 34}, r)
	chk.Equal(map[int]int{0: 3, 1: 3, 2: 1}, req)
	chk.Equal("Schedulable{high_cores: 6, low_cores: 34}", r.String())
}

func TestInsufficientCoresForHighUtilization(t *testing.T) {
	chk := require.New(t)
	set := dag.Set{newHighDAG(), newHighDAG(), newLowDAG()}
	r, req := federated.Allocate(set, 1)
	chk.Equal(federated.Result{Reason: federated.ReasonHighUtilization, Shortfall: 2}, r)
	chk.Nil(req)

	r = federated.Check(set, 4)
	chk.Equal(federated.Result{Reason: federated.ReasonHighUtilization, Shortfall: 2}, r)
}

func TestInsufficientCoresForLowUtilization(t *testing.T) {
	chk := require.New(t)
	set := dag.Set{newHighDAG(), newLowDAG(), newLowDAG()}
	r := federated.Check(set, 3)
	chk.Equal(federated.Result{Reason: federated.ReasonLowUtilization, Shortfall: 2}, r)
	chk.Equal(`Unschedulable{reason: "insufficient cores for low-utilization tasks", shortfall: 2}`, r.String())

	// 5 remaining cores are not strictly more than 2 * 2 * 14/30.
	chk.Equal(federated.Result{Schedulable: true, HighCores: 3, LowCores: 2}, federated.Check(set, 5))
}

func TestCriticalPathExceedsDeadline(t *testing.T) {
	chk := require.New(t)
	g := dag.New()
	g.AddNode(map[string]int{dag.ExecutionTime: 20, dag.Period: 10})
	set := dag.Set{g, newHighDAG()}
	chk.Equal(federated.Result{Reason: federated.ReasonCriticalPath}, federated.Check(set, 100))

	// A heavy DAG whose critical path exactly fills its deadline.
	g = dag.New()
	g.AddNode(map[string]int{dag.ExecutionTime: 10, dag.Period: 10})
	g.AddNode(map[string]int{dag.ExecutionTime: 5})
	chk.Equal(federated.Result{Reason: federated.ReasonCriticalPath}, federated.Check(dag.Set{g}, 100))
}

func TestExplicitDeadline(t *testing.T) {
	chk := require.New(t)
	g := newHighDAG()
	g.SetParam(3, dag.EndToEndDeadline, 12)
	r, req := federated.Allocate(dag.Set{g}, 3)
	chk.Equal(federated.Result{Schedulable: true, HighCores: 2, LowCores: 1}, r)
	chk.Equal(map[int]int{0: 2}, req)

	// The shared pool must be strictly larger than twice the low utilization,
	// even when that is zero.
	r = federated.Check(dag.Set{g}, 2)
	chk.Equal(federated.Result{Reason: federated.ReasonLowUtilization}, r)
}

func TestDedicatedCores(t *testing.T) {
	chk := require.New(t)
	chk.Equal(3, federated.DedicatedCores(newHighDAG(), 10))
	chk.Equal(1, federated.DedicatedCores(newHighDAG(), 14))
	chk.PanicsWithValue("critical path length 8 does not fit deadline 8", func() {
		federated.DedicatedCores(newHighDAG(), 8)
	})
}

func TestCheckIsDeterministic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		chk := require.New(t)
		set := dagtest.NewSet(t, &dagtest.DefaultConfig)
		cores := dagtest.DefaultConfig.Cores.Draw(t, "cores")
		r1, req1 := federated.Allocate(set, cores)
		r2, req2 := federated.Allocate(set, cores)
		chk.Equal(r1, r2)
		chk.Equal(req1, req2)
		if r1.Schedulable {
			chk.Equal(cores, r1.HighCores+r1.LowCores)
			chk.Len(req1, len(set))
		} else {
			chk.NotEmpty(r1.Reason)
			chk.GreaterOrEqual(r1.Shortfall, 0)
		}
	})
}
