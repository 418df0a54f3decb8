// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package sched_test

import (
	"fmt"

	"github.com/petenewcomb/dagsched-go/dag"
	"github.com/petenewcomb/dagsched-go/processor"
	"github.com/petenewcomb/dagsched-go/sched"
)

func ExampleListScheduler() {
	g := dag.New()
	for _, c := range []int{2, 3, 4, 1} {
		g.AddNode(map[string]int{dag.ExecutionTime: c})
	}
	g.AddEdge(0, 1, 0)
	g.AddEdge(0, 2, 0)
	g.AddEdge(1, 3, 0)
	g.AddEdge(2, 3, 0)

	s := sched.NewListScheduler(sched.LatestFinishTime)
	s.SetGraph(g)
	s.SetProcessor(processor.New[*dag.Node](2))
	length, order := s.Schedule()
	fmt.Println(length, order)
	for _, l := range s.Log().NodeLogs {
		fmt.Printf("n%d core %d: %d-%d\n", l.NodeID, l.CoreID, l.StartTime, l.FinishTime)
	}
	// Output:
	// 7 [0 1 2 3]
	// n0 core 0: 0-2
	// n1 core 0: 2-5
	// n2 core 1: 2-6
	// n3 core 0: 6-7
}

func ExampleDAGSetScheduler() {
	long := dag.New()
	long.AddNode(map[string]int{dag.ExecutionTime: 6, dag.Period: 20})
	short := dag.New()
	short.AddNode(map[string]int{dag.ExecutionTime: 2, dag.Period: 10, dag.Offset: 1})

	s, err := sched.NewDAGSetScheduler(dag.Set{long, short}, 1, sched.WithPreemption())
	if err != nil {
		panic(err)
	}
	fmt.Println("horizon:", s.Schedule())
	for _, l := range s.Log().DAGLogs {
		fmt.Println("dag", l.DAGID, "responses:", l.ResponseTimes)
	}
	// Output:
	// horizon: 20
	// dag 0 responses: [9]
	// dag 1 responses: [2 2]
}
