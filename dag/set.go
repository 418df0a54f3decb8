// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package dag

import (
	"fmt"
	"math"
)

// Set is an ordered collection of task graphs. A graph's index in the set is
// its dag id.
type Set []*Graph

// Validate checks every graph in the set, that each carries a positive
// period and a non-negative offset, and that the hyperperiod fits in an int.
func (s Set) Validate() error {
	if len(s) == 0 {
		return ErrEmptySet
	}
	h := 1
	for i, g := range s {
		if err := g.Validate(); err != nil {
			return fmt.Errorf("dag %d: %w", i, err)
		}
		p, ok := g.Period()
		if !ok {
			return fmt.Errorf("dag %d: %w", i, ErrMissingPeriod)
		}
		if p <= 0 {
			return fmt.Errorf("dag %d has non-positive period %d", i, p)
		}
		if o := g.Offset(); o < 0 {
			return fmt.Errorf("dag %d: %w %d", i, ErrNegativeOffset, o)
		}
		if h, ok = lcm(h, p); !ok {
			return fmt.Errorf("dag %d: %w", i, ErrHyperPeriodOverflow)
		}
	}
	return nil
}

// Clone returns a deep copy of the set.
func (s Set) Clone() Set {
	c := make(Set, len(s))
	for i, g := range s {
		c[i] = g.Clone()
	}
	return c
}

// HyperPeriod returns the least common multiple of the periods in the set.
// It panics if the set is empty, any period is missing or non-positive, or
// the result overflows an int.
func HyperPeriod(s Set) int {
	if len(s) == 0 {
		panic(ErrEmptySet.Error())
	}
	h := 1
	for i, g := range s {
		p := g.MustPeriod()
		if p <= 0 {
			panic(fmt.Sprintf("dag %d has non-positive period %d", i, p))
		}
		var ok bool
		if h, ok = lcm(h, p); !ok {
			panic(ErrHyperPeriodOverflow.Error())
		}
	}
	return h
}

// lcm returns the least common multiple of two positive ints, or false if it
// overflows.
func lcm(a, b int) (int, bool) {
	q := a / gcd(a, b)
	if q > math.MaxInt/b {
		return 0, false
	}
	return q * b, true
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// Info summarizes a graph for reports.
type Info struct {
	CriticalPathLength int     `yaml:"critical_path_length"`
	Period             int     `yaml:"period,omitempty"`
	EndToEndDeadline   int     `yaml:"end_to_end_deadline,omitempty"`
	Volume             int     `yaml:"volume"`
	Utilization        float64 `yaml:"utilization,omitempty"`
}

// Info returns the graph's summary. Utilization is volume over period and is
// left zero for aperiodic graphs.
func (g *Graph) Info() Info {
	info := Info{
		CriticalPathLength: g.CriticalPathLength(),
		Volume:             g.Volume(),
	}
	if p, ok := g.Period(); ok {
		info.Period = p
		if p > 0 {
			info.Utilization = float64(info.Volume) / float64(p)
		}
	}
	if d, ok := g.EndToEndDeadline(); ok {
		info.EndToEndDeadline = d
	}
	return info
}

// SetInfo summarizes a set for reports.
type SetInfo struct {
	TotalUtilization float64 `yaml:"total_utilization"`
	EachDAGInfo      []Info  `yaml:"each_dag_info"`
}

func (s Set) Info() SetInfo {
	var info SetInfo
	for _, g := range s {
		gi := g.Info()
		info.TotalUtilization += gi.Utilization
		info.EachDAGInfo = append(info.EachDAGInfo, gi)
	}
	return info
}
