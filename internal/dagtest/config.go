// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package dagtest

var DefaultConfig = Config{
	Graph: GraphConfig{
		NodeCount:       IntRange{Min: 1, Med: 6, Max: 20},
		ExecutionTime:   IntRange{Min: 1, Med: 3, Max: 15},
		EdgeProbability: 0.3,
	},
	Set: SetConfig{
		DAGCount: IntRange{Min: 1, Med: 2, Max: 4},
		Periods:  []int{20, 40, 60, 120},
		Offset:   IntRange{Min: 0, Med: 0, Max: 10},
	},
	Cores: IntRange{Min: 1, Med: 2, Max: 8},
}

type Config struct {
	Graph GraphConfig
	Set   SetConfig
	Cores IntRange
}

type GraphConfig struct {
	NodeCount       IntRange
	ExecutionTime   IntRange
	EdgeProbability float64
}

type SetConfig struct {
	DAGCount IntRange
	// Periods are sampled per graph; keeping them few and harmonic keeps
	// the hyperperiod short.
	Periods []int
	Offset  IntRange
}
