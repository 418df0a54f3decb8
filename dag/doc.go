// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package dag models real-time tasks as directed acyclic graphs of sub-jobs
// and provides the structural analyses the schedulers build on: source and
// sink discovery, volume, transitive neighbors, earliest and latest start
// times, critical path enumeration and hyperperiods of task sets.
//
// A Graph's node ids are dense and equal each node's index. Analyses that
// need a single entry or exit point add temporary dummy nodes with
// AddDummySource and AddDummySink and remove them before returning, so a
// graph handed back to its owner never contains them.
//
// Projection provides an id-keyed view over a subset of a graph's nodes for
// analyses that would otherwise clone and shrink the graph.
package dag
