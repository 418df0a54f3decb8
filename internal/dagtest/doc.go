// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package dagtest generates random task graphs and task sets for property
// tests. Graphs are built by adding nodes in id order and drawing edges only
// from lower to higher ids, so every generated graph is acyclic. Sizes,
// costs, edge densities and periods are drawn according to a Config whose
// integer fields are biased toward a median value.
package dagtest
