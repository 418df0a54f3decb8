// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package dagtest

import (
	"fmt"

	"pgregory.net/rapid"
)

// IntRange draws integers in [Min, Max] that cluster around Med.
type IntRange struct {
	Min int
	Med int
	Max int
}

// Generator returns a rapid generator for the range. rapid favors values
// near zero and at the bounds, so drawing the offset from Med centers the
// distribution on it.
func (r IntRange) Generator() *rapid.Generator[int] {
	if r.Med < r.Min || r.Max < r.Med {
		panic(fmt.Sprintf("invalid IntRange %+v", r))
	}
	return rapid.Custom(func(t *rapid.T) int {
		return r.Med + rapid.IntRange(r.Min-r.Med, r.Max-r.Med).Draw(t, "offset")
	})
}

func (r IntRange) Draw(t *rapid.T, label string) int {
	return r.Generator().Draw(t, label)
}

// Chance returns a generator that yields true with probability p.
func Chance(p float64) *rapid.Generator[bool] {
	return rapid.Custom(func(t *rapid.T) bool {
		if p >= 1 {
			return true
		}
		return rapid.Float64Range(0, 1).Filter(func(v float64) bool { return v < 1 }).Draw(t, "roll") < p
	})
}
