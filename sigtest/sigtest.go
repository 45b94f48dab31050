// Copyright 2026 The ee119a Authors.
// Licensed under the MIT license. See license text in the LICENSE file.

// Package sigtest provides utility functions for testing the clocked designs
// in this repository: it drives a machine tick by tick the way a testbench
// drives a clock, with an upper bound on how long it is prepared to wait for
// an output to assert.
//
package sigtest

import (
	"math/rand"
	"testing"
)

// A Machine is any synchronous design that advances by one clock edge per
// Tick call.
//
type Machine interface {
	Tick()
}

// TickN advances m by n ticks.
//
func TickN(m Machine, n int) {
	for i := 0; i < n; i++ {
		m.Tick()
	}
}

// RunUntil ticks m until done reports true, failing t if that takes more
// than limit ticks. It returns the number of ticks consumed. done is
// evaluated after each tick, so a result of 1 means the first tick asserted
// the condition.
//
func RunUntil(t *testing.T, m Machine, limit int, done func() bool) int {
	t.Helper()
	for i := 1; i <= limit; i++ {
		m.Tick()
		if done() {
			return i
		}
	}
	t.Fatalf("condition not asserted within %d ticks", limit)
	return 0
}

// Operands returns count random operand pairs in [0, 2^width), always
// including the all-zeroes and all-ones corner pairs first.
//
func Operands(rng *rand.Rand, width, count int) [][2]uint64 {
	max := uint64(1)<<uint(width) - 1
	ops := [][2]uint64{{0, 0}, {max, max}, {0, max}, {max, 0}}
	for len(ops) < count {
		ops = append(ops, [2]uint64{rng.Uint64() & max, rng.Uint64() & max})
	}
	return ops
}
