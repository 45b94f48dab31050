// Copyright 2026 The ee119a Authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package rtl

// SerialSum is a one-bit full adder/subtracter. It computes one bit of
// a + b + carry, or of a - b when subtract is set, returning the result bit
// and the carry out.
//
// Subtraction follows the usual bit-serial convention: the subtrahend bit is
// inverted and the carry flag is preset to 1 before the first bit, so the
// chain computes a + ^b + 1 = a - b and the final carry out is 1 exactly
// when no borrow occurred (a >= b). All arithmetic in this repository is
// unsigned; a "negative" difference is detected only through that missing
// final carry, never through a sign bit.
//
func SerialSum(a, b, carry, subtract bool) (sum, carryOut bool) {
	if subtract {
		b = !b
	}
	sum = (a != b) != carry
	carryOut = a && b || carry && (a != b)
	return sum, carryOut
}

// A CarryFlag is the registered carry/borrow bit chained between successive
// SerialSum steps of a multi-cycle operation. Its preset/clear timing is
// part of each design's control decode: preset to 1 before a subtraction
// chain, cleared to 0 before an addition chain.
//
type CarryFlag struct {
	cur    bool
	next   bool
	staged bool
}

// Get returns the current (pre-commit) flag.
//
func (f *CarryFlag) Get() bool { return f.cur }

// Set stages the next flag value.
//
func (f *CarryFlag) Set(v bool) {
	f.next = v
	f.staged = true
}

// Preset stages the flag to 1 (the no-borrow polarity used to start a
// subtraction chain).
//
func (f *CarryFlag) Preset() { f.Set(true) }

// ClearFlag stages the flag to 0 (used to start an addition chain).
//
func (f *CarryFlag) ClearFlag() { f.Set(false) }

// Commit latches the staged value, or holds if nothing was staged.
//
func (f *CarryFlag) Commit() {
	if f.staged {
		f.cur = f.next
		f.staged = false
	}
}
