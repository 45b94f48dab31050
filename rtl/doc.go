// Copyright 2026 The ee119a Authors.
// Licensed under the MIT license. See license text in the LICENSE file.

/*
Package rtl provides the register-transfer-level primitives shared by all of
the designs in this repository: fixed-width bit vectors, clocked registers
with rotate or shift-with-discard semantics, bounded counters, a one-bit
serial adder/subtracter with a registered carry flag, and multi-stage input
synchronizers.

All clocked primitives follow the same two-phase protocol. During a tick a
design stages at most one write per primitive (Load, Clear, ShiftRight, ...)
while every read still returns the pre-tick value. Once all next values have
been staged the design calls Commit on each primitive. Staging nothing holds
the current value. This reproduces the end-of-process signal update semantics
of the original hardware descriptions and makes evaluation order within a
tick irrelevant.
*/
package rtl
