// Copyright 2026 The ee119a Authors.
// Licensed under the MIT license. See license text in the LICENSE file.

/*
Package ee119a hosts cycle-accurate Go models of a set of synchronous
digital-logic designs: a bit-serial multiplier, a serial GCD calculator, a
JTAG TAP controller, a PWM audio-message player and a few smaller register
and converter blocks.

The designs are built from the primitives in the rtl package (registers,
modular counters, a one-bit serial adder/subtracter and input synchronizers)
and advance in lock step, one Tick per simulated clock edge. Within a tick
every component computes its next value from the pre-tick state and commits
it afterwards, so evaluation order never matters.

This package itself contains no code; see the rtl, mult, gcd, jtag, pwm,
shifter and bcd packages.
*/
package ee119a
