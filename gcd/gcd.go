// Copyright 2026 The ee119a Authors.
// Licensed under the MIT license. See license text in the LICENSE file.

// Package gcd models a bit-serial Euclid GCD calculator using restoring
// subtraction: it always subtracts B from A one bit per tick, and when the
// final carry reports a borrow (A < B) it adds B back and exchanges the two
// registers. Calculation ends when B reaches zero; the result is then held
// in register A until the consumer is ready to read it.
package gcd

import (
	"github.com/pkg/errors"

	"github.com/ElectronicToast/ee119a/rtl"
)

type state int

const (
	stIdle state = iota
	stCheckZero
	stSub
	stRestore
	stSwap
	stDone
)

func (s state) String() string {
	switch s {
	case stIdle:
		return "IDLE"
	case stCheckZero:
		return "CHECK_ZERO"
	case stSub:
		return "SUB"
	case stRestore:
		return "RESTORE"
	case stSwap:
		return "SWAP"
	case stDone:
		return "DONE"
	default:
		return "state(" + string(rune('0'+int(s))) + ")"
	}
}

// A Calc is the port-level model of the GCD calculator.
//
//	Inputs:  A, B (n bits, loaded while idle), NCalculate (active low),
//	         CanReadVals
//	Outputs: Result (n bits), ResultRdy
//
// NCalculate is an asynchronous input and passes through a three-stage
// synchronizer before the FSM sees it. A calculation starts on the falling
// edge of the synchronized level, observed while idle with CanReadVals
// asserted; holding NCalculate low starts exactly one calculation, so the
// synchronizer settling after DONE cannot retrigger with stale operands.
// Operands are sampled continuously while idle; ResultRdy pulses for
// exactly one tick per completed calculation, while CanReadVals is
// asserted, and Result carries gcd(A, B) on that tick.
//
type Calc struct {
	A           rtl.Bits // operand input port
	B           rtl.Bits // operand input port
	NCalculate  bool     // active-low start, asynchronous
	CanReadVals bool     // consumer ready for Result

	Result    rtl.Bits
	ResultRdy bool

	// OnAnomaly, if set, receives protocol violations. The simulation
	// continues deterministically regardless.
	OnAnomaly func(error)

	n     int
	st    state
	regA  *rtl.Register // n bits, ShiftDiscard, fed by the serial subtracter
	regB  *rtl.Register // n bits, Rotate
	cnt   *rtl.Counter  // serial bit position, [0, n]; value n is the borrow observation tick
	carry rtl.CarryFlag
	sync  *rtl.Synchronizer // 3 stages, edge detected on the oldest two
}

// New returns an idle n-bit calculator. It returns a ConfigError if n is
// not in [1, 64].
//
func New(n int) (*Calc, error) {
	if n < 1 || n > rtl.MaxWidth {
		return nil, errors.WithStack(rtl.ConfigError("gcd width out of range [1, 64]"))
	}
	g := &Calc{n: n, NCalculate: true}

	var err error
	if g.A, err = rtl.NewBits(n, 0); err != nil {
		return nil, errors.Wrap(err, "gcd")
	}
	g.B = g.A
	g.Result = g.A
	if g.regA, err = rtl.NewRegister(n, rtl.ShiftDiscard); err != nil {
		return nil, errors.Wrap(err, "gcd")
	}
	if g.regB, err = rtl.NewRegister(n, rtl.Rotate); err != nil {
		return nil, errors.Wrap(err, "gcd")
	}
	if g.cnt, err = rtl.NewCounter(0, n, rtl.WrapToBottom); err != nil {
		return nil, errors.Wrap(err, "gcd")
	}
	// NCalculate idles high; three stages because the FSM starts on the
	// synchronized falling edge
	if g.sync, err = rtl.NewSynchronizer(3, true); err != nil {
		return nil, errors.Wrap(err, "gcd")
	}
	return g, nil
}

// Width returns the operand width n.
//
func (g *Calc) Width() int { return g.n }

// SetOperands sets the A and B input ports from integers truncated to n
// bits.
//
func (g *Calc) SetOperands(a, b uint64) {
	g.A = g.A.WithUint64(a)
	g.B = g.B.WithUint64(b)
}

// Tick advances the calculator by one clock edge.
func (g *Calc) Tick() {
	serialBit := g.cnt.Value() < g.n
	subEn := g.st == stSub && serialBit
	addEn := g.st == stRestore

	// next state
	next := g.st
	switch g.st {
	case stIdle:
		// edge sensitive: one calculation per falling edge of nCalculate
		if g.sync.Fell() && g.CanReadVals {
			next = stCheckZero
		}
	case stCheckZero:
		if g.regB.Bits().IsZero() {
			next = stDone
		} else {
			next = stSub
		}
	case stSub:
		// n subtraction ticks, then one tick observing the registered
		// borrow: carry 0 means the difference went negative
		if g.cnt.AtTop() {
			if g.carry.Get() {
				next = stCheckZero
			} else {
				next = stRestore
			}
		}
	case stRestore:
		if g.cnt.Value() == g.n-1 {
			next = stSwap
		}
	case stSwap:
		next = stCheckZero
	case stDone:
		if g.CanReadVals {
			next = stIdle
		}
	default:
		next = stIdle
	}

	if g.sync.Fell() && g.st != stIdle && g.st != stDone {
		g.report(errors.WithStack(rtl.Violation("gcd: nCalculate asserted while calculating")))
	}

	// datapath
	switch {
	case g.st == stIdle:
		g.regA.Load(g.A)
		g.regB.Load(g.B)
	case g.st == stCheckZero && next == stSub:
		// preset no-borrow before the subtraction chain
		g.carry.Preset()
	case subEn:
		d, cout := rtl.SerialSum(g.regA.LSB(), g.regB.LSB(), g.carry.Get(), true)
		g.regA.ShiftRight(d)
		g.regB.ShiftRight(false)
		g.carry.Set(cout)
	case g.st == stSub && next == stRestore:
		// clear the carry before the add-back chain
		g.carry.ClearFlag()
	case addEn:
		d, cout := rtl.SerialSum(g.regA.LSB(), g.regB.LSB(), g.carry.Get(), false)
		g.regA.ShiftRight(d)
		g.regB.ShiftRight(false)
		g.carry.Set(cout)
	case g.st == stSwap:
		// single-cycle parallel exchange; both loads read pre-commit values
		a := g.regA.Bits()
		g.regA.Load(g.regB.Bits())
		g.regB.Load(a)
	}

	// the bit counter runs in SUB and RESTORE and is held at bottom
	// everywhere else
	running := subEn || addEn
	g.cnt.Advance(!running, running)

	rdy := g.st == stDone && g.CanReadVals

	// commit phase
	g.sync.Sample(g.NCalculate)
	if err := g.sync.Commit(); err != nil {
		g.report(err)
	}
	for _, r := range []*rtl.Register{g.regA, g.regB} {
		if err := r.Commit(); err != nil {
			g.report(err)
		}
	}
	g.cnt.Commit()
	g.carry.Commit()
	g.st = next

	g.Result = g.regA.Bits()
	g.ResultRdy = rdy
}

func (g *Calc) report(err error) {
	if g.OnAnomaly != nil {
		g.OnAnomaly(err)
	}
}
