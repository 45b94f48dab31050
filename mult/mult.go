// Copyright 2026 The ee119a Authors.
// Licensed under the MIT license. See license text in the LICENSE file.

// Package mult models an n by n bit-serial multiplier producing a 2n-bit
// product with a one-bit adder, three shift registers and two counters.
//
// The multiplication runs for exactly 2n² ticks, independent of the operand
// values: n passes of 2n ticks each. During a pass the 2n-bit product
// register Q recirculates once through the serial adder, accumulating the
// partial product selected by the multiplier register B; the multiplicand
// register A pauses its rotation for one tick per pass so that its bits line
// up with the next partial-product position, and B rotates once at the end
// of each pass to present the next multiplier bit.
package mult

import (
	"github.com/pkg/errors"

	"github.com/ElectronicToast/ee119a/rtl"
)

type state int

const (
	stIdle state = iota
	stMultiplying
	stFinished
)

func (s state) String() string {
	switch s {
	case stIdle:
		return "IDLE"
	case stMultiplying:
		return "MULTIPLYING"
	case stFinished:
		return "FINISHED"
	default:
		return "state(" + string(rune('0'+int(s))) + ")"
	}
}

// A Multiplier is the port-level model of the bit-serial multiplier. Inputs
// are sampled and outputs updated on every call to Tick.
//
//	Inputs:  A, B (n bits, loaded while idle), Start
//	Outputs: Q (2n bits), Done
//
// Done pulses high for exactly one tick when the product is ready; Q then
// holds the product until the next Start is observed. Q is synchronously
// cleared on the tick a Start is observed from idle, before any partial
// product accumulates.
//
type Multiplier struct {
	A     rtl.Bits // multiplicand input port
	B     rtl.Bits // multiplier input port
	Start bool
	Q     rtl.Bits // product output port
	Done  bool

	// OnAnomaly, if set, receives protocol violations (such as Start
	// asserted mid-computation). The simulation continues deterministically
	// regardless.
	OnAnomaly func(error)

	n    int
	st   state
	areg *rtl.Register // n bits, Rotate
	breg *rtl.Register // n bits, Rotate
	qreg *rtl.Register // 2n bits, ShiftDiscard, fed by the serial adder
	cntQ *rtl.Counter  // tick within the current pass, [0, 2n-1], wraps
	cntB *rtl.Counter  // completed passes, [0, n-1], holds at top

	carry rtl.CarryFlag
}

// New returns an idle n-bit multiplier with both operands and the product
// cleared. It returns a ConfigError if n is not in [1, 32] (the product must
// fit a 2n-bit vector).
//
func New(n int) (*Multiplier, error) {
	if n < 1 || n > rtl.MaxWidth/2 {
		return nil, errors.WithStack(rtl.ConfigError("multiplier width out of range [1, 32]"))
	}
	m := &Multiplier{n: n}

	var err error
	if m.A, err = rtl.NewBits(n, 0); err != nil {
		return nil, errors.Wrap(err, "multiplier")
	}
	m.B = m.A
	if m.Q, err = rtl.NewBits(2*n, 0); err != nil {
		return nil, errors.Wrap(err, "multiplier")
	}
	if m.areg, err = rtl.NewRegister(n, rtl.Rotate); err != nil {
		return nil, errors.Wrap(err, "multiplier")
	}
	if m.breg, err = rtl.NewRegister(n, rtl.Rotate); err != nil {
		return nil, errors.Wrap(err, "multiplier")
	}
	if m.qreg, err = rtl.NewRegister(2*n, rtl.ShiftDiscard); err != nil {
		return nil, errors.Wrap(err, "multiplier")
	}
	if m.cntQ, err = rtl.NewCounter(0, 2*n-1, rtl.WrapToBottom); err != nil {
		return nil, errors.Wrap(err, "multiplier")
	}
	if m.cntB, err = rtl.NewCounter(0, n-1, rtl.HoldAtTop); err != nil {
		return nil, errors.Wrap(err, "multiplier")
	}
	return m, nil
}

// Width returns the operand width n.
//
func (m *Multiplier) Width() int { return m.n }

// SetOperands sets the A and B input ports from integers truncated to n
// bits.
//
func (m *Multiplier) SetOperands(a, b uint64) {
	m.A = m.A.WithUint64(a)
	m.B = m.B.WithUint64(b)
}

// Tick advances the multiplier by one clock edge. All control signals are
// decoded from the pre-edge state and every storage element is committed at
// the end, so nothing observes a post-edge value within the same tick.
func (m *Multiplier) Tick() {
	idle := m.st == stIdle
	multiplying := m.st == stMultiplying

	// control decode
	loadRegs := idle
	clearQ := idle && m.Start
	carryClear := idle
	serEnQ := multiplying
	serEnA := multiplying && !m.cntQ.AtTop()
	serEnB := multiplying && m.cntQ.AtTop()
	// the partial-product bit for pass k aligns with Q positions
	// k .. k+n-1 of the pass
	j, k := m.cntQ.Value(), m.cntB.Value()
	adderEnable := multiplying && j >= k && j < k+m.n

	// next state
	next := m.st
	switch m.st {
	case stIdle:
		if m.Start {
			next = stMultiplying
		}
	case stMultiplying:
		if m.cntB.AtTop() && m.cntQ.AtTop() {
			next = stFinished
		}
		if m.Start {
			m.report(errors.WithStack(rtl.Violation("multiplier: Start asserted while multiplying")))
		}
	case stFinished:
		next = stIdle
	default:
		// unreachable, but every case analysis keeps an explicit default
		next = stIdle
	}

	// datapath
	if loadRegs {
		m.areg.Load(m.A)
		m.breg.Load(m.B)
	}
	if clearQ {
		m.qreg.Clear()
	}
	if carryClear {
		m.carry.ClearFlag()
	}
	if serEnA {
		m.areg.ShiftRight(false)
	}
	if serEnB {
		m.breg.ShiftRight(false)
	}
	if serEnQ {
		// the pre-shift LSB of Q is the adder's first operand on the same
		// tick its position is refilled through the MSB
		pp := m.areg.LSB() && m.breg.LSB() && adderEnable
		sum, cout := rtl.SerialSum(m.qreg.LSB(), pp, m.carry.Get(), false)
		m.qreg.ShiftRight(sum)
		m.carry.Set(cout)
	}

	m.cntQ.Advance(idle, serEnQ)
	m.cntB.Advance(idle, serEnQ && m.cntQ.AtTop())

	// commit phase
	for _, r := range []*rtl.Register{m.areg, m.breg, m.qreg} {
		if err := r.Commit(); err != nil {
			m.report(err)
		}
	}
	m.cntQ.Commit()
	m.cntB.Commit()
	m.carry.Commit()
	m.st = next

	m.Q = m.qreg.Bits()
	m.Done = m.st == stFinished
}

func (m *Multiplier) report(err error) {
	if m.OnAnomaly != nil {
		m.OnAnomaly(err)
	}
}
