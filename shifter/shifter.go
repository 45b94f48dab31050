// Copyright 2026 The ee119a Authors.
// Licensed under the MIT license. See license text in the LICENSE file.

// Package shifter models a generic universal shift register in the style of
// the 74x194: per-tick mode selection between hold, shift right, shift left
// and parallel load, with serial inputs at both ends and a synchronous
// clear that overrides the mode.
package shifter

import (
	"github.com/pkg/errors"

	"github.com/ElectronicToast/ee119a/rtl"
)

// Mode selects the operation performed on the next tick.
//
type Mode int

const (
	Hold Mode = iota
	ShiftRight
	ShiftLeft
	Load
)

// A Shifter is the port-level universal shift register model.
//
//	Inputs:  Mode, In (parallel), SerRight (enters the MSB when shifting
//	         right), SerLeft (enters the LSB when shifting left), Clear
//	Outputs: Q
//
type Shifter struct {
	Mode     Mode
	In       rtl.Bits
	SerRight bool
	SerLeft  bool
	Clear    bool
	Q        rtl.Bits

	reg *rtl.Register
}

// New returns a width-bit shifter cleared to zero.
//
func New(width int) (*Shifter, error) {
	reg, err := rtl.NewRegister(width, rtl.ShiftDiscard)
	if err != nil {
		return nil, errors.Wrap(err, "shifter")
	}
	s := &Shifter{reg: reg, Q: reg.Bits()}
	if s.In, err = rtl.NewBits(width, 0); err != nil {
		return nil, errors.Wrap(err, "shifter")
	}
	return s, nil
}

// Width returns the register width.
//
func (s *Shifter) Width() int { return s.reg.Width() }

// Tick advances the shifter by one clock edge.
func (s *Shifter) Tick() {
	// clear dominates the mode; exactly one write source is ever staged
	switch {
	case s.Clear:
		s.reg.Clear()
	case s.Mode == ShiftRight:
		s.reg.ShiftRight(s.SerRight)
	case s.Mode == ShiftLeft:
		s.reg.ShiftLeft(s.SerLeft)
	case s.Mode == Load:
		s.reg.Load(s.In)
	default: // Hold and any undefined mode value
	}
	_ = s.reg.Commit() // the switch stages at most one source, no conflict
	s.Q = s.reg.Bits()
}
