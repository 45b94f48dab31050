// Copyright 2026 The ee119a Authors.
// Licensed under the MIT license. See license text in the LICENSE file.

// Package bcd models a serial BCD-to-binary converter using the
// shift-and-subtract-3 method (the reverse of the classic double-dabble
// binary-to-BCD converter): the packed BCD digits and the binary result
// form one long shift chain that shifts right once per tick, and after each
// shift any BCD digit of 8 or more has 3 subtracted from it.
package bcd

import (
	"strconv"

	"github.com/pkg/errors"

	"github.com/ElectronicToast/ee119a/rtl"
)

type state int

const (
	stIdle state = iota
	stConvert
	stDone
)

// A Converter turns a packed-BCD value into binary, one bit per tick.
//
//	Inputs:  Digits (4 bits per BCD digit, least significant digit in the
//	         low nibble, loaded while idle), Start
//	Outputs: Value (binary), Done
//
// Done pulses for one tick when Value is valid; the conversion takes
// exactly as many ticks as Value has bits. A Digits input containing a
// nibble above 9 is not valid BCD: it is reported through OnAnomaly and
// converted anyway, producing a deterministic (but meaningless) result.
//
type Converter struct {
	Digits rtl.Bits
	Start  bool
	Value  rtl.Bits
	Done   bool

	// OnAnomaly, if set, receives protocol violations.
	OnAnomaly func(error)

	digits int
	st     state
	bcdReg *rtl.Register // 4*digits bits
	binReg *rtl.Register // result bits, fed from the BCD chain's LSB
	cnt    *rtl.Counter
}

// New returns an idle converter for the given number of BCD digits
// (1 to 16). The binary width is the smallest that can hold the largest
// digits-digit decimal value.
//
func New(digits int) (*Converter, error) {
	if digits < 1 || digits > 16 {
		return nil, errors.WithStack(rtl.ConfigError("BCD digit count out of range [1, 16]"))
	}
	c := &Converter{digits: digits}

	// smallest n with 10^digits - 1 < 2^n
	max := uint64(1)
	for i := 0; i < digits; i++ {
		max *= 10
	}
	max--
	n := 1
	for max>>uint(n) != 0 {
		n++
	}

	var err error
	if c.Digits, err = rtl.NewBits(4*digits, 0); err != nil {
		return nil, errors.Wrap(err, "bcd")
	}
	if c.Value, err = rtl.NewBits(n, 0); err != nil {
		return nil, errors.Wrap(err, "bcd")
	}
	if c.bcdReg, err = rtl.NewRegister(4*digits, rtl.ShiftDiscard); err != nil {
		return nil, errors.Wrap(err, "bcd")
	}
	if c.binReg, err = rtl.NewRegister(n, rtl.ShiftDiscard); err != nil {
		return nil, errors.Wrap(err, "bcd")
	}
	if c.cnt, err = rtl.NewCounter(0, n-1, rtl.WrapToBottom); err != nil {
		return nil, errors.Wrap(err, "bcd")
	}
	return c, nil
}

// Width returns the binary result width in bits.
//
func (c *Converter) Width() int { return c.binReg.Width() }

// adjusted returns v shifted right one bit with 3 subtracted from every
// digit that ends up at 8 or above.
func (c *Converter) adjusted() uint64 {
	v := c.bcdReg.Bits().Uint64() >> 1
	for i := uint(0); i < uint(c.digits); i++ {
		if v>>(4*i)&0xf >= 8 {
			v -= 3 << (4 * i)
		}
	}
	return v
}

// Tick advances the converter by one clock edge.
func (c *Converter) Tick() {
	converting := c.st == stConvert

	next := c.st
	switch c.st {
	case stIdle:
		if c.Start {
			next = stConvert
			for i := uint(0); i < uint(c.digits); i++ {
				if d := c.Digits.Uint64() >> (4 * i) & 0xf; d > 9 {
					c.report(errors.WithStack(rtl.Violation(
						"bcd: digit " + strconv.FormatUint(uint64(i), 10) + " holds " + strconv.FormatUint(d, 10))))
				}
			}
		}
	case stConvert:
		if c.cnt.AtTop() {
			next = stDone
		}
	case stDone:
		next = stIdle
	default:
		next = stIdle
	}

	if c.st == stIdle {
		c.bcdReg.Load(c.Digits)
		if c.Start {
			c.binReg.Clear()
		}
	}
	if converting {
		c.binReg.ShiftRight(c.bcdReg.LSB())
		c.bcdReg.Load(c.bcdReg.Bits().WithUint64(c.adjusted()))
	}

	c.cnt.Advance(c.st == stIdle, converting)

	if err := c.bcdReg.Commit(); err != nil {
		c.report(err)
	}
	if err := c.binReg.Commit(); err != nil {
		c.report(err)
	}
	c.cnt.Commit()
	c.st = next

	c.Value = c.binReg.Bits()
	c.Done = c.st == stDone
}

func (c *Converter) report(err error) {
	if c.OnAnomaly != nil {
		c.OnAnomaly(err)
	}
}
