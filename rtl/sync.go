// Copyright 2026 The ee119a Authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package rtl

import (
	"strconv"

	"github.com/pkg/errors"
)

// A Synchronizer carries an asynchronous external input into the clock
// domain through a fixed-depth shift chain before any FSM is allowed to look
// at it. Two stages suffice for level inputs; use three when the consuming
// FSM needs edge detection. Skipping the synchronizer would change
// cycle-exact timing relative to the original designs, so this is a design
// rule rather than an implementation detail.
//
// Sample stages the next raw input; Commit advances the chain. Out, Rose and
// Fell read the pre-commit stages.
//
type Synchronizer struct {
	reg *Register
}

// NewSynchronizer returns a synchronizer with the given number of stages
// (2 or 3), all initialized to the idle level init. Initializing to the idle
// level matters for active-low inputs, which would otherwise read as
// asserted for the first stages ticks.
//
func NewSynchronizer(stages int, init bool) (*Synchronizer, error) {
	if stages < 2 || stages > 3 {
		return nil, errors.WithStack(ConfigError("synchronizer stage count " + strconv.Itoa(stages) + " not 2 or 3"))
	}
	r, err := NewRegister(stages, ShiftDiscard)
	if err != nil {
		return nil, errors.Wrap(err, "synchronizer")
	}
	if init {
		v := r.Bits().WithUint64(mask(stages))
		r.Load(v)
		if err := r.Commit(); err != nil {
			return nil, err
		}
	}
	return &Synchronizer{reg: r}, nil
}

// Sample stages the raw input into the first stage.
//
func (s *Synchronizer) Sample(in bool) {
	s.reg.ShiftRight(in)
}

// Out returns the synchronized level: the oldest stage of the chain.
//
func (s *Synchronizer) Out() bool {
	return s.reg.Bit(0)
}

// Rose reports a low-to-high transition between the two oldest stages.
//
func (s *Synchronizer) Rose() bool {
	return s.reg.Bit(1) && !s.reg.Bit(0)
}

// Fell reports a high-to-low transition between the two oldest stages.
//
func (s *Synchronizer) Fell() bool {
	return !s.reg.Bit(1) && s.reg.Bit(0)
}

// Commit advances the chain by one stage.
//
func (s *Synchronizer) Commit() error {
	return s.reg.Commit()
}
