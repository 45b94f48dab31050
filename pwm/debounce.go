// Copyright 2026 The ee119a Authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package pwm

import (
	"github.com/pkg/errors"

	"github.com/ElectronicToast/ee119a/rtl"
)

// A Debouncer conditions a mechanical switch input: the raw level passes
// through a two-stage synchronizer and must then hold steady for a
// configured number of ticks before the debounced level follows it.
//
// Like the rtl primitives it is two-phase: Sample stages the raw input,
// Commit advances, and Level/Pressed read pre-commit state. Pressed is a
// one-tick pulse on the debounced low-to-high transition.
//
type Debouncer struct {
	sync  *rtl.Synchronizer
	cnt   *rtl.Counter
	level bool
	press bool

	nextLevel bool
	nextPress bool
}

// NewDebouncer returns a debouncer requiring hold stable ticks (at least 1)
// before a level change is accepted.
//
func NewDebouncer(hold int) (*Debouncer, error) {
	if hold < 1 {
		return nil, errors.WithStack(rtl.ConfigError("debounce hold count below 1"))
	}
	d := &Debouncer{}
	var err error
	if d.sync, err = rtl.NewSynchronizer(2, false); err != nil {
		return nil, errors.Wrap(err, "debouncer")
	}
	if d.cnt, err = rtl.NewCounter(0, hold-1, rtl.HoldAtTop); err != nil {
		return nil, errors.Wrap(err, "debouncer")
	}
	return d, nil
}

// Level returns the debounced level.
//
func (d *Debouncer) Level() bool { return d.level }

// Pressed reports a debounced low-to-high transition; it is high for
// exactly one tick per press.
//
func (d *Debouncer) Pressed() bool { return d.press }

// Sample stages the raw switch level for this tick.
//
func (d *Debouncer) Sample(raw bool) {
	in := d.sync.Out()
	accept := in != d.level && d.cnt.AtTop()
	// the stability counter runs while the synchronized input disagrees
	// with the accepted level and resets the moment they agree
	d.cnt.Advance(in == d.level || accept, in != d.level)
	d.nextLevel = d.level
	d.nextPress = false
	if accept {
		d.nextLevel = in
		d.nextPress = in
	}
	d.sync.Sample(raw)
}

// Commit latches the state staged by Sample.
//
func (d *Debouncer) Commit() error {
	err := d.sync.Commit()
	d.cnt.Commit()
	d.level = d.nextLevel
	d.press = d.nextPress
	return err
}
