// Copyright 2026 The ee119a Authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package rtl

import (
	"strconv"

	"github.com/pkg/errors"
)

// TopPolicy selects what an enabled Counter does when asked to increment
// past its top value.
//
type TopPolicy int

const (
	// HoldAtTop: incrementing at top is a no-op. The controlling FSM, not
	// the counter, is responsible for leaving the state that drives the
	// enable once it has observed the top condition.
	HoldAtTop TopPolicy = iota
	// WrapToBottom: incrementing at top returns the counter to bottom.
	WrapToBottom
)

// A Counter is a bounded counter with synchronous reset-to-bottom. Like
// Register it is two-phase: Advance stages the next value, Commit applies
// it, and Value/AtTop always read the pre-commit value.
//
type Counter struct {
	bottom, top int
	policy      TopPolicy
	cur         int
	next        int
	staged      bool
}

// NewCounter returns a counter ranging over [bottom, top], initialized to
// bottom. It returns a ConfigError if bottom > top.
//
func NewCounter(bottom, top int, policy TopPolicy) (*Counter, error) {
	if bottom > top {
		return nil, errors.WithStack(ConfigError("counter bottom " + strconv.Itoa(bottom) + " above top " + strconv.Itoa(top)))
	}
	if policy != HoldAtTop && policy != WrapToBottom {
		return nil, errors.WithStack(ConfigError("counter policy " + strconv.Itoa(int(policy)) + " is not HoldAtTop or WrapToBottom"))
	}
	return &Counter{bottom: bottom, top: top, policy: policy, cur: bottom}, nil
}

// Value returns the current (pre-commit) count.
//
func (c *Counter) Value() int { return c.cur }

// AtTop reports whether the current count equals top.
//
func (c *Counter) AtTop() bool { return c.cur == c.top }

// AtBottom reports whether the current count equals bottom.
//
func (c *Counter) AtBottom() bool { return c.cur == c.bottom }

// Advance stages the next count. Reset takes precedence over enable: if
// reset, the next count is bottom regardless of enable. Otherwise if enable,
// the count increments, saturating or wrapping at top according to the
// counter's TopPolicy. With neither set the count holds.
//
func (c *Counter) Advance(reset, enable bool) {
	switch {
	case reset:
		c.next = c.bottom
	case !enable:
		c.next = c.cur
	case c.cur < c.top:
		c.next = c.cur + 1
	case c.policy == WrapToBottom:
		c.next = c.bottom
	default: // HoldAtTop
		c.next = c.cur
	}
	c.staged = true
}

// Commit latches the value staged by Advance, or holds if Advance was not
// called this tick.
//
func (c *Counter) Commit() {
	if c.staged {
		c.cur = c.next
		c.staged = false
	}
}
