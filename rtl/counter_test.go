// Copyright 2026 The ee119a Authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package rtl_test

import (
	"testing"

	"github.com/ElectronicToast/ee119a/rtl"
)

func TestCounterHoldAtTop(t *testing.T) {
	c, err := rtl.NewCounter(0, 3, rtl.HoldAtTop)
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i <= 3; i++ {
		c.Advance(false, true)
		c.Commit()
		if c.Value() != i {
			t.Fatalf("expected %d, got %d", i, c.Value())
		}
	}
	if !c.AtTop() {
		t.Fatal("expected counter at top")
	}
	// incrementing at top is a no-op under HoldAtTop
	c.Advance(false, true)
	c.Commit()
	if c.Value() != 3 {
		t.Fatalf("expected hold at 3, got %d", c.Value())
	}
}

func TestCounterWrapToBottom(t *testing.T) {
	c, _ := rtl.NewCounter(2, 4, rtl.WrapToBottom)
	want := []int{3, 4, 2, 3}
	for _, w := range want {
		c.Advance(false, true)
		c.Commit()
		if c.Value() != w {
			t.Fatalf("expected %d, got %d", w, c.Value())
		}
	}
}

func TestCounterResetPrecedence(t *testing.T) {
	c, _ := rtl.NewCounter(0, 7, rtl.HoldAtTop)
	c.Advance(false, true)
	c.Commit()
	c.Advance(true, true) // reset wins over enable
	c.Commit()
	if !c.AtBottom() {
		t.Fatalf("expected reset to bottom, got %d", c.Value())
	}
}

func TestCounterTwoPhase(t *testing.T) {
	c, _ := rtl.NewCounter(0, 7, rtl.HoldAtTop)
	c.Advance(false, true)
	if c.Value() != 0 {
		t.Fatal("staged advance visible before commit")
	}
	c.Commit()
	if c.Value() != 1 {
		t.Fatalf("expected 1, got %d", c.Value())
	}
	// commit without advance holds
	c.Commit()
	if c.Value() != 1 {
		t.Fatalf("hold failed, got %d", c.Value())
	}
}

func TestCounterConfigErrors(t *testing.T) {
	if _, err := rtl.NewCounter(5, 4, rtl.HoldAtTop); err == nil {
		t.Error("expected error for bottom > top")
	}
	if _, err := rtl.NewCounter(0, 0, rtl.TopPolicy(7)); err == nil {
		t.Error("expected error for bad policy")
	}
}
