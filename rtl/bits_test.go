// Copyright 2026 The ee119a Authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package rtl_test

import (
	"errors"
	"testing"

	"github.com/ElectronicToast/ee119a/rtl"
)

func TestNewBits(t *testing.T) {
	for _, w := range []int{0, -1, 65} {
		if _, err := rtl.NewBits(w, 0); err == nil {
			t.Errorf("NewBits(%d, 0): expected error", w)
		}
	}
	b, err := rtl.NewBits(4, 0x35)
	if err != nil {
		t.Fatal(err)
	}
	if b.Uint64() != 5 {
		t.Errorf("expected value truncated to 5, got %d", b.Uint64())
	}
	if b.String() != "0101" {
		t.Errorf("expected string 0101, got %s", b.String())
	}
	if !b.LSB() || b.MSB() {
		t.Errorf("bad LSB/MSB for %s", b)
	}
}

func TestBitsConfigError(t *testing.T) {
	_, err := rtl.NewBits(0, 0)
	var ce rtl.ConfigError
	if !errors.As(err, &ce) {
		t.Fatalf("expected a ConfigError, got %v", err)
	}
}

func TestBitsSetBit(t *testing.T) {
	b, _ := rtl.NewBits(8, 0)
	b = b.SetBit(0, true).SetBit(7, true).SetBit(3, true).SetBit(3, false)
	if b.Uint64() != 0x81 {
		t.Errorf("expected 0x81, got %#x", b.Uint64())
	}
	defer func() {
		if recover() == nil {
			t.Error("expected panic on out of range index")
		}
	}()
	b.Bit(8)
}

func TestBitsWidth64(t *testing.T) {
	b, err := rtl.NewBits(64, ^uint64(0))
	if err != nil {
		t.Fatal(err)
	}
	if b.Uint64() != ^uint64(0) || !b.MSB() {
		t.Errorf("bad 64-bit vector %#x", b.Uint64())
	}
}
