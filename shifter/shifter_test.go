// Copyright 2026 The ee119a Authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package shifter_test

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/ElectronicToast/ee119a/rtl"
	"github.com/ElectronicToast/ee119a/shifter"
)

func TestShifterModes(t *testing.T) {
	s, err := shifter.New(4)
	if err != nil {
		t.Fatal(err)
	}

	s.In = s.In.WithUint64(0x9) // 1001
	s.Mode = shifter.Load
	s.Tick()
	if s.Q.Uint64() != 0x9 {
		t.Fatalf("load: Q=%s, want 1001", s.Q)
	}

	s.Mode = shifter.Hold
	s.Tick()
	if s.Q.Uint64() != 0x9 {
		t.Fatalf("hold: Q=%s, want 1001", s.Q)
	}

	s.Mode = shifter.ShiftRight
	s.SerRight = true
	s.Tick()
	if s.Q.Uint64() != 0xc { // 1100
		t.Fatalf("shift right: Q=%s, want 1100", s.Q)
	}

	s.Mode = shifter.ShiftLeft
	s.SerLeft = false
	s.Tick()
	if s.Q.Uint64() != 0x8 { // 1000
		t.Fatalf("shift left: Q=%s, want 1000", s.Q)
	}

	s.Mode = shifter.Load // clear overrides the mode
	s.Clear = true
	s.Tick()
	if !s.Q.IsZero() {
		t.Fatalf("clear: Q=%s, want 0000", s.Q)
	}
}

func TestShifterAgainstReference(t *testing.T) {
	// random mode walk against a software model
	s, err := shifter.New(8)
	if err != nil {
		t.Fatal(err)
	}
	rng := rand.New(rand.NewSource(194))
	var ref uint64
	for i := 0; i < 2000; i++ {
		mode := shifter.Mode(rng.Intn(4))
		in := rng.Uint64() & 0xff
		sr, sl := rng.Intn(2) == 1, rng.Intn(2) == 1

		s.Mode, s.SerRight, s.SerLeft = mode, sr, sl
		s.In = s.In.WithUint64(in)
		s.Tick()

		switch mode {
		case shifter.ShiftRight:
			ref >>= 1
			if sr {
				ref |= 0x80
			}
		case shifter.ShiftLeft:
			ref = ref << 1 & 0xff
			if sl {
				ref |= 1
			}
		case shifter.Load:
			ref = in
		}
		if s.Q.Uint64() != ref {
			t.Fatalf("step %d (mode %d): Q=%#x, want %#x", i, mode, s.Q.Uint64(), ref)
		}
	}
}

func TestShifterConfig(t *testing.T) {
	if _, err := shifter.New(0); err == nil {
		t.Error("expected error for zero width")
	}
	var ce rtl.ConfigError
	_, err := shifter.New(-2)
	if !errors.As(err, &ce) {
		t.Errorf("expected a ConfigError, got %v", err)
	}
}
