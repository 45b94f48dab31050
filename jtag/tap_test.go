// Copyright 2026 The ee119a Authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package jtag_test

import (
	"testing"

	"github.com/ElectronicToast/ee119a/jtag"
)

const testID = 0x1493d043

func step(t *jtag.TAP, tms, tdi bool) bool {
	t.TMS, t.TDI = tms, tdi
	t.Tick()
	return t.TDO
}

// walk applies a TMS sequence with TDI low.
func walk(t *jtag.TAP, tms ...int) {
	for _, b := range tms {
		step(t, b != 0, false)
	}
}

func newTAP(t *testing.T) *jtag.TAP {
	t.Helper()
	tap, err := jtag.New(4, testID)
	if err != nil {
		t.Fatal(err)
	}
	tap.OnAnomaly = func(err error) { t.Errorf("unexpected anomaly: %v", err) }
	return tap
}

func TestTAPResetState(t *testing.T) {
	tap := newTAP(t)
	if tap.State() != jtag.TestLogicReset {
		t.Fatalf("initial state %v, want Test-Logic-Reset", tap.State())
	}
	if tap.Instruction() != 1 {
		t.Fatalf("initial instruction %#x, want IDCODE (1)", tap.Instruction())
	}
}

func TestTAPStateWalk(t *testing.T) {
	tap := newTAP(t)
	// the canonical tour: reset -> idle -> full DR column -> full IR column
	seq := []struct {
		tms  int
		want jtag.State
	}{
		{0, jtag.RunTestIdle},
		{1, jtag.SelectDRScan},
		{0, jtag.CaptureDR},
		{0, jtag.ShiftDR},
		{1, jtag.Exit1DR},
		{0, jtag.PauseDR},
		{1, jtag.Exit2DR},
		{0, jtag.ShiftDR},
		{1, jtag.Exit1DR},
		{1, jtag.UpdateDR},
		{1, jtag.SelectDRScan},
		{1, jtag.SelectIRScan},
		{0, jtag.CaptureIR},
		{0, jtag.ShiftIR},
		{1, jtag.Exit1IR},
		{0, jtag.PauseIR},
		{1, jtag.Exit2IR},
		{1, jtag.UpdateIR},
		{0, jtag.RunTestIdle},
	}
	for i, s := range seq {
		step(tap, s.tms != 0, false)
		if tap.State() != s.want {
			t.Fatalf("step %d (TMS=%d): state %v, want %v", i, s.tms, tap.State(), s.want)
		}
	}
}

func TestTAPFiveOnesReset(t *testing.T) {
	// five consecutive TMS=1 ticks reach Test-Logic-Reset from any state
	starts := map[string][]int{
		"Run-Test/Idle": {0},
		"Shift-DR":      {0, 1, 0, 0},
		"Pause-DR":      {0, 1, 0, 0, 1, 0},
		"Shift-IR":      {0, 1, 1, 0, 0},
		"Pause-IR":      {0, 1, 1, 0, 0, 1, 0},
		"Update-DR":     {0, 1, 0, 0, 1, 1},
	}
	for name, seq := range starts {
		tap := newTAP(t)
		walk(tap, seq...)
		if tap.State() == jtag.TestLogicReset {
			t.Fatalf("%s: bad test setup, already in reset", name)
		}
		walk(tap, 1, 1, 1, 1, 1)
		if tap.State() != jtag.TestLogicReset {
			t.Errorf("%s: state %v after five TMS=1 ticks, want Test-Logic-Reset", name, tap.State())
		}
	}
}

func TestTAPReadIDCode(t *testing.T) {
	tap := newTAP(t)
	// reset leaves IDCODE latched, so a plain DR scan shifts out the id,
	// least significant bit first
	walk(tap, 0, 1, 0, 0) // idle, Select-DR-Scan, Capture-DR, into Shift-DR
	var id uint32
	for i := 0; i < 32; i++ {
		if step(tap, false, false) {
			id |= 1 << uint(i)
		}
	}
	if id != testID {
		t.Errorf("shifted out id %#x, want %#x", id, testID)
	}
}

func TestTAPBypass(t *testing.T) {
	tap := newTAP(t)
	// load the all-ones BYPASS instruction
	walk(tap, 0, 1, 1, 0, 0) // idle, Select-DR, Select-IR, Capture-IR, into Shift-IR
	for i := 0; i < 4; i++ {
		step(tap, i == 3, true) // shift in 1111, exiting on the last bit
	}
	walk(tap, 1, 0) // Update-IR, then past its update tick into idle
	if tap.Instruction() != 0xf {
		t.Fatalf("instruction %#x, want BYPASS (0xf)", tap.Instruction())
	}

	// bypass register: capture clears it, then TDO follows TDI with a one
	// tick delay
	walk(tap, 1, 0, 0) // Select-DR-Scan, Capture-DR, into Shift-DR
	in := []bool{true, false, true, true, false, true}
	want := []bool{false, true, false, true, true, false}
	for i := range in {
		got := step(tap, false, in[i])
		if got != want[i] {
			t.Fatalf("bypass bit %d: TDO=%v, want %v", i, got, want[i])
		}
	}
}

func TestTAPCaptureIRPattern(t *testing.T) {
	tap := newTAP(t)
	walk(tap, 0, 1, 1, 0, 0) // through Capture-IR into Shift-IR
	// the shift stage captures ...0001 and shifts it out LSB first
	var got uint64
	for i := 0; i < 4; i++ {
		if step(tap, false, false) {
			got |= 1 << uint(i)
		}
	}
	if got != 1 {
		t.Errorf("captured IR pattern %#b, want 0b0001", got)
	}
}

func TestTAPTRSTForcesReset(t *testing.T) {
	tap := newTAP(t)
	walk(tap, 0, 1, 0, 0) // park in Shift-DR
	if tap.State() != jtag.ShiftDR {
		t.Fatalf("setup: state %v, want Shift-DR", tap.State())
	}
	tap.NTRST = false
	walk(tap, 0, 0, 0) // two ticks of synchronizer latency, one to act
	if tap.State() != jtag.TestLogicReset {
		t.Errorf("state %v after TRST, want Test-Logic-Reset", tap.State())
	}
	tap.NTRST = true
	// reset relatches the IDCODE instruction
	walk(tap, 1)
	if tap.Instruction() != 1 {
		t.Errorf("instruction %#x after TRST, want IDCODE (1)", tap.Instruction())
	}
}

func TestTAPConfig(t *testing.T) {
	for _, w := range []int{0, 1, 33} {
		if _, err := jtag.New(w, 0); err == nil {
			t.Errorf("New(%d): expected error", w)
		}
	}
}

