// Copyright 2026 The ee119a Authors.
// Licensed under the MIT license. See license text in the LICENSE file.

// Package jtag models an IEEE 1149.1 TAP controller: the 16-state TMS-driven
// state machine, an instruction register with shift and update stages, and
// the BYPASS and IDCODE data registers. One Tick corresponds to one TCK
// rising edge; TDO carries the bit shifted out on that edge.
package jtag

import (
	"github.com/pkg/errors"

	"github.com/ElectronicToast/ee119a/rtl"
)

// State is a TAP controller state.
//
type State int

// The sixteen TAP controller states.
const (
	TestLogicReset State = iota
	RunTestIdle
	SelectDRScan
	CaptureDR
	ShiftDR
	Exit1DR
	PauseDR
	Exit2DR
	UpdateDR
	SelectIRScan
	CaptureIR
	ShiftIR
	Exit1IR
	PauseIR
	Exit2IR
	UpdateIR
)

var stateNames = [...]string{
	"Test-Logic-Reset", "Run-Test/Idle",
	"Select-DR-Scan", "Capture-DR", "Shift-DR", "Exit1-DR", "Pause-DR", "Exit2-DR", "Update-DR",
	"Select-IR-Scan", "Capture-IR", "Shift-IR", "Exit1-IR", "Pause-IR", "Exit2-IR", "Update-IR",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "State(unknown)"
	}
	return stateNames[s]
}

// next is the TMS transition function. Every state has a defined successor
// for both TMS levels.
func next(s State, tms bool) State {
	if tms {
		switch s {
		case TestLogicReset:
			return TestLogicReset
		case RunTestIdle, UpdateDR, UpdateIR:
			return SelectDRScan
		case SelectDRScan:
			return SelectIRScan
		case CaptureDR, ShiftDR:
			return Exit1DR
		case Exit1DR, Exit2DR:
			return UpdateDR
		case PauseDR:
			return Exit2DR
		case SelectIRScan:
			return TestLogicReset
		case CaptureIR, ShiftIR:
			return Exit1IR
		case Exit1IR, Exit2IR:
			return UpdateIR
		case PauseIR:
			return Exit2IR
		default:
			return TestLogicReset
		}
	}
	switch s {
	case TestLogicReset, RunTestIdle, UpdateDR, UpdateIR:
		return RunTestIdle
	case SelectDRScan:
		return CaptureDR
	case CaptureDR, ShiftDR:
		return ShiftDR
	case Exit1DR, PauseDR:
		return PauseDR
	case Exit2DR:
		return ShiftDR
	case SelectIRScan:
		return CaptureIR
	case CaptureIR, ShiftIR:
		return ShiftIR
	case Exit1IR, PauseIR:
		return PauseIR
	case Exit2IR:
		return ShiftIR
	default:
		return RunTestIdle
	}
}

// instruction register contents selecting the IDCODE data register; the
// all-ones instruction is BYPASS as the standard requires, and every
// unimplemented opcode also decodes to BYPASS.
const instIDCode = 1

// A TAP is the port-level TAP controller model.
//
//	Inputs:  TMS, TDI (sampled per tick), NTRST (active low, asynchronous)
//	Outputs: TDO
//
// TDO is defined only while a Shift state is active; in every other state it
// reads as a deterministic 0.
//
type TAP struct {
	TMS   bool
	TDI   bool
	NTRST bool
	TDO   bool

	// OnAnomaly, if set, receives internal protocol violations. The decode
	// stages at most one write per register per tick, so nothing should
	// ever arrive here.
	OnAnomaly func(error)

	st      State
	irShift *rtl.Register // instruction shift stage
	ir      *rtl.Register // latched instruction (update stage)
	bypass  *rtl.Register // 1-bit bypass register
	idShift *rtl.Register // 32-bit IDCODE shift stage
	idcode  rtl.Bits
	sync    *rtl.Synchronizer
}

// New returns a TAP controller in Test-Logic-Reset with the given
// instruction register width (2 to 32 bits) and device identification code.
// The latched instruction starts as IDCODE, so a plain DR scan after reset
// shifts out the device id.
//
func New(irWidth int, idcode uint32) (*TAP, error) {
	if irWidth < 2 || irWidth > 32 {
		return nil, errors.WithStack(rtl.ConfigError("instruction register width out of range [2, 32]"))
	}
	t := &TAP{NTRST: true}

	var err error
	if t.irShift, err = rtl.NewRegister(irWidth, rtl.ShiftDiscard); err != nil {
		return nil, errors.Wrap(err, "tap")
	}
	if t.ir, err = rtl.NewRegister(irWidth, rtl.ShiftDiscard); err != nil {
		return nil, errors.Wrap(err, "tap")
	}
	if t.bypass, err = rtl.NewRegister(1, rtl.ShiftDiscard); err != nil {
		return nil, errors.Wrap(err, "tap")
	}
	if t.idShift, err = rtl.NewRegister(32, rtl.ShiftDiscard); err != nil {
		return nil, errors.Wrap(err, "tap")
	}
	if t.idcode, err = rtl.NewBits(32, uint64(idcode)); err != nil {
		return nil, errors.Wrap(err, "tap")
	}
	// NTRST idles high
	if t.sync, err = rtl.NewSynchronizer(2, true); err != nil {
		return nil, errors.Wrap(err, "tap")
	}
	t.ir.Load(t.ir.Bits().WithUint64(instIDCode))
	if err = t.ir.Commit(); err != nil {
		return nil, err
	}
	return t, nil
}

// Instruction returns the currently latched instruction.
//
func (t *TAP) Instruction() uint64 { return t.ir.Bits().Uint64() }

// State returns the current controller state.
//
func (t *TAP) State() State { return t.st }

func (t *TAP) idSelected() bool {
	return t.ir.Bits().Uint64() == instIDCode
}

// Tick advances the controller by one TCK rising edge.
func (t *TAP) Tick() {
	reset := !t.sync.Out()

	nxt := next(t.st, t.TMS)
	if reset {
		nxt = TestLogicReset
	}

	// register control decoded from the pre-edge state
	switch t.st {
	case TestLogicReset:
		t.ir.Load(t.ir.Bits().WithUint64(instIDCode))
	case CaptureDR:
		if t.idSelected() {
			t.idShift.Load(t.idcode)
		} else {
			t.bypass.Clear()
		}
	case ShiftDR:
		if t.idSelected() {
			t.idShift.ShiftRight(t.TDI)
		} else {
			t.bypass.ShiftRight(t.TDI)
		}
	case CaptureIR:
		// the standard fixes the two low bits captured into the shift
		// stage at 01
		t.irShift.Load(t.irShift.Bits().WithUint64(1))
	case ShiftIR:
		t.irShift.ShiftRight(t.TDI)
	case UpdateIR:
		t.ir.Load(t.irShift.Bits())
	default:
		// no register activity in the remaining states
	}

	var tdo bool
	switch t.st {
	case ShiftDR:
		if t.idSelected() {
			tdo = t.idShift.LSB()
		} else {
			tdo = t.bypass.LSB()
		}
	case ShiftIR:
		tdo = t.irShift.LSB()
	default:
		tdo = false
	}

	t.sync.Sample(t.NTRST)
	if err := t.sync.Commit(); err != nil {
		t.report(err)
	}
	for _, r := range []*rtl.Register{t.irShift, t.ir, t.bypass, t.idShift} {
		if err := r.Commit(); err != nil {
			t.report(err)
		}
	}
	t.st = nxt
	t.TDO = tdo
}

func (t *TAP) report(err error) {
	if t.OnAnomaly != nil {
		t.OnAnomaly(err)
	}
}
