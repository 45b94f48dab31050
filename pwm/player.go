// Copyright 2026 The ee119a Authors.
// Licensed under the MIT license. See license text in the LICENSE file.

// Package pwm models an audio-message player: a byte-valued message ROM is
// played back one sample per PWM period through a single output pin, the
// duty cycle of each 256-tick period encoding one 8-bit sample. Playback is
// triggered by a debounced push button and runs the message once.
//
// Render integrates a playback into PCM samples and WriteWAV stores them as
// a WAV file, which is how the message contents are audited in tests and by
// the demo command.
package pwm

import (
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/pkg/errors"

	"github.com/ElectronicToast/ee119a/rtl"
)

// Period is the number of ticks in one PWM period, fixed by the 8-bit
// sample depth.
const Period = 256

type state int

const (
	stIdle state = iota
	stPlay
)

// A Player is the port-level model of the message player.
//
//	Inputs:  Button (asynchronous, debounced internally)
//	Outputs: Out (the PWM pin), Busy
//
type Player struct {
	Button bool
	Out    bool
	Busy   bool

	rom    []byte
	st     state
	deb    *Debouncer
	period *rtl.Counter // tick within the PWM period, [0, 255], wraps
	addr   *rtl.Counter // ROM address, one step per period
}

// New returns an idle player for the given message. The message must not be
// empty; debounceHold is the number of stable ticks the button debouncer
// requires. The message slice is not copied; callers must not modify it
// while the player is in use.
//
func New(message []byte, debounceHold int) (*Player, error) {
	if len(message) == 0 {
		return nil, errors.WithStack(rtl.ConfigError("empty message ROM"))
	}
	p := &Player{rom: message}
	var err error
	if p.deb, err = NewDebouncer(debounceHold); err != nil {
		return nil, errors.Wrap(err, "player")
	}
	if p.period, err = rtl.NewCounter(0, Period-1, rtl.WrapToBottom); err != nil {
		return nil, errors.Wrap(err, "player")
	}
	if p.addr, err = rtl.NewCounter(0, len(message)-1, rtl.HoldAtTop); err != nil {
		return nil, errors.Wrap(err, "player")
	}
	return p, nil
}

// Len returns the message length in samples.
//
func (p *Player) Len() int { return len(p.rom) }

// Tick advances the player by one clock edge.
func (p *Player) Tick() {
	playing := p.st == stPlay

	next := p.st
	switch p.st {
	case stIdle:
		if p.deb.Pressed() {
			next = stPlay
		}
	case stPlay:
		if p.addr.AtTop() && p.period.AtTop() {
			next = stIdle
		}
	default:
		next = stIdle
	}

	// the PWM compare reads the ROM combinationally at the current address
	out := playing && p.period.Value() < int(p.rom[p.addr.Value()])

	p.period.Advance(!playing, playing)
	p.addr.Advance(!playing, playing && p.period.AtTop())

	p.deb.Sample(p.Button)
	_ = p.deb.Commit() // Sample stages a single shift, no conflict
	p.period.Commit()
	p.addr.Commit()
	p.st = next
	p.Out = out
	p.Busy = p.st == stPlay
}

// Render plays the message once and integrates the PWM bitstream over each
// period, returning one 8-bit PCM sample per period at the given sample
// rate. The integral of a period's duty cycle reconstructs the ROM sample
// exactly, which Render relies on being deterministic.
//
func (p *Player) Render(sampleRate int) *audio.IntBuffer {
	// press and hold the button until the player starts
	p.Button = true
	for !p.Busy {
		p.Tick()
	}
	p.Button = false

	data := make([]int, 0, p.Len())
	for p.Busy {
		acc := 0
		for i := 0; i < Period && p.Busy; i++ {
			p.Tick()
			if p.Out {
				acc++
			}
		}
		data = append(data, acc)
	}
	return &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: 8,
	}
}

// WriteWAV encodes buf as an 8-bit mono WAV file at path.
//
func WriteWAV(path string, buf *audio.IntBuffer) (rerr error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "wav")
	}
	defer func() {
		if err := f.Close(); err != nil && rerr == nil {
			rerr = errors.Wrap(err, "wav")
		}
	}()

	enc := wav.NewEncoder(f, buf.Format.SampleRate, 8, buf.Format.NumChannels, 1)
	if err := enc.Write(buf); err != nil {
		return errors.Wrap(err, "wav")
	}
	return errors.Wrap(enc.Close(), "wav")
}
