// Copyright 2026 The ee119a Authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"log"

	"github.com/ElectronicToast/ee119a/gcd"
	"github.com/ElectronicToast/ee119a/mult"
	"github.com/ElectronicToast/ee119a/pwm"
)

func main() {
	// an 8x8 serial multiplier
	m, err := mult.New(8)
	if err != nil {
		panic(err)
	}
	m.SetOperands(12, 11)
	m.Start = true
	m.Tick()
	m.Start = false
	ticks := 1
	for !m.Done {
		m.Tick()
		ticks++
	}
	log.Printf("12 * 11 = %d (%d ticks)", m.Q.Uint64(), ticks)

	// a 16-bit serial GCD calculator
	g, err := gcd.New(16)
	if err != nil {
		panic(err)
	}
	g.Tick()
	g.Tick()
	g.SetOperands(252, 105)
	g.CanReadVals = true
	g.NCalculate = false
	ticks = 0
	for !g.ResultRdy {
		g.Tick()
		ticks++
	}
	log.Printf("gcd(252, 105) = %d (%d ticks)", g.Result.Uint64(), ticks)

	// render a short PWM tune to a WAV file
	p, err := pwm.New([]byte{
		0x40, 0x80, 0xc0, 0xff, 0xc0, 0x80, 0x40, 0x00,
		0x40, 0x80, 0xc0, 0xff, 0xc0, 0x80, 0x40, 0x00,
	}, 3)
	if err != nil {
		panic(err)
	}
	buf := p.Render(8000)
	if err := pwm.WriteWAV("tune.wav", buf); err != nil {
		panic(err)
	}
	log.Printf("wrote tune.wav (%d samples)", len(buf.Data))
}
