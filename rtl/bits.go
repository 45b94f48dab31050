// Copyright 2026 The ee119a Authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package rtl

import (
	"strconv"

	"github.com/pkg/errors"
)

// MaxWidth is the largest supported Bits width.
const MaxWidth = 64

// Bits is a fixed-width bit vector. Bit index 0 is the least significant
// bit; this convention is used uniformly across the repository and all
// rotate/shift directions are expressed relative to it.
//
// Bits is a value type: all operations return a new value and never mutate
// the receiver.
//
type Bits struct {
	width int
	v     uint64
}

// NewBits returns a Bits of the given width holding v truncated to width
// bits. It returns a ConfigError if width is not in [1, MaxWidth].
//
func NewBits(width int, v uint64) (Bits, error) {
	if width < 1 || width > MaxWidth {
		return Bits{}, errors.WithStack(ConfigError("bit width " + strconv.Itoa(width) + " out of range [1, 64]"))
	}
	return Bits{width: width, v: v & mask(width)}, nil
}

func mask(width int) uint64 {
	if width == 64 {
		return ^uint64(0)
	}
	return 1<<uint(width) - 1
}

// Width returns the width of b in bits. The zero Bits has width 0 and is not
// usable with any primitive in this package.
//
func (b Bits) Width() int { return b.width }

// Uint64 returns the value of b as an unsigned integer.
//
func (b Bits) Uint64() uint64 { return b.v }

// WithUint64 returns a Bits of the same width holding v truncated to that
// width.
//
func (b Bits) WithUint64(v uint64) Bits {
	return Bits{width: b.width, v: v & mask(b.width)}
}

// Bit returns bit i of b. It panics if i is out of range.
//
func (b Bits) Bit(i int) bool {
	if i < 0 || i >= b.width {
		panic("bit index " + strconv.Itoa(i) + " out of range")
	}
	return b.v&(1<<uint(i)) != 0
}

// SetBit returns a copy of b with bit i set to s. It panics if i is out of
// range.
//
func (b Bits) SetBit(i int, s bool) Bits {
	if i < 0 || i >= b.width {
		panic("bit index " + strconv.Itoa(i) + " out of range")
	}
	if s {
		b.v |= 1 << uint(i)
	} else {
		b.v &^= 1 << uint(i)
	}
	return b
}

// LSB returns bit 0.
//
func (b Bits) LSB() bool { return b.v&1 != 0 }

// MSB returns bit width-1.
//
func (b Bits) MSB() bool { return b.v&(1<<uint(b.width-1)) != 0 }

// IsZero reports whether all bits of b are 0.
//
func (b Bits) IsZero() bool { return b.v == 0 }

// String returns the bits of b most significant first, e.g. "0101" for a
// 4-bit vector holding 5.
//
func (b Bits) String() string {
	buf := make([]byte, b.width)
	for i := 0; i < b.width; i++ {
		if b.v&(1<<uint(b.width-1-i)) != 0 {
			buf[i] = '1'
		} else {
			buf[i] = '0'
		}
	}
	return string(buf)
}

// shiftRight returns b shifted one position toward the LSB with in becoming
// the new MSB. The old LSB is discarded.
func (b Bits) shiftRight(in bool) Bits {
	b.v >>= 1
	if in {
		b.v |= 1 << uint(b.width-1)
	}
	return b
}

// rotateRight returns b rotated one position toward the LSB, the old LSB
// wrapping around to the MSB.
func (b Bits) rotateRight() Bits {
	return b.shiftRight(b.v&1 != 0)
}

// shiftLeft returns b shifted one position toward the MSB with in becoming
// the new LSB. The old MSB is discarded.
func (b Bits) shiftLeft(in bool) Bits {
	b.v = (b.v << 1) & mask(b.width)
	if in {
		b.v |= 1
	}
	return b
}

// rotateLeft returns b rotated one position toward the MSB, the old MSB
// wrapping around to the LSB.
func (b Bits) rotateLeft() Bits {
	return b.shiftLeft(b.MSB())
}
