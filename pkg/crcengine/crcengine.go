// Package crcengine implements C, the Williams CRC division engine. It
// computes an arbitrary-width CRC register update bit by bit, the way the
// teacher package's bbbUpd tableless path does, generalized to a width that
// is only known at run time (the reverse search tries many widths).
package crcengine

import (
	"github.com/revengio/reveng/pkg/bitpoly"
	"github.com/revengio/reveng/pkg/wflags"
)

// CRC computes the register produced by running message through poly
// (chopped, width bits) starting from init, with xorout summed in at the
// end. Only REFIN and MULXN are consulted from flags: REFOUT is deliberately
// not applied here (see FullCRC) since several callers in pkg/reveng need the
// pre-reflection register.
func CRC(message, poly, init, xorout bitpoly.Poly, flags wflags.Flags) bitpoly.Poly {
	reg, _ := core(message, poly, init, xorout, flags, false)
	return reg
}

// CRCWithQuotient is CRC's sibling: it additionally returns the quotient bit
// stream (the feedback bit of each of the first Len()-width steps, which is
// the message divided by the full generator), used by the factor search to
// test polynomial divisibility without a separate division routine.
func CRCWithQuotient(message, poly, init, xorout bitpoly.Poly, flags wflags.Flags) (remainder, quotient bitpoly.Poly) {
	return core(message, poly, init, xorout, flags, true)
}

// FullCRC is the complete Williams-model CRC: CRC's raw register, reflected
// if REFOUT is set, then XORed with xorout. crcengine.CRC itself never
// reflects, because calout/calini in pkg/reveng need to apply XorOut or
// Init relative to the reflection step in the opposite order.
func FullCRC(message, poly, init, xorout bitpoly.Poly, flags wflags.Flags) bitpoly.Poly {
	width := poly.Len()
	zero := bitpoly.Alloc(width)
	reg := CRC(message, poly, init, zero, flags)
	if flags.Any(wflags.REFOUT) {
		reg = bitpoly.Reverse(reg)
	}
	bitpoly.Sum(&reg, xorout, 0)
	return reg
}

func core(message, poly, init, xorout bitpoly.Poly, flags wflags.Flags, wantQuotient bool) (bitpoly.Poly, bitpoly.Poly) {
	width := poly.Len()
	if width == 0 {
		return bitpoly.Alloc(0), bitpoly.Alloc(0)
	}

	msg := message
	if flags.Any(wflags.REFIN) {
		msg = reflectWholeBytes(msg)
	}
	if msg.Len() < width {
		msg = bitpoly.Grow(msg, width)
	}

	totalBits := msg.Len()
	if flags.Any(wflags.MULXN) {
		totalBits += width
	}

	reg := bitpoly.Resize(init, width)
	var quotient bitpoly.Poly
	if wantQuotient {
		quotient = bitpoly.Alloc(totalBits - width)
	}

	for i := 0; i < totalBits; i++ {
		bit := 0
		if i < msg.Len() {
			bit = msg.Coeff(i)
		}
		top := shiftIn(&reg, 0) ^ bit
		if wantQuotient && i < totalBits-width {
			quotient.SetCoeff(i, top)
		}
		if top == 1 {
			bitpoly.Sum(&reg, poly, 0)
		}
	}

	bitpoly.Sum(&reg, bitpoly.Resize(xorout, width), 0)
	return reg, quotient
}

// shiftIn shifts reg left by one bit, feeding bit in at the bottom, and
// returns the bit that fell off the top (the bit that decides whether poly
// gets XORed in).
func shiftIn(reg *bitpoly.Poly, bit int) int {
	top := reg.Coeff(0)
	w := reg.Len()
	for i := 0; i < w-1; i++ {
		reg.SetCoeff(i, reg.Coeff(i+1))
	}
	reg.SetCoeff(w-1, bit)
	return top
}

// reflectWholeBytes bit-reverses every full 8-bit byte of p, left to right,
// leaving any trailing partial byte untouched.
func reflectWholeBytes(p bitpoly.Poly) bitpoly.Poly {
	n := p.Len()
	full := (n / 8) * 8
	if full == 0 {
		return bitpoly.Clone(p)
	}
	head := bitpoly.ReverseChunks(bitpoly.Slice(p, 0, full), 8)
	tail := bitpoly.Slice(p, full, n)
	return bitpoly.Concat(head, tail)
}
