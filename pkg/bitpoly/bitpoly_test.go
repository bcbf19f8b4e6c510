package bitpoly_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/revengio/reveng/pkg/bitpoly"
)

func TestCoeffSetCoeffRoundTrip(t *testing.T) {
	p := bitpoly.Alloc(13)
	for i := 0; i < p.Len(); i++ {
		assert.Equal(t, 0, p.Coeff(i))
	}
	p.SetCoeff(0, 1)
	p.SetCoeff(12, 1)
	assert.Equal(t, 1, p.Coeff(0))
	assert.Equal(t, 1, p.Coeff(12))
	assert.Equal(t, 0, p.Coeff(6))
}

func TestFromUint64ToUint64RoundTrip(t *testing.T) {
	p := bitpoly.FromUint64(0x1021, 16)
	v, ok := p.ToUint64()
	assert.True(t, ok)
	assert.Equal(t, uint64(0x1021), v)
	assert.Equal(t, "1021", p.Hex())
}

func TestResizeGrowsAndTruncatesNumerically(t *testing.T) {
	p := bitpoly.FromUint64(0xff, 8)
	grown := bitpoly.Resize(p, 16)
	v, _ := grown.ToUint64()
	assert.Equal(t, uint64(0xff), v)

	shrunk := bitpoly.Resize(grown, 4)
	v2, _ := shrunk.ToUint64()
	assert.Equal(t, uint64(0xf), v2)
}

func TestGrowIsTailExtendNotNumericResize(t *testing.T) {
	p := bitpoly.FromUint64(0x3, 2) // bits "11"
	grown := bitpoly.Grow(p, 4)     // should become "1100", not "0011"
	v, _ := grown.ToUint64()
	assert.Equal(t, uint64(0xC), v)
}

func TestConcatSliceInverse(t *testing.T) {
	a := bitpoly.FromUint64(0b101, 3)
	b := bitpoly.FromUint64(0b110, 3)
	full := bitpoly.Concat(a, b)
	assert.Equal(t, 6, full.Len())
	assert.True(t, bitpoly.Equal(a, bitpoly.Slice(full, 0, 3)))
	assert.True(t, bitpoly.Equal(b, bitpoly.Slice(full, 3, 6)))
}

func TestReverseInvolution(t *testing.T) {
	p := bitpoly.FromUint64(0b10110, 5)
	rr := bitpoly.Reverse(bitpoly.Reverse(p))
	assert.True(t, bitpoly.Equal(p, rr))
}

func TestReverseChunksLeavesOrderButFlipsBits(t *testing.T) {
	p := bitpoly.FromBytes([]byte{0x80}) // 1000_0000
	r := bitpoly.ReverseChunks(p, 8)
	v, _ := r.ToUint64()
	assert.Equal(t, uint64(0x01), v)
}

func TestChopUnchopInverse(t *testing.T) {
	chopped := bitpoly.FromUint64(0x021, 12) // width-12 poly, no implicit +1 shown
	full := bitpoly.Unchop(chopped)
	assert.Equal(t, 13, full.Len())
	assert.Equal(t, 1, full.Coeff(0))
	back := bitpoly.Chop(full)
	assert.True(t, bitpoly.Equal(chopped, back))
}

func TestReciprocalOfReciprocalIsIdentity(t *testing.T) {
	poly := bitpoly.FromUint64(0x1021, 16) // CRC-16/XMODEM generator, chopped
	r1 := bitpoly.Reciprocal(poly)
	r2 := bitpoly.Reciprocal(r1)
	assert.True(t, bitpoly.Equal(poly, r2))
}

func TestKoopmanFromKoopmanInverse(t *testing.T) {
	poly := bitpoly.FromUint64(0x8005, 16)
	k := bitpoly.Koopman(poly)
	back := bitpoly.FromKoopman(k)
	assert.True(t, bitpoly.Equal(poly, back))
}

func TestCompareLexicographicPrefix(t *testing.T) {
	short := bitpoly.FromUint64(0b10, 2)
	long := bitpoly.Concat(short, bitpoly.Alloc(1)) // "100", a true bit-prefix extension
	assert.Equal(t, -1, bitpoly.Compare(short, long))
	assert.Equal(t, 1, bitpoly.Compare(long, short))
	assert.Equal(t, 0, bitpoly.Compare(short, bitpoly.Clone(short)))
}

func TestCompareWidthLengthFirst(t *testing.T) {
	a := bitpoly.FromUint64(0xFF, 8)
	b := bitpoly.FromUint64(0x0, 9)
	assert.Equal(t, -1, bitpoly.CompareWidth(a, b))
}

func TestNextWrapsAtAllOnes(t *testing.T) {
	p := bitpoly.FromUint64(0b11, 2)
	ok := p.Next()
	assert.False(t, ok)
	assert.True(t, p.IsZero())
}

func TestNormalizeStripsTrailingZeroBits(t *testing.T) {
	p := bitpoly.FromUint64(0b1010_0000, 8)
	n := bitpoly.Normalize(p)
	assert.Equal(t, 3, n.Len())
}

func TestModByZeroReturnsDividend(t *testing.T) {
	a := bitpoly.FromUint64(0b1011, 4)
	zero := bitpoly.Alloc(3)
	r := bitpoly.Mod(a, zero)
	assert.True(t, bitpoly.Equal(bitpoly.Normalize(a), r))
}

func TestModReducesBelowDivisorDegree(t *testing.T) {
	// x^3 + x + 1 (0b1011) mod x^2 + 1 (0b101)
	a := bitpoly.FromUint64(0b1011, 4)
	b := bitpoly.FromUint64(0b101, 3)
	r := bitpoly.Mod(a, b)
	assert.True(t, r.Len() < b.Len())
}

func TestGCDOfEqualPolysIsThatPoly(t *testing.T) {
	p := bitpoly.FromUint64(0b1101, 4)
	g := bitpoly.GCD(p, p)
	assert.True(t, bitpoly.Equal(bitpoly.Normalize(p), g))
}

func TestAllOnes(t *testing.T) {
	p := bitpoly.AllOnes(12)
	assert.Equal(t, 12, p.OnesCount())
}

// TestSpliceRoundTripsThroughRapid exercises Splice as the primitive every
// other rearranging op is built on: writing a random bit pattern into
// a fresh buffer and slicing it back out must reproduce the original bits.
func TestSpliceRoundTripsThroughRapid(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(0, 64).Draw(rt, "n")
		src := bitpoly.Alloc(n)
		for i := 0; i < n; i++ {
			if rapid.Bool().Draw(rt, "bit") {
				src.SetCoeff(i, 1)
			}
		}
		dst := bitpoly.Alloc(0)
		bitpoly.Splice(&dst, src, 0, 0, n, 0)
		assert.True(rt, bitpoly.Equal(src, dst))
	})
}

func TestResizeRoundTripRapid(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		width := rapid.IntRange(1, 64).Draw(rt, "width")
		v := rapid.Uint64Range(0, (uint64(1)<<uint(width))-1).Draw(rt, "v")
		p := bitpoly.FromUint64(v, width)
		grownThenShrunk := bitpoly.Resize(bitpoly.Resize(p, width+8), width)
		got, ok := grownThenShrunk.ToUint64()
		assert.True(rt, ok)
		assert.Equal(rt, v, got)
	})
}
