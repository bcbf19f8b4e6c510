package main

import (
	"fmt"
	"strings"

	"github.com/revengio/reveng/pkg/bitpoly"
	"github.com/revengio/reveng/pkg/wflags"
)

// strtop parses a whitespace-separated string of digits into a Poly, the
// character alphabet controlled by bitsPerChar (1 for binary digits, 4 for
// hex nibbles — the two cases this driver supports). Digit order within the
// string is MSB-first unless LTLBYT is set, in which case hex input (an even
// number of digits) has its two-digit bytes swapped end to end before parsing
// (mirroring spec.md's "low-byte-first in files" modifier); binary-digit input
// is never reordered.
func strtop(s string, bitsPerChar int, flags wflags.Flags) (bitpoly.Poly, error) {
	fields := strings.Fields(s)
	joined := strings.Join(fields, "")
	if flags.Any(wflags.LTLBYT) && bitsPerChar == 4 {
		joined = swapHexByteOrder(joined)
	}

	out := bitpoly.Alloc(0)
	for _, r := range joined {
		v, err := digitValue(r)
		if err != nil {
			return bitpoly.Poly{}, err
		}
		d := bitpoly.FromUint64(uint64(v), bitsPerChar)
		out = bitpoly.Concat(out, d)
	}
	if flags.Any(wflags.RTJUST) {
		// Right-justified input: trailing digits are the low-order bits,
		// so the stream as parsed (MSB-first already) needs no shift; a
		// partial leading digit narrower than bitsPerChar is not produced
		// by this parser, so RTJUST and left justification coincide here.
		return out, nil
	}
	return out, nil
}

// ptostr is strtop's dual: it renders p as a string of bitsPerChar-wide
// digits, uppercase if UPPER is set, with a space between every output byte
// (two hex digits, or eight binary digits) if SPACE is set. A length that is
// not a whole number of digits is padded with leading zero bits if RTJUST is
// set, and with trailing zero bits otherwise.
func ptostr(p bitpoly.Poly, bitsPerChar int, flags wflags.Flags) string {
	digits := "0123456789abcdef"
	if flags.Any(wflags.UPPER) {
		digits = "0123456789ABCDEF"
	}
	padded := ((p.Len() + bitsPerChar - 1) / bitsPerChar) * bitsPerChar
	full := bitpoly.Grow(p, padded)
	if flags.Any(wflags.RTJUST) {
		full = bitpoly.Resize(p, padded)
	}
	nchars := full.Len() / bitsPerChar
	obperhx := 8 / bitsPerChar // digits per "output byte" grouping

	var b strings.Builder
	for i := 0; i < nchars; i++ {
		v := 0
		for k := 0; k < bitsPerChar; k++ {
			v = (v << 1) | full.Coeff(i*bitsPerChar+k)
		}
		b.WriteByte(digits[v])
		if flags.Any(wflags.SPACE) && obperhx > 0 && (i+1)%obperhx == 0 && i != nchars-1 {
			b.WriteByte(' ')
		}
	}
	return b.String()
}

func digitValue(r rune) (int, error) {
	switch {
	case r >= '0' && r <= '9':
		return int(r - '0'), nil
	case r >= 'a' && r <= 'f':
		return int(r-'a') + 10, nil
	case r >= 'A' && r <= 'F':
		return int(r-'A') + 10, nil
	default:
		return 0, fmt.Errorf("cmd/reveng: invalid digit %q", r)
	}
}

func swapHexByteOrder(hex string) string {
	if len(hex)%2 != 0 {
		return hex
	}
	bytes := make([]string, 0, len(hex)/2)
	for i := 0; i < len(hex); i += 2 {
		bytes = append(bytes, hex[i:i+2])
	}
	for i, j := 0, len(bytes)-1; i < j; i, j = i+1, j-1 {
		bytes[i], bytes[j] = bytes[j], bytes[i]
	}
	return strings.Join(bytes, "")
}
