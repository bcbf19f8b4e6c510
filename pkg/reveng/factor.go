package reveng

import (
	"github.com/revengio/reveng/pkg/bitpoly"
	"github.com/revengio/reveng/pkg/crcengine"
	"github.com/revengio/reveng/pkg/model"
	"github.com/revengio/reveng/pkg/wflags"
)

// factorSearch handles the HAVEP=0 branch: the polynomial itself is
// unknown. It computes the GCD of the pairwise differences of the samples
// (a multiple of the true generator), then, depending on how much degree
// slack remains, either accepts the GCD directly, searches a reduced "short
// mode" cofactor space, or falls back to brute-force enumeration of
// width-wide odd polynomials.
func factorSearch(guess model.Model, qpoly *bitpoly.Poly, flags wflags.Flags, samples []bitpoly.Poly, rep Reporter) ([]model.Model, error) {
	width := guess.Width()
	d, err := computeGCD(guess, flags, samples)
	if err != nil {
		return nil, err
	}
	d = bitpoly.Normalize(d)

	if d.Len() < width+1 {
		return nil, nil
	}
	if d.Len() == width+1 {
		factor := bitpoly.Chop(d)
		return tryFactor(guess, factor, flags, samples, rep), nil
	}
	if flags.Any(wflags.SHORT) || d.Len() <= 2*width {
		return shortModeSearch(guess, d, qpoly, flags, samples, rep), nil
	}
	return fullEnumSearch(guess, d, qpoly, flags, samples, rep), nil
}

func tryFactor(guess model.Model, factor bitpoly.Poly, flags wflags.Flags, samples []bitpoly.Poly, rep Reporter) []model.Model {
	g := model.Clone(guess)
	g.SPoly = factor
	return dispatch(g, flags|wflags.HAVEP, samples, rep)
}

// computeGCD (step 2 of spec.md §4.4) reduces the GCD of every pairwise
// sample difference. Differences between equal-length samples are a plain
// XOR; differences between unequal-length samples additionally require
// Init to be known (HAVEI), since Init's contribution must be cancelled at
// the aligned end before the two streams can be compared.
func computeGCD(guess model.Model, flags wflags.Flags, samples []bitpoly.Poly) (bitpoly.Poly, error) {
	haveI := flags.Has(wflags.HAVEI)
	var d bitpoly.Poly
	have := false
	for i := 0; i < len(samples); i++ {
		for j := i + 1; j < len(samples); j++ {
			diff, ok := sampleDiff(samples[i], samples[j], guess, haveI)
			if !ok {
				continue
			}
			if !have {
				d, have = diff, true
				continue
			}
			d = bitpoly.GCD(d, diff)
		}
	}
	if !have {
		return bitpoly.Poly{}, ErrNotEnoughSamples
	}
	return d, nil
}

func sampleDiff(a, b bitpoly.Poly, guess model.Model, haveI bool) (bitpoly.Poly, bool) {
	if a.Len() == b.Len() {
		d := bitpoly.Clone(a)
		bitpoly.Sum(&d, b, 0)
		return d, true
	}
	if !haveI {
		return bitpoly.Poly{}, false
	}
	width := guess.Width()
	longer, shorter := a, b
	if shorter.Len() > longer.Len() {
		longer, shorter = shorter, longer
	}
	initW := bitpoly.Resize(guess.Init, width)
	al := bitpoly.Clone(longer)
	as := bitpoly.Clone(shorter)
	bitpoly.Sum(&al, initW, 0)
	bitpoly.Sum(&as, initW, 0)
	asPadded := bitpoly.Grow(as, al.Len())
	bitpoly.Sum(&al, asPadded, 0)
	return al, true
}

// nextOddPoly increments the top width-1 bits of p, leaving its
// least-significant bit (the generator's required +1 term) fixed at 1. It
// returns false when the increment wraps.
func nextOddPoly(p *bitpoly.Poly) bool {
	w := p.Len()
	for i := w - 2; i >= 0; i-- {
		if p.Coeff(i) == 0 {
			p.SetCoeff(i, 1)
			return true
		}
		p.SetCoeff(i, 0)
	}
	return false
}

// fullEnumSearch (len(D) > 2*width) brute-force enumerates every width-wide
// odd polynomial, testing each for dividing D via the quotient option on the
// CRC engine: CRCWithQuotient(D, candidate, 0, 0) leaves a zero remainder
// exactly when candidate divides D.
func fullEnumSearch(guess model.Model, d bitpoly.Poly, qpoly *bitpoly.Poly, flags wflags.Flags, samples []bitpoly.Poly, rep Reporter) []model.Model {
	width := guess.Width()
	cur := bitpoly.Alloc(width)
	if width > 0 {
		cur.SetCoeff(width-1, 1)
	}
	haveQ := flags.Has(wflags.HAVEQ) && qpoly != nil

	var out []model.Model
	var seq uint64
	zero := bitpoly.Alloc(width)
	for {
		if seq&progressMask == 0 {
			rep.Progress(cur, flags, seq)
		}
		seq++
		if haveQ && bitpoly.Compare(cur, *qpoly) >= 0 {
			break
		}
		rem, _ := crcengine.CRCWithQuotient(d, cur, zero, zero, 0)
		if rem.IsZero() {
			out = append(out, tryFactor(guess, bitpoly.Clone(cur), flags, samples, rep)...)
		}
		if !nextOddPoly(&cur) {
			break
		}
	}
	return out
}

// shortModeSearch handles width+1 < len(D) <= 2*width: the cofactor D/factor
// has degree < width, a much smaller space than the factor itself, so this
// enumerates cofactor candidates instead and recovers the factor via
// division (again using the CRC engine's quotient output).
//
// A qpoly upper bound on the factor's own range does not translate cleanly
// into a bound on the (much smaller) cofactor space; per spec.md §4.4 step
// 4 this degrades to an unbounded short-mode search that still terminates
// via wraparound, rather than attempting to truncate the reduced space.
func shortModeSearch(guess model.Model, d bitpoly.Poly, qpoly *bitpoly.Poly, flags wflags.Flags, samples []bitpoly.Poly, rep Reporter) []model.Model {
	width := guess.Width()
	cofactorDegree := d.Len() - 1 - width
	if cofactorDegree < 0 {
		return nil
	}
	if cofactorDegree == 0 {
		factor := bitpoly.Chop(d)
		return tryFactor(guess, factor, flags, samples, rep)
	}

	cur := bitpoly.Alloc(cofactorDegree)
	cur.SetCoeff(cofactorDegree-1, 1)

	var out []model.Model
	var seq uint64
	zero := bitpoly.Alloc(cofactorDegree)
	for {
		if seq&progressMask == 0 {
			rep.Progress(cur, flags, seq)
		}
		seq++
		rem, quotient := crcengine.CRCWithQuotient(d, cur, zero, zero, 0)
		if rem.IsZero() {
			factor := bitpoly.Normalize(quotient)
			if factor.Len() == width+1 && factor.Coeff(factor.Len()-1) == 1 {
				chopped := bitpoly.Chop(factor)
				out = append(out, tryFactor(guess, chopped, flags, samples, rep)...)
			}
		}
		if !nextOddPoly(&cur) {
			break
		}
	}
	return out
}
