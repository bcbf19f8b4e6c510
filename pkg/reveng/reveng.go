// Package reveng implements R, the Williams-model reverse-engineering
// search: given a handful of samples (message+CRC bitstreams) and whatever
// subset of the parameters is already known, it finds the remaining
// parameters.
package reveng

import (
	"errors"
	"sort"

	"github.com/revengio/reveng/pkg/bitpoly"
	"github.com/revengio/reveng/pkg/crcengine"
	"github.com/revengio/reveng/pkg/model"
	"github.com/revengio/reveng/pkg/wflags"
)

// ErrCrossedEndian is returned when REFIN and REFOUT are both known but
// disagree — this search does not support crossed-endian algorithms.
var ErrCrossedEndian = errors.New("reveng: crossed-endian models are not supported")

// ErrNoWidth is returned when the guess carries no positive width.
var ErrNoWidth = errors.New("reveng: a positive width must be set before searching")

// ErrNotEnoughSamples is returned when too few samples were supplied to
// determine a generator polynomial.
var ErrNotEnoughSamples = errors.New("reveng: not enough samples to determine a generator")

// progressMask controls how often Reporter.Progress fires during the
// brute-force enumeration paths.
const progressMask = 0xFFF

// Reporter receives progress and result notifications from Search. It
// replaces the package-level found/error/progress callback globals spec.md
// §9 flags as a redesign target with plain dependency injection.
type Reporter interface {
	// Found is called once per candidate model that survives verification.
	Found(m model.Model)
	// Progress is called periodically during brute-force enumeration.
	Progress(current bitpoly.Poly, flags wflags.Flags, sequence uint64)
	// Error is called on an unrecoverable internal contract violation. It
	// does not return.
	Error(msg string)
}

// NopReporter discards Found/Progress and panics on Error.
type NopReporter struct{}

func (NopReporter) Found(model.Model)                          {}
func (NopReporter) Progress(bitpoly.Poly, wflags.Flags, uint64) {}
func (NopReporter) Error(msg string)                            { panic("reveng: " + msg) }

// CollectingReporter accumulates Found results into Results; Progress is
// ignored. Used pervasively by tests.
type CollectingReporter struct {
	Results []model.Model
}

func (c *CollectingReporter) Found(m model.Model)                          { c.Results = append(c.Results, m) }
func (c *CollectingReporter) Progress(bitpoly.Poly, wflags.Flags, uint64) {}
func (c *CollectingReporter) Error(msg string)                            { panic("reveng: " + msg) }

// Search looks for Williams models consistent with samples, starting from
// guess (whose fields are only meaningful where the corresponding HAVE* bit
// is set in flags) and an optional upper bound qpoly on the polynomial search
// range (consulted only when HAVEQ is set). Every candidate that survives
// chkres is reported via rep.Found and included in the returned slice.
func Search(guess model.Model, qpoly *bitpoly.Poly, flags wflags.Flags, samples []bitpoly.Poly, rep Reporter) ([]model.Model, error) {
	if flags.Has(wflags.HAVERI) && flags.Has(wflags.HAVERO) &&
		guess.Flags.Any(wflags.REFIN) != guess.Flags.Any(wflags.REFOUT) {
		return nil, ErrCrossedEndian
	}
	if flags.Has(wflags.HAVEP) {
		if guess.Width() <= 0 {
			return nil, ErrNoWidth
		}
		return dispatch(guess, flags, samples, rep), nil
	}
	if guess.Width() <= 0 {
		return nil, ErrNoWidth
	}
	return factorSearch(guess, qpoly, flags, samples, rep)
}

// dispatch handles the HAVEP=1 branch of the state table: poly is known, and
// Init/XorOut are derived according to which of them are also known.
func dispatch(guess model.Model, flags wflags.Flags, samples []bitpoly.Poly, rep Reporter) []model.Model {
	haveI := flags.Has(wflags.HAVEI)
	haveX := flags.Has(wflags.HAVEX)
	switch {
	case haveI && haveX:
		if chkres(guess, samples) {
			m := finalize(guess)
			rep.Found(m)
			return []model.Model{m}
		}
		return nil
	case haveI && !haveX:
		return calout(guess, samples, rep)
	case !haveI && haveX:
		return calini(guess, samples, rep)
	default:
		return engini(guess, flags, samples, rep)
	}
}

func finalize(m model.Model) model.Model {
	nm := model.Clone(m)
	nm.ClearName()
	if err := nm.Canonicalize(); err == nil {
		nm.RecomputeChecks()
	}
	return nm
}

func splitSample(sample bitpoly.Poly, width int) (msg, crc bitpoly.Poly, ok bool) {
	if sample.Len() < width {
		return bitpoly.Poly{}, bitpoly.Poly{}, false
	}
	msgLen := sample.Len() - width
	return bitpoly.Slice(sample, 0, msgLen), bitpoly.Slice(sample, msgLen, sample.Len()), true
}

func shortestSample(samples []bitpoly.Poly) bitpoly.Poly {
	s := samples[0]
	for _, x := range samples[1:] {
		if x.Len() < s.Len() {
			s = x
		}
	}
	return s
}

// chkres verifies that every sample's trailing CRC field matches the full
// Williams-model CRC of its leading message bits. This plays the role
// spec.md's chkres assigns to a single-pass zero-residue check; splitting
// each sample at the width boundary and comparing directly is behaviourally
// equivalent for soundness (P6) and easier to get right without the
// original's pointer-level residue trick.
func chkres(m model.Model, samples []bitpoly.Poly) bool {
	if len(samples) == 0 {
		return false
	}
	for _, s := range samples {
		msg, want, ok := splitSample(s, m.Width())
		if !ok {
			return false
		}
		got := crcengine.FullCRC(msg, m.SPoly, m.Init, m.XorOut, m.Flags)
		if !bitpoly.Equal(got, want) {
			return false
		}
	}
	return true
}

// deriveXorOut computes the XorOut that makes sample's trailing CRC field
// consistent with poly/init/flags, per spec.md's calout.
func deriveXorOut(poly, init bitpoly.Poly, flags wflags.Flags, sample bitpoly.Poly) (bitpoly.Poly, bool) {
	msg, want, ok := splitSample(sample, poly.Len())
	if !ok {
		return bitpoly.Poly{}, false
	}
	zero := bitpoly.Alloc(poly.Len())
	reg := crcengine.CRC(msg, poly, init, zero, flags)
	if flags.Any(wflags.REFOUT) {
		reg = bitpoly.Reverse(reg)
	}
	xorout := bitpoly.Clone(want)
	bitpoly.Sum(&xorout, reg, 0)
	return xorout, true
}

// deriveInit computes the Init that makes sample's trailing CRC field
// consistent with poly/xorout/flags, per spec.md's calini: the raw register
// implied by the CRC field (xorout removed, un-reflected under REFOUT), minus
// the message's own zero-Init contribution, is Init's contribution; running
// that register back over the message length (a forward CRC of zero bits
// under the reciprocal polynomial, on the reversed register) gives Init.
func deriveInit(poly, xorout bitpoly.Poly, flags wflags.Flags, sample bitpoly.Poly) (bitpoly.Poly, bool) {
	msg, want, ok := splitSample(sample, poly.Len())
	if !ok {
		return bitpoly.Poly{}, false
	}
	zero := bitpoly.Alloc(poly.Len())
	reg := bitpoly.Clone(want)
	bitpoly.Sum(&reg, bitpoly.Resize(xorout, poly.Len()), 0)
	if flags.Any(wflags.REFOUT) {
		reg = bitpoly.Reverse(reg)
	}
	bitpoly.Sum(&reg, crcengine.CRC(msg, poly, zero, zero, flags), 0)
	back := crcengine.CRC(bitpoly.Alloc(msg.Len()), bitpoly.Reciprocal(poly), bitpoly.Reverse(reg), zero, 0)
	return bitpoly.Reverse(back), true
}

func calout(guess model.Model, samples []bitpoly.Poly, rep Reporter) []model.Model {
	if len(samples) == 0 {
		return nil
	}
	xorout, ok := deriveXorOut(guess.SPoly, guess.Init, guess.Flags, shortestSample(samples))
	if !ok {
		return nil
	}
	candidate := model.Clone(guess)
	candidate.XorOut = xorout
	if !chkres(candidate, samples) {
		return nil
	}
	m := finalize(candidate)
	rep.Found(m)
	return []model.Model{m}
}

func calini(guess model.Model, samples []bitpoly.Poly, rep Reporter) []model.Model {
	if len(samples) == 0 {
		return nil
	}
	init, ok := deriveInit(guess.SPoly, guess.XorOut, guess.Flags, shortestSample(samples))
	if !ok {
		return nil
	}
	candidate := model.Clone(guess)
	candidate.Init = init
	if !chkres(candidate, samples) {
		return nil
	}
	m := finalize(candidate)
	rep.Found(m)
	return []model.Model{m}
}

// engini (HAVEP=1, HAVEI=0, HAVEX=0) recovers Init by row-reducing a GF(2)
// linear system built from the two shortest samples, then derives XorOut
// (calout) and verifies (chkres) for each candidate in the resulting
// solution space.
func engini(guess model.Model, flags wflags.Flags, samples []bitpoly.Poly, rep Reporter) []model.Model {
	width := guess.Width()
	if len(samples) < 2 {
		return nil
	}
	sorted := append([]bitpoly.Poly(nil), samples...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Len() < sorted[j].Len() })

	var initCandidates []bitpoly.Poly
	if sorted[0].Len() == sorted[len(sorted)-1].Len() {
		zero := bitpoly.Alloc(width)
		if init, ok := deriveInit(guess.SPoly, zero, guess.Flags, sorted[0]); ok {
			initCandidates = []bitpoly.Poly{init}
		}
	} else {
		var ok bool
		initCandidates, ok = linearInitCandidates(guess, flags, sorted[0], sorted[1])
		if !ok {
			return nil
		}
	}

	var out []model.Model
	for _, init := range initCandidates {
		g := model.Clone(guess)
		g.Init = init
		xorout, ok := deriveXorOut(g.SPoly, g.Init, g.Flags, shortestSample(samples))
		if !ok {
			continue
		}
		g.XorOut = xorout
		if !chkres(g, samples) {
			continue
		}
		m := finalize(g)
		rep.Found(m)
		out = append(out, m)
	}
	return out
}

func linearInitCandidates(guess model.Model, flags wflags.Flags, a, b bitpoly.Poly) ([]bitpoly.Poly, bool) {
	width := guess.Width()
	msgA, crcA, okA := splitSample(a, width)
	msgB, crcB, okB := splitSample(b, width)
	if !okA || !okB {
		return nil, false
	}
	zero := bitpoly.Alloc(width)
	reflectIf := func(p bitpoly.Poly) bitpoly.Poly {
		if guess.Flags.Any(wflags.REFOUT) {
			return bitpoly.Reverse(p)
		}
		return p
	}
	column := func(msgLen, k int) bitpoly.Poly {
		unit := bitpoly.Alloc(width)
		unit.SetCoeff(k, 1)
		msg := bitpoly.Alloc(msgLen)
		return crcengine.CRC(msg, guess.SPoly, unit, zero, guess.Flags)
	}

	regA0 := crcengine.CRC(msgA, guess.SPoly, zero, zero, guess.Flags)
	regB0 := crcengine.CRC(msgB, guess.SPoly, zero, zero, guess.Flags)
	rhs := bitpoly.Clone(crcA)
	bitpoly.Sum(&rhs, crcB, 0)
	bitpoly.Sum(&rhs, reflectIf(regA0), 0)
	bitpoly.Sum(&rhs, reflectIf(regB0), 0)

	cols := make([]bitpoly.Poly, width)
	for k := 0; k < width; k++ {
		ca := column(msgA.Len(), k)
		cb := column(msgB.Len(), k)
		bitpoly.Sum(&ca, cb, 0)
		cols[k] = reflectIf(ca)
	}

	rows := make([]bitpoly.Poly, width)
	for i := 0; i < width; i++ {
		r := bitpoly.Alloc(width + 1)
		for k := 0; k < width; k++ {
			r.SetCoeff(k, cols[k].Coeff(i))
		}
		r.SetCoeff(width, rhs.Coeff(i))
		rows[i] = r
	}

	pivotRows, consistent := gf2RowReduce(width, rows)
	if !consistent {
		return nil, false
	}
	return enumerateInits(width, pivotRows, flags.Any(wflags.EXHST)), true
}

type rowKind int

const (
	rowData rowKind = iota
	rowEmpty
	rowContradiction
)

type row struct {
	kind  rowKind
	bits  bitpoly.Poly // length width+1; valid when kind==rowData
	pivot int
}

// gf2RowReduce reduces rows (each width+1 bits: width coefficients then a
// trailing right-hand-side bit) to reduced row-echelon form over GF(2).
// rows beyond the resulting rank are classified Empty (0=0) or
// Contradiction (0=1); consistent is false iff any row became a
// contradiction.
func gf2RowReduce(width int, rows []bitpoly.Poly) (pivotRows []row, consistent bool) {
	rs := make([]row, len(rows))
	for i, r := range rows {
		rs[i] = row{kind: rowData, bits: bitpoly.Clone(r), pivot: -1}
	}
	rank := 0
	for col := 0; col < width && rank < len(rs); col++ {
		sel := -1
		for i := rank; i < len(rs); i++ {
			if rs[i].kind == rowData && rs[i].bits.Coeff(col) == 1 {
				sel = i
				break
			}
		}
		if sel == -1 {
			continue
		}
		rs[rank], rs[sel] = rs[sel], rs[rank]
		rs[rank].pivot = col
		for i := range rs {
			if i != rank && rs[i].kind == rowData && rs[i].bits.Coeff(col) == 1 {
				bitpoly.Sum(&rs[i].bits, rs[rank].bits, 0)
			}
		}
		rank++
	}

	consistent = true
	for i := rank; i < len(rs); i++ {
		if rs[i].kind != rowData {
			continue
		}
		if rs[i].bits.IsZero() {
			rs[i].kind = rowEmpty
		} else if bitpoly.FirstSet(rs[i].bits) == width {
			rs[i].kind = rowContradiction
			consistent = false
		} else {
			rs[i].kind = rowEmpty
		}
	}
	return rs[:rank], consistent
}

// enumerateInits back-substitutes the reduced system, assigning every
// combination of free (non-pivot) columns. If exhaustiveOnly is set
// (EXHST), it stops after the first solution. A practical cap bounds the
// number of free variables enumerated to avoid a combinatorial blow-up for
// badly under-determined systems.
func enumerateInits(width int, pivotRows []row, exhaustiveOnly bool) []bitpoly.Poly {
	const maxFreeVars = 20

	isPivot := make([]bool, width)
	for _, r := range pivotRows {
		if r.kind == rowData {
			isPivot[r.pivot] = true
		}
	}
	var freeCols []int
	for c := 0; c < width; c++ {
		if !isPivot[c] {
			freeCols = append(freeCols, c)
		}
	}
	if len(freeCols) > maxFreeVars {
		freeCols = freeCols[:maxFreeVars]
	}

	var results []bitpoly.Poly
	total := 1 << uint(len(freeCols))
	for mask := 0; mask < total; mask++ {
		assign := make([]int, width)
		for i, c := range freeCols {
			assign[c] = (mask >> uint(i)) & 1
		}
		initVec := bitpoly.Alloc(width)
		for _, c := range freeCols {
			initVec.SetCoeff(c, assign[c])
		}
		for _, r := range pivotRows {
			if r.kind != rowData {
				continue
			}
			val := r.bits.Coeff(width)
			for _, c := range freeCols {
				if r.bits.Coeff(c) == 1 && assign[c] == 1 {
					val ^= 1
				}
			}
			initVec.SetCoeff(r.pivot, val)
		}
		results = append(results, initVec)
		if exhaustiveOnly {
			break
		}
	}
	return results
}
