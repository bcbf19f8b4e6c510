// Package model implements M, the Williams model bundle: a CRC algorithm's
// full parameter set plus its derived check values, and the operations that
// keep them consistent.
package model

import (
	"errors"
	"fmt"

	"github.com/revengio/reveng/pkg/bitpoly"
	"github.com/revengio/reveng/pkg/crcengine"
	"github.com/revengio/reveng/pkg/wflags"
)

// ErrNoPlusOneTerm is returned by Canonicalize when SPoly's lowest bit (the
// generator's required +1 term) is not set.
var ErrNoPlusOneTerm = errors.New("model: polynomial must have a +1 term")

// checkMessage is the canonical "123456789" ASCII message used to derive a
// model's Check value.
var checkMessage = bitpoly.FromBytes([]byte("123456789"))

// Model is a complete Williams-model CRC algorithm: the parameters that
// define it (SPoly, Init, XorOut, Flags) plus the values derived from them
// (Check, Magic) and an optional catalogue Name.
type Model struct {
	SPoly  bitpoly.Poly // chopped generator polynomial, width = SPoly.Len()
	Init   bitpoly.Poly
	XorOut bitpoly.Poly
	Check  bitpoly.Poly // CRC of "123456789" under this model
	Magic  bitpoly.Poly // residue of a correctly terminated codeword
	Flags  wflags.Flags
	Name   string
}

// Width returns the CRC width in bits.
func (m Model) Width() int { return m.SPoly.Len() }

// Clone returns an independent deep copy of m.
func Clone(m Model) Model {
	return Model{
		SPoly:  bitpoly.Clone(m.SPoly),
		Init:   bitpoly.Clone(m.Init),
		XorOut: bitpoly.Clone(m.XorOut),
		Check:  bitpoly.Clone(m.Check),
		Magic:  bitpoly.Clone(m.Magic),
		Flags:  m.Flags,
		Name:   m.Name,
	}
}

func allFieldsZero(m *Model) bool {
	return m.SPoly.IsZero() && m.Init.IsZero() && m.XorOut.IsZero() && m.Flags == 0
}

// Canonicalize (mcanon) enforces the model's basic well-formedness rule: the
// generator's low bit (its +1 term) must be set. The degenerate all-zero
// model (width 0, no flags) is treated as "no model yet" and simply has its
// catalogue name cleared. Otherwise Init and XorOut are masked (Resize'd) to
// the polynomial's width.
func (m *Model) Canonicalize() error {
	if m.SPoly.Len() == 0 && allFieldsZero(m) {
		m.Name = ""
		return nil
	}
	w := m.SPoly.Len()
	if w == 0 || m.SPoly.Coeff(w-1) != 1 {
		return ErrNoPlusOneTerm
	}
	m.Init = bitpoly.Resize(m.Init, w)
	m.XorOut = bitpoly.Resize(m.XorOut, w)
	return nil
}

// ClearName (mnovel) clears the catalogue name, marking the model as not (or
// no longer known to be) one of the named presets.
func (m *Model) ClearName() { m.Name = "" }

// RecomputeChecks (mcheck) recomputes Check and Magic from SPoly, Init,
// XorOut and Flags.
func (m *Model) RecomputeChecks() {
	w := m.Width()
	m.Check = crcengine.FullCRC(checkMessage, m.SPoly, m.Init, m.XorOut, m.Flags)

	ones := bitpoly.AllOnes(w)
	raw := crcengine.FullCRC(ones, m.SPoly, m.Init, m.XorOut, m.Flags)
	bitpoly.Sum(&raw, m.XorOut, 0)
	m.Magic = raw
}

// Reverse (mrev) produces the reverse algorithm of the same family: the
// reciprocal polynomial, REFIN and REFOUT swapped, and Init/XorOut reflected
// whenever the new REFOUT bit is set.
func (m Model) Reverse() Model {
	r := Clone(m)
	r.SPoly = bitpoly.Reciprocal(m.SPoly)
	newRefin := m.Flags.Any(wflags.REFOUT)
	newRefout := m.Flags.Any(wflags.REFIN)
	r.Flags = m.Flags.Set(wflags.REFIN, newRefin).Set(wflags.REFOUT, newRefout)
	if newRefout {
		r.Init = bitpoly.Reverse(m.Init)
		r.XorOut = bitpoly.Reverse(m.XorOut)
	}
	r.ClearName()
	r.RecomputeChecks()
	return r
}

// String renders a one-line Koopman-style summary, e.g.
// "width=16 poly=0x1021 init=0xffff refin=false refout=false xorout=0x0000 check=0x29b1 name=CRC-16/IBM-3740".
func (m Model) String() string {
	name := m.Name
	if name == "" {
		name = "(unnamed)"
	}
	return fmt.Sprintf(
		"width=%d poly=0x%s init=0x%s refin=%t refout=%t xorout=0x%s check=0x%s name=%s",
		m.Width(), m.SPoly.Hex(), m.Init.Hex(),
		m.Flags.Any(wflags.REFIN), m.Flags.Any(wflags.REFOUT),
		m.XorOut.Hex(), m.Check.Hex(), name,
	)
}
