// Package wflags defines the bitset shared by the Williams CRC model and the
// reverse-engineering search. A single Flags word is reused in both contexts
// (spec.md calls these "Model flags" and "rflags" respectively); bits that
// only make sense in one context are simply left unset in the other.
package wflags

// Flags is a bitset. Only REFIN, REFOUT and MULXN are consulted by
// pkg/crcengine; the rest are consumed by pkg/model and pkg/reveng.
type Flags uint32

const (
	REFIN   Flags = 1 << iota // reflect each input byte before consumption
	REFOUT                    // reflect the register before the final XOR
	RTJUST                    // right-justify bit-oriented I/O
	UPPER                     // print hex in upper case
	SPACE                     // insert spaces between printed hex bytes
	LTLBYT                    // little-endian byte order on multi-byte I/O
	DIRECT                    // direct (non-augmented) algorithm family
	MULXN                     // augmented/classical algorithm: append width zero bits
	EXHST                     // keep only the first Init solution when solving for Init
	HAVEP                     // poly is known/fixed for this search
	HAVEI                     // init is known/fixed for this search
	HAVEX                     // xorout is known/fixed for this search
	HAVERI                    // refin is known/fixed for this search
	HAVERO                    // refout is known/fixed for this search
	HAVEQ                     // an upper bound on the poly search range was given
	SHORT                     // force short-mode factor search
)

// Has reports whether all bits in mask are set in f.
func (f Flags) Has(mask Flags) bool { return f&mask == mask }

// Any reports whether any bit in mask is set in f.
func (f Flags) Any(mask Flags) bool { return f&mask != 0 }

// Set returns f with mask turned on or off.
func (f Flags) Set(mask Flags, on bool) Flags {
	if on {
		return f | mask
	}
	return f &^ mask
}
