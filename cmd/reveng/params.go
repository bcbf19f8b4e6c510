package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/revengio/reveng/pkg/bitpoly"
	"github.com/revengio/reveng/pkg/model"
	"github.com/revengio/reveng/pkg/preset"
	"github.com/revengio/reveng/pkg/wflags"
)

// registerParamFlags attaches the parameter and modifier flags common to
// every subcommand, mirroring spec.md §6's "Parameter options" and
// "Modifier flags" lists. Each subcommand interprets the subset relevant to
// its own mode switch.
func registerParamFlags(cmd *cobra.Command) {
	cmd.Flags().IntP("width", "w", 0, "CRC width in bits")
	cmd.Flags().StringP("poly", "p", "", "generator polynomial (hex, chopped)")
	cmd.Flags().StringP("rpoly", "P", "", "reversed (reciprocal) generator polynomial (hex)")
	cmd.Flags().StringP("kpoly", "k", "", "generator polynomial in Koopman notation (hex)")
	cmd.Flags().StringP("init", "i", "", "initial register value (hex)")
	cmd.Flags().StringP("xorout", "x", "", "output XOR value (hex)")
	cmd.Flags().StringP("qpoly", "q", "", "upper bound on the polynomial search range (hex)")
	cmd.Flags().StringP("model", "m", "", "named preset model, e.g. CRC-32/ISO-HDLC")

	cmd.Flags().BoolP("exhaustive", "1", false, "keep only the first Init solution when solving for Init (EXHST)")
	cmd.Flags().BoolP("refin", "l", false, "reflect input bytes (little-endian input)")
	cmd.Flags().BoolP("no-refin", "b", false, "do not reflect input bytes (big-endian input)")
	cmd.Flags().BoolP("refout", "L", false, "reflect the register before XOR (little-endian output)")
	cmd.Flags().BoolP("no-refout", "B", false, "do not reflect the register (big-endian output)")
	cmd.Flags().BoolP("right-justify", "r", true, "right-justify bit-oriented I/O")
	cmd.Flags().BoolP("left-justify", "t", false, "left-justify bit-oriented I/O")
	cmd.Flags().IntP("ibits", "a", 4, "input bits per character (1 or 4)")
	cmd.Flags().IntP("obits", "A", 4, "output bits per character (1 or 4)")
	cmd.Flags().BoolP("filenames", "f", false, "treat arguments as filenames, not literal data")
	cmd.Flags().BoolP("skip-presets", "F", false, "accepted for compatibility; has no effect (search runs no preset-catalogue pass)")
	cmd.Flags().BoolP("skip-bruteforce", "G", false, "skip the brute-force pass of search")
	cmd.Flags().BoolP("non-augmenting", "M", false, "use the non-augmenting (DIRECT) algorithm family")
	cmd.Flags().BoolP("space", "S", false, "insert a space between output bytes")
	cmd.Flags().BoolP("reverse-algorithm", "V", false, "operate on the reverse algorithm of the resolved model")
	cmd.Flags().BoolP("uppercase", "X", false, "print hex in uppercase")
	cmd.Flags().BoolP("little-byte-first", "y", false, "low-byte-first byte order on file I/O")
	cmd.Flags().BoolP("raw", "z", false, "treat input as raw binary instead of hex text")
}

// resolveGuess builds a model.Model plus the search rflags from the common
// parameter flags: a -m preset supplies every field at once; explicit -w/-p/
// -P/-k/-i/-x/-q flags override or supply individual fields and set the
// corresponding HAVE* bit.
func resolveGuess(cmd *cobra.Command) (model.Model, wflags.Flags, *bitpoly.Poly, error) {
	var m model.Model
	var have wflags.Flags

	if name := GetString(cmd, "model"); name != "" {
		e, ok := preset.ByName(name)
		if !ok {
			return m, 0, nil, fatalModelErr(name)
		}
		m = preset.ToModel(e)
		have = have.Set(wflags.HAVEP, true).Set(wflags.HAVEI, true).
			Set(wflags.HAVEX, true).Set(wflags.HAVERI, true).Set(wflags.HAVERO, true)
	}

	width := GetInt(cmd, "width")
	if width > 0 {
		m.SPoly = bitpoly.Resize(m.SPoly, width)
	}

	if s := GetString(cmd, "poly"); s != "" {
		p, err := hexToPoly(s, m.Width(), width)
		if err != nil {
			return m, 0, nil, err
		}
		m.SPoly = p
		have = have.Set(wflags.HAVEP, true)
	}
	if s := GetString(cmd, "rpoly"); s != "" {
		p, err := hexToPoly(s, m.Width(), width)
		if err != nil {
			return m, 0, nil, err
		}
		m.SPoly = bitpoly.Reciprocal(p)
		have = have.Set(wflags.HAVEP, true)
	}
	if s := GetString(cmd, "kpoly"); s != "" {
		k, err := hexToPoly(s, m.Width(), width)
		if err != nil {
			return m, 0, nil, err
		}
		m.SPoly = bitpoly.FromKoopman(k)
		have = have.Set(wflags.HAVEP, true)
	}
	if s := GetString(cmd, "init"); s != "" {
		p, err := hexToPoly(s, m.Width(), width)
		if err != nil {
			return m, 0, nil, err
		}
		m.Init = p
		have = have.Set(wflags.HAVEI, true)
	}
	if s := GetString(cmd, "xorout"); s != "" {
		p, err := hexToPoly(s, m.Width(), width)
		if err != nil {
			return m, 0, nil, err
		}
		m.XorOut = p
		have = have.Set(wflags.HAVEX, true)
	}

	if GetFlag(cmd, "refin") {
		m.Flags = m.Flags.Set(wflags.REFIN, true)
		have = have.Set(wflags.HAVERI, true)
	}
	if GetFlag(cmd, "no-refin") {
		m.Flags = m.Flags.Set(wflags.REFIN, false)
		have = have.Set(wflags.HAVERI, true)
	}
	if GetFlag(cmd, "refout") {
		m.Flags = m.Flags.Set(wflags.REFOUT, true)
		have = have.Set(wflags.HAVERO, true)
	}
	if GetFlag(cmd, "no-refout") {
		m.Flags = m.Flags.Set(wflags.REFOUT, false)
		have = have.Set(wflags.HAVERO, true)
	}
	// Direct (non-augmenting, MULXN clear) is the default algorithm family,
	// matching crcengine and preset.ToModel: no preset sets MULXN, and the
	// engine only appends the augmenting tail zeros when MULXN is present.
	// -M is accepted for parity with spec.md's flag table but asks for
	// exactly the engine's default, so it only marks DIRECT for bookkeeping.
	if GetFlag(cmd, "non-augmenting") {
		m.Flags = m.Flags.Set(wflags.DIRECT, true)
	}
	if GetFlag(cmd, "exhaustive") {
		have = have.Set(wflags.EXHST, true)
	}
	// -F (skip-presets) has no effect: this driver never runs a separate
	// catalogue pre-pass, only the single guess the caller supplied.
	if GetFlag(cmd, "skip-bruteforce") {
		have = have.Set(wflags.SHORT, true)
	}

	var qpoly *bitpoly.Poly
	if s := GetString(cmd, "qpoly"); s != "" {
		q, err := hexToPoly(s, m.Width(), width)
		if err != nil {
			return m, 0, nil, err
		}
		have = have.Set(wflags.HAVEQ, true)
		qpoly = &q
	}

	if GetFlag(cmd, "reverse-algorithm") {
		m = m.Reverse()
	}

	return m, have, qpoly, nil
}

// outputFlags builds the wflags.Flags subset ptostr consults (UPPER, SPACE,
// LTLBYT) from their corresponding command flags.
func outputFlags(cmd *cobra.Command) wflags.Flags {
	f := wflags.Flags(0)
	f = f.Set(wflags.UPPER, GetFlag(cmd, "uppercase"))
	f = f.Set(wflags.SPACE, GetFlag(cmd, "space"))
	f = f.Set(wflags.LTLBYT, GetFlag(cmd, "little-byte-first"))
	f = f.Set(wflags.RTJUST, !GetFlag(cmd, "left-justify"))
	return f
}

// readArg turns one command-line argument into a Poly according to the -f
// (filenames) and -z (raw) modifiers: by default arg is literal digit text;
// -f reads arg as a path to a file of digit text; -f with -z reads the file's
// raw bytes directly, bypassing strtop's digit parsing entirely.
func readArg(cmd *cobra.Command, arg string, bitsPerChar int, flags wflags.Flags) (bitpoly.Poly, error) {
	if !GetFlag(cmd, "filenames") {
		return strtop(arg, bitsPerChar, flags)
	}
	data, err := os.ReadFile(arg)
	if err != nil {
		return bitpoly.Poly{}, err
	}
	if GetFlag(cmd, "raw") {
		return bitpoly.FromBytes(data), nil
	}
	return strtop(string(data), bitsPerChar, flags)
}

func hexToPoly(s string, currentWidth, flagWidth int) (bitpoly.Poly, error) {
	bitsPerChar := 4
	flags := wflags.Flags(0)
	p, err := strtop(s, bitsPerChar, flags)
	if err != nil {
		return bitpoly.Poly{}, err
	}
	width := flagWidth
	if width == 0 {
		width = currentWidth
	}
	if width == 0 {
		width = p.Len()
	}
	return bitpoly.Resize(p, width), nil
}

func fatalModelErr(name string) error {
	return modelNotFoundError{name: name}
}

type modelNotFoundError struct{ name string }

func (e modelNotFoundError) Error() string {
	return "cmd/reveng: unknown preset model " + e.name
}
