package reveng_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/revengio/reveng/pkg/bitpoly"
	"github.com/revengio/reveng/pkg/crcengine"
	"github.com/revengio/reveng/pkg/model"
	"github.com/revengio/reveng/pkg/preset"
	"github.com/revengio/reveng/pkg/reveng"
	"github.com/revengio/reveng/pkg/wflags"
)

func sampleFor(m model.Model, message string) bitpoly.Poly {
	msg := bitpoly.FromBytes([]byte(message))
	crc := crcengine.FullCRC(msg, m.SPoly, m.Init, m.XorOut, m.Flags)
	return bitpoly.Concat(msg, crc)
}

func TestSearchFullyKnownModelVerifiesViaChkres(t *testing.T) {
	e, _ := preset.ByName("CRC-16/IBM-3740")
	want := preset.ToModel(e)

	guess := model.Model{SPoly: want.SPoly, Init: want.Init, XorOut: want.XorOut, Flags: want.Flags}
	flags := wflags.Flags(0).Set(wflags.HAVEP, true).Set(wflags.HAVEI, true).Set(wflags.HAVEX, true)
	samples := []bitpoly.Poly{sampleFor(want, "hello"), sampleFor(want, "world!!")}

	rep := &reveng.CollectingReporter{}
	results, err := reveng.Search(guess, nil, flags, samples, rep)
	assert.NoError(t, err)
	assert.Len(t, results, 1)
	v, _ := results[0].Check.ToUint64()
	wv, _ := want.Check.ToUint64()
	assert.Equal(t, wv, v)
}

func TestSearchFullyKnownModelRejectsBadSample(t *testing.T) {
	e, _ := preset.ByName("CRC-16/IBM-3740")
	want := preset.ToModel(e)

	guess := model.Model{SPoly: want.SPoly, Init: want.Init, XorOut: want.XorOut, Flags: want.Flags}
	flags := wflags.Flags(0).Set(wflags.HAVEP, true).Set(wflags.HAVEI, true).Set(wflags.HAVEX, true)

	good := sampleFor(want, "hello")
	bad := bitpoly.Clone(good)
	bad.SetCoeff(0, 1-bad.Coeff(0))

	rep := &reveng.CollectingReporter{}
	results, err := reveng.Search(guess, nil, flags, []bitpoly.Poly{bad}, rep)
	assert.NoError(t, err)
	assert.Len(t, results, 0)
}

func TestSearchDerivesXorOutViaCalout(t *testing.T) {
	e, _ := preset.ByName("CRC-16/IBM-3740")
	want := preset.ToModel(e)

	guess := model.Model{SPoly: want.SPoly, Init: want.Init, Flags: want.Flags}
	flags := wflags.Flags(0).Set(wflags.HAVEP, true).Set(wflags.HAVEI, true)
	samples := []bitpoly.Poly{sampleFor(want, "hello"), sampleFor(want, "world!!")}

	rep := &reveng.CollectingReporter{}
	results, err := reveng.Search(guess, nil, flags, samples, rep)
	assert.NoError(t, err)
	assert.Len(t, results, 1)
	wv, _ := want.XorOut.ToUint64()
	gv, _ := results[0].XorOut.ToUint64()
	assert.Equal(t, wv, gv)
}

func TestSearchDerivesInitViaCalini(t *testing.T) {
	e, _ := preset.ByName("CRC-16/IBM-3740")
	want := preset.ToModel(e)

	guess := model.Model{SPoly: want.SPoly, XorOut: want.XorOut, Flags: want.Flags}
	flags := wflags.Flags(0).Set(wflags.HAVEP, true).Set(wflags.HAVEX, true)
	samples := []bitpoly.Poly{sampleFor(want, "hello"), sampleFor(want, "world!!")}

	rep := &reveng.CollectingReporter{}
	results, err := reveng.Search(guess, nil, flags, samples, rep)
	assert.NoError(t, err)
	assert.Len(t, results, 1)
	wv, _ := want.Init.ToUint64()
	gv, _ := results[0].Init.ToUint64()
	assert.Equal(t, wv, gv)
}

func TestSearchDerivesInitViaEnginiFromUnequalLengthSamples(t *testing.T) {
	e, _ := preset.ByName("CRC-16/IBM-3740")
	want := preset.ToModel(e)

	guess := model.Model{SPoly: want.SPoly, Flags: want.Flags}
	flags := wflags.Flags(0).Set(wflags.HAVEP, true)
	samples := []bitpoly.Poly{sampleFor(want, "hello"), sampleFor(want, "a longer message body")}

	rep := &reveng.CollectingReporter{}
	results, err := reveng.Search(guess, nil, flags, samples, rep)
	assert.NoError(t, err)
	assert.True(t, len(results) >= 1)
	found := false
	wv, _ := want.Init.ToUint64()
	for _, r := range results {
		gv, _ := r.Init.ToUint64()
		if gv == wv {
			found = true
		}
	}
	assert.True(t, found, "the true Init must be among engini's candidates")
}

func TestSearchRejectsCrossedEndianGuess(t *testing.T) {
	guess := model.Model{
		SPoly: bitpoly.FromUint64(0x1021, 16),
		Flags: wflags.Flags(0).Set(wflags.REFIN, true),
	}
	flags := wflags.Flags(0).Set(wflags.HAVERI, true).Set(wflags.HAVERO, true).Set(wflags.HAVEP, true)
	_, err := reveng.Search(guess, nil, flags, nil, reveng.NopReporter{})
	assert.ErrorIs(t, err, reveng.ErrCrossedEndian)
}

func TestSearchRequiresPositiveWidth(t *testing.T) {
	guess := model.Model{}
	_, err := reveng.Search(guess, nil, 0, nil, reveng.NopReporter{})
	assert.ErrorIs(t, err, reveng.ErrNoWidth)
}

func TestFactorSearchRecoversKnownGeneratorViaGCD(t *testing.T) {
	e, _ := preset.ByName("CRC-8/SMBUS")
	want := preset.ToModel(e)

	guess := model.Model{
		SPoly:  bitpoly.Alloc(want.Width()),
		Init:   want.Init,
		XorOut: want.XorOut,
		Flags:  want.Flags,
	}
	flags := wflags.Flags(0).Set(wflags.HAVEI, true).Set(wflags.HAVEX, true)
	samples := []bitpoly.Poly{
		sampleFor(want, "hello"),
		sampleFor(want, "world"),
		sampleFor(want, "another message"),
	}

	rep := &reveng.CollectingReporter{}
	results, err := reveng.Search(guess, nil, flags, samples, rep)
	assert.NoError(t, err)
	found := false
	wv, _ := want.SPoly.ToUint64()
	for _, r := range results {
		if rv, ok := r.SPoly.ToUint64(); ok && rv == wv {
			found = true
		}
	}
	assert.True(t, found, "factor search must recover the true generator polynomial")
}
