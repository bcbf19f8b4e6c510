package preset_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/revengio/reveng/pkg/preset"
)

func TestByNameFindsKnownEntry(t *testing.T) {
	e, ok := preset.ByName("CRC-32/ISO-HDLC")
	assert.True(t, ok)
	assert.Equal(t, 32, e.Width)
	assert.Equal(t, uint64(0x04c11db7), e.Poly)
	assert.True(t, e.RefIn)
	assert.True(t, e.RefOut)
}

func TestByNameMissingEntry(t *testing.T) {
	_, ok := preset.ByName("CRC-999/DOES-NOT-EXIST")
	assert.False(t, ok)
}

func TestByIndexIsSortedByName(t *testing.T) {
	n := preset.Count()
	assert.True(t, n > 50)
	for i := 1; i < n; i++ {
		prev, _ := preset.ByIndex(i - 1)
		cur, _ := preset.ByIndex(i)
		assert.True(t, prev.Name < cur.Name, "catalogue must be sorted: %q before %q", prev.Name, cur.Name)
	}
}

func TestAllMatchesCount(t *testing.T) {
	assert.Equal(t, preset.Count(), len(preset.All()))
}

func TestToModelProducesKnownCheckValues(t *testing.T) {
	cases := []struct {
		name  string
		check uint64
	}{
		{"CRC-16/IBM-3740", 0x29B1},
		{"CRC-16/IBM-SDLC", 0x906E},
		{"CRC-32/ISO-HDLC", 0xCBF43926},
	}
	for _, c := range cases {
		e, ok := preset.ByName(c.name)
		assert.True(t, ok, c.name)
		m := preset.ToModel(e)
		v, _ := m.Check.ToUint64()
		assert.Equal(t, c.check, v, c.name)
	}
}

func TestToModelFromModelRoundTrip(t *testing.T) {
	e, ok := preset.ByName("CRC-32/AUTOSAR")
	assert.True(t, ok)
	m := preset.ToModel(e)
	back := preset.FromModel(m)
	assert.Equal(t, e.Width, back.Width)
	assert.Equal(t, e.Poly, back.Poly)
	assert.Equal(t, e.Init, back.Init)
	assert.Equal(t, e.XorOut, back.XorOut)
	assert.Equal(t, e.RefIn, back.RefIn)
	assert.Equal(t, e.RefOut, back.RefOut)
}
