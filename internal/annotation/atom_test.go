package annotation

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsedAtom(t *testing.T) {
	set, err := Load([]string{
		" bindgen:max-bits=16",
		" bindgen:padding=",
		" bindgen:ratio=0.5",
		" bindgen:bad=sixteen",
		" bindgen:flag",
	}, nil)
	require.NoError(t, err)

	bits, ok := ParsedAtom(set, "max-bits", ParseInteger[uint8])
	assert.True(t, ok)
	assert.Equal(t, uint8(16), bits)

	padding, ok := ParsedAtom(set, "padding", ParseInteger[int])
	assert.True(t, ok)
	assert.Zero(t, padding, "atom without text yields the zero value")

	ratio, ok := ParsedAtom(set, "ratio", func(s string) (float64, error) {
		return strconv.ParseFloat(s, 64)
	})
	assert.True(t, ok)
	assert.InDelta(t, 0.5, ratio, 1e-9)

	_, ok = ParsedAtom(set, "flag", ParseInteger[int])
	assert.False(t, ok, "bool is not an atom")

	_, ok = ParsedAtom(set, "missing", ParseInteger[int])
	assert.False(t, ok)

	assert.Panics(t, func() {
		ParsedAtom(set, "bad", ParseInteger[int])
	})
}

func TestParseInteger(t *testing.T) {
	v, err := ParseInteger[int16]("-300")
	require.NoError(t, err)
	assert.Equal(t, int16(-300), v)

	u, err := ParseInteger[uint64]("18446744073709551615")
	require.NoError(t, err)
	assert.Equal(t, uint64(18446744073709551615), u)

	_, err = ParseInteger[uint8]("256")
	assert.Error(t, err, "out of range")

	_, err = ParseInteger[uint32]("-1")
	assert.Error(t, err, "negative into unsigned")

	_, err = ParseInteger[int]("0x10")
	assert.Error(t, err, "decimal only")
}
