package ecsig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{
		"":         FormatAuto,
		"auto":     FormatAuto,
		"Detect":   FormatAuto,
		"asn1hex":  FormatASN1Hex,
		"DER":      FormatASN1Hex,
		"p1363hex": FormatP1363Hex,
		"raw":      FormatP1363Hex,
		" jws ":    FormatJWS,
		"jose":     FormatJWS,
		"json":     FormatJSON,
		"rawjson":  FormatJSON,
	}

	for name, want := range tests {
		got, err := ParseFormat(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := ParseFormat("pem")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestFormatString(t *testing.T) {
	for _, f := range Formats() {
		assert.True(t, f.Concrete())

		parsed, err := ParseFormat(f.String())
		require.NoError(t, err)
		assert.Equal(t, f, parsed)
	}

	assert.False(t, FormatAuto.Concrete())
	assert.Equal(t, "unknown", Format(42).String())
}

func TestFormatText(t *testing.T) {
	text, err := FormatJWS.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "jws", string(text))

	var f Format
	require.NoError(t, f.UnmarshalText([]byte("der")))
	assert.Equal(t, FormatASN1Hex, f)

	assert.ErrorIs(t, f.UnmarshalText([]byte("pem")), ErrUnknownFormat)

	_, err = Format(42).MarshalText()
	assert.ErrorIs(t, err, ErrUnknownFormat)
}
