package ecsig

import (
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// bytesLong returns an integer whose minimal encoding is exactly n bytes.
func bytesLong(n int) *big.Int {
	return new(big.Int).Lsh(big.NewInt(1), uint(8*n-1))
}

func TestEncodeP1363Hex(t *testing.T) {
	one := strings.Repeat("00", 31) + "01"

	got, err := EncodeP1363Hex(sigOf(1, 1), WidthP256)
	require.NoError(t, err)
	assert.Equal(t, one+one, got)

	got, err = EncodeP1363Hex(sigOf(0x0102, 0x0304), 2)
	require.NoError(t, err)
	assert.Equal(t, "01020304", got)

	got, err = EncodeP1363Hex(sigOf(0, 0), 1)
	require.NoError(t, err)
	assert.Equal(t, "0000", got)
}

func TestEncodeP1363Errors(t *testing.T) {
	_, err := EncodeP1363(sigOf(0x0102, 1), 1)
	assert.ErrorIs(t, err, ErrValueTooLarge)
	assert.Equal(t, "r", Field(err))

	_, err = EncodeP1363(sigOf(1, 0x010203), 2)
	assert.ErrorIs(t, err, ErrValueTooLarge)
	assert.Equal(t, "s", Field(err))

	_, err = EncodeP1363(sigOf(1, 1), 0)
	assert.ErrorIs(t, err, ErrLength)
}

func TestDecodeP1363Hex(t *testing.T) {
	sig, width, err := DecodeP1363Hex("01020304")
	require.NoError(t, err)
	assert.Equal(t, 2, width)
	assert.True(t, sigOf(0x0102, 0x0304).Equal(sig))

	sig, width, err = DecodeP1363Hex("00FF00ff")
	require.NoError(t, err)
	assert.Equal(t, 2, width)
	assert.True(t, sigOf(0xff, 0xff).Equal(sig))
}

func TestDecodeP1363Errors(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		offset int
	}{
		{"empty", "", 0},
		{"odd hex digits", "01020", 5},
		{"odd byte length", "010203", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := DecodeP1363Hex(tt.in)
			assert.ErrorIs(t, err, ErrLength)

			offset, ok := Offset(err)
			require.True(t, ok)
			assert.Equal(t, tt.offset, offset)
		})
	}

	_, _, err := DecodeP1363Hex("01zz")
	assert.ErrorIs(t, err, ErrHexFormat)
}

func TestWidthFromMagnitude(t *testing.T) {
	tests := []struct {
		bytes int
		want  int
	}{
		{0, WidthP256},
		{1, WidthP256},
		{32, WidthP256},
		{33, WidthP384},
		{48, WidthP384},
		{49, WidthP521},
		{66, WidthP521},
	}

	for _, tt := range tests {
		r := big.NewInt(0)
		if tt.bytes > 0 {
			r = bytesLong(tt.bytes)
		}

		// The larger integer decides, whichever side it is on.
		got, err := WidthFromMagnitude(&Signature{R: r, S: big.NewInt(1)})
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%d-byte r", tt.bytes)

		got, err = WidthFromMagnitude(&Signature{R: big.NewInt(1), S: r})
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%d-byte s", tt.bytes)
	}

	_, err := WidthFromMagnitude(&Signature{R: bytesLong(67), S: big.NewInt(1)})
	assert.ErrorIs(t, err, ErrUnsupportedCurveSize)
}

func TestCurveHint(t *testing.T) {
	assert.Equal(t, "P-256", CurveHint(WidthP256))
	assert.Equal(t, "P-384", CurveHint(WidthP384))
	assert.Equal(t, "P-521", CurveHint(WidthP521))
	assert.Empty(t, CurveHint(2))
}
