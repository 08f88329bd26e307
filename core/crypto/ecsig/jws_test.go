package ecsig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeJWS(t *testing.T) {
	got, err := EncodeJWS("00010001")
	require.NoError(t, err)
	assert.Equal(t, "AAEAAQ", got)

	got, err = EncodeJWS("01020304")
	require.NoError(t, err)
	assert.Equal(t, "AQIDBA", got)

	_, err = EncodeJWS("0g")
	assert.ErrorIs(t, err, ErrHexFormat)
}

func TestDecodeJWS(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"unpadded", "AAEAAQ", "00010001"},
		{"canonical padding", "AAEAAQ==", "00010001"},
		{"url alphabet", "-_8", "fbff"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeJWS(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeJWSErrors(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		offset int
	}{
		{"empty", "", 0},
		{"standard plus", "AA+A", 2},
		{"standard slash", "AAA/", 3},
		{"invalid character", "AB*C", 2},
		{"residual length", "AAEAA", 5},
		{"short padding", "AAEAAQ=", 6},
		{"long padding", "AAEAAQ===", 6},
		{"padding on full quantum", "AQID=", 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeJWS(tt.in)
			assert.ErrorIs(t, err, ErrBase64Format)

			offset, ok := Offset(err)
			require.True(t, ok)
			assert.Equal(t, tt.offset, offset)
		})
	}
}
