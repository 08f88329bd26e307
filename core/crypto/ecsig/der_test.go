package ecsig

import (
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kochabx/ecsig/errors"
)

func sigOf(r, s int64) *Signature {
	return &Signature{R: big.NewInt(r), S: big.NewInt(s)}
}

func mustHexInt(t *testing.T, h string) *big.Int {
	t.Helper()
	n, ok := new(big.Int).SetString(h, 16)
	require.True(t, ok, "bad hex literal %q", h)
	return n
}

func TestEncodeDERHex(t *testing.T) {
	tests := []struct {
		name string
		sig  *Signature
		want string
	}{
		{"minimal", sigOf(1, 1), "3006020101020101"},
		{"sign padding", sigOf(128, 1), "300702020080020101"},
		{"two byte values", sigOf(0x0102, 0x0304), "30080202010202020304"},
		{"zero values", sigOf(0, 0), "3006020100020100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EncodeDERHex(tt.sig)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEncodeDERLongForm(t *testing.T) {
	ff := mustHexInt(t, strings.Repeat("ff", 66))
	sig := &Signature{R: ff, S: ff}

	got, err := EncodeDERHex(sig)
	require.NoError(t, err)

	integer := "0243" + "00" + strings.Repeat("ff", 66)
	assert.Equal(t, "30818a"+integer+integer, got)

	decoded, err := DecodeDERHex(got)
	require.NoError(t, err)
	assert.True(t, sig.Equal(decoded))
}

func TestEncodeDERRejectsInvalid(t *testing.T) {
	_, err := EncodeDER(&Signature{R: big.NewInt(-1), S: big.NewInt(1)})
	assert.ErrorIs(t, err, ErrInvalidSignature)
	assert.Equal(t, "r", Field(err))

	_, err = EncodeDER(&Signature{R: big.NewInt(1)})
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestDecodeDERHex(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want *Signature
	}{
		{"minimal", "3006020101020101", sigOf(1, 1)},
		{"sign padding stripped", "300702020080020101", sigOf(128, 1)},
		{"uppercase hex", "3007020200800201FF", sigOf(0x80, 0xff)},
		{"non-minimal zero padding tolerated", "30080202000102020001", sigOf(1, 1)},
		{"non-minimal long-form length tolerated", "308106020101020101", sigOf(1, 1)},
		{"zero integers", "3006020100020100", sigOf(0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeDERHex(tt.in)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got r=%v s=%v", got.R, got.S)
		})
	}
}

func TestDecodeDERErrors(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		kind   *errors.Error
		offset int
	}{
		{"empty", "", ErrDERFormat, 0},
		{"wrong outer tag", "3106020101020101", ErrDERFormat, 0},
		{"truncated mid integer", "30060201010201", ErrDERFormat, 1},
		{"indefinite length", "3080020101020101", ErrDERFormat, 1},
		{"missing second integer", "3003020101", ErrDERFormat, 5},
		{"bytes after second integer", "3009020101020101020101", ErrDERFormat, 8},
		{"bytes after sequence", "300602010102010100", ErrDERFormat, 8},
		{"wrong inner tag", "3006040101020101", ErrDERFormat, 2},
		{"empty integer", "30050200020101", ErrDERFormat, 4},
		{"inner overrun", "3006020501020101", ErrDERFormat, 3},
		{"sequence length overstated", "300802020080020101", ErrDERFormat, 1},
		{"four octet length", "308400000006020101020101", ErrDERFormat, 1},
		{"length beyond input", "3083ffffff020101020101", ErrDERFormat, 1},
		{"invalid hex", "30zz", ErrHexFormat, 2},
		{"odd hex", "300", ErrHexFormat, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeDERHex(tt.in)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.kind)

			offset, ok := Offset(err)
			require.True(t, ok, "error carries no offset: %v", err)
			assert.Equal(t, tt.offset, offset)
		})
	}
}

func TestDERRoundTrip(t *testing.T) {
	for _, sig := range sampleSignatures(t) {
		der, err := EncodeDER(sig)
		require.NoError(t, err)

		got, err := DecodeDER(der)
		require.NoError(t, err)
		assert.True(t, sig.Equal(got))

		again, err := EncodeDER(got)
		require.NoError(t, err)
		assert.Equal(t, der, again, "re-encoding must be byte identical")
	}
}

func TestIsDERStructure(t *testing.T) {
	assert.True(t, isDERStructure([]byte{0x30, 0x06, 0x02, 0x01, 0x01, 0x02, 0x01, 0x01}))
	assert.True(t, isDERStructure([]byte{0x30, 0x00}))
	assert.False(t, isDERStructure([]byte{0x30, 0x06, 0x02, 0x01}))
	assert.False(t, isDERStructure([]byte{0x30, 0x02, 0x02, 0x05}))
	assert.False(t, isDERStructure([]byte{0x02, 0x01, 0x01}))
	assert.False(t, isDERStructure(nil))
}
