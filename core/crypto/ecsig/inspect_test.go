package ecsig

import (
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInspect(t *testing.T) {
	report, err := NewConverter().Inspect("300702020080020101", FormatAuto)
	require.NoError(t, err)

	assert.Equal(t, FormatASN1Hex, report.Format)
	assert.Equal(t, "80", report.R)
	assert.Equal(t, "01", report.S)
	assert.Equal(t, 8, report.RBits)
	assert.Equal(t, 1, report.SBits)
	assert.Equal(t, WidthP256, report.Width)
	assert.Equal(t, "P-256", report.Curve)

	assert.Equal(t, "300702020080020101", report.Encodings.ASN1Hex)
	assert.Equal(t, strings.Repeat("00", 31)+"80"+strings.Repeat("00", 31)+"01", report.Encodings.P1363Hex)
	assert.Equal(t, `{"r":"80","s":"01"}`, report.Encodings.JSON)

	jws, err := EncodeJWS(report.Encodings.P1363Hex)
	require.NoError(t, err)
	assert.Equal(t, jws, report.Encodings.JWS)
}

func TestInspectOversized(t *testing.T) {
	sig := &Signature{R: bytesLong(67), S: big.NewInt(1)}
	der, err := EncodeDERHex(sig)
	require.NoError(t, err)

	report, err := NewConverter().Inspect(der, FormatASN1Hex)
	require.NoError(t, err)

	assert.Equal(t, 67*8, report.RBits)
	assert.Zero(t, report.Width)
	assert.Empty(t, report.Curve)
	assert.Empty(t, report.Encodings.P1363Hex)
	assert.Empty(t, report.Encodings.JWS)
	assert.Equal(t, der, report.Encodings.ASN1Hex)
	assert.NotEmpty(t, report.Encodings.JSON)
}

func TestInspectError(t *testing.T) {
	_, err := NewConverter().Inspect("30060201010201", FormatASN1Hex)
	assert.ErrorIs(t, err, ErrDERFormat)
}
