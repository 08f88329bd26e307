package ecsig

import (
	"math/big"

	"github.com/kochabx/ecsig/core/crypto/ecsig/internal"
)

// EncodeP1363 encodes sig as r||s, each left-padded to width bytes.
func EncodeP1363(sig *Signature, width int) ([]byte, error) {
	if err := sig.validate(); err != nil {
		return nil, err
	}
	if width <= 0 {
		return nil, because(ErrLength, "width must be positive, got %d", width)
	}

	out := make([]byte, 0, 2*width)
	for _, part := range []struct {
		name  string
		value *big.Int
	}{{"r", sig.R}, {"s", sig.S}} {
		padded, ok := internal.ZeroPad(part.value.Bytes(), width)
		if !ok {
			return nil, inField(ErrValueTooLarge, part.name, "%d bytes do not fit width %d", internal.ByteLen(part.value), width)
		}
		out = append(out, padded...)
	}

	return out, nil
}

// EncodeP1363Hex encodes sig as lowercase P1363 hex.
func EncodeP1363Hex(sig *Signature, width int) (string, error) {
	raw, err := EncodeP1363(sig, width)
	if err != nil {
		return "", err
	}
	return encodeHex(raw), nil
}

// DecodeP1363 splits raw into two equal halves and returns them with the
// per-integer width.
func DecodeP1363(raw []byte) (*Signature, int, error) {
	if len(raw) == 0 {
		return nil, 0, atOffset(ErrLength, 0, "empty signature")
	}
	if len(raw)%2 != 0 {
		return nil, 0, atOffset(ErrLength, len(raw), "odd byte length %d", len(raw))
	}

	width := len(raw) / 2
	sig := &Signature{
		R: new(big.Int).SetBytes(raw[:width]),
		S: new(big.Int).SetBytes(raw[width:]),
	}
	return sig, width, nil
}

// DecodeP1363Hex decodes hex-encoded P1363.
func DecodeP1363Hex(s string) (*Signature, int, error) {
	if len(s)%2 != 0 {
		return nil, 0, atOffset(ErrLength, len(s), "odd number of hex digits")
	}

	raw, err := decodeHex(s)
	if err != nil {
		return nil, 0, err
	}
	return DecodeP1363(raw)
}

// WidthFromMagnitude returns the smallest canonical width (32, 48 or 66 bytes)
// that holds both integers of sig.
func WidthFromMagnitude(sig *Signature) (int, error) {
	if err := sig.validate(); err != nil {
		return 0, err
	}

	n := sig.byteLen()
	switch {
	case n <= WidthP256:
		return WidthP256, nil
	case n <= WidthP384:
		return WidthP384, nil
	case n <= WidthP521:
		return WidthP521, nil
	default:
		return 0, because(ErrUnsupportedCurveSize, "%d-byte integer exceeds %d bytes", n, WidthP521)
	}
}

// CurveHint names the NIST curve whose coordinate size equals width.
func CurveHint(width int) string {
	switch width {
	case WidthP256:
		return "P-256"
	case WidthP384:
		return "P-384"
	case WidthP521:
		return "P-521"
	default:
		return ""
	}
}
