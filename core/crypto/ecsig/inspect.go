package ecsig

import "github.com/kochabx/ecsig/core/crypto/ecsig/internal"

// Report describes a decoded signature.
type Report struct {
	Format    Format    `json:"format"`
	R         string    `json:"r"`
	S         string    `json:"s"`
	RBits     int       `json:"r_bits"`
	SBits     int       `json:"s_bits"`
	Width     int       `json:"width,omitempty"`
	Curve     string    `json:"curve,omitempty"`
	Encodings Encodings `json:"encodings"`
}

// Encodings holds one signature rendered in every format. Fixed-width forms
// are empty when no canonical width can hold the integers.
type Encodings struct {
	ASN1Hex  string `json:"asn1hex"`
	P1363Hex string `json:"p1363hex,omitempty"`
	JWS      string `json:"jws,omitempty"`
	JSON     string `json:"json"`
}

// Inspect decodes input and reports its integers, canonical width and every
// encoding of it.
func (c *Converter) Inspect(input string, from Format) (*Report, error) {
	sig, format, err := c.Decode(input, from)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Format: format,
		R:      encodeHex(internal.Magnitude(sig.R)),
		S:      encodeHex(internal.Magnitude(sig.S)),
		RBits:  sig.R.BitLen(),
		SBits:  sig.S.BitLen(),
	}

	if report.Encodings.ASN1Hex, err = EncodeDERHex(sig); err != nil {
		return nil, err
	}
	if report.Encodings.JSON, err = EncodeJSON(sig); err != nil {
		return nil, err
	}

	// Oversized integers still have DER and JSON forms.
	width, err := WidthFromMagnitude(sig)
	if err != nil {
		return report, nil
	}

	report.Width = width
	report.Curve = CurveHint(width)
	if report.Encodings.P1363Hex, err = EncodeP1363Hex(sig, width); err != nil {
		return nil, err
	}
	if report.Encodings.JWS, err = EncodeJWS(report.Encodings.P1363Hex); err != nil {
		return nil, err
	}

	return report, nil
}
