package ecsig

import (
	"strconv"
	"strings"
)

// Converter converts signatures between encodings. It holds no mutable state
// and is safe for concurrent use.
type Converter struct {
	maxInputSize int
}

// Option configures a Converter.
type Option func(*Converter)

// WithMaxInputSize sets the raw input ceiling in bytes. Zero or a negative
// value disables the check.
func WithMaxInputSize(n int) Option {
	return func(c *Converter) {
		c.maxInputSize = n
	}
}

// NewConverter creates a Converter with a DefaultMaxInputSize ceiling.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		maxInputSize: DefaultMaxInputSize,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// MaxInputSize returns the configured input ceiling.
func (c *Converter) MaxInputSize() int {
	return c.maxInputSize
}

// Convert decodes input in format from (detecting it when from is
// FormatAuto) and re-encodes it as to.
func (c *Converter) Convert(input string, from, to Format) (string, error) {
	if !to.Concrete() {
		return "", because(ErrUnknownFormat, "output format must be concrete, got %s", to)
	}

	sig, _, err := c.Decode(input, from)
	if err != nil {
		return "", err
	}
	return Encode(sig, to)
}

// Decode resolves the input format and returns the canonical signature along
// with the format that was used.
func (c *Converter) Decode(input string, from Format) (*Signature, Format, error) {
	if !from.valid() {
		return nil, from, because(ErrUnknownFormat, "unknown input format value %d", int(from))
	}
	if c.maxInputSize > 0 && len(input) > c.maxInputSize {
		return nil, from, ErrSizeLimit.WithMetadata(map[string]string{
			"size":  strconv.Itoa(len(input)),
			"limit": strconv.Itoa(c.maxInputSize),
		})
	}

	input = strings.TrimSpace(input)

	if from == FormatAuto {
		detected, err := Detect(input)
		if err != nil {
			return nil, from, err
		}
		from = detected
	}

	sig, err := decode(input, from)
	if err != nil {
		return nil, from, err
	}
	return sig, from, nil
}

func decode(input string, from Format) (*Signature, error) {
	switch from {
	case FormatASN1Hex:
		return DecodeDERHex(input)
	case FormatP1363Hex:
		sig, _, err := DecodeP1363Hex(input)
		return sig, err
	case FormatJWS:
		p1363, err := DecodeJWS(input)
		if err != nil {
			return nil, err
		}
		sig, _, err := DecodeP1363Hex(p1363)
		return sig, err
	case FormatJSON:
		return DecodeJSON(input)
	default:
		return nil, because(ErrUnknownFormat, "cannot decode format %s", from)
	}
}

// Encode renders sig in the target format. Fixed-width targets use the width
// inferred from the magnitude of sig.
func Encode(sig *Signature, to Format) (string, error) {
	switch to {
	case FormatASN1Hex:
		return EncodeDERHex(sig)
	case FormatP1363Hex:
		width, err := WidthFromMagnitude(sig)
		if err != nil {
			return "", err
		}
		return EncodeP1363Hex(sig, width)
	case FormatJWS:
		width, err := WidthFromMagnitude(sig)
		if err != nil {
			return "", err
		}
		p1363, err := EncodeP1363Hex(sig, width)
		if err != nil {
			return "", err
		}
		return EncodeJWS(p1363)
	case FormatJSON:
		return EncodeJSON(sig)
	default:
		return "", because(ErrUnknownFormat, "cannot encode format %s", to)
	}
}

// Convert converts input with a default Converter.
func Convert(input string, from, to Format) (string, error) {
	return NewConverter().Convert(input, from, to)
}
