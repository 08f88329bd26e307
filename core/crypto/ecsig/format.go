package ecsig

import "strings"

// Format identifies one of the supported signature encodings.
type Format int

const (
	// FormatAuto asks the converter to detect the input encoding
	FormatAuto Format = iota
	// FormatASN1Hex is a DER SEQUENCE of two INTEGERs, hex encoded
	FormatASN1Hex
	// FormatP1363Hex is the fixed-width r||s concatenation, hex encoded
	FormatP1363Hex
	// FormatJWS is the P1363 bytes as unpadded base64url (RFC 7515)
	FormatJWS
	// FormatJSON is a {"r": "<hex>", "s": "<hex>"} object
	FormatJSON
)

// Formats lists the concrete encodings in detection-independent order.
func Formats() []Format {
	return []Format{FormatASN1Hex, FormatP1363Hex, FormatJWS, FormatJSON}
}

// String returns the canonical name of the format.
func (f Format) String() string {
	switch f {
	case FormatAuto:
		return "auto"
	case FormatASN1Hex:
		return "asn1hex"
	case FormatP1363Hex:
		return "p1363hex"
	case FormatJWS:
		return "jws"
	case FormatJSON:
		return "json"
	default:
		return "unknown"
	}
}

// Concrete reports whether f names an actual encoding rather than auto.
func (f Format) Concrete() bool {
	switch f {
	case FormatASN1Hex, FormatP1363Hex, FormatJWS, FormatJSON:
		return true
	default:
		return false
	}
}

func (f Format) valid() bool {
	return f == FormatAuto || f.Concrete()
}

// ParseFormat resolves a format name. Matching is case-insensitive and
// accepts a few common aliases.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto", "detect":
		return FormatAuto, nil
	case "asn1hex", "asn1", "der":
		return FormatASN1Hex, nil
	case "p1363hex", "p1363", "concat", "raw":
		return FormatP1363Hex, nil
	case "jws", "jose", "base64url":
		return FormatJWS, nil
	case "json", "rawjson":
		return FormatJSON, nil
	default:
		return FormatAuto, because(ErrUnknownFormat, "unknown format name %q", name)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (f Format) MarshalText() ([]byte, error) {
	if !f.valid() {
		return nil, because(ErrUnknownFormat, "unknown format value %d", int(f))
	}
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Format) UnmarshalText(text []byte) error {
	parsed, err := ParseFormat(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}
