package ecsig

// Input limits
const (
	// DefaultMaxInputSize is the ceiling applied to raw input before any DER or
	// JSON parsing takes place.
	DefaultMaxInputSize = 16 << 10 // 16 KiB
)

// Canonical per-integer widths for fixed-width (P1363 / JWS) encodings.
const (
	// WidthP256 is the coordinate size of P-256 and secp256k1
	WidthP256 = 32

	// WidthP384 is the coordinate size of P-384
	WidthP384 = 48

	// WidthP521 is the coordinate size of P-521
	WidthP521 = 66
)

// ASN.1 DER identifiers used by the signature structure
const (
	tagInteger  = 0x02
	tagSequence = 0x30

	// longFormFlag marks a long-form length octet: 0x80 | number of length bytes
	longFormFlag = 0x80

	// maxLengthOctets bounds long-form lengths to 24 bits, which fits int on
	// every platform and is far above any accepted input size
	maxLengthOctets = 3

	// highTagNumber marks the multi-byte tag form, never used by signatures
	highTagNumber = 0x1f
)
