package ecsig

import (
	"math/big"

	"golang.org/x/crypto/cryptobyte"
	"golang.org/x/crypto/cryptobyte/asn1"
)

// EncodeDER encodes sig as a DER SEQUENCE of two INTEGERs.
//
// Each INTEGER carries the minimal big-endian magnitude, with a single 0x00
// prefix when the top bit of the first byte is set. Lengths up to 127 use the
// short form, longer ones the long form.
func EncodeDER(sig *Signature) ([]byte, error) {
	if err := sig.validate(); err != nil {
		return nil, err
	}

	var b cryptobyte.Builder
	b.AddASN1(asn1.SEQUENCE, func(b *cryptobyte.Builder) {
		b.AddASN1BigInt(sig.R)
		b.AddASN1BigInt(sig.S)
	})

	der, err := b.Bytes()
	if err != nil {
		return nil, ErrDERFormat.WithCause(err)
	}
	return der, nil
}

// EncodeDERHex encodes sig as lowercase DER hex.
func EncodeDERHex(sig *Signature) (string, error) {
	der, err := EncodeDER(sig)
	if err != nil {
		return "", err
	}
	return encodeHex(der), nil
}

// DecodeDER parses a DER SEQUENCE of two INTEGERs.
//
// Decoding tolerates non-minimal zero padding and non-minimal long-form
// lengths; indefinite lengths are rejected. Errors carry the byte offset of the
// fault.
func DecodeDER(der []byte) (*Signature, error) {
	if len(der) == 0 {
		return nil, atOffset(ErrDERFormat, 0, "empty input")
	}
	if der[0] != tagSequence {
		return nil, atOffset(ErrDERFormat, 0, "expected SEQUENCE tag 0x30, got 0x%02x", der[0])
	}

	seq, err := readTLV(der, 0, len(der))
	if err != nil {
		return nil, err
	}
	if seq.end != len(der) {
		return nil, atOffset(ErrDERFormat, seq.end, "%d trailing bytes after SEQUENCE", len(der)-seq.end)
	}

	pos := seq.start
	r, pos, err := readInteger(der, pos, seq.end, "r")
	if err != nil {
		return nil, err
	}
	s, pos, err := readInteger(der, pos, seq.end, "s")
	if err != nil {
		return nil, err
	}
	if pos != seq.end {
		return nil, atOffset(ErrDERFormat, pos, "%d bytes remain after second INTEGER", seq.end-pos)
	}

	return &Signature{R: r, S: s}, nil
}

// DecodeDERHex parses hex-encoded DER.
func DecodeDERHex(s string) (*Signature, error) {
	der, err := decodeHex(s)
	if err != nil {
		return nil, err
	}
	return DecodeDER(der)
}

// element is one definite-length TLV; start and end bound its content.
type element struct {
	tag        byte
	start, end int
}

// readTLV reads the TLV at off, which must end at or before limit.
func readTLV(b []byte, off, limit int) (element, error) {
	if off >= limit {
		return element{}, atOffset(ErrDERFormat, off, "unexpected end of input")
	}

	tag := b[off]
	if tag&highTagNumber == highTagNumber {
		return element{}, atOffset(ErrDERFormat, off, "unsupported high tag number form")
	}
	if off+1 >= limit {
		return element{}, atOffset(ErrDERFormat, off+1, "missing length")
	}

	first := b[off+1]
	header := 2
	length := int(first)

	switch {
	case first == longFormFlag:
		return element{}, atOffset(ErrDERFormat, off+1, "indefinite length is not allowed")
	case first > longFormFlag:
		n := int(first &^ longFormFlag)
		if n > maxLengthOctets {
			return element{}, atOffset(ErrDERFormat, off+1, "length of length %d too large", n)
		}
		if off+2+n > limit {
			return element{}, atOffset(ErrDERFormat, off+2, "truncated long-form length")
		}

		length = 0
		for _, c := range b[off+2 : off+2+n] {
			length = length<<8 | int(c)
		}
		header += n
	}

	start := off + header
	if length > limit-start {
		return element{}, atOffset(ErrDERFormat, off+1, "declared length %d exceeds remaining %d bytes", length, limit-start)
	}

	return element{tag: tag, start: start, end: start + length}, nil
}

// readInteger reads the INTEGER at pos and returns its unsigned magnitude.
func readInteger(b []byte, pos, limit int, name string) (*big.Int, int, error) {
	if pos >= limit {
		return nil, pos, atOffset(ErrDERFormat, pos, "missing INTEGER for %s", name)
	}

	el, err := readTLV(b, pos, limit)
	if err != nil {
		return nil, pos, err
	}
	if el.tag != tagInteger {
		return nil, pos, atOffset(ErrDERFormat, pos, "expected INTEGER tag 0x02 for %s, got 0x%02x", name, el.tag)
	}

	content := b[el.start:el.end]
	if len(content) == 0 {
		return nil, pos, atOffset(ErrDERFormat, el.start, "empty INTEGER for %s", name)
	}

	// Sign protection byte: 0x00 followed by a byte with the top bit set.
	if len(content) > 1 && content[0] == 0x00 && content[1]&0x80 != 0 {
		content = content[1:]
	}

	return new(big.Int).SetBytes(content), el.end, nil
}

// isDERStructure reports whether b is exactly one SEQUENCE whose content is a
// run of well-formed TLVs.
func isDERStructure(b []byte) bool {
	if len(b) == 0 || b[0] != tagSequence {
		return false
	}

	seq, err := readTLV(b, 0, len(b))
	if err != nil || seq.end != len(b) {
		return false
	}

	for pos := seq.start; pos < seq.end; {
		el, err := readTLV(b, pos, seq.end)
		if err != nil {
			return false
		}
		pos = el.end
	}
	return true
}
