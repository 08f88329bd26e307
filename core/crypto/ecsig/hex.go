package ecsig

import "encoding/hex"

func isHexDigit(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

// firstNonHex returns the index of the first non-hex character, or -1.
func firstNonHex(s string) int {
	for i := 0; i < len(s); i++ {
		if !isHexDigit(s[i]) {
			return i
		}
	}
	return -1
}

// isEvenHex reports whether s is a non-empty, even-length run of hex digits.
func isEvenHex(s string) bool {
	return len(s) >= 2 && len(s)%2 == 0 && firstNonHex(s) < 0
}

// decodeHex decodes s, reporting the character offset of the first bad digit.
func decodeHex(s string) ([]byte, error) {
	if i := firstNonHex(s); i >= 0 {
		return nil, atOffset(ErrHexFormat, i, "invalid hex character %q", s[i])
	}
	if len(s)%2 != 0 {
		return nil, atOffset(ErrHexFormat, len(s), "odd number of hex digits")
	}

	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, ErrHexFormat.WithCause(err)
	}
	return b, nil
}

// trimHexPrefix drops a leading 0x or 0X.
func trimHexPrefix(s string) string {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		return s[2:]
	}
	return s
}

func encodeHex(b []byte) string {
	return hex.EncodeToString(b)
}
