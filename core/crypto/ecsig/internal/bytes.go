package internal

import "math/big"

// ZeroPad pads the byte slice to the specified length by prepending zeros.
// It reports false when b is already longer than length; b is never truncated.
//
// This implementation uses a single allocation for better performance.
func ZeroPad(b []byte, length int) ([]byte, bool) {
	if len(b) > length {
		return nil, false
	}

	result := make([]byte, length)
	copy(result[length-len(b):], b)
	return result, true
}

// Magnitude returns the minimal big-endian bytes of n.
// Zero is returned as a single 0x00 byte so that callers always get content.
func Magnitude(n *big.Int) []byte {
	if n.Sign() == 0 {
		return []byte{0x00}
	}
	return n.Bytes()
}

// ByteLen returns the minimal number of bytes needed to hold n, 0 for zero.
func ByteLen(n *big.Int) int {
	return (n.BitLen() + 7) / 8
}
