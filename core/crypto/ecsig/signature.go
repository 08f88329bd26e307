package ecsig

import (
	"math/big"

	"github.com/kochabx/ecsig/core/crypto/ecsig/internal"
)

// Signature is the canonical (r, s) pair every encoding decodes into.
// Both integers are treated as unsigned magnitudes.
type Signature struct {
	R *big.Int
	S *big.Int
}

// NewSignature creates a Signature from copies of r and s.
func NewSignature(r, s *big.Int) (*Signature, error) {
	sig := &Signature{R: r, S: s}
	if err := sig.validate(); err != nil {
		return nil, err
	}

	return &Signature{
		R: new(big.Int).Set(r),
		S: new(big.Int).Set(s),
	}, nil
}

// Equal reports whether both signatures carry the same integers.
func (sig *Signature) Equal(other *Signature) bool {
	if sig == nil || other == nil {
		return sig == other
	}
	return sig.R.Cmp(other.R) == 0 && sig.S.Cmp(other.S) == 0
}

// byteLen returns the minimal byte length of max(r, s)
func (sig *Signature) byteLen() int {
	return max(internal.ByteLen(sig.R), internal.ByteLen(sig.S))
}

func (sig *Signature) validate() error {
	if sig == nil || sig.R == nil || sig.S == nil {
		return because(ErrInvalidSignature, "signature integers must not be nil")
	}
	if sig.R.Sign() < 0 {
		return inField(ErrInvalidSignature, "r", "negative value")
	}
	if sig.S.Sign() < 0 {
		return inField(ErrInvalidSignature, "s", "negative value")
	}
	return nil
}
