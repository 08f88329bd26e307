package ecsig

import (
	"math/big"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/kochabx/ecsig/core/crypto/ecsig/internal"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// JSONSignature is the raw JSON form of a signature.
type JSONSignature struct {
	R string `json:"r"`
	S string `json:"s"`
}

// EncodeJSON renders sig as {"r":"<hex>","s":"<hex>"} with minimal hex values.
func EncodeJSON(sig *Signature) (string, error) {
	if err := sig.validate(); err != nil {
		return "", err
	}

	out, err := json.MarshalToString(JSONSignature{
		R: encodeHex(internal.Magnitude(sig.R)),
		S: encodeHex(internal.Magnitude(sig.S)),
	})
	if err != nil {
		return "", ErrJSONFormat.WithCause(err)
	}
	return out, nil
}

// DecodeJSON parses a JSON object carrying hex r and s members.
func DecodeJSON(text string) (*Signature, error) {
	var obj map[string]any
	if err := json.UnmarshalFromString(text, &obj); err != nil {
		return nil, because(ErrJSONFormat, "not a JSON object").WithCause(err)
	}
	if obj == nil {
		return nil, because(ErrJSONFormat, "not a JSON object")
	}

	r, err := hexMember(obj, "r")
	if err != nil {
		return nil, err
	}
	s, err := hexMember(obj, "s")
	if err != nil {
		return nil, err
	}

	return &Signature{R: r, S: s}, nil
}

func hexMember(obj map[string]any, name string) (*big.Int, error) {
	v, ok := obj[name]
	if !ok || v == nil {
		return nil, inField(ErrMissingField, name, "no %q value in signature JSON", name)
	}

	str, ok := v.(string)
	if !ok {
		return nil, inField(ErrHexFormat, name, "value must be a hex string")
	}

	str = trimHexPrefix(strings.TrimSpace(str))
	if str == "" {
		return nil, inField(ErrMissingField, name, "no %q value in signature JSON", name)
	}
	if len(str)%2 != 0 {
		str = "0" + str
	}
	if i := firstNonHex(str); i >= 0 {
		return nil, inField(ErrHexFormat, name, "invalid hex character %q", str[i])
	}

	raw, err := decodeHex(str)
	if err != nil {
		return nil, inField(ErrHexFormat, name, "invalid hex").WithCause(err)
	}
	return new(big.Int).SetBytes(raw), nil
}

// isJSONObject reports whether s parses as a JSON object.
func isJSONObject(s string) bool {
	if !strings.HasPrefix(s, "{") {
		return false
	}

	var obj map[string]any
	return json.UnmarshalFromString(s, &obj) == nil && obj != nil
}
