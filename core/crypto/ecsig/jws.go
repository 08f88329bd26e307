package ecsig

import (
	"encoding/base64"
	"strings"
)

// EncodeJWS renders P1363 hex as unpadded base64url, the JWS signature form.
func EncodeJWS(p1363Hex string) (string, error) {
	raw, err := decodeHex(p1363Hex)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// DecodeJWS turns base64url text back into P1363 hex. Canonical '=' padding is
// tolerated; standard-alphabet characters are not.
func DecodeJWS(text string) (string, error) {
	raw, err := decodeBase64URL(text, true)
	if err != nil {
		return "", err
	}
	return encodeHex(raw), nil
}

func isBase64URLChar(c byte) bool {
	return ('A' <= c && c <= 'Z') || ('a' <= c && c <= 'z') || ('0' <= c && c <= '9') || c == '-' || c == '_'
}

func decodeBase64URL(text string, allowPadding bool) ([]byte, error) {
	if text == "" {
		return nil, atOffset(ErrBase64Format, 0, "empty input")
	}

	body := text
	if allowPadding {
		body = strings.TrimRight(text, "=")
	}

	for i := 0; i < len(body); i++ {
		c := body[i]
		if isBase64URLChar(c) {
			continue
		}
		if c == '+' || c == '/' {
			return nil, atOffset(ErrBase64Format, i, "standard base64 character %q, expected base64url", c)
		}
		return nil, atOffset(ErrBase64Format, i, "invalid base64url character %q", c)
	}

	if len(body)%4 == 1 {
		return nil, atOffset(ErrBase64Format, len(body), "invalid residual length")
	}
	if pad := len(text) - len(body); pad > 0 {
		if want := (4 - len(body)%4) % 4; pad != want {
			return nil, atOffset(ErrBase64Format, len(body), "incorrect padding length %d, want %d", pad, want)
		}
	}

	raw, err := base64.RawURLEncoding.DecodeString(body)
	if err != nil {
		return nil, ErrBase64Format.WithCause(err)
	}
	return raw, nil
}
