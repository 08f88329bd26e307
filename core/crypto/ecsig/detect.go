package ecsig

import (
	"encoding/hex"
	"strings"
)

// detector pairs a format with a pure predicate over trimmed input.
type detector struct {
	format Format
	match  func(input string) bool
}

// detectionChain is evaluated in order; the first match wins. Hex is tried
// before base64url because short hex strings are often valid base64url too.
var detectionChain = [...]detector{
	{FormatJSON, isJSONObject},
	{FormatASN1Hex, isDERHex},
	{FormatP1363Hex, isEvenHex},
	{FormatJWS, isBase64URL},
}

// Detect classifies unlabeled signature text.
func Detect(input string) (Format, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return FormatAuto, because(ErrFormatDetection, "empty input")
	}

	for _, d := range detectionChain {
		if d.match(input) {
			return d.format, nil
		}
	}
	return FormatAuto, because(ErrFormatDetection, "input is not JSON, hex or base64url")
}

// isDERHex matches even-length hex that starts with a SEQUENCE tag and is a
// structurally consistent DER object.
func isDERHex(s string) bool {
	if !isEvenHex(s) || !strings.HasPrefix(s, "30") {
		return false
	}

	der, err := hex.DecodeString(s)
	if err != nil {
		return false
	}
	return isDERStructure(der)
}

// isBase64URL matches unpadded base64url text that decodes cleanly.
func isBase64URL(s string) bool {
	_, err := decodeBase64URL(s, false)
	return err == nil
}
