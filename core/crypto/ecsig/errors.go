package ecsig

import (
	"fmt"
	"strconv"

	"github.com/kochabx/ecsig/errors"
)

// Error codes. The first three digits are the HTTP status the kind maps onto.
const (
	CodeUnknownFormat    = 40001
	CodeSizeLimit        = 41301
	CodeFormatDetection  = 42201
	CodeDERFormat        = 42202
	CodeLength           = 42203
	CodeValueTooLarge    = 42204
	CodeUnsupportedCurve = 42205
	CodeBase64Format     = 42206
	CodeMissingField     = 42207
	CodeHexFormat        = 42208
	CodeJSONFormat       = 42209
	CodeInvalidSignature = 42210
)

// Detection and pipeline errors
var (
	// ErrFormatDetection indicates that no encoding matched an unlabeled input
	ErrFormatDetection = errors.New(CodeFormatDetection, "ecsig: unable to detect signature format")

	// ErrUnknownFormat indicates a format name or value outside the supported set
	ErrUnknownFormat = errors.New(CodeUnknownFormat, "ecsig: unknown signature format")

	// ErrSizeLimit indicates that the input exceeds the configured ceiling
	ErrSizeLimit = errors.New(CodeSizeLimit, "ecsig: input exceeds size limit")
)

// Codec errors
var (
	// ErrDERFormat indicates a malformed ASN.1 DER signature
	ErrDERFormat = errors.New(CodeDERFormat, "ecsig: malformed DER signature")

	// ErrLength indicates a fixed-width signature whose length cannot be split evenly
	ErrLength = errors.New(CodeLength, "ecsig: invalid fixed-width signature length")

	// ErrValueTooLarge indicates an integer that does not fit the requested width
	ErrValueTooLarge = errors.New(CodeValueTooLarge, "ecsig: integer too large for width")

	// ErrUnsupportedCurveSize indicates an integer wider than the largest canonical width
	ErrUnsupportedCurveSize = errors.New(CodeUnsupportedCurve, "ecsig: unsupported curve size")

	// ErrBase64Format indicates malformed base64url text
	ErrBase64Format = errors.New(CodeBase64Format, "ecsig: malformed base64url signature")

	// ErrMissingField indicates a JSON signature without an r or s member
	ErrMissingField = errors.New(CodeMissingField, "ecsig: missing signature field")

	// ErrHexFormat indicates text that is not valid hexadecimal
	ErrHexFormat = errors.New(CodeHexFormat, "ecsig: malformed hex")

	// ErrJSONFormat indicates text that is not a JSON object
	ErrJSONFormat = errors.New(CodeJSONFormat, "ecsig: malformed JSON signature")

	// ErrInvalidSignature indicates nil or negative signature integers
	ErrInvalidSignature = errors.New(CodeInvalidSignature, "ecsig: signature integers must be non-negative")
)

// Metadata keys attached to engine errors
const (
	MetaOffset = "offset"
	MetaField  = "field"
	MetaReason = "reason"
)

func atOffset(kind *errors.Error, offset int, format string, args ...any) *errors.Error {
	return kind.WithMetadata(map[string]string{
		MetaOffset: strconv.Itoa(offset),
		MetaReason: fmt.Sprintf(format, args...),
	})
}

func inField(kind *errors.Error, field string, format string, args ...any) *errors.Error {
	return kind.WithMetadata(map[string]string{
		MetaField:  field,
		MetaReason: fmt.Sprintf(format, args...),
	})
}

func because(kind *errors.Error, format string, args ...any) *errors.Error {
	return kind.WithMetadata(map[string]string{
		MetaReason: fmt.Sprintf(format, args...),
	})
}

// Offset returns the byte offset recorded on an engine error.
func Offset(err error) (int, bool) {
	var e *errors.Error
	if !errors.As(err, &e) {
		return 0, false
	}

	v, ok := e.Metadata[MetaOffset]
	if !ok {
		return 0, false
	}

	offset, convErr := strconv.Atoi(v)
	if convErr != nil {
		return 0, false
	}
	return offset, true
}

// Field returns the JSON member name recorded on an engine error, if any.
func Field(err error) string {
	var e *errors.Error
	if !errors.As(err, &e) {
		return ""
	}
	return e.Metadata[MetaField]
}
