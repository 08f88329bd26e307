package errors

import "net/http"

// HTTP error constructors used by the service surface

// 4xx Client Errors
func BadRequest(format string, args ...any) *Error {
	return New(http.StatusBadRequest, format, args...)
}

func NotFound(format string, args ...any) *Error {
	return New(http.StatusNotFound, format, args...)
}

func MethodNotAllowed(format string, args ...any) *Error {
	return New(http.StatusMethodNotAllowed, format, args...)
}

func RequestEntityTooLarge(format string, args ...any) *Error {
	return New(http.StatusRequestEntityTooLarge, format, args...)
}

func UnprocessableEntity(format string, args ...any) *Error {
	return New(http.StatusUnprocessableEntity, format, args...)
}

func TooManyRequests(format string, args ...any) *Error {
	return New(http.StatusTooManyRequests, format, args...)
}

// 5xx Server Errors
func Internal(format string, args ...any) *Error {
	return New(http.StatusInternalServerError, format, args...)
}

func ServiceUnavailable(format string, args ...any) *Error {
	return New(http.StatusServiceUnavailable, format, args...)
}
