package errors

import (
	stderrors "errors"
)

// Is reports whether err or any error it wraps matches target. Two *Error
// values match when their Code and Message are equal.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's chain assignable to target, so callers
// importing this package need not also import the standard errors package.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}
