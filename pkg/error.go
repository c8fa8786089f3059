package pkg

// Sentinel errors for the debuglog packages.
// These errors can be tested using errors.Is for reliable error checking.

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
)

// Error represents a chain of errors.
type Error []error

// ErrInvalidLevel is returned when a severity level name cannot be parsed.
//
// This error should be wrapped with the offending text.
var ErrInvalidLevel = MakeErrorf("invalid severity level")

// ErrInvalidBase is returned when a numeric base name cannot be parsed.
//
// This error should be wrapped with the offending text.
var ErrInvalidBase = MakeErrorf("invalid numeric base")

// ErrOpenSink is returned when a file sink cannot be opened.
//
// This error should be wrapped with the underlying I/O error
// to preserve the error chain.
var ErrOpenSink = MakeErrorf("failed to open sink")

// ErrEnvConfig is returned when environment configuration is malformed.
//
// This error should be wrapped with the underlying parse error.
var ErrEnvConfig = MakeErrorf("invalid environment configuration")

// ErrEval is returned when an expression fails to compile or run.
//
// This error should be wrapped with the underlying expression error.
var ErrEval = MakeErrorf("expression error")

// ErrDecode is returned when a YAML or JSON document cannot be decoded.
//
// This error should be wrapped with the underlying decoder error.
var ErrDecode = MakeErrorf("decode error")

// ErrReadInput is returned when reading input fails.
//
// This error should be wrapped with the underlying I/O error
// to preserve the error chain.
var ErrReadInput = MakeErrorf("failed to read input")

// ErrWriteConfig is returned when a configuration file cannot be written.
//
// This error should be wrapped with the underlying I/O error
// to preserve the error chain.
var ErrWriteConfig = MakeErrorf("failed to write configuration")

// ErrFileExists is returned when refusing to overwrite an existing file.
var ErrFileExists = MakeErrorf("file exists")

// MakeError constructs an Error from the given errors.
// The errors are stored in the order they are provided:
// the first argument is the innermost error in the chain.
// Nil is returned if no errors are provided.
func MakeError(errs ...error) Error {
	var e Error

	for _, err := range errs {
		if err != nil {
			e = append(e, UnwrapErrors(err)...)
		}
	}

	return e
}

// MakeErrorf constructs an Error from a formatted error message.
func MakeErrorf(format string, args ...any) Error {
	return MakeError(fmt.Errorf(format, args...))
}

// Error returns a concatenated string representation of all errors
// in the error chain, separated by ": ", from innermost to outermost.
func (e Error) Error() string {
	var sb strings.Builder

	for i, err := range slices.All(e) {
		if i > 0 {
			sb.WriteString(": ")
		}

		sb.WriteString(err.Error())
	}

	return sb.String()
}

// Wrap appends one or more errors to the receiver and returns the result.
// The receiver is never modified, so sentinels can be wrapped freely.
func (e Error) Wrap(err ...error) Error {
	return append(slices.Clip(e), err...)
}

// Wrapf appends a formatted error to the receiver and returns the result.
func (e Error) Wrapf(format string, args ...any) Error {
	return e.Wrap(fmt.Errorf(format, args...))
}

// Unwrap returns the slice of errors contained in the receiver.
func (e Error) Unwrap() []error {
	return e
}

// Is reports whether target is an Error whose chain is a prefix of the
// receiver's chain. This makes a wrapped sentinel match the sentinel itself.
func (e Error) Is(target error) bool {
	t, ok := target.(Error)
	if !ok || len(t) == 0 || len(t) > len(e) {
		return false
	}

	for i := range t {
		if !sameError(e[i], t[i]) {
			return false
		}
	}

	return true
}

// sameError compares two errors by identity without panicking on
// uncomparable dynamic types.
func sameError(a, b error) bool {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || ta == nil || !ta.Comparable() {
		return false
	}

	return a == b
}

// UnwrapErrors recursively unwraps an error chain and returns a slice
// containing all errors in the chain, starting from the innermost error.
func UnwrapErrors(err error) Error {
	if err == nil {
		return nil
	}

	chain := Error{}

	if e, ok := err.(interface{ Unwrap() []error }); ok {
		for _, wrapped := range e.Unwrap() {
			chain = append(chain, UnwrapErrors(wrapped)...)
		}
	} else if e, ok := err.(interface{ Unwrap() error }); ok {
		chain = append(chain, UnwrapErrors(e.Unwrap())...)
	}

	return append(chain, err)
}
