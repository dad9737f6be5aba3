package typed

import (
	"errors"
	"fmt"
	"strings"
)

// ErrCode is the error code of an Error
type ErrCode int

const (
	// ErrCNotFound indicates that no value is stored under the key
	ErrCNotFound ErrCode = iota + 1
	// ErrCSerialize indicates that a value could not be encoded or decoded
	ErrCSerialize
	// ErrCInvalidBase64 indicates an identifier that is not valid base64
	ErrCInvalidBase64
	// ErrCInvalidUtf8 indicates bytes that are not valid UTF-8 text
	ErrCInvalidUtf8
	// ErrCParse indicates a value that could not be parsed into its target type
	ErrCParse
	// ErrCUnauthorized indicates that the caller may not perform the action
	ErrCUnauthorized
	// ErrCUnderflow indicates an arithmetic underflow
	ErrCUnderflow
	// ErrCUnregistered indicates a type that was not registered in the catalog
	ErrCUnregistered
	// ErrCInvalidOperation indicates misuse of an operation (e.g. executing it twice)
	ErrCInvalidOperation
)

func (c ErrCode) String() string {
	switch c {
	case ErrCNotFound:
		return "NotFound"
	case ErrCSerialize:
		return "SerializeErr"
	case ErrCInvalidBase64:
		return "InvalidBase64"
	case ErrCInvalidUtf8:
		return "InvalidUtf8"
	case ErrCParse:
		return "ParseErr"
	case ErrCUnauthorized:
		return "Unauthorized"
	case ErrCUnderflow:
		return "Underflow"
	case ErrCUnregistered:
		return "Unregistered"
	case ErrCInvalidOperation:
		return "InvalidOperation"
	default:
		return fmt.Sprintf("ErrCode(%d)", int(c))
	}
}

// Error is the error returned by all typed operations.
// Errors of the raw store are not converted and reach the caller unchanged.
type Error struct {
	Code ErrCode
	// Key is the lossy rendering of the logical key (if any)
	Key string
	// TypeName is the name of the Go type involved (if any)
	TypeName string
	Msg      string
	Cause    error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return e.Msg
	}
	return fmt.Sprintf("%s: %v", e.Msg, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a new Error with the given code and message
func NewError(code ErrCode, msg string) *Error {
	return &Error{Code: code, Msg: msg}
}

// WrapError creates a new Error with the given code and message that wraps cause
func WrapError(code ErrCode, msg string, cause error) *Error {
	return &Error{Code: code, Msg: msg, Cause: cause}
}

// displayKey renders a logical key for Error.Key, replacing invalid UTF-8
func displayKey(key []byte) string {
	return strings.ToValidUTF8(string(key), "\uFFFD")
}

// newNotFound creates a NotFound error for a logical key
func newNotFound(key []byte, typeName string) *Error {
	display := displayKey(key)
	return &Error{
		Code:     ErrCNotFound,
		Key:      display,
		TypeName: typeName,
		Msg:      fmt.Sprintf("Key '%s' not found in storage", display),
	}
}

// newSerializeErr creates a SerializeErr for a type
func newSerializeErr(typeName string, cause error) *Error {
	return &Error{
		Code:     ErrCSerialize,
		TypeName: typeName,
		Msg:      fmt.Sprintf("Error serializing type %s", typeName),
		Cause:    cause,
	}
}

// newUnregistered creates an Unregistered error for a type
func newUnregistered(typeName, kind string) *Error {
	return &Error{
		Code:     ErrCUnregistered,
		TypeName: typeName,
		Msg:      fmt.Sprintf("type %s has no registered %s", typeName, kind),
	}
}

// --------------------------------------------------------------------------
// Predicates
// --------------------------------------------------------------------------

// CodeOf returns the code of the first *Error in err's chain, 0 if there is none
func CodeOf(err error) ErrCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return 0
}

func hasCode(err error, code ErrCode) bool {
	return err != nil && CodeOf(err) == code
}

// IsNotFound reports whether err is a NotFound error
func IsNotFound(err error) bool { return hasCode(err, ErrCNotFound) }

// IsSerializeErr reports whether err is a SerializeErr
func IsSerializeErr(err error) bool { return hasCode(err, ErrCSerialize) }

// IsInvalidBase64 reports whether err is an InvalidBase64 error
func IsInvalidBase64(err error) bool { return hasCode(err, ErrCInvalidBase64) }

// IsInvalidUtf8 reports whether err is an InvalidUtf8 error
func IsInvalidUtf8(err error) bool { return hasCode(err, ErrCInvalidUtf8) }

// IsParseErr reports whether err is a ParseErr
func IsParseErr(err error) bool { return hasCode(err, ErrCParse) }

// IsUnauthorized reports whether err is an Unauthorized error
func IsUnauthorized(err error) bool { return hasCode(err, ErrCUnauthorized) }

// IsUnderflow reports whether err is an Underflow error
func IsUnderflow(err error) bool { return hasCode(err, ErrCUnderflow) }

// IsUnregistered reports whether err is an Unregistered error
func IsUnregistered(err error) bool { return hasCode(err, ErrCUnregistered) }

// IsInvalidOperation reports whether err is an InvalidOperation error
func IsInvalidOperation(err error) bool { return hasCode(err, ErrCInvalidOperation) }
