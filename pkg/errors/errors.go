// Package errors provides structured error types for vfxtool.
//
// Every failure while converting a document is local to that document and
// deterministic given the same input and schema set, so none of these errors
// is retryable. The batch driver reports the error for the file and moves on
// to the next one.
//
// # Error Codes
//
//   - BAD_SIGNATURE: the binary does not start with the "vfx" marker
//   - UNSUPPORTED_NODE_TYPE: a node type hash is absent from the active schemas
//   - UNRECOGNIZED_VERSION: a binary version other than 0 or 2, or a tree
//     version attribute other than "GZ" or "TPP"
//   - MALFORMED_TREE_NODE: a tree node or value cannot be interpreted
//   - INVALID_ARGUMENT: a programming-contract violation (nil hash input)
//   - TRUNCATED: the binary ended before the declared content
//   - INDEX_OUT_OF_RANGE: an edge or variation references a missing node
//   - INVALID_SCHEMA: a node definition cannot be registered
//
// # Usage
//
//	err := errors.New(errors.ErrCodeBadSignature, "got %q", sig)
//	if errors.Is(err, errors.ErrCodeBadSignature) {
//	    // skip the file
//	}
//
//	err := errors.Wrap(errors.ErrCodeTruncated, io.ErrUnexpectedEOF, "node #%d", i)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for document conversion.
const (
	// Binary container errors
	ErrCodeBadSignature        Code = "BAD_SIGNATURE"
	ErrCodeUnsupportedNodeType Code = "UNSUPPORTED_NODE_TYPE"
	ErrCodeTruncated           Code = "TRUNCATED"

	// Tree form errors
	ErrCodeUnrecognizedVersion Code = "UNRECOGNIZED_VERSION"
	ErrCodeMalformedTreeNode   Code = "MALFORMED_TREE_NODE"

	// Graph structure errors
	ErrCodeIndexOutOfRange Code = "INDEX_OUT_OF_RANGE"

	// Input and setup errors
	ErrCodeInvalidArgument Code = "INVALID_ARGUMENT"
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidSchema   Code = "INVALID_SCHEMA"
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"
	ErrCodeFileNotFound    Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
// The outermost *Error wins, so a wrapped cause with a different code
// does not match.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return fmt.Sprintf("%s: %v", e.Message, e.Cause)
		}
		return e.Message
	}
	return err.Error()
}

// NodeTypeError reports a node whose type hash has no schema.
// It carries the hash and the byte offset of the node header so the
// failure can be located in the input.
type NodeTypeError struct {
	Hash   uint64
	Offset int64
}

// Error implements the error interface.
func (e *NodeTypeError) Error() string {
	return fmt.Sprintf("unsupported node type %d at offset %d", e.Hash, e.Offset)
}

// Code returns the error code for this error type.
func (e *NodeTypeError) Code() Code {
	return ErrCodeUnsupportedNodeType
}
