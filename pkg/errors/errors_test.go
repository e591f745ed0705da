package errors

import (
	"errors"
	"io"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeBadSignature, "got %q", "abc")

	if err.Code != ErrCodeBadSignature {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeBadSignature)
	}

	if err.Message != `got "abc"` {
		t.Errorf("Message = %v, want %v", err.Message, `got "abc"`)
	}

	expected := `BAD_SIGNATURE: got "abc"`
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := io.ErrUnexpectedEOF
	err := Wrap(ErrCodeTruncated, cause, "node #3")

	if err.Code != ErrCodeTruncated {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeTruncated)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	if unwrapped := errors.Unwrap(err); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Error("errors.Is(err, io.ErrUnexpectedEOF) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeUnrecognizedVersion, "test"),
			code:     ErrCodeUnrecognizedVersion,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeUnrecognizedVersion, "test"),
			code:     ErrCodeBadSignature,
			expected: false,
		},
		{
			name:     "outer code wins",
			err:      Wrap(ErrCodeMalformedTreeNode, New(ErrCodeInvalidArgument, "inner"), "outer"),
			code:     ErrCodeMalformedTreeNode,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidInput,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidInput,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeIndexOutOfRange, "test"),
			expected: ErrCodeIndexOutOfRange,
		},
		{
			name:     "plain error",
			err:      errors.New("plain"),
			expected: "",
		},
		{
			name:     "nil",
			err:      nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeInvalidInput, "friendly message"),
			expected: "friendly message",
		},
		{
			name:     "Error with cause",
			err:      Wrap(ErrCodeTruncated, io.ErrUnexpectedEOF, "edge #2"),
			expected: "edge #2: unexpected EOF",
		},
		{
			name:     "plain error",
			err:      errors.New("plain error"),
			expected: "plain error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestNodeTypeError(t *testing.T) {
	err := &NodeTypeError{Hash: 1234, Offset: 13}

	expected := "unsupported node type 1234 at offset 13"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
	if err.Code() != ErrCodeUnsupportedNodeType {
		t.Errorf("Code() = %v, want %v", err.Code(), ErrCodeUnsupportedNodeType)
	}

	wrapped := Wrap(ErrCodeUnsupportedNodeType, err, "node #0")
	var nte *NodeTypeError
	if !errors.As(wrapped, &nte) || nte.Hash != 1234 {
		t.Errorf("errors.As did not recover NodeTypeError from %v", wrapped)
	}
}
