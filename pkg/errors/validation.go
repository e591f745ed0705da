package errors

import (
	"strings"
	"unicode"
)

// maxNameLength bounds node type and property names. Definitions come from
// files on disk and names end up as XML attribute values.
const maxNameLength = 256

// ValidateDefinitionName validates a node type name from a schema file.
//
// The validation rules:
//   - No empty names
//   - No control characters or null bytes
//   - No whitespace (the name is hashed byte for byte)
//   - Maximum length of 256 characters
func ValidateDefinitionName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidSchema, "node type name cannot be empty")
	}
	if len(name) > maxNameLength {
		return New(ErrCodeInvalidSchema, "node type name too long (max %d characters)", maxNameLength)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidSchema, "node type name %q contains control characters", name)
		}
		if unicode.IsSpace(r) {
			return New(ErrCodeInvalidSchema, "node type name %q contains whitespace", name)
		}
	}
	return nil
}

// ValidatePropertyName validates a property name within a node definition.
// Property names are written as XML attribute values and matched exactly
// on read, so they must be non-empty and printable.
func ValidatePropertyName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidSchema, "property name cannot be empty")
	}
	if len(name) > maxNameLength {
		return New(ErrCodeInvalidSchema, "property name too long (max %d characters)", maxNameLength)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidSchema, "property name %q contains control characters", name)
		}
	}
	return nil
}
