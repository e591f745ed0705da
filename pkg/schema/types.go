package schema

import (
	"fmt"
	"strings"

	"github.com/matzehuels/vfxtool/pkg/errors"
)

// Version identifies the engine release a document and its schemas belong
// to. The values are the ones stored in the binary header.
type Version uint16

const (
	GZ  Version = 0
	TPP Version = 2
)

// String returns the version tag used in the tree form.
func (v Version) String() string {
	switch v {
	case GZ:
		return "GZ"
	case TPP:
		return "TPP"
	default:
		return fmt.Sprintf("Version(%d)", uint16(v))
	}
}

// Valid reports whether v is a known version.
func (v Version) Valid() bool {
	return v == GZ || v == TPP
}

// ParseVersion parses a tree-form version tag. Matching is exact.
func ParseVersion(s string) (Version, error) {
	switch s {
	case "GZ":
		return GZ, nil
	case "TPP":
		return TPP, nil
	}
	return 0, errors.New(errors.ErrCodeUnrecognizedVersion, "version %q is neither GZ nor TPP", s)
}

// Type is the closed set of property value types.
type Type uint8

const (
	Bool Type = iota
	Int32
	UInt32
	UInt64
	Float
	Vector4
	StrCode
	PathCode

	numTypes
)

var typeNames = [numTypes]string{
	Bool:     "bool",
	Int32:    "int32",
	UInt32:   "uint32",
	UInt64:   "uint64",
	Float:    "float",
	Vector4:  "Vector4",
	StrCode:  "StrCode",
	PathCode: "PathCode64Ext",
}

// typeAliases maps lower-cased schema spellings to types.
var typeAliases = map[string]Type{
	"bool":          Bool,
	"int32":         Int32,
	"int":           Int32,
	"uint32":        UInt32,
	"uint":          UInt32,
	"uint64":        UInt64,
	"float":         Float,
	"float32":       Float,
	"vector4":       Vector4,
	"strcode":       StrCode,
	"strcode64":     StrCode,
	"string":        StrCode,
	"pathcode":      PathCode,
	"pathcode64ext": PathCode,
	"path":          PathCode,
}

// ParseType resolves a schema type name. Matching is case-insensitive.
func ParseType(name string) (Type, error) {
	if t, ok := typeAliases[strings.ToLower(strings.TrimSpace(name))]; ok {
		return t, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidSchema, "unknown property type %q", name)
}

// String returns the canonical type name.
func (t Type) String() string {
	if t < numTypes {
		return typeNames[t]
	}
	return fmt.Sprintf("Type(%d)", uint8(t))
}

// Size returns the encoded byte width of one value of type t.
func (t Type) Size() int {
	switch t {
	case Bool:
		return 1
	case Int32, UInt32, Float:
		return 4
	case UInt64, StrCode, PathCode:
		return 8
	case Vector4:
		return 16
	}
	return 0
}

// Valid reports whether t is a member of the closed set.
func (t Type) Valid() bool {
	return t < numTypes
}
