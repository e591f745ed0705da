package vfx

import (
	"fmt"
	"math"
	"strings"

	"github.com/matzehuels/vfxtool/pkg/hash"
	"github.com/matzehuels/vfxtool/pkg/schema"
)

// Vector4 is four consecutive float32 values.
type Vector4 struct {
	X, Y, Z, W float32
}

// Value is one typed property value. The zero Value is a false Bool.
//
// Values are comparable with ==; floats are held as their bit patterns so
// that NaN payloads and negative zero compare and round-trip exactly.
type Value struct {
	typ  schema.Type
	bits uint64
	vec  [4]uint32
	text string
}

// BoolValue returns a Bool value.
func BoolValue(b bool) Value {
	v := Value{typ: schema.Bool}
	if b {
		v.bits = 1
	}
	return v
}

// Int32Value returns an Int32 value.
func Int32Value(i int32) Value {
	return Value{typ: schema.Int32, bits: uint64(uint32(i))}
}

// UInt32Value returns a UInt32 value.
func UInt32Value(u uint32) Value {
	return Value{typ: schema.UInt32, bits: uint64(u)}
}

// UInt64Value returns a UInt64 value.
func UInt64Value(u uint64) Value {
	return Value{typ: schema.UInt64, bits: u}
}

// FloatValue returns a Float32 value.
func FloatValue(f float32) Value {
	return Value{typ: schema.Float, bits: uint64(math.Float32bits(f))}
}

// Vector4Value returns a Vector4 value.
func Vector4Value(v Vector4) Value {
	return Value{typ: schema.Vector4, vec: [4]uint32{
		math.Float32bits(v.X), math.Float32bits(v.Y), math.Float32bits(v.Z), math.Float32bits(v.W),
	}}
}

// StrCodeValue returns a string code reference to hash h.
func StrCodeValue(h uint64) Value {
	return Value{typ: schema.StrCode, bits: h}
}

// PathCodeValue returns a path code reference to hash h.
func PathCodeValue(h uint64) Value {
	return Value{typ: schema.PathCode, bits: h}
}

// StrCodeText returns a string code for text, hashed with [hash.String].
func StrCodeText(text string) Value {
	return Value{typ: schema.StrCode, bits: hash.String(text), text: text}
}

// PathCodeText returns a path code for path, hashed with h.
func PathCodeText(h *hash.Hasher, path string) Value {
	return Value{typ: schema.PathCode, bits: h.PathCode(path), text: path}
}

// ZeroValue returns the zero value of type t.
func ZeroValue(t schema.Type) Value {
	return Value{typ: t}
}

// Type returns the value type.
func (v Value) Type() schema.Type { return v.typ }

// Bool returns the value as a bool. Any non-zero byte is true.
func (v Value) Bool() bool { return v.bits != 0 }

// Int32 returns the value as an int32.
func (v Value) Int32() int32 { return int32(uint32(v.bits)) }

// UInt32 returns the value as a uint32.
func (v Value) UInt32() uint32 { return uint32(v.bits) }

// UInt64 returns the value as a uint64.
func (v Value) UInt64() uint64 { return v.bits }

// Float returns the value as a float32.
func (v Value) Float() float32 { return math.Float32frombits(uint32(v.bits)) }

// Vector4 returns the value as a Vector4.
func (v Value) Vector4() Vector4 {
	return Vector4{
		X: math.Float32frombits(v.vec[0]),
		Y: math.Float32frombits(v.vec[1]),
		Z: math.Float32frombits(v.vec[2]),
		W: math.Float32frombits(v.vec[3]),
	}
}

// Hash returns the hash of a code reference.
func (v Value) Hash() uint64 { return v.bits }

// Text returns the text a code reference was parsed from, if any. Values
// decoded from binary carry no text; dictionaries resolve them when the
// tree form is written.
func (v Value) Text() string { return v.text }

// Extension returns the file extension of a path code's text, without the
// leading dot.
func (v Value) Extension() string {
	if v.typ != schema.PathCode {
		return ""
	}
	_, ext := hash.SplitExtension(v.text)
	return ext
}

// IsCode reports whether the value is a string or path code reference.
func (v Value) IsCode() bool {
	return v.typ == schema.StrCode || v.typ == schema.PathCode
}

// SameHash reports whether v and o have the same type and the same
// encoded content, ignoring any text.
func (v Value) SameHash(o Value) bool {
	return v.typ == o.typ && v.bits == o.bits && v.vec == o.vec
}

// String renders the value for logs and the inspector.
func (v Value) String() string {
	switch v.typ {
	case schema.Bool:
		return fmt.Sprint(v.Bool())
	case schema.Int32:
		return fmt.Sprint(v.Int32())
	case schema.UInt32:
		return fmt.Sprint(v.UInt32())
	case schema.UInt64:
		return fmt.Sprint(v.UInt64())
	case schema.Float:
		return formatFloat(uint32(v.bits))
	case schema.Vector4:
		parts := make([]string, 4)
		for i, b := range v.vec {
			parts[i] = formatFloat(b)
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case schema.StrCode, schema.PathCode:
		if v.text != "" {
			return fmt.Sprintf("%q", v.text)
		}
		return fmt.Sprint(v.bits)
	}
	return fmt.Sprintf("%s(%d)", v.typ, v.bits)
}
