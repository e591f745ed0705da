package vfx

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/beevik/etree"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/vfxtool/pkg/dictionary"
	"github.com/matzehuels/vfxtool/pkg/errors"
	"github.com/matzehuels/vfxtool/pkg/hash"
	"github.com/matzehuels/vfxtool/pkg/schema"
)

// canonicalNaN is the bit pattern strconv produces for "NaN".
const canonicalNaN uint32 = 0x7fc00000

// valueCodec is the fixed set of operations for one property type.
type valueCodec struct {
	decode func(c *cursor) (Value, error)
	encode func(b []byte, v Value) []byte
	render func(el *etree.Element, v Value, tc *treeContext)
	parse  func(el *etree.Element, tc *treeContext) (Value, error)
}

// valueCodecs is indexed by schema.Type. Types are resolved when schemas
// load, so decoding a value is one table index.
var valueCodecs = [...]valueCodec{
	schema.Bool: {
		decode: func(c *cursor) (Value, error) {
			b, err := c.u8()
			return Value{typ: schema.Bool, bits: uint64(b)}, err
		},
		encode: func(b []byte, v Value) []byte { return appendU8(b, uint8(v.bits)) },
		render: func(el *etree.Element, v Value, _ *treeContext) {
			switch v.bits {
			case 0:
				el.SetText("false")
			case 1:
				el.SetText("true")
			default:
				// keep non-canonical bytes exact
				el.SetText(strconv.FormatUint(v.bits, 10))
			}
		},
		parse: func(el *etree.Element, _ *treeContext) (Value, error) {
			s := strings.TrimSpace(el.Text())
			if b, err := strconv.ParseBool(s); err == nil {
				return BoolValue(b), nil
			}
			if u, err := strconv.ParseUint(s, 10, 8); err == nil {
				return Value{typ: schema.Bool, bits: u}, nil
			}
			return Value{}, errors.New(errors.ErrCodeMalformedTreeNode, "invalid bool %q", s)
		},
	},
	schema.Int32: {
		decode: func(c *cursor) (Value, error) {
			u, err := c.u32()
			return Value{typ: schema.Int32, bits: uint64(u)}, err
		},
		encode: func(b []byte, v Value) []byte { return appendU32(b, uint32(v.bits)) },
		render: func(el *etree.Element, v Value, _ *treeContext) {
			el.SetText(strconv.FormatInt(int64(v.Int32()), 10))
		},
		parse: func(el *etree.Element, tc *treeContext) (Value, error) {
			s := el.Text()
			if i, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32); err == nil {
				return Int32Value(int32(i)), nil
			}
			return Int32Value(int32(hash.String32(tc.rehash(s)))), nil
		},
	},
	schema.UInt32: {
		decode: func(c *cursor) (Value, error) {
			u, err := c.u32()
			return Value{typ: schema.UInt32, bits: uint64(u)}, err
		},
		encode: func(b []byte, v Value) []byte { return appendU32(b, uint32(v.bits)) },
		render: func(el *etree.Element, v Value, _ *treeContext) {
			el.SetText(strconv.FormatUint(v.bits, 10))
		},
		parse: func(el *etree.Element, tc *treeContext) (Value, error) {
			s := el.Text()
			if u, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32); err == nil {
				return UInt32Value(uint32(u)), nil
			}
			return UInt32Value(hash.String32(tc.rehash(s))), nil
		},
	},
	schema.UInt64: {
		decode: func(c *cursor) (Value, error) {
			u, err := c.u64()
			return Value{typ: schema.UInt64, bits: u}, err
		},
		encode: func(b []byte, v Value) []byte { return appendU64(b, v.bits) },
		render: func(el *etree.Element, v Value, _ *treeContext) {
			el.SetText(strconv.FormatUint(v.bits, 10))
		},
		parse: func(el *etree.Element, tc *treeContext) (Value, error) {
			s := el.Text()
			if u, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64); err == nil {
				return UInt64Value(u), nil
			}
			return UInt64Value(hash.String(tc.rehash(s))), nil
		},
	},
	schema.Float: {
		decode: func(c *cursor) (Value, error) {
			u, err := c.u32()
			return Value{typ: schema.Float, bits: uint64(u)}, err
		},
		encode: func(b []byte, v Value) []byte { return appendU32(b, uint32(v.bits)) },
		render: func(el *etree.Element, v Value, _ *treeContext) {
			el.SetText(formatFloat(uint32(v.bits)))
		},
		parse: func(el *etree.Element, _ *treeContext) (Value, error) {
			bits, err := parseFloat(el.Text())
			if err != nil {
				return Value{}, err
			}
			return Value{typ: schema.Float, bits: uint64(bits)}, nil
		},
	},
	schema.Vector4: {
		decode: func(c *cursor) (Value, error) {
			v := Value{typ: schema.Vector4}
			for i := range v.vec {
				u, err := c.u32()
				if err != nil {
					return Value{}, err
				}
				v.vec[i] = u
			}
			return v, nil
		},
		encode: func(b []byte, v Value) []byte {
			for _, u := range v.vec {
				b = appendU32(b, u)
			}
			return b
		},
		render: func(el *etree.Element, v Value, _ *treeContext) {
			for i, name := range vectorAttrs {
				el.CreateAttr(name, formatFloat(v.vec[i]))
			}
		},
		parse: func(el *etree.Element, _ *treeContext) (Value, error) {
			v := Value{typ: schema.Vector4}
			for i, name := range vectorAttrs {
				attr := el.SelectAttr(name)
				if attr == nil {
					return Value{}, errors.New(errors.ErrCodeMalformedTreeNode, "vector is missing %q", name)
				}
				bits, err := parseFloat(attr.Value)
				if err != nil {
					return Value{}, err
				}
				v.vec[i] = bits
			}
			return v, nil
		},
	},
	schema.StrCode:  codeCodec(schema.StrCode),
	schema.PathCode: codeCodec(schema.PathCode),
}

var vectorAttrs = [4]string{"x", "y", "z", "w"}

func codecFor(t schema.Type) *valueCodec {
	return &valueCodecs[t]
}

func codeCodec(t schema.Type) valueCodec {
	return valueCodec{
		decode: func(c *cursor) (Value, error) {
			u, err := c.u64()
			return Value{typ: t, bits: u}, err
		},
		encode: func(b []byte, v Value) []byte { return appendU64(b, v.bits) },
		render: func(el *etree.Element, v Value, tc *treeContext) {
			el.SetText(tc.renderCode(v))
		},
		parse: func(el *etree.Element, tc *treeContext) (Value, error) {
			return tc.parseCode(t, el.Text())
		},
	}
}

// treeContext carries what rendering and parsing code values needs.
type treeContext struct {
	version  schema.Version
	strings  *dictionary.Table
	paths    *dictionary.Table
	hasher   *hash.Hasher
	logger   *log.Logger
	rehashed int
}

func (tc *treeContext) hashFunc(t schema.Type) func(string) uint64 {
	if t == schema.PathCode {
		return tc.hasher.PathCode
	}
	return hash.String
}

func (tc *treeContext) table(t schema.Type) *dictionary.Table {
	if t == schema.PathCode {
		return tc.paths
	}
	return tc.strings
}

// rehash records that a non-numeric integer was hashed and returns it.
func (tc *treeContext) rehash(s string) string {
	tc.rehashed++
	return s
}

// resolve returns the text of a code value: its own text or the
// dictionary word, provided it hashes back to the value. Text that would
// read back as a number is never used, nor is a path whose extension has
// no type id.
func (tc *treeContext) resolve(v Value) (string, bool) {
	text, ok := v.text, v.text != ""
	if !ok {
		text, ok = tc.table(v.typ).Lookup(v.bits)
	}
	if !ok || isDecimal(text) || tc.hashFunc(v.typ)(text) != v.bits {
		return "", false
	}
	if v.typ == schema.PathCode && !tc.hasher.Known(extensionOf(text)) {
		return "", false
	}
	return text, true
}

// xmlSafe reports whether s survives a write and read of the tree form
// unchanged: valid UTF-8 made only of XML Char runes, and not blank (the
// indenter drops whitespace-only text).
func xmlSafe(s string) bool {
	if !utf8.ValidString(s) || strings.TrimSpace(s) == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r == '\t' || r == '\n' || r == '\r':
		case r >= 0x20 && r <= 0xD7FF:
		case r >= 0xE000 && r <= 0xFFFD:
		case r >= 0x10000 && r <= utf8.MaxRune:
		default:
			return false
		}
	}
	return true
}

func extensionOf(path string) string {
	_, ext := hash.SplitExtension(path)
	return ext
}

// renderCode returns the resolved text of a code value, or its decimal
// hash when there is none or the text cannot be carried by XML.
func (tc *treeContext) renderCode(v Value) string {
	text, ok := tc.resolve(v)
	if ok && v.typ == schema.PathCode && tc.version == schema.GZ {
		text = EncodeGZPath(text)
	}
	if !ok || !xmlSafe(text) {
		return strconv.FormatUint(v.bits, 10)
	}
	return text
}

// parseCode reads a decimal hash, or hashes anything else as text.
func (tc *treeContext) parseCode(t schema.Type, s string) (Value, error) {
	if u, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64); err == nil {
		return Value{typ: t, bits: u}, nil
	}
	if t == schema.PathCode && tc.version == schema.GZ {
		decoded, err := DecodeGZPath(s)
		if err != nil {
			return Value{}, err
		}
		s = decoded
	}
	if t == schema.PathCode {
		if ext := extensionOf(s); !tc.hasher.Known(ext) {
			return Value{}, errors.New(errors.ErrCodeMalformedTreeNode,
				"path %q: extension %q has no type id (add it to [extensions])", s, ext)
		}
	}
	return Value{typ: t, bits: tc.hashFunc(t)(s), text: s}, nil
}

func isDecimal(s string) bool {
	_, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	return err == nil
}

// formatFloat returns the shortest text that parses back to the same
// float32. NaNs other than the canonical one are written as raw bits.
func formatFloat(bits uint32) string {
	f := math.Float32frombits(bits)
	if math.IsNaN(float64(f)) && bits != canonicalNaN {
		return "0x" + strconv.FormatUint(uint64(bits), 16)
	}
	return strconv.FormatFloat(float64(f), 'g', -1, 32)
}

func parseFloat(s string) (uint32, error) {
	s = strings.TrimSpace(s)
	if rest, ok := strings.CutPrefix(strings.ToLower(s), "0x"); ok {
		u, err := strconv.ParseUint(rest, 16, 32)
		if err != nil {
			return 0, errors.Wrap(errors.ErrCodeMalformedTreeNode, err, "invalid float bits %q", s)
		}
		return uint32(u), nil
	}
	f, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeMalformedTreeNode, err, "invalid float %q", s)
	}
	return math.Float32bits(float32(f)), nil
}
