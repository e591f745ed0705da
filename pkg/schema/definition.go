package schema

import (
	"github.com/matzehuels/vfxtool/pkg/errors"
	"github.com/matzehuels/vfxtool/pkg/hash"
)

// Property describes one property of a node type.
type Property struct {
	Name  string
	Type  Type
	Arity int // number of values; always >= 1
}

// Definition is the immutable layout of one node type.
type Definition struct {
	name       string
	hash       uint64
	properties []Property
	size       int
}

// NewDefinition validates and freezes a node type layout. An arity of zero
// is read as one. The properties slice is copied.
func NewDefinition(name string, properties []Property) (*Definition, error) {
	if err := errors.ValidateDefinitionName(name); err != nil {
		return nil, err
	}

	d := &Definition{
		name:       name,
		hash:       hash.String(name),
		properties: make([]Property, len(properties)),
	}
	seen := make(map[string]struct{}, len(properties))
	for i, p := range properties {
		if err := errors.ValidatePropertyName(p.Name); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidSchema, err, "%s: property #%d", name, i)
		}
		if _, dup := seen[p.Name]; dup {
			return nil, errors.New(errors.ErrCodeInvalidSchema, "%s: duplicate property %q", name, p.Name)
		}
		seen[p.Name] = struct{}{}
		if !p.Type.Valid() {
			return nil, errors.New(errors.ErrCodeInvalidSchema, "%s: property %q has invalid type %d", name, p.Name, p.Type)
		}
		if p.Arity < 0 {
			return nil, errors.New(errors.ErrCodeInvalidSchema, "%s: property %q has negative arity", name, p.Name)
		}
		if p.Arity == 0 {
			p.Arity = 1
		}
		d.properties[i] = p
		d.size += p.Arity * p.Type.Size()
	}
	return d, nil
}

// Name returns the node type name.
func (d *Definition) Name() string { return d.name }

// Hash returns the registry key, hash.String(Name()).
func (d *Definition) Hash() uint64 { return d.hash }

// NumProperties returns the number of properties.
func (d *Definition) NumProperties() int { return len(d.properties) }

// Property returns the i-th property in schema order.
func (d *Definition) Property(i int) Property { return d.properties[i] }

// Properties returns a copy of the property list.
func (d *Definition) Properties() []Property {
	out := make([]Property, len(d.properties))
	copy(out, d.properties)
	return out
}

// PropertyIndex returns the position of the named property, or -1.
func (d *Definition) PropertyIndex(name string) int {
	for i, p := range d.properties {
		if p.Name == name {
			return i
		}
	}
	return -1
}

// BodySize returns the encoded size of a node body, excluding the 8-byte
// type hash.
func (d *Definition) BodySize() int { return d.size }
