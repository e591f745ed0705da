package vfx

import (
	"github.com/beevik/etree"

	"github.com/matzehuels/vfxtool/pkg/errors"
	"github.com/matzehuels/vfxtool/pkg/schema"
)

// Node is one typed vertex of the graph. Values[i] holds the values of
// the i-th property of Def, exactly Arity of them.
type Node struct {
	Def    *schema.Definition
	Values [][]Value
}

// NewNode returns a node of type def with every property zeroed.
func NewNode(def *schema.Definition) *Node {
	n := &Node{Def: def, Values: make([][]Value, def.NumProperties())}
	for i := range n.Values {
		p := def.Property(i)
		vals := make([]Value, p.Arity)
		for j := range vals {
			vals[j] = ZeroValue(p.Type)
		}
		n.Values[i] = vals
	}
	return n
}

// Get returns the values of the named property.
func (n *Node) Get(name string) ([]Value, bool) {
	i := n.Def.PropertyIndex(name)
	if i < 0 {
		return nil, false
	}
	return n.Values[i], true
}

// Set replaces the values of the named property. The count must match the
// property arity and every value must have the property type.
func (n *Node) Set(name string, values ...Value) error {
	i := n.Def.PropertyIndex(name)
	if i < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "%s has no property %q", n.Def.Name(), name)
	}
	if err := checkValues(n.Def.Property(i), values); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "%s", n.Def.Name())
	}
	n.Values[i] = append([]Value(nil), values...)
	return nil
}

// Validate checks that the values match the definition.
func (n *Node) Validate() error {
	if n == nil || n.Def == nil {
		return errors.New(errors.ErrCodeInvalidInput, "node has no definition")
	}
	if len(n.Values) != n.Def.NumProperties() {
		return errors.New(errors.ErrCodeInvalidInput, "%s: %d properties, want %d",
			n.Def.Name(), len(n.Values), n.Def.NumProperties())
	}
	for i, vals := range n.Values {
		if err := checkValues(n.Def.Property(i), vals); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "%s", n.Def.Name())
		}
	}
	return nil
}

func checkValues(p schema.Property, values []Value) error {
	if len(values) != p.Arity {
		return errors.New(errors.ErrCodeInvalidInput, "property %q: %d values, want %d", p.Name, len(values), p.Arity)
	}
	for j, v := range values {
		if v.typ != p.Type {
			return errors.New(errors.ErrCodeInvalidInput, "property %q[%d]: %s value, want %s", p.Name, j, v.typ, p.Type)
		}
	}
	return nil
}

// decodeNodeBody reads the properties of a node whose type hash has
// already been consumed.
func decodeNodeBody(c *cursor, def *schema.Definition) (*Node, error) {
	n := &Node{Def: def, Values: make([][]Value, def.NumProperties())}
	for i := range n.Values {
		p := def.Property(i)
		vc := codecFor(p.Type)
		vals := make([]Value, p.Arity)
		for j := range vals {
			v, err := vc.decode(c)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeTruncated, err, "%s.%s", def.Name(), p.Name)
			}
			vals[j] = v
		}
		n.Values[i] = vals
	}
	return n, nil
}

// encodeNode appends the type hash and the properties of n.
func encodeNode(b []byte, n *Node) []byte {
	b = appendU64(b, n.Def.Hash())
	for i, vals := range n.Values {
		vc := codecFor(n.Def.Property(i).Type)
		for _, v := range vals {
			b = vc.encode(b, v)
		}
	}
	return b
}

// renderNode fills a <node> element.
func renderNode(el *etree.Element, n *Node, tc *treeContext) {
	el.CreateAttr("class", n.Def.Name())
	for i, vals := range n.Values {
		p := n.Def.Property(i)
		vc := codecFor(p.Type)
		prop := el.CreateElement("property")
		prop.CreateAttr("name", p.Name)
		prop.CreateAttr("type", p.Type.String())
		for _, v := range vals {
			vc.render(prop.CreateElement("value"), v, tc)
		}
	}
}

// parseNode reads the properties of a <node> element into a node of type
// def. Properties missing from the element keep their zero values and are
// reported as a warning.
func parseNode(el *etree.Element, def *schema.Definition, tc *treeContext) (*Node, error) {
	n := NewNode(def)
	seen := make(map[int]bool, def.NumProperties())
	for _, prop := range el.ChildElements() {
		if prop.Tag != "property" {
			return nil, errors.New(errors.ErrCodeMalformedTreeNode, "%s: unexpected element <%s>", def.Name(), prop.Tag)
		}
		name := prop.SelectAttrValue("name", "")
		i := def.PropertyIndex(name)
		if i < 0 {
			return nil, errors.New(errors.ErrCodeMalformedTreeNode, "%s has no property %q", def.Name(), name)
		}
		if seen[i] {
			return nil, errors.New(errors.ErrCodeMalformedTreeNode, "%s: property %q given twice", def.Name(), name)
		}
		seen[i] = true

		p := def.Property(i)
		elems := prop.SelectElements("value")
		if len(elems) != p.Arity {
			return nil, errors.New(errors.ErrCodeMalformedTreeNode, "%s.%s: %d values, want %d",
				def.Name(), name, len(elems), p.Arity)
		}
		vc := codecFor(p.Type)
		for j, ve := range elems {
			v, err := vc.parse(ve, tc)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeMalformedTreeNode, err, "%s.%s[%d]", def.Name(), name, j)
			}
			n.Values[i][j] = v
		}
	}
	for i := range def.NumProperties() {
		if !seen[i] {
			tc.logger.Warn("property missing, using zero value", "class", def.Name(), "property", def.Property(i).Name)
		}
	}
	return n, nil
}
