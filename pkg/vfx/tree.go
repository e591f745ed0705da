package vfx

import (
	"fmt"
	"io"

	"github.com/beevik/etree"

	"github.com/matzehuels/vfxtool/pkg/errors"
	"github.com/matzehuels/vfxtool/pkg/hash"
	"github.com/matzehuels/vfxtool/pkg/schema"
)

// ReadTree parses the XML tree form. Node classes are resolved against the
// registry namespace named by the root version attribute.
func (c *Codec) ReadTree(r io.Reader) (*Document, error) {
	xml := etree.NewDocument()
	if _, err := xml.ReadFrom(r); err != nil {
		return nil, errors.Wrap(errors.ErrCodeMalformedTreeNode, err, "parse xml")
	}
	root := xml.Root()
	if root == nil || root.Tag != "vfx" {
		return nil, errors.New(errors.ErrCodeMalformedTreeNode, "missing <vfx> root element")
	}
	version, err := schema.ParseVersion(root.SelectAttrValue("version", ""))
	if err != nil {
		return nil, err
	}

	tc := c.treeContext(version)
	doc := New(version)

	for i, el := range sectionChildren(root, "nodes") {
		if el.Tag != "node" {
			return nil, errors.New(errors.ErrCodeMalformedTreeNode, "nodes: unexpected element <%s>", el.Tag)
		}
		class := el.SelectAttrValue("class", "")
		if class == "" {
			return nil, errors.New(errors.ErrCodeMalformedTreeNode, "node %d has no class", i)
		}
		def, ok := c.Registry.Resolve(version, hash.String(class))
		if !ok {
			return nil, errors.New(errors.ErrCodeMalformedTreeNode, "node %d: unknown %s class %q", i, version, class)
		}
		n, err := parseNode(el, def, tc)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeMalformedTreeNode, err, "node %d", i)
		}
		doc.Nodes = append(doc.Nodes, n)
	}

	for i, el := range sectionChildren(root, "edges") {
		if el.Tag != "edge" {
			return nil, errors.New(errors.ErrCodeMalformedTreeNode, "edges: unexpected element <%s>", el.Tag)
		}
		e, err := parseEdge(el)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeMalformedTreeNode, err, "edge %d", i)
		}
		doc.Edges = append(doc.Edges, e)
	}

	for i, el := range sectionChildren(root, "variations") {
		if el.Tag != "variation" {
			return nil, errors.New(errors.ErrCodeMalformedTreeNode, "variations: unexpected element <%s>", el.Tag)
		}
		v, err := parseVariation(el)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeMalformedTreeNode, err, "variation %d", i)
		}
		doc.Variations = append(doc.Variations, v)
	}

	if tc.rehashed > 0 {
		c.logger().Debug("hashed non-numeric integer values", "count", tc.rehashed)
	}
	if err := checkIndices(len(doc.Nodes), doc.Edges, doc.Variations); err != nil {
		return nil, err
	}
	return doc, nil
}

// sectionChildren returns the children of the named section element. A
// missing section is empty.
func sectionChildren(root *etree.Element, section string) []*etree.Element {
	el := root.SelectElement(section)
	if el == nil {
		return nil
	}
	return el.ChildElements()
}

// WriteTree writes d in the indented XML tree form.
func (c *Codec) WriteTree(w io.Writer, d *Document) error {
	if err := d.Validate(); err != nil {
		return err
	}
	xml := c.buildTree(d)
	if _, err := xml.WriteTo(w); err != nil {
		return fmt.Errorf("write tree: %w", err)
	}
	return nil
}

func (c *Codec) buildTree(d *Document) *etree.Document {
	tc := c.treeContext(d.Version)

	xml := etree.NewDocument()
	xml.CreateProcInst("xml", `version="1.0" encoding="utf-8"`)
	root := xml.CreateElement("vfx")
	root.CreateAttr("version", d.Version.String())

	nodes := root.CreateElement("nodes")
	for _, n := range d.Nodes {
		renderNode(nodes.CreateElement("node"), n, tc)
	}
	edges := root.CreateElement("edges")
	for _, e := range d.Edges {
		renderEdge(edges.CreateElement("edge"), e)
	}
	variations := root.CreateElement("variations")
	for _, v := range d.Variations {
		renderVariation(variations.CreateElement("variation"), v)
	}

	xml.Indent(2)
	return xml
}
