package vfx

import (
	"fmt"
	"io"

	"github.com/matzehuels/vfxtool/pkg/errors"
	"github.com/matzehuels/vfxtool/pkg/schema"
)

// Signature is the marker every binary document starts with.
const Signature = "vfx"

// HeaderSize is the size of the fixed binary header.
const HeaderSize = len(Signature) + 2 + 3*2 + 4

type header struct {
	version        schema.Version
	nodeCount      uint16
	edgeCount      uint16
	variationCount uint16
}

func readHeader(c *cursor) (header, error) {
	sig, err := c.take(len(Signature))
	if err != nil || string(sig) != Signature {
		return header{}, errors.New(errors.ErrCodeBadSignature, "not a vfx file")
	}
	var h header
	v, err := c.u16()
	if err != nil {
		return header{}, err
	}
	h.version = schema.Version(v)
	if !h.version.Valid() {
		return header{}, errors.New(errors.ErrCodeUnrecognizedVersion, "unknown version %d", v)
	}
	for _, dst := range []*uint16{&h.nodeCount, &h.edgeCount, &h.variationCount} {
		if *dst, err = c.u16(); err != nil {
			return header{}, err
		}
	}
	if err := c.skip(4); err != nil {
		return header{}, err
	}
	return h, nil
}

// ReadBinary decodes a binary document. It returns either a complete
// document or an error; a node type missing from the registry fails the
// whole read with an UNSUPPORTED_NODE_TYPE error wrapping a
// [errors.NodeTypeError].
func (c *Codec) ReadBinary(data []byte) (*Document, error) {
	log := c.logger()
	cur := &cursor{buf: data}

	h, err := readHeader(cur)
	if err != nil {
		return nil, err
	}
	log.Debug("header", "version", h.version, "nodes", h.nodeCount, "edges", h.edgeCount, "variations", h.variationCount)

	doc := &Document{
		Version:    h.version,
		Nodes:      make([]*Node, 0, h.nodeCount),
		Edges:      make([]Edge, 0, h.edgeCount),
		Variations: make([]Variation, 0, h.variationCount),
	}

	for i := range int(h.nodeCount) {
		start := cur.offset()
		typeHash, err := cur.u64()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeTruncated, err, "node %d", i)
		}
		def, ok := c.Registry.Resolve(h.version, typeHash)
		if !ok {
			cause := &errors.NodeTypeError{Hash: typeHash, Offset: start}
			return nil, errors.Wrap(errors.ErrCodeUnsupportedNodeType, cause, "%s node %d", h.version, i)
		}
		log.Debug("reading node", "index", i, "type", def.Name(), "offset", start)
		n, err := decodeNodeBody(cur, def)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeTruncated, err, "node %d", i)
		}
		log.Debug("finished node", "type", def.Name(), "offset", cur.offset())
		doc.Nodes = append(doc.Nodes, n)
	}

	width := EdgeIndexWidth(int(h.nodeCount))
	for i := range int(h.edgeCount) {
		e, err := decodeEdge(cur, width)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeTruncated, err, "edge %d", i)
		}
		doc.Edges = append(doc.Edges, e)
	}

	for i := range int(h.variationCount) {
		v, err := decodeVariation(cur, log)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeTruncated, err, "variation %d", i)
		}
		doc.Variations = append(doc.Variations, v)
	}

	if err := checkIndices(len(doc.Nodes), doc.Edges, doc.Variations); err != nil {
		return nil, err
	}
	if rest := cur.remaining(); rest > 0 {
		log.Debug("trailing bytes ignored", "count", rest)
	}
	return doc, nil
}

// MarshalBinary encodes d. Header counts come from the document.
func (c *Codec) MarshalBinary(d *Document) ([]byte, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	b := make([]byte, 0, HeaderSize+bodySizeHint(d))
	b = append(b, Signature...)
	b = appendU16(b, uint16(d.Version))
	b = appendU16(b, uint16(len(d.Nodes)))
	b = appendU16(b, uint16(len(d.Edges)))
	b = appendU16(b, uint16(len(d.Variations)))
	b = appendU32(b, 0)

	for _, n := range d.Nodes {
		b = encodeNode(b, n)
	}
	width := EdgeIndexWidth(len(d.Nodes))
	for _, e := range d.Edges {
		b = encodeEdge(b, width, e)
	}
	for _, v := range d.Variations {
		b = encodeVariation(b, v)
	}
	return b, nil
}

// WriteBinary encodes d to w.
func (c *Codec) WriteBinary(w io.Writer, d *Document) error {
	b, err := c.MarshalBinary(d)
	if err != nil {
		return err
	}
	if _, err := w.Write(b); err != nil {
		return fmt.Errorf("write binary: %w", err)
	}
	return nil
}

func bodySizeHint(d *Document) int {
	size := 0
	for _, n := range d.Nodes {
		size += 8 + n.Def.BodySize()
	}
	size += 2 * EdgeIndexWidth(len(d.Nodes)) * len(d.Edges)
	for _, v := range d.Variations {
		size += 8 + 4*len(v.Pairs)
	}
	return size
}
