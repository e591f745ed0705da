package vfx

import (
	"math"

	"github.com/matzehuels/vfxtool/pkg/errors"
	"github.com/matzehuels/vfxtool/pkg/schema"
)

// Document is a decoded effect graph.
type Document struct {
	Version    schema.Version
	Nodes      []*Node
	Edges      []Edge
	Variations []Variation
}

// New returns an empty document of version v.
func New(v schema.Version) *Document {
	return &Document{Version: v}
}

// AddNode appends n and returns its index.
func (d *Document) AddNode(n *Node) uint16 {
	d.Nodes = append(d.Nodes, n)
	return uint16(len(d.Nodes) - 1)
}

// Connect appends an edge from source to target.
func (d *Document) Connect(source, target uint16) {
	d.Edges = append(d.Edges, Edge{Source: source, Target: target})
}

// Validate checks that the document can be encoded: a known version,
// counts that fit the header, well-formed nodes, and edge and variation
// indices that refer to existing nodes.
func (d *Document) Validate() error {
	if d == nil {
		return errors.New(errors.ErrCodeInvalidInput, "nil document")
	}
	if !d.Version.Valid() {
		return errors.New(errors.ErrCodeUnrecognizedVersion, "unknown version %d", uint16(d.Version))
	}
	counts := []struct {
		what string
		n    int
	}{{"nodes", len(d.Nodes)}, {"edges", len(d.Edges)}, {"variations", len(d.Variations)}}
	for _, c := range counts {
		if c.n > math.MaxUint16 {
			return errors.New(errors.ErrCodeInvalidInput, "%d %s, at most %d fit the header", c.n, c.what, math.MaxUint16)
		}
	}
	for i, n := range d.Nodes {
		if err := n.Validate(); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "node %d", i)
		}
	}
	return checkIndices(len(d.Nodes), d.Edges, d.Variations)
}

func checkIndices(nodeCount int, edges []Edge, variations []Variation) error {
	for i, e := range edges {
		if int(e.Source) >= nodeCount || int(e.Target) >= nodeCount {
			return errors.New(errors.ErrCodeIndexOutOfRange,
				"edge %d (%d -> %d) with %d nodes", i, e.Source, e.Target, nodeCount)
		}
	}
	for i, v := range variations {
		for j, p := range v.Pairs {
			if int(p.Target) >= nodeCount || int(p.New) >= nodeCount {
				return errors.New(errors.ErrCodeIndexOutOfRange,
					"variation %d pair %d (%d -> %d) with %d nodes", i, j, p.Target, p.New, nodeCount)
			}
		}
	}
	return nil
}
