package vfx

import (
	"strconv"

	"github.com/beevik/etree"

	"github.com/matzehuels/vfxtool/pkg/errors"
)

// wideIndexThreshold is the node count from which edge indices take two
// bytes.
const wideIndexThreshold = 255

// Edge is a directed connection between two node indices.
type Edge struct {
	Source uint16
	Target uint16
}

// EdgeIndexWidth returns the byte width of edge indices in a document with
// nodeCount nodes: 1 below 255 nodes, 2 otherwise.
func EdgeIndexWidth(nodeCount int) int {
	if nodeCount >= wideIndexThreshold {
		return 2
	}
	return 1
}

func decodeEdge(c *cursor, width int) (Edge, error) {
	src, err := c.index(width)
	if err != nil {
		return Edge{}, err
	}
	dst, err := c.index(width)
	if err != nil {
		return Edge{}, err
	}
	return Edge{Source: src, Target: dst}, nil
}

func encodeEdge(b []byte, width int, e Edge) []byte {
	b = appendIndex(b, width, e.Source)
	return appendIndex(b, width, e.Target)
}

func renderEdge(el *etree.Element, e Edge) {
	el.CreateAttr("source", strconv.FormatUint(uint64(e.Source), 10))
	el.CreateAttr("target", strconv.FormatUint(uint64(e.Target), 10))
}

func parseEdge(el *etree.Element) (Edge, error) {
	src, err := parseIndexAttr(el, "source")
	if err != nil {
		return Edge{}, err
	}
	dst, err := parseIndexAttr(el, "target")
	if err != nil {
		return Edge{}, err
	}
	return Edge{Source: src, Target: dst}, nil
}

// parseIndexAttr reads a required 16-bit node index attribute.
func parseIndexAttr(el *etree.Element, name string) (uint16, error) {
	attr := el.SelectAttr(name)
	if attr == nil {
		return 0, errors.New(errors.ErrCodeMalformedTreeNode, "<%s> is missing %q", el.Tag, name)
	}
	u, err := strconv.ParseUint(attr.Value, 10, 16)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeMalformedTreeNode, err, "<%s %s=%q>", el.Tag, name, attr.Value)
	}
	return uint16(u), nil
}
