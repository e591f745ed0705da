package vfx

import (
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/vfxtool/pkg/errors"
	"github.com/matzehuels/vfxtool/pkg/hash"
)

// NodePair replaces node Target with node New in a variation.
type NodePair struct {
	Target uint16
	New    uint16
}

// Variation is a named table of node substitutions. Its indices are always
// stored in 16 bits, independent of the edge index width.
type Variation struct {
	Name  uint32
	Pairs []NodePair
}

func decodeVariation(c *cursor, logger *log.Logger) (Variation, error) {
	start := c.offset()
	name, err := c.u32()
	if err != nil {
		return Variation{}, err
	}
	count, err := c.u32()
	if err != nil {
		return Variation{}, err
	}
	// Each pair takes four bytes; reject counts the input cannot hold
	// before allocating for them.
	if uint64(count)*4 > uint64(c.remaining()) {
		return Variation{}, errors.New(errors.ErrCodeTruncated,
			"variation at offset %d declares %d pairs, %d bytes left", start, count, c.remaining())
	}
	logger.Debug("variation", "offset", start, "name", name, "pairs", count)

	v := Variation{Name: name, Pairs: make([]NodePair, count)}
	for i := range v.Pairs {
		a, err := c.u16()
		if err != nil {
			return Variation{}, err
		}
		b, err := c.u16()
		if err != nil {
			return Variation{}, err
		}
		v.Pairs[i] = NodePair{Target: a, New: b}
		logger.Debug("variation pair", "target", a, "new", b)
	}
	return v, nil
}

func encodeVariation(b []byte, v Variation) []byte {
	b = appendU32(b, v.Name)
	b = appendU32(b, uint32(len(v.Pairs)))
	for _, p := range v.Pairs {
		b = appendU16(b, p.Target)
		b = appendU16(b, p.New)
	}
	return b
}

func renderVariation(el *etree.Element, v Variation) {
	el.CreateAttr("name", strconv.FormatUint(uint64(v.Name), 10))
	for _, p := range v.Pairs {
		pe := el.CreateElement("variationNodes")
		pe.CreateAttr("targetNode", strconv.FormatUint(uint64(p.Target), 10))
		pe.CreateAttr("newNode", strconv.FormatUint(uint64(p.New), 10))
	}
}

// parseVariation reads a <variation> element. A name that is not a 32-bit
// number is hashed and truncated to 32 bits.
func parseVariation(el *etree.Element) (Variation, error) {
	var v Variation
	raw := el.SelectAttrValue("name", "")
	if u, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 32); err == nil {
		v.Name = uint32(u)
	} else {
		v.Name = hash.String32(raw)
	}

	for _, pe := range el.ChildElements() {
		if pe.Tag != "variationNodes" {
			return Variation{}, errors.New(errors.ErrCodeMalformedTreeNode, "variation: unexpected element <%s>", pe.Tag)
		}
		target, err := parseIndexAttr(pe, "targetNode")
		if err != nil {
			return Variation{}, err
		}
		newNode, err := parseIndexAttr(pe, "newNode")
		if err != nil {
			return Variation{}, err
		}
		v.Pairs = append(v.Pairs, NodePair{Target: target, New: newNode})
	}
	return v, nil
}
