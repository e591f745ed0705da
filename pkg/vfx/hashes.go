package vfx

import (
	"maps"
	"slices"

	"github.com/matzehuels/vfxtool/pkg/schema"
)

// HashSet collects code hashes that the tree form could only write as
// numbers.
type HashSet struct {
	Strings map[uint64]struct{}
	Paths   map[uint64]struct{}
}

// NewHashSet returns an empty set.
func NewHashSet() *HashSet {
	return &HashSet{Strings: map[uint64]struct{}{}, Paths: map[uint64]struct{}{}}
}

// CollectUnresolved adds every StrCode and PathCode of d that has neither
// text nor a dictionary entry to set.
func (c *Codec) CollectUnresolved(d *Document, set *HashSet) {
	tc := c.treeContext(d.Version)
	for _, n := range d.Nodes {
		for _, vals := range n.Values {
			for _, v := range vals {
				if !v.IsCode() {
					continue
				}
				if _, ok := tc.resolve(v); ok {
					continue
				}
				if v.typ == schema.PathCode {
					set.Paths[v.bits] = struct{}{}
				} else {
					set.Strings[v.bits] = struct{}{}
				}
			}
		}
	}
}

// Sorted returns the hashes of m in ascending order.
func Sorted(m map[uint64]struct{}) []uint64 {
	return slices.Sorted(maps.Keys(m))
}
