package schema

import (
	"slices"
	"strings"

	"github.com/matzehuels/vfxtool/pkg/errors"
)

// Registry holds one immutable namespace of definitions per version.
// It is safe for concurrent use.
type Registry struct {
	gz  map[uint64]*Definition
	tpp map[uint64]*Definition
}

// NewRegistry builds a registry from name to definition maps, one per
// version. Map keys must match the definition names. Two names that hash
// to the same key within one version are rejected.
func NewRegistry(gz, tpp map[string]*Definition) (*Registry, error) {
	r := &Registry{}
	var err error
	if r.gz, err = index(GZ, gz); err != nil {
		return nil, err
	}
	if r.tpp, err = index(TPP, tpp); err != nil {
		return nil, err
	}
	return r, nil
}

func index(v Version, defs map[string]*Definition) (map[uint64]*Definition, error) {
	out := make(map[uint64]*Definition, len(defs))
	for name, d := range defs {
		if d == nil {
			return nil, errors.New(errors.ErrCodeInvalidSchema, "%s: nil definition for %q", v, name)
		}
		if d.Name() != name {
			return nil, errors.New(errors.ErrCodeInvalidSchema, "%s: definition %q registered as %q", v, d.Name(), name)
		}
		if prev, ok := out[d.Hash()]; ok {
			return nil, errors.New(errors.ErrCodeInvalidSchema, "%s: %q and %q share hash %d", v, prev.Name(), d.Name(), d.Hash())
		}
		out[d.Hash()] = d
	}
	return out, nil
}

func (r *Registry) namespace(v Version) map[uint64]*Definition {
	if r == nil {
		return nil
	}
	switch v {
	case GZ:
		return r.gz
	case TPP:
		return r.tpp
	}
	return nil
}

// Resolve returns the definition registered under typeHash for version v.
func (r *Registry) Resolve(v Version, typeHash uint64) (*Definition, bool) {
	d, ok := r.namespace(v)[typeHash]
	return d, ok
}

// Len returns the number of definitions registered for v.
func (r *Registry) Len(v Version) int {
	return len(r.namespace(v))
}

// Definitions returns the definitions of v sorted by name.
func (r *Registry) Definitions(v Version) []*Definition {
	ns := r.namespace(v)
	out := make([]*Definition, 0, len(ns))
	for _, d := range ns {
		out = append(out, d)
	}
	slices.SortFunc(out, func(a, b *Definition) int { return strings.Compare(a.Name(), b.Name()) })
	return out
}
