package dictionary

import (
	"fmt"
	"maps"

	"github.com/matzehuels/vfxtool/pkg/hash"
)

// Kind selects the hashing convention of a table.
type Kind int

const (
	// StringCode tables use the plain 48-bit string hash.
	StringCode Kind = iota
	// PathCode tables use the extension-aware 64-bit path hash.
	PathCode
)

// String returns the kind name used in cache keys and logs.
func (k Kind) String() string {
	switch k {
	case StringCode:
		return "string"
	case PathCode:
		return "path"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// HashFunc returns the function that keys words of this kind.
func (k Kind) HashFunc(h *hash.Hasher) func(string) uint64 {
	if k == PathCode {
		return h.PathCode
	}
	return hash.String
}

// Table is a read-only hash to word map.
// A nil *Table is valid and resolves nothing.
type Table struct {
	kind       Kind
	entries    map[uint64]string
	collisions int
}

// FromEntries builds a table from a hash to word snapshot, as produced by
// [Table.Entries]. The map is copied.
func FromEntries(kind Kind, entries map[uint64]string) *Table {
	return &Table{kind: kind, entries: maps.Clone(entries)}
}

// Kind returns the hashing convention of the table.
func (t *Table) Kind() Kind {
	if t == nil {
		return StringCode
	}
	return t.kind
}

// Lookup returns the word whose hash is h.
func (t *Table) Lookup(h uint64) (string, bool) {
	if t == nil {
		return "", false
	}
	w, ok := t.entries[h]
	return w, ok
}

// Len returns the number of distinct hashes in the table.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Collisions returns the number of words dropped because an earlier word
// already claimed their hash. Zero for tables rebuilt from entries.
func (t *Table) Collisions() int {
	if t == nil {
		return 0
	}
	return t.collisions
}

// Entries returns a copy of the table contents.
func (t *Table) Entries() map[uint64]string {
	if t == nil {
		return map[uint64]string{}
	}
	return maps.Clone(t.entries)
}
