package hash

import (
	"encoding/binary"
	"maps"
	"strings"

	"github.com/go-faster/city"
)

const (
	// FileNameMask keeps the low 50 bits of a file-name hash.
	FileNameMask uint64 = 0x3FFFFFFFFFFFF

	// MetaFlag marks paths outside the packed asset tree.
	MetaFlag uint64 = 0x4000000000000

	// TypeIDShift positions the extension type id above the file-name hash.
	TypeIDShift = 52

	assetsPrefix = "/Assets/"
	testPrefix   = "tpptest"
)

// FileName returns the 50-bit file-name hash of path, with [MetaFlag] set
// for paths that do not live under /Assets/ (or that live under the
// /Assets/tpptest tree). Everything from the first '.' on is ignored.
func FileName(path string) uint64 {
	path = strings.ReplaceAll(path, `\`, "/")
	if i := strings.IndexByte(path, '.'); i >= 0 {
		path = path[:i]
	}

	meta := true
	if rest, ok := strings.CutPrefix(path, assetsPrefix); ok {
		path = rest
		meta = strings.HasPrefix(path, testPrefix)
	}
	path = strings.TrimLeft(path, "/")

	// seed1 holds up to the last eight bytes of path, last byte first.
	var seedBytes [8]byte
	for i, j := len(path)-1, 0; i >= 0 && j < len(seedBytes); i, j = i-1, j+1 {
		seedBytes[j] = path[i]
	}
	seed1 := binary.LittleEndian.Uint64(seedBytes[:])

	h := city.Hash64WithSeeds([]byte(path), seed0, seed1) & FileNameMask
	if meta {
		h |= MetaFlag
	}
	return h
}

// SplitExtension splits path at its first '.' into the hashable stem and
// the extension without the dot. Multi-part extensions such as "1.ftexs"
// stay intact.
func SplitExtension(path string) (stem, ext string) {
	i := strings.IndexByte(path, '.')
	if i < 0 {
		return path, ""
	}
	return path[:i], path[i+1:]
}

// Hasher computes extension-aware path codes. The extension type table is
// supplied by configuration; extensions missing from it get type id 0.
type Hasher struct {
	types map[string]uint64
	exts  map[uint64]string
}

// NewHasher creates a Hasher over a copy of the extension to type id table.
// When two extensions share a type id the reverse lookup keeps the
// lexically smallest one.
func NewHasher(extensions map[string]uint64) *Hasher {
	h := &Hasher{
		types: make(map[string]uint64, len(extensions)),
		exts:  make(map[uint64]string, len(extensions)),
	}
	for ext, id := range extensions {
		ext = strings.TrimPrefix(strings.ToLower(ext), ".")
		h.types[ext] = id
		if prev, ok := h.exts[id]; !ok || ext < prev {
			h.exts[id] = ext
		}
	}
	return h
}

// TypeID returns the type id registered for ext, or 0.
// A nil Hasher knows no extensions.
func (h *Hasher) TypeID(ext string) uint64 {
	if h == nil {
		return 0
	}
	return h.types[strings.ToLower(ext)]
}

// Extension returns the extension registered for the type id in the top
// bits of code.
func (h *Hasher) Extension(code uint64) (string, bool) {
	if h == nil {
		return "", false
	}
	ext, ok := h.exts[code>>TypeIDShift]
	return ext, ok
}

// Extensions returns a copy of the extension table.
func (h *Hasher) Extensions() map[string]uint64 {
	if h == nil {
		return map[string]uint64{}
	}
	return maps.Clone(h.types)
}

// PathCode returns the 64-bit path code of path: the extension type id in
// the top bits and the [FileName] hash of the stem below.
func (h *Hasher) PathCode(path string) uint64 {
	stem, ext := SplitExtension(strings.ReplaceAll(path, `\`, "/"))
	return h.TypeID(ext)<<TypeIDShift | FileName(stem)
}
