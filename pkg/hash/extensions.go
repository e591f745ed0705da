package hash

import (
	"maps"
	"strings"
)

// defaultExtensions is the engine's extension to type id table.
var defaultExtensions = map[string]uint64{
	"xml":    1,
	"json":   2,
	"ese":    3,
	"fxp":    4,
	"fpk":    5,
	"fpkd":   6,
	"fpkl":   7,
	"aib":    8,
	"frig":   9,
	"mtar":   10,
	"gani":   11,
	"evb":    12,
	"evf":    13,
	"fox2":   14,
	"fcnp":   15,
	"fcnpx":  16,
	"sub":    17,
	"fova":   18,
	"lad":    19,
	"lani":   20,
	"vfx":    21,
	"vfxbin": 22,
	"frt":    23,
	"gpfp":   24,
	"gskl":   25,
	"geom":   26,
	"tgt":    27,
	"path":   28,
	"fmdl":   29,
	"ftex":   30,
	"htre":   31,
	"tre2":   32,
	"grxla":  33,
	"grxoc":  34,
	"mog":    35,
	"fag":    36,
	"fage":   37,
	"fago":   38,
	"fagp":   39,
	"fagx":   40,
	"fclo":   41,
	"clo":    42,
	"lua":    43,
}

// DefaultExtensions returns a copy of the engine's extension table.
func DefaultExtensions() map[string]uint64 {
	return maps.Clone(defaultExtensions)
}

// Known reports whether ext has a type id. The empty extension always
// does: it hashes with type id 0.
func (h *Hasher) Known(ext string) bool {
	if ext == "" {
		return true
	}
	if h == nil {
		return false
	}
	_, ok := h.types[strings.ToLower(ext)]
	return ok
}
