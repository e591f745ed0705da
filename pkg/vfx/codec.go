package vfx

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/vfxtool/pkg/dictionary"
	"github.com/matzehuels/vfxtool/pkg/hash"
	"github.com/matzehuels/vfxtool/pkg/schema"
)

// Codec converts documents between the binary and tree forms.
//
// Registry is required. Strings and Paths resolve code hashes to text when
// writing the tree form and may be nil. Hasher supplies the path extension
// table used to hash path text read from the tree form. Logger receives
// decode diagnostics at debug level; nil disables them.
//
// A Codec holds no per-document state and is safe for concurrent use.
type Codec struct {
	Registry *schema.Registry
	Strings  *dictionary.Table
	Paths    *dictionary.Table
	Hasher   *hash.Hasher
	Logger   *log.Logger
}

var discard = log.New(io.Discard)

func (c *Codec) logger() *log.Logger {
	if c.Logger == nil {
		return discard
	}
	return c.Logger
}

func (c *Codec) treeContext(v schema.Version) *treeContext {
	return &treeContext{
		version: v,
		strings: c.Strings,
		paths:   c.Paths,
		hasher:  c.Hasher,
		logger:  c.logger(),
	}
}

// Describe renders v for display, replacing code hashes with dictionary
// text where it resolves.
func (c *Codec) Describe(v schema.Version, val Value) string {
	if !val.IsCode() {
		return val.String()
	}
	if text, ok := c.treeContext(v).resolve(val); ok {
		return fmt.Sprintf("%q", text)
	}
	return val.String()
}
