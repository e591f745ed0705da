package dictionary

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/vfxtool/pkg/cache"
	"github.com/matzehuels/vfxtool/pkg/hash"
	"github.com/matzehuels/vfxtool/pkg/observability"
)

// LoadOptions configures [Load].
type LoadOptions struct {
	// Hasher supplies the extension table for path codes.
	Hasher *hash.Hasher

	// Workers bounds the build fan-out. Zero uses GOMAXPROCS.
	Workers int

	// Cache stores built tables between runs. Nil disables caching.
	Cache cache.Cache

	// Logger receives debug output. Nil is silent.
	Logger *log.Logger
}

// Load reads the word list at path and returns its table, using the cache
// when a table for the same words, kind and extension table was built
// before. A missing file yields an empty table and no error, since
// dictionaries only improve rendering.
func Load(ctx context.Context, path string, kind Kind, opts LoadOptions) (*Table, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if opts.Logger != nil {
			opts.Logger.Debug("dictionary not found", "kind", kind, "path", path)
		}
		return FromEntries(kind, nil), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var key string
	if opts.Cache != nil {
		key = cache.DictionaryKey(kind.String(), data, opts.Hasher.Extensions())
		if t, ok := loadCached(ctx, opts.Cache, key, kind); ok {
			observability.Conversion().OnDictionaryLoad(ctx, kind.String(), t.Len(), true)
			return t, nil
		}
	}

	words, err := ReadWords(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	t, err := Build(ctx, words, kind, opts.Hasher, opts.Workers)
	if err != nil {
		return nil, err
	}
	if opts.Logger != nil && t.Collisions() > 0 {
		opts.Logger.Warn("dictionary hash collisions", "kind", kind, "dropped", t.Collisions())
	}
	observability.Conversion().OnDictionaryLoad(ctx, kind.String(), t.Len(), false)

	if opts.Cache != nil {
		if err := storeCached(ctx, opts.Cache, key, t); err != nil && opts.Logger != nil {
			opts.Logger.Warn("dictionary cache write failed", "kind", kind, "err", err)
		}
	}
	return t, nil
}

// JSON object keys must be strings, so hashes are stored in decimal.
func loadCached(ctx context.Context, c cache.Cache, key string, kind Kind) (*Table, bool) {
	data, ok, err := c.Get(ctx, key)
	if err != nil || !ok {
		return nil, false
	}
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, false
	}
	entries := make(map[uint64]string, len(raw))
	for k, w := range raw {
		h, err := strconv.ParseUint(k, 10, 64)
		if err != nil {
			return nil, false
		}
		entries[h] = w
	}
	return &Table{kind: kind, entries: entries}, true
}

func storeCached(ctx context.Context, c cache.Cache, key string, t *Table) error {
	raw := make(map[string]string, t.Len())
	for h, w := range t.entries {
		raw[strconv.FormatUint(h, 10)] = w
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return err
	}
	return c.Set(ctx, key, data, 0)
}
