// Package config loads vfxtool settings from a TOML file.
//
// Every path in the file is resolved against the directory holding the
// file. Without a file, the defaults point next to the executable, where
// the tool keeps its definitions and dictionaries:
//
//	definitions/GZ/*.json
//	definitions/TPP/*.json
//	vfx_string_dictionary.txt
//	vfx_path_dictionary.txt
//
// # Example
//
//	definitions = "definitions"
//	string_dictionary = "vfx_string_dictionary.txt"
//	path_dictionary = "vfx_path_dictionary.txt"
//	hash_dump_dir = "."
//	workers = 8
//
//	[extensions]
//	ftexs = 44
//
// The [extensions] table is merged over the engine's own table
// ([hash.DefaultExtensions]); an entry for a known extension replaces
// its type id.
package config

import (
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/vfxtool/pkg/errors"
	"github.com/matzehuels/vfxtool/pkg/hash"
)

// FileName is the config file looked up when no path is given.
const FileName = "vfxtool.toml"

// Default file names, relative to the base directory.
const (
	DefaultDefinitions      = "definitions"
	DefaultStringDictionary = "vfx_string_dictionary.txt"
	DefaultPathDictionary   = "vfx_path_dictionary.txt"

	StringHashDump = "vfx_string_hashdump.txt"
	PathHashDump   = "vfx_path_hashdump.txt"
)

// maxTypeID is the largest extension type id that fits above the path hash.
const maxTypeID = 1<<(64-hash.TypeIDShift) - 1

// Config holds the resolved settings.
type Config struct {
	// Definitions is the directory with GZ and TPP schema subdirectories.
	Definitions string `toml:"definitions"`

	// StringDictionary and PathDictionary are word lists, one per line.
	StringDictionary string `toml:"string_dictionary"`
	PathDictionary   string `toml:"path_dictionary"`

	// HashDumpDir receives the unresolved hash dumps after a batch.
	HashDumpDir string `toml:"hash_dump_dir"`

	// Workers bounds the dictionary build fan-out.
	Workers int `toml:"workers"`

	// NoCache disables the dictionary table cache.
	NoCache bool `toml:"no_cache"`

	// Extensions maps path extensions to the type id stored in the top
	// bits of a path code. It starts out as the engine's table.
	Extensions map[string]uint64 `toml:"extensions"`
}

// Default returns the settings used without a config file, rooted at base.
func Default(base string) Config {
	return Config{
		Definitions:      filepath.Join(base, DefaultDefinitions),
		StringDictionary: filepath.Join(base, DefaultStringDictionary),
		PathDictionary:   filepath.Join(base, DefaultPathDictionary),
		HashDumpDir:      base,
		Workers:          runtime.GOMAXPROCS(0),
		Extensions:       hash.DefaultExtensions(),
	}
}

// Load reads the config file at path on top of [Default] for the file's
// directory. Unknown keys are rejected.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config")
	}
	base := filepath.Dir(path)
	return Parse(string(data), base)
}

// Parse decodes TOML config text. Relative paths are resolved against base.
func Parse(text, base string) (Config, error) {
	cfg := Default("")
	meta, err := toml.Decode(text, &cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown config keys: %s", strings.Join(keys, ", "))
	}

	cfg.Definitions = resolve(base, cfg.Definitions)
	cfg.StringDictionary = resolve(base, cfg.StringDictionary)
	cfg.PathDictionary = resolve(base, cfg.PathDictionary)
	cfg.HashDumpDir = resolve(base, cfg.HashDumpDir)
	if cfg.HashDumpDir == "" {
		cfg.HashDumpDir = base
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Find returns the config file to use: explicit if set, otherwise the first
// existing [FileName] next to the executable or in the working directory.
// It returns "" when there is none.
func Find(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, dir := range SearchDirs() {
		p := filepath.Join(dir, FileName)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// SearchDirs returns the directories searched for the config file, in
// order.
func SearchDirs() []string {
	var dirs []string
	if exe, err := os.Executable(); err == nil {
		dirs = append(dirs, filepath.Dir(exe))
	}
	if wd, err := os.Getwd(); err == nil {
		dirs = append(dirs, wd)
	}
	return dirs
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.Workers < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "workers must not be negative, got %d", c.Workers)
	}
	for ext, id := range c.Extensions {
		if strings.TrimPrefix(ext, ".") == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "empty extension in [extensions]")
		}
		if id > maxTypeID {
			return errors.New(errors.ErrCodeInvalidConfig, "extension %q: type id %d exceeds %d", ext, id, maxTypeID)
		}
	}
	return nil
}

// Hasher returns a path hasher over the configured extension table.
func (c Config) Hasher() *hash.Hasher {
	return hash.NewHasher(c.Extensions)
}

func resolve(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}
