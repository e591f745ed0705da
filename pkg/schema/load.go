package schema

import (
	"bytes"
	"encoding/json"
	"io/fs"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/vfxtool/pkg/errors"
)

// definitionFile is the on-disk form of a node definition.
type definitionFile struct {
	Name       string         `json:"name" yaml:"name"`
	Properties []propertyFile `json:"properties" yaml:"properties"`
}

type propertyFile struct {
	Name      string `json:"name" yaml:"name"`
	Type      string `json:"type" yaml:"type"`
	ArraySize int    `json:"arraySize,omitempty" yaml:"arraySize,omitempty"`
}

// ParseDefinition decodes one definition file. The format is picked from
// the file extension: .json, .yaml or .yml.
func ParseDefinition(filename string, data []byte) (*Definition, error) {
	var f definitionFile
	switch strings.ToLower(path.Ext(filename)) {
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidSchema, err, "decode %s", filename)
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidSchema, err, "decode %s", filename)
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidSchema, "%s: unsupported definition format", filename)
	}

	props := make([]Property, len(f.Properties))
	for i, p := range f.Properties {
		t, err := ParseType(p.Type)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidSchema, err, "%s: property %q", filename, p.Name)
		}
		props[i] = Property{Name: p.Name, Type: t, Arity: p.ArraySize}
	}
	d, err := NewDefinition(f.Name, props)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSchema, err, "%s", filename)
	}
	return d, nil
}

// LoadDir parses every definition file directly inside dir. Files with
// other extensions are ignored. Two files defining the same name are an
// error.
func LoadDir(fsys fs.FS, dir string) (map[string]*Definition, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSchema, err, "read definitions %s", dir)
	}

	defs := make(map[string]*Definition, len(entries))
	for _, e := range entries {
		if e.IsDir() || !isDefinitionFile(e.Name()) {
			continue
		}
		p := path.Join(dir, e.Name())
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidSchema, err, "read %s", p)
		}
		d, err := ParseDefinition(p, data)
		if err != nil {
			return nil, err
		}
		if _, dup := defs[d.Name()]; dup {
			return nil, errors.New(errors.ErrCodeInvalidSchema, "%s: %q is defined twice", p, d.Name())
		}
		defs[d.Name()] = d
	}
	return defs, nil
}

// LoadRegistry loads root/GZ and root/TPP into a registry. A missing
// version directory leaves that namespace empty.
func LoadRegistry(fsys fs.FS, root string) (*Registry, error) {
	load := func(v Version) (map[string]*Definition, error) {
		dir := path.Join(root, v.String())
		if _, err := fs.Stat(fsys, dir); err != nil {
			return nil, nil
		}
		return LoadDir(fsys, dir)
	}
	gz, err := load(GZ)
	if err != nil {
		return nil, err
	}
	tpp, err := load(TPP)
	if err != nil {
		return nil, err
	}
	return NewRegistry(gz, tpp)
}

func isDefinitionFile(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}
