package schema

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/vfxtool/pkg/errors"
	"github.com/matzehuels/vfxtool/pkg/hash"
)

func TestParseType(t *testing.T) {
	tests := []struct {
		in   string
		want Type
	}{
		{"bool", Bool},
		{"int32", Int32},
		{"UInt32", UInt32},
		{"uint64", UInt64},
		{"float", Float},
		{"Vector4", Vector4},
		{"StrCode", StrCode},
		{"PathCode64Ext", PathCode},
		{" path ", PathCode},
	}
	for _, tt := range tests {
		got, err := ParseType(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseType("matrix")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidSchema))
}

func TestTypeSize(t *testing.T) {
	assert.Equal(t, 1, Bool.Size())
	assert.Equal(t, 4, Int32.Size())
	assert.Equal(t, 4, UInt32.Size())
	assert.Equal(t, 8, UInt64.Size())
	assert.Equal(t, 4, Float.Size())
	assert.Equal(t, 16, Vector4.Size())
	assert.Equal(t, 8, StrCode.Size())
	assert.Equal(t, 8, PathCode.Size())
	assert.False(t, Type(42).Valid())
}

func TestVersion(t *testing.T) {
	v, err := ParseVersion("GZ")
	require.NoError(t, err)
	assert.Equal(t, GZ, v)

	v, err = ParseVersion("TPP")
	require.NoError(t, err)
	assert.Equal(t, TPP, v)

	_, err = ParseVersion("tpp")
	assert.True(t, errors.Is(err, errors.ErrCodeUnrecognizedVersion))

	assert.Equal(t, "Version(1)", Version(1).String())
	assert.False(t, Version(1).Valid())
}

func TestNewDefinition(t *testing.T) {
	d, err := NewDefinition("FxColorNode", []Property{
		{Name: "enabled", Type: Bool},
		{Name: "color", Type: Vector4},
		{Name: "keys", Type: Float, Arity: 4},
	})
	require.NoError(t, err)

	assert.Equal(t, "FxColorNode", d.Name())
	assert.Equal(t, hash.String("FxColorNode"), d.Hash())
	assert.Equal(t, 3, d.NumProperties())
	assert.Equal(t, 1, d.Property(0).Arity, "zero arity reads as one")
	assert.Equal(t, 1+16+16, d.BodySize())
	assert.Equal(t, 2, d.PropertyIndex("keys"))
	assert.Equal(t, -1, d.PropertyIndex("missing"))

	props := d.Properties()
	props[0].Name = "changed"
	assert.Equal(t, "enabled", d.Property(0).Name)
}

func TestNewDefinitionErrors(t *testing.T) {
	tests := []struct {
		name  string
		typ   string
		props []Property
	}{
		{"empty name", "", nil},
		{"bad property name", "Fx", []Property{{Name: "", Type: Bool}}},
		{"duplicate property", "Fx", []Property{{Name: "a", Type: Bool}, {Name: "a", Type: Float}}},
		{"invalid type", "Fx", []Property{{Name: "a", Type: Type(99)}}},
		{"negative arity", "Fx", []Property{{Name: "a", Type: Bool, Arity: -1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDefinition(tt.typ, tt.props)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCodeInvalidSchema))
		})
	}
}

func TestRegistryNamespacesAreSeparate(t *testing.T) {
	gzDef, err := NewDefinition("Test", []Property{{Name: "Value", Type: Float}})
	require.NoError(t, err)
	tppDef, err := NewDefinition("Test", []Property{{Name: "Value", Type: UInt32}})
	require.NoError(t, err)

	r, err := NewRegistry(
		map[string]*Definition{"Test": gzDef},
		map[string]*Definition{"Test": tppDef},
	)
	require.NoError(t, err)

	got, ok := r.Resolve(GZ, hash.String("Test"))
	require.True(t, ok)
	assert.Same(t, gzDef, got)

	got, ok = r.Resolve(TPP, hash.String("Test"))
	require.True(t, ok)
	assert.Same(t, tppDef, got)

	_, ok = r.Resolve(Version(1), hash.String("Test"))
	assert.False(t, ok)
	_, ok = r.Resolve(TPP, hash.String("Other"))
	assert.False(t, ok)

	assert.Equal(t, 1, r.Len(GZ))
	assert.Equal(t, 1, r.Len(TPP))
}

func TestRegistryRejectsMismatchedKey(t *testing.T) {
	d, err := NewDefinition("Test", nil)
	require.NoError(t, err)

	_, err = NewRegistry(nil, map[string]*Definition{"Other": d})
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidSchema))

	_, err = NewRegistry(map[string]*Definition{"Test": nil}, nil)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidSchema))
}

func TestRegistryDefinitionsSorted(t *testing.T) {
	a, _ := NewDefinition("Alpha", nil)
	b, _ := NewDefinition("Beta", nil)
	r, err := NewRegistry(nil, map[string]*Definition{"Beta": b, "Alpha": a})
	require.NoError(t, err)

	defs := r.Definitions(TPP)
	require.Len(t, defs, 2)
	assert.Equal(t, "Alpha", defs[0].Name())
	assert.Equal(t, "Beta", defs[1].Name())
	assert.Empty(t, r.Definitions(GZ))
}

func TestNilRegistry(t *testing.T) {
	var r *Registry
	_, ok := r.Resolve(TPP, 1)
	assert.False(t, ok)
	assert.Zero(t, r.Len(TPP))
}

func TestLoadRegistry(t *testing.T) {
	fsys := fstest.MapFS{
		"defs/TPP/test.json": {Data: []byte(`{
			"name": "Test",
			"properties": [
				{"name": "Value", "type": "uint32"},
				{"name": "Keys", "type": "float", "arraySize": 3}
			]
		}`)},
		"defs/TPP/color.yaml": {Data: []byte(`
name: FxColorNode
properties:
  - name: color
    type: Vector4
  - name: texture
    type: PathCode64Ext
`)},
		"defs/TPP/README.md": {Data: []byte("ignored")},
		"defs/GZ/test.yml": {Data: []byte(`
name: Test
properties:
  - {name: Value, type: float}
`)},
	}

	r, err := LoadRegistry(fsys, "defs")
	require.NoError(t, err)
	assert.Equal(t, 2, r.Len(TPP))
	assert.Equal(t, 1, r.Len(GZ))

	d, ok := r.Resolve(TPP, hash.String("Test"))
	require.True(t, ok)
	assert.Equal(t, []Property{
		{Name: "Value", Type: UInt32, Arity: 1},
		{Name: "Keys", Type: Float, Arity: 3},
	}, d.Properties())

	d, ok = r.Resolve(GZ, hash.String("Test"))
	require.True(t, ok)
	assert.Equal(t, Float, d.Property(0).Type)

	d, ok = r.Resolve(TPP, hash.String("FxColorNode"))
	require.True(t, ok)
	assert.Equal(t, PathCode, d.Property(1).Type)
}

func TestLoadRegistryMissingVersion(t *testing.T) {
	fsys := fstest.MapFS{
		"defs/TPP/test.json": {Data: []byte(`{"name": "Test", "properties": []}`)},
	}
	r, err := LoadRegistry(fsys, "defs")
	require.NoError(t, err)
	assert.Zero(t, r.Len(GZ))
	assert.Equal(t, 1, r.Len(TPP))
}

func TestLoadDirErrors(t *testing.T) {
	tests := []struct {
		name string
		fsys fstest.MapFS
	}{
		{"unknown type", fstest.MapFS{"d/a.json": {Data: []byte(`{"name": "A", "properties": [{"name": "x", "type": "matrix"}]}`)}}},
		{"unknown field", fstest.MapFS{"d/a.json": {Data: []byte(`{"name": "A", "props": []}`)}}},
		{"bad yaml", fstest.MapFS{"d/a.yaml": {Data: []byte("name: [")}}},
		{"duplicate name", fstest.MapFS{
			"d/a.json": {Data: []byte(`{"name": "A"}`)},
			"d/b.json": {Data: []byte(`{"name": "A"}`)},
		}},
		{"missing dir", fstest.MapFS{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadDir(tt.fsys, "d")
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCodeInvalidSchema), "got %v", err)
		})
	}
}
