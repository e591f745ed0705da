package convert

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/vfxtool/pkg/cache"
	"github.com/matzehuels/vfxtool/pkg/config"
	"github.com/matzehuels/vfxtool/pkg/errors"
	"github.com/matzehuels/vfxtool/pkg/hash"
	"github.com/matzehuels/vfxtool/pkg/observability"
	"github.com/matzehuels/vfxtool/pkg/schema"
	"github.com/matzehuels/vfxtool/pkg/vfx"
)

const emitterJSON = `{
  "name": "FxEmitterNode",
  "properties": [
    {"name": "name", "type": "StrCode"},
    {"name": "texture", "type": "PathCode64Ext"},
    {"name": "count", "type": "uint32"}
  ]
}`

// setupDir lays out definitions and dictionaries the way the tool ships
// them and returns the matching config.
func setupDir(t *testing.T) config.Config {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "definitions", "TPP", "FxEmitterNode.json"), emitterJSON)
	writeFile(t, filepath.Join(dir, config.DefaultStringDictionary), "smoke\nfire\n")
	writeFile(t, filepath.Join(dir, config.DefaultPathDictionary), "/Assets/tpp/fx/smoke.ftex\n")

	cfg := config.Default(dir)
	cfg.Workers = 2
	cfg.Extensions = map[string]uint64{"ftex": 4}
	return cfg
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// emitterBinary encodes one FxEmitterNode with the given code hashes.
func emitterBinary(t *testing.T, codec *vfx.Codec, name, texture uint64) []byte {
	t.Helper()
	def, ok := codec.Registry.Resolve(schema.TPP, hash.String("FxEmitterNode"))
	require.True(t, ok)
	n := vfx.NewNode(def)
	require.NoError(t, n.Set("name", vfx.StrCodeValue(name)))
	require.NoError(t, n.Set("texture", vfx.PathCodeValue(texture)))
	require.NoError(t, n.Set("count", vfx.UInt32Value(3)))
	doc := vfx.New(schema.TPP)
	doc.AddNode(n)
	data, err := codec.MarshalBinary(doc)
	require.NoError(t, err)
	return data
}

func TestPlan(t *testing.T) {
	tests := []struct {
		in   string
		dir  Direction
		want string
	}{
		{"fx/smoke.vfx", ToTree, "fx/smoke.vfx.xml"},
		{"fx/smoke.VFX", ToTree, "fx/smoke.VFX.xml"},
		{"fx/smoke.vfx.xml", ToBinary, "fx/smoke.vfx"},
		{"fx/smoke.XML", ToBinary, "fx/smoke"},
		{"fx/readme.txt", Skip, ""},
		{"fx/noext", Skip, ""},
	}
	for _, tt := range tests {
		dir, out := Plan(tt.in)
		assert.Equal(t, tt.dir, dir, tt.in)
		assert.Equal(t, tt.want, out, tt.in)
	}
}

func TestLoadCodec(t *testing.T) {
	cfg := setupDir(t)
	codec, err := LoadCodec(context.Background(), cfg, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, codec.Registry.Len(schema.TPP))
	assert.Equal(t, 0, codec.Registry.Len(schema.GZ))
	// Word lists gain the implicit empty word.
	assert.Equal(t, 3, codec.Strings.Len())
	word, ok := codec.Paths.Lookup(cfg.Hasher().PathCode("/Assets/tpp/fx/smoke.ftex"))
	require.True(t, ok)
	assert.Equal(t, "/Assets/tpp/fx/smoke.ftex", word)
}

func TestLoadCodecUsesCache(t *testing.T) {
	cfg := setupDir(t)
	fc, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)

	rec := &recordingHooks{}
	observability.SetConversionHooks(rec)
	t.Cleanup(observability.Reset)

	_, err = LoadCodec(context.Background(), cfg, fc, nil)
	require.NoError(t, err)
	_, err = LoadCodec(context.Background(), cfg, fc, nil)
	require.NoError(t, err)

	assert.Equal(t, []bool{false, false, true, true}, rec.dictCached)
}

func TestLoadCodecMissingDefinitions(t *testing.T) {
	cfg := config.Default(t.TempDir())
	_, err := LoadCodec(context.Background(), cfg, nil, nil)
	assert.True(t, errors.Is(err, errors.ErrCodeFileNotFound))
}

func TestRunConvertsBothWays(t *testing.T) {
	cfg := setupDir(t)
	codec, err := LoadCodec(context.Background(), cfg, nil, nil)
	require.NoError(t, err)

	smoke := cfg.Hasher().PathCode("/Assets/tpp/fx/smoke.ftex")
	data := emitterBinary(t, codec, hash.String("smoke"), smoke)
	dir := t.TempDir()
	bin := filepath.Join(dir, "smoke.vfx")
	require.NoError(t, os.WriteFile(bin, data, 0o644))

	r := NewRunner(codec, nil)
	results := r.Run(context.Background(), []string{bin})
	require.Len(t, results, 1)
	require.NoError(t, results[0].Err)
	assert.True(t, results[0].OK())
	assert.Equal(t, "TPP", results[0].Version)
	assert.Equal(t, 1, results[0].Nodes)

	xml, err := os.ReadFile(bin + ".xml")
	require.NoError(t, err)
	assert.Contains(t, string(xml), "<value>smoke</value>")
	assert.Contains(t, string(xml), "<value>/Assets/tpp/fx/smoke.ftex</value>")

	// Convert back over a removed original.
	require.NoError(t, os.Remove(bin))
	results = r.Run(context.Background(), []string{bin + ".xml"})
	require.NoError(t, results[0].Err)
	got, err := os.ReadFile(bin)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestRunContinuesAfterFailure(t *testing.T) {
	cfg := setupDir(t)
	codec, err := LoadCodec(context.Background(), cfg, nil, nil)
	require.NoError(t, err)

	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.vfx")
	good := filepath.Join(dir, "good.vfx")
	other := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(bad, []byte("not a vfx file"), 0o644))
	require.NoError(t, os.WriteFile(good, emitterBinary(t, codec, 1, 2), 0o644))
	require.NoError(t, os.WriteFile(other, nil, 0o644))

	results := NewRunner(codec, nil).Run(context.Background(),
		[]string{bad, filepath.Join(dir, "missing.vfx"), other, good})
	require.Len(t, results, 4)

	assert.True(t, errors.Is(results[0].Err, errors.ErrCodeBadSignature))
	assert.True(t, errors.Is(results[1].Err, errors.ErrCodeFileNotFound))
	assert.Equal(t, Skip, results[2].Direction)
	assert.False(t, results[2].OK())
	assert.True(t, results[3].OK())
	assert.Equal(t, 2, Failed(results))

	_, err = os.Stat(bad + ".xml")
	assert.True(t, os.IsNotExist(err), "failed conversion must not leave output")
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasPrefix(e.Name(), ".vfxtool-"), "temp file left: %s", e.Name())
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	results := NewRunner(&vfx.Codec{}, nil).Run(ctx, []string{"a.vfx", "b.vfx"})
	assert.Empty(t, results)
}

func TestWriteHashDumps(t *testing.T) {
	cfg := setupDir(t)
	codec, err := LoadCodec(context.Background(), cfg, nil, nil)
	require.NoError(t, err)

	dir := t.TempDir()
	a := filepath.Join(dir, "a.vfx")
	b := filepath.Join(dir, "b.vfx")
	require.NoError(t, os.WriteFile(a, emitterBinary(t, codec, 900, 50), 0o644))
	require.NoError(t, os.WriteFile(b, emitterBinary(t, codec, 7, 50), 0o644))

	// earlier dumps are replaced, not appended to
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.StringHashDump), []byte("123\n"), 0o644))

	r := NewRunner(codec, nil)
	r.Run(context.Background(), []string{a, b})
	require.NoError(t, r.WriteHashDumps(dir))

	strs, err := os.ReadFile(filepath.Join(dir, config.StringHashDump))
	require.NoError(t, err)
	assert.Equal(t, "7\n900\n", string(strs))

	paths, err := os.ReadFile(filepath.Join(dir, config.PathHashDump))
	require.NoError(t, err)
	assert.Equal(t, strconv.Itoa(50)+"\n", string(paths))
}

func TestHooksObserveConversion(t *testing.T) {
	cfg := setupDir(t)
	codec, err := LoadCodec(context.Background(), cfg, nil, nil)
	require.NoError(t, err)

	rec := &recordingHooks{}
	observability.SetConversionHooks(rec)
	t.Cleanup(observability.Reset)

	bin := filepath.Join(t.TempDir(), "x.vfx")
	require.NoError(t, os.WriteFile(bin, emitterBinary(t, codec, 1, 2), 0o644))
	NewRunner(codec, nil).Run(context.Background(), []string{bin})

	assert.Equal(t, []string{"read:binary", "done:binary:1", "write:tree"}, rec.events)
}

type recordingHooks struct {
	observability.NoopConversionHooks
	events     []string
	dictCached []bool
}

func (h *recordingHooks) OnDictionaryLoad(_ context.Context, _ string, _ int, cached bool) {
	h.dictCached = append(h.dictCached, cached)
}

func (h *recordingHooks) OnReadStart(_ context.Context, _, format string) {
	h.events = append(h.events, "read:"+format)
}

func (h *recordingHooks) OnReadComplete(_ context.Context, _, format string, nodes int, _ time.Duration, _ error) {
	h.events = append(h.events, "done:"+format+":"+strconv.Itoa(nodes))
}

func (h *recordingHooks) OnWriteComplete(_ context.Context, _, format string, _ int, _ time.Duration, _ error) {
	h.events = append(h.events, "write:"+format)
}

func TestReadFile(t *testing.T) {
	cfg := setupDir(t)
	codec, err := LoadCodec(context.Background(), cfg, nil, nil)
	require.NoError(t, err)

	dir := t.TempDir()
	bin := filepath.Join(dir, "fire.vfx")
	require.NoError(t, os.WriteFile(bin, emitterBinary(t, codec, hash.String("fire"), 0), 0o644))

	doc, err := ReadFile(codec, bin)
	require.NoError(t, err)
	require.Len(t, doc.Nodes, 1)
	assert.Equal(t, "FxEmitterNode", doc.Nodes[0].Def.Name())

	var buf strings.Builder
	require.NoError(t, codec.WriteTree(&buf, doc))
	tree := filepath.Join(dir, "fire.vfx.xml")
	require.NoError(t, os.WriteFile(tree, []byte(buf.String()), 0o644))
	fromTree, err := ReadFile(codec, tree)
	require.NoError(t, err)
	for i, vals := range doc.Nodes[0].Values {
		assert.True(t, vals[0].SameHash(fromTree.Nodes[0].Values[i][0]), "property %d", i)
	}

	_, err = ReadFile(codec, filepath.Join(dir, "notes.txt"))
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))

	_, err = ReadFile(codec, filepath.Join(dir, "missing.vfx"))
	assert.True(t, errors.Is(err, errors.ErrCodeFileNotFound))
}
