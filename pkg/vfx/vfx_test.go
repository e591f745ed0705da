package vfx

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/matzehuels/vfxtool/pkg/hash"
	"github.com/matzehuels/vfxtool/pkg/schema"
)

var testHasher = hash.NewHasher(map[string]uint64{"ftex": 4, "fxp": 9})

// testCodec returns a codec with a "Test" node (one uint32 "Value") in
// both namespaces and a richer "FxEmitterNode" in TPP only.
func testCodec(t *testing.T) *Codec {
	t.Helper()
	testDef := mustDef(t, "Test", []schema.Property{{Name: "Value", Type: schema.UInt32}})
	emitter := mustDef(t, "FxEmitterNode", []schema.Property{
		{Name: "enabled", Type: schema.Bool},
		{Name: "count", Type: schema.Int32},
		{Name: "seed", Type: schema.UInt64},
		{Name: "scale", Type: schema.Float, Arity: 2},
		{Name: "color", Type: schema.Vector4},
		{Name: "name", Type: schema.StrCode},
		{Name: "texture", Type: schema.PathCode},
	})
	reg, err := schema.NewRegistry(
		map[string]*schema.Definition{"Test": testDef},
		map[string]*schema.Definition{"Test": testDef, "FxEmitterNode": emitter},
	)
	require.NoError(t, err)
	return &Codec{Registry: reg, Hasher: testHasher}
}

func mustDef(t *testing.T, name string, props []schema.Property) *schema.Definition {
	t.Helper()
	d, err := schema.NewDefinition(name, props)
	require.NoError(t, err)
	return d
}

func mustResolve(t *testing.T, c *Codec, v schema.Version, name string) *schema.Definition {
	t.Helper()
	d, ok := c.Registry.Resolve(v, hash.String(name))
	require.True(t, ok, name)
	return d
}

// rawHeader builds a binary header by hand.
func rawHeader(version, nodes, edges, variations uint16) []byte {
	b := []byte(Signature)
	b = appendU16(b, version)
	b = appendU16(b, nodes)
	b = appendU16(b, edges)
	b = appendU16(b, variations)
	return appendU32(b, 0)
}

// emitterDoc returns a TPP document exercising every value type.
func emitterDoc(t *testing.T, c *Codec) *Document {
	t.Helper()
	doc := New(schema.TPP)

	n := NewNode(mustResolve(t, c, schema.TPP, "FxEmitterNode"))
	require.NoError(t, n.Set("enabled", BoolValue(true)))
	require.NoError(t, n.Set("count", Int32Value(-7)))
	require.NoError(t, n.Set("seed", UInt64Value(1<<63+5)))
	require.NoError(t, n.Set("scale", FloatValue(0.1), FloatValue(-2.5e-8)))
	require.NoError(t, n.Set("color", Vector4Value(Vector4{X: 1, Y: 0.5, Z: 0.25, W: -1})))
	require.NoError(t, n.Set("name", StrCodeText("smoke")))
	require.NoError(t, n.Set("texture", PathCodeText(testHasher, "/Assets/tpp/fx/smoke.ftex")))
	doc.AddNode(n)

	leaf := NewNode(mustResolve(t, c, schema.TPP, "Test"))
	require.NoError(t, leaf.Set("Value", UInt32Value(42)))
	doc.AddNode(leaf)

	doc.Connect(0, 1)
	doc.Variations = append(doc.Variations, Variation{Name: 7, Pairs: []NodePair{{Target: 1, New: 0}}})
	return doc
}

func formatUint(u uint64) string { return strconv.FormatUint(u, 10) }
