package vfx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/vfxtool/pkg/errors"
	"github.com/matzehuels/vfxtool/pkg/schema"
)

func TestNewNodeIsZeroed(t *testing.T) {
	c := testCodec(t)
	n := NewNode(mustResolve(t, c, schema.TPP, "FxEmitterNode"))
	require.NoError(t, n.Validate())

	scale, ok := n.Get("scale")
	require.True(t, ok)
	assert.Equal(t, []Value{FloatValue(0), FloatValue(0)}, scale)

	_, ok = n.Get("missing")
	assert.False(t, ok)
}

func TestNodeSet(t *testing.T) {
	c := testCodec(t)
	n := NewNode(mustResolve(t, c, schema.TPP, "FxEmitterNode"))

	err := n.Set("scale", FloatValue(1))
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))

	err = n.Set("count", UInt32Value(1))
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))

	err = n.Set("nope", BoolValue(true))
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))

	vals := []Value{FloatValue(1), FloatValue(2)}
	require.NoError(t, n.Set("scale", vals...))
	vals[0] = FloatValue(9)
	got, _ := n.Get("scale")
	assert.Equal(t, FloatValue(1), got[0])
}

func TestValueAccessors(t *testing.T) {
	assert.True(t, BoolValue(true).Bool())
	assert.Equal(t, int32(-3), Int32Value(-3).Int32())
	assert.Equal(t, uint32(7), UInt32Value(7).UInt32())
	assert.Equal(t, float32(1.5), FloatValue(1.5).Float())
	assert.Equal(t, Vector4{1, 2, 3, 4}, Vector4Value(Vector4{1, 2, 3, 4}).Vector4())
	assert.Equal(t, `"smoke"`, StrCodeText("smoke").String())
	assert.Equal(t, "(1, 2, 3, 4)", Vector4Value(Vector4{1, 2, 3, 4}).String())
	assert.True(t, StrCodeValue(1).IsCode())
	assert.False(t, UInt64Value(1).IsCode())

	// Text does not take part in hash identity.
	assert.True(t, StrCodeText("smoke").SameHash(StrCodeValue(StrCodeText("smoke").Hash())))
	assert.False(t, StrCodeValue(1).SameHash(PathCodeValue(1)))
}
