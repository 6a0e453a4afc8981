package convert

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"proto-schematic/proto"
)

func TestRegistry(t *testing.T) {
	r := NewRegistry()

	require.NoError(t, r.Register("string", "int", strconv.Atoi))
	require.NoError(t, r.RegisterConverter("ColorInput", "Color", ConverterFunc(func(in any, _ proto.Context) (any, error) {
		return in, nil
	})))

	e, ok := r.Lookup("string", "int")
	require.True(t, ok)
	require.NotNil(t, e.Caster)
	assert.Equal(t, "strconv.Atoi", e.Caster.FuncCall())
	assert.Equal(t, Pair{From: "string", To: "int"}, e.Pair)

	e, ok = r.Lookup("ColorInput", "Color")
	require.True(t, ok)
	assert.Nil(t, e.Caster)

	assert.False(t, r.Has("int", "string"))
	assert.Equal(t, []Pair{{From: "ColorInput", To: "Color"}, {From: "string", To: "int"}}, r.Pairs())

	err := r.Register("string", "int", strconv.Atoi)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")

	err = r.Register("a", "b", 7)
	require.ErrorIs(t, err, ErrCasterIsNotAFunction)

	require.Error(t, r.RegisterConverter("a", "b", nil))
	assert.Panics(t, func() { r.MustRegister("a", "b", "not a func") })
}

func TestRegistry_Nil(t *testing.T) {
	var r *Registry

	_, ok := r.Lookup("a", "b")
	assert.False(t, ok)
	assert.Nil(t, r.Pairs())
}
