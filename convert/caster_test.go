package convert_test

import (
	"errors"
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"proto-schematic/convert"
	"proto-schematic/proto"
)

type moreThanError interface {
	error
	More()
}

func empty()                          { panic("not implemented") }
func wrong(int) (string, error, bool) { panic("not implemented") }
func badContext(int, string) string   { panic("not implemented") }

func full(int, proto.Context) (string, error) { panic("not implemented") }
func customError(int) (string, moreThanError) { panic("not implemented") }

func ExampleParseCaster() {
	desc, err := convert.ParseCaster(full)
	fmt.Println(err, desc.PackageAlias, desc.Name, desc.Src.Kind(), desc.Dst.Kind(), desc.HasContext, desc.HasErr)

	desc, err = convert.ParseCaster(strconv.Itoa)
	fmt.Println(err, desc.PackageAlias, desc.Name, desc.Src.Kind(), desc.Dst.Kind(), desc.HasContext, desc.HasErr)

	desc, err = convert.ParseCaster(strconv.Atoi)
	fmt.Println(err, desc.PackageAlias, desc.Name, desc.Src.Kind(), desc.Dst.Kind(), desc.HasContext, desc.HasErr)

	desc, err = convert.ParseCaster(customError)
	fmt.Println(err, desc.PackageAlias, desc.Name, desc.Src.Kind(), desc.Dst.Kind(), desc.HasContext, desc.HasErr)

	_, err = convert.ParseCaster(empty)
	fmt.Println(err)

	_, err = convert.ParseCaster(wrong)
	fmt.Println(err)

	_, err = convert.ParseCaster(badContext)
	fmt.Println(err)

	_, err = convert.ParseCaster(42)
	fmt.Println(err)

	// Output:
	// <nil> convert_test full int string true true
	// <nil> strconv Itoa int string false false
	// <nil> strconv Atoi string int false true
	// <nil> convert_test customError int string false true
	// provided function is not a recognizable caster
	// provided function is not a recognizable caster
	// provided function is not a recognizable caster
	// provided caster is not a function
}

func TestParseCaster_DoublePointer(t *testing.T) {
	_, err := convert.ParseCaster(func(**int) string { return "" })
	require.ErrorIs(t, err, convert.ErrDoublePointer)

	_, err = convert.ParseCaster(func(int) **string { return nil })
	require.ErrorIs(t, err, convert.ErrDoublePointer)
}

type stubContext struct{ scale int }

func (stubContext) FindEntity(proto.EntityAccess) (proto.EntityID, bool) { return 0, false }
func (stubContext) Assets() proto.AssetLoader                            { return nil }

func TestCaster_Convert(t *testing.T) {
	scaled, err := convert.ParseCaster(func(n int, ctx proto.Context) (int, error) {
		return n * ctx.(stubContext).scale, nil
	})
	require.NoError(t, err)

	out, err := scaled.Convert(3, stubContext{scale: 4})
	require.NoError(t, err)
	assert.Equal(t, 12, out)

	_, err = scaled.Convert("3", stubContext{scale: 4})
	require.ErrorIs(t, err, convert.ErrInputType)
	assert.Contains(t, err.Error(), "got string, want int")

	_, err = scaled.Convert(nil, nil)
	require.ErrorIs(t, err, convert.ErrInputType)

	failing, err := convert.ParseCaster(strconv.Atoi)
	require.NoError(t, err)

	_, err = failing.Convert("nope", nil)
	var numErr *strconv.NumError
	require.ErrorAs(t, err, &numErr, "conversion errors are returned unchanged")

	ptr, err := convert.ParseCaster(func(p *int) bool { return p == nil })
	require.NoError(t, err)

	out, err = ptr.Convert(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, true, out)
}

func TestFunc(t *testing.T) {
	errBoom := errors.New("boom")

	c := convert.Func(func(s string, _ proto.Context) (int, error) {
		if s == "" {
			return 0, errBoom
		}

		return len(s), nil
	})

	out, err := c.Convert("abc", nil)
	require.NoError(t, err)
	assert.Equal(t, 3, out)

	_, err = c.Convert("", nil)
	require.ErrorIs(t, err, errBoom)

	_, err = c.Convert(1, nil)
	require.ErrorIs(t, err, convert.ErrInputType)
}
