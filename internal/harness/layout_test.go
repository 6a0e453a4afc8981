package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"proto-schematic/proto"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
	}{
		{"unit", KindUnit},
		{"positional", KindPositional},
		{"Tuple", KindPositional},
		{"named", KindNamed},
		{"struct", KindNamed},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKind(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseKind("")
	require.Error(t, err)

	_, err = ParseKind("record")
	require.Error(t, err)

	assert.Equal(t, "positional", KindPositional.String())
	assert.Equal(t, "Kind(0)", Kind(0).String())
}

func TestKind_Text(t *testing.T) {
	var k Kind
	require.NoError(t, k.UnmarshalText([]byte("named")))
	assert.Equal(t, KindNamed, k)

	out, err := k.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "named", string(out))

	_, err = Kind(9).MarshalText()
	require.Error(t, err)
}

func TestNewLayout_Positional(t *testing.T) {
	l, err := NewLayout("Sprite", KindPositional, []FieldSpec{
		{InInput: true},
		{InInput: false, Discovers: true},
		{InInput: true, Discovers: true},
	})
	require.NoError(t, err)

	fields := l.Fields()
	require.Len(t, fields, 3)

	assert.Equal(t, "field_0", fields[0].Binding)
	assert.Equal(t, "field_1", fields[1].Binding)
	assert.Equal(t, "field_2", fields[2].Binding)

	assert.Equal(t, 0, fields[0].Slot)
	assert.Equal(t, -1, fields[1].Slot)
	assert.Equal(t, 1, fields[2].Slot, "positional slots are compacted")
	assert.Equal(t, 2, l.InputLen())

	assert.Equal(t, []Address{{Ordinal: 1}, {Ordinal: 2}}, l.PreloadAddresses())
	assert.Equal(t, []Address{{Ordinal: 0}, {Ordinal: 1}, {Ordinal: 2}}, l.ConstructAddresses())
}

func TestNewLayout_NamedReservedBinding(t *testing.T) {
	l, err := NewLayout("Icon", KindNamed, []FieldSpec{
		{Name: "ctx", InInput: true},
		{Name: "image", InInput: true},
	})
	require.NoError(t, err)

	fields := l.Fields()
	assert.Equal(t, "ctx1", fields[0].Binding)
	assert.Equal(t, "image", fields[1].Binding)
	assert.Equal(t, "ctx", fields[0].Address.String())
}

func TestNewLayout_RenderLocalsReserved(t *testing.T) {
	l, err := NewLayout("Pipe", KindNamed, []FieldSpec{
		{Name: "in", InInput: true},
		{Name: "out", InInput: true},
		{Name: "entry", InInput: true},
		{Name: "proto", InInput: true},
		{Name: "flow", InInput: true},
	})
	require.NoError(t, err)

	var bindings []string
	for _, f := range l.Fields() {
		bindings = append(bindings, f.Binding)
	}

	assert.Equal(t, []string{"in1", "out1", "entry1", "proto1", "flow"}, bindings)
}

func TestNewLayout_Errors(t *testing.T) {
	tests := []struct {
		name  string
		kind  Kind
		specs []FieldSpec
		msg   string
	}{
		{name: "invalid kind", kind: Kind(0), msg: "invalid kind"},
		{name: "unit with fields", kind: KindUnit, specs: []FieldSpec{{}}, msg: "unit variants"},
		{name: "named positional", kind: KindPositional, specs: []FieldSpec{{Name: "x"}}, msg: "cannot be named"},
		{name: "unnamed named", kind: KindNamed, specs: []FieldSpec{{}}, msg: "has no name"},
		{name: "duplicate", kind: KindNamed, specs: []FieldSpec{{Name: "x"}, {Name: "x"}}, msg: "duplicate field"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLayout("V", tt.kind, tt.specs)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestBind_Shapes(t *testing.T) {
	unit, err := NewLayout("Empty", KindUnit, nil)
	require.NoError(t, err)

	pos, err := NewLayout("Pair", KindPositional, []FieldSpec{{InInput: true}, {InInput: true}})
	require.NoError(t, err)

	named, err := NewLayout("Icon", KindNamed, []FieldSpec{
		{Name: "image", InInput: true},
		{Name: "fallback", InInput: false},
	})
	require.NoError(t, err)

	tests := []struct {
		name   string
		layout *Layout
		value  proto.Value
		errMsg string
	}{
		{name: "unit ok", layout: unit, value: proto.NewUnit("Empty")},
		{name: "unit with tuple", layout: unit, value: proto.NewTuple("Empty", 1), errMsg: "unit variant carries fields"},
		{name: "tuple ok", layout: pos, value: proto.NewTuple("Pair", 1, 2)},
		{name: "tuple short", layout: pos, value: proto.NewTuple("Pair", 1), errMsg: "expected 2 positional fields, got 1"},
		{name: "tuple given record", layout: pos, value: proto.NewRecord("Pair", map[string]any{"a": 1}), errMsg: "given named fields"},
		{name: "record ok", layout: named, value: proto.NewRecord("Icon", map[string]any{"image": 1})},
		{name: "record missing", layout: named, value: proto.NewRecord("Icon", map[string]any{}), errMsg: "missing fields: image"},
		{name: "record unknown", layout: named, value: proto.NewRecord("Icon", map[string]any{"image": 1, "zzz": 2}), errMsg: "unknown fields: zzz"},
		{name: "record given tuple", layout: named, value: proto.NewTuple("Icon", 1), errMsg: "given positional fields"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.layout.Bind(tt.value)
			if tt.errMsg == "" {
				require.NoError(t, err)
				return
			}

			require.Error(t, err)
			require.ErrorIs(t, err, ErrShapeMismatch)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestBinding_VisitAndStray(t *testing.T) {
	l, err := NewLayout("Icon", KindNamed, []FieldSpec{
		{Name: "image", InInput: true},
		{Name: "fallback", InInput: false},
	})
	require.NoError(t, err)

	b, err := l.Bind(proto.NewRecord("Icon", map[string]any{"image": "a", "fallback": "b"}))
	require.NoError(t, err)

	fields := l.Fields()

	v, ok := b.Visit(fields[0])
	assert.True(t, ok)
	assert.Equal(t, "a", v)

	v, ok = b.Visit(fields[1])
	assert.False(t, ok)
	assert.Nil(t, v)

	stray, ok := b.Stray(fields[1])
	assert.True(t, ok)
	assert.Equal(t, "b", stray)

	_, ok = b.Stray(fields[0])
	assert.False(t, ok)

	assert.Equal(t, []Address{{Ordinal: 0, Name: "image"}, {Ordinal: 1, Name: "fallback"}}, b.Visited())
}

func TestBuilder(t *testing.T) {
	l, err := NewLayout("Pair", KindPositional, []FieldSpec{{InInput: true}, {InInput: false}})
	require.NoError(t, err)

	fields := l.Fields()

	b := l.NewBuilder()
	b.Set(fields[0], 1)

	_, err = b.Build()
	require.ErrorIs(t, err, ErrShapeMismatch)
	assert.Contains(t, err.Error(), "output field 1 was not resolved")

	b.Set(fields[1], 2)

	out, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, proto.NewTuple("Pair", 1, 2), out)

	unit, err := NewLayout("Empty", KindUnit, nil)
	require.NoError(t, err)

	out, err = unit.NewBuilder().Build()
	require.NoError(t, err)
	assert.Equal(t, proto.NewUnit("Empty"), out)
}
