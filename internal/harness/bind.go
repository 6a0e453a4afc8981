package harness

import (
	"maps"
	"slices"
	"strings"

	"proto-schematic/proto"
)

// Binding is an Input value destructured against a Layout. Every field of
// the layout is addressable through it, whether or not the field has an
// Input slot.
type Binding struct {
	layout  *Layout
	value   proto.Value
	stray   map[string]any
	visited []Address
}

// Bind destructures v against the layout. It fails with a *ShapeError when
// v cannot have been produced for this variant.
//
// A named Input that carries a key for a field without an Input slot is not
// rejected here; the value is kept as stray so the caller can report it
// against the field's policy.
func (l *Layout) Bind(v proto.Value) (*Binding, error) {
	b := &Binding{layout: l, value: v}

	switch l.kind {
	case KindUnit:
		if len(v.Tuple) > 0 || len(v.Record) > 0 {
			return nil, l.shapeErr("unit variant carries fields")
		}
	case KindPositional:
		if len(v.Record) > 0 {
			return nil, l.shapeErr("positional variant given named fields")
		}

		if len(v.Tuple) != l.inputLen {
			return nil, l.shapeErr("expected %d positional fields, got %d", l.inputLen, len(v.Tuple))
		}
	case KindNamed:
		if len(v.Tuple) > 0 {
			return nil, l.shapeErr("named variant given positional fields")
		}

		if err := b.bindRecord(); err != nil {
			return nil, err
		}
	}

	return b, nil
}

func (b *Binding) bindRecord() error {
	l := b.layout

	var missing []string

	for _, f := range l.fields {
		if !f.InInput() {
			continue
		}

		if _, ok := b.value.Record[f.Address.Name]; !ok {
			missing = append(missing, f.Address.Name)
		}
	}

	if len(missing) > 0 {
		return l.shapeErr("missing fields: %s", strings.Join(missing, ", "))
	}

	var unknown []string

	for _, key := range slices.Sorted(maps.Keys(b.value.Record)) {
		i, known := l.byName[key]

		switch {
		case !known:
			unknown = append(unknown, key)
		case !l.fields[i].InInput():
			if b.stray == nil {
				b.stray = make(map[string]any)
			}

			b.stray[key] = b.value.Record[key]
		}
	}

	if len(unknown) > 0 {
		return l.shapeErr("unknown fields: %s", strings.Join(unknown, ", "))
	}

	return nil
}

// Visit marks f as visited and returns its Input value. present is false
// for fields without an Input slot.
func (b *Binding) Visit(f FieldLayout) (value any, present bool) {
	b.visited = append(b.visited, f.Address)

	if !f.InInput() {
		return nil, false
	}

	if b.layout.kind == KindPositional {
		return b.value.Tuple[f.Slot], true
	}

	return b.value.Record[f.Address.Name], true
}

// Stray returns a value supplied in a named Input for a field that has no
// Input slot.
func (b *Binding) Stray(f FieldLayout) (any, bool) {
	v, ok := b.stray[f.Address.Name]
	return v, ok
}

// Visited returns the addresses visited so far, in visiting order.
func (b *Binding) Visited() []Address {
	return append([]Address(nil), b.visited...)
}

// Builder assembles an Output value for a layout.
type Builder struct {
	layout *Layout
	tuple  []any
	record map[string]any
	set    []bool
}

// NewBuilder starts an Output value for the layout.
func (l *Layout) NewBuilder() *Builder {
	b := &Builder{layout: l, set: make([]bool, len(l.fields))}

	switch l.kind {
	case KindPositional:
		b.tuple = make([]any, len(l.fields))
	case KindNamed:
		b.record = make(map[string]any, len(l.fields))
	}

	return b
}

// Set stores the resolved value of f.
func (b *Builder) Set(f FieldLayout, v any) {
	b.set[f.Address.Ordinal] = true

	if b.layout.kind == KindPositional {
		b.tuple[f.Address.Ordinal] = v
		return
	}

	b.record[f.Address.Name] = v
}

// Build returns the Output value. It fails when a declared field was never set.
func (b *Builder) Build() (proto.Value, error) {
	for i, ok := range b.set {
		if !ok {
			return proto.Value{}, b.layout.shapeErr("output field %s was not resolved", b.layout.fields[i].Address)
		}
	}

	return proto.Value{Variant: b.layout.variant, Tuple: b.tuple, Record: b.record}, nil
}
