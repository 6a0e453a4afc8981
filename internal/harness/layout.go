package harness

import (
	"errors"
	"fmt"
	"strconv"
)

// BindingPrefix prefixes synthesized binding names of positional fields.
const BindingPrefix = "field_"

// Reserved binding names: the locals and package names that rendered
// Preload and Construct methods declare next to the bindings. A named field
// called like one of these is bound under a stem-generated name instead.
var reserved = []string{
	"in", "out", "ctx", "deps",
	"path", "id", "ok", "access", "entry", "v", "converted", "err",
	"fmt", "proto", "schematic", "Converters",
}

// FieldSpec is what the harness needs to know about one declared field.
type FieldSpec struct {
	// Name is the declared field name. Empty for positional fields.
	Name string
	// InInput is true when the field has a slot in Input values.
	InInput bool
	// Discovers is true when the field takes part in dependency discovery.
	Discovers bool
}

// Address identifies a field inside its variant.
type Address struct {
	// Ordinal is the declaration index of the field.
	Ordinal int
	// Name is the declared name for named fields, empty otherwise.
	Name string
}

// String returns the name for named fields and the ordinal otherwise.
func (a Address) String() string {
	if a.Name != "" {
		return a.Name
	}

	return strconv.Itoa(a.Ordinal)
}

// FieldLayout is the harness view of one field.
type FieldLayout struct {
	// Address is the declared address of the field.
	Address Address
	// Binding is the local name the field is bound to in both patterns.
	Binding string
	// Slot is the Input slot of the field, or -1 when absent from Input.
	// For positional variants slots are compacted ordinals.
	Slot int
	// Discovers mirrors FieldSpec.Discovers.
	Discovers bool
}

// InInput reports whether the field has an Input slot.
func (f FieldLayout) InInput() bool {
	return f.Slot >= 0
}

// Layout is the single field enumeration of one variant.
type Layout struct {
	variant  string
	kind     Kind
	fields   []FieldLayout
	byName   map[string]int
	inputLen int
}

// NewLayout builds the layout of a variant from its declared fields.
func NewLayout(variant string, kind Kind, specs []FieldSpec) (*Layout, error) {
	if !kind.IsValid() {
		return nil, fmt.Errorf("variant %s: invalid kind %s", variant, kind)
	}

	if kind == KindUnit && len(specs) > 0 {
		return nil, fmt.Errorf("variant %s: unit variants cannot declare fields", variant)
	}

	l := &Layout{
		variant: variant,
		kind:    kind,
		fields:  make([]FieldLayout, 0, len(specs)),
		byName:  make(map[string]int, len(specs)),
	}

	taken := make(map[string]struct{}, len(specs)+len(reserved))
	for _, r := range reserved {
		taken[r] = struct{}{}
	}

	for i, spec := range specs {
		if err := l.checkSpec(i, spec); err != nil {
			return nil, err
		}

		f := FieldLayout{
			Address:   Address{Ordinal: i, Name: spec.Name},
			Slot:      -1,
			Discovers: spec.Discovers,
		}

		if spec.InInput {
			f.Slot = l.inputLen
			l.inputLen++
		}

		f.Binding = bindingName(kind, f.Address, taken)
		if kind == KindNamed {
			l.byName[spec.Name] = i
		}

		l.fields = append(l.fields, f)
	}

	return l, nil
}

func (l *Layout) checkSpec(i int, spec FieldSpec) error {
	switch l.kind {
	case KindPositional:
		if spec.Name != "" {
			return fmt.Errorf("variant %s: positional field %d cannot be named %q", l.variant, i, spec.Name)
		}
	case KindNamed:
		if spec.Name == "" {
			return fmt.Errorf("variant %s: named field %d has no name", l.variant, i)
		}

		if _, dup := l.byName[spec.Name]; dup {
			return fmt.Errorf("variant %s: duplicate field %q", l.variant, spec.Name)
		}
	}

	return nil
}

func bindingName(kind Kind, addr Address, taken map[string]struct{}) string {
	name := addr.Name
	if kind == KindPositional {
		name = BindingPrefix + strconv.Itoa(addr.Ordinal)
	}

	if _, clash := taken[name]; clash {
		return NewStem(name, taken).Next()
	}

	taken[name] = struct{}{}

	return name
}

// Variant returns the variant name.
func (l *Layout) Variant() string {
	return l.variant
}

// Kind returns the structural kind.
func (l *Layout) Kind() Kind {
	return l.kind
}

// Fields returns all fields in address order.
func (l *Layout) Fields() []FieldLayout {
	return append([]FieldLayout(nil), l.fields...)
}

// Field returns the field at the given ordinal.
func (l *Layout) Field(ordinal int) (FieldLayout, bool) {
	if ordinal < 0 || ordinal >= len(l.fields) {
		return FieldLayout{}, false
	}

	return l.fields[ordinal], true
}

// DiscoveryFields returns the fields taking part in discovery, in address order.
func (l *Layout) DiscoveryFields() []FieldLayout {
	var out []FieldLayout

	for _, f := range l.fields {
		if f.Discovers {
			out = append(out, f)
		}
	}

	return out
}

// InputLen returns the number of fields present in Input values.
func (l *Layout) InputLen() int {
	return l.inputLen
}

// ConstructAddresses returns every declared address in order.
func (l *Layout) ConstructAddresses() []Address {
	out := make([]Address, len(l.fields))
	for i, f := range l.fields {
		out[i] = f.Address
	}

	return out
}

// PreloadAddresses returns the addresses visited by discovery, in order.
func (l *Layout) PreloadAddresses() []Address {
	var out []Address

	for _, f := range l.DiscoveryFields() {
		out = append(out, f.Address)
	}

	return out
}

// ErrShapeMismatch is matched by every ShapeError.
var ErrShapeMismatch = errors.New("value does not match variant shape")

// ShapeError reports an Input value whose structure disagrees with its variant.
type ShapeError struct {
	Variant string
	Kind    Kind
	Reason  string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("variant %s (%s): %s", e.Variant, e.Kind, e.Reason)
}

// Is reports whether target is ErrShapeMismatch.
func (e *ShapeError) Is(target error) bool {
	return target == ErrShapeMismatch
}

func (l *Layout) shapeErr(format string, args ...any) error {
	return &ShapeError{Variant: l.variant, Kind: l.kind, Reason: fmt.Sprintf(format, args...)}
}
