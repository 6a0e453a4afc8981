package proto

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Value is one instance of a schema variant: the tag plus its payload.
//
// Unit variants carry neither Tuple nor Record. Positional variants carry
// their fields in Tuple, named variants in Record. The same carrier is used
// for Input values (pre-resolution) and Output values (post-resolution).
type Value struct {
	// Variant is the tag of the variant this value belongs to.
	Variant string
	// Tuple holds positional fields in order.
	Tuple []any
	// Record holds named fields.
	Record map[string]any
}

// NewUnit returns a value of a variant without fields.
func NewUnit(variant string) Value {
	return Value{Variant: variant}
}

// NewTuple returns a value of a positional variant.
func NewTuple(variant string, fields ...any) Value {
	return Value{Variant: variant, Tuple: fields}
}

// NewRecord returns a value of a named variant.
func NewRecord(variant string, fields map[string]any) Value {
	return Value{Variant: variant, Record: fields}
}

// IsZero reports whether v is the zero Value.
func (v Value) IsZero() bool {
	return v.Variant == "" && v.Tuple == nil && v.Record == nil
}

// String renders the value as Variant, Variant(a, b) or Variant{k: v}.
func (v Value) String() string {
	var sb strings.Builder

	sb.WriteString(v.Variant)

	switch {
	case v.Tuple != nil:
		sb.WriteString("(")

		for i, f := range v.Tuple {
			if i > 0 {
				sb.WriteString(", ")
			}

			fmt.Fprintf(&sb, "%v", f)
		}

		sb.WriteString(")")
	case v.Record != nil:
		sb.WriteString("{")

		for i, k := range slices.Sorted(maps.Keys(v.Record)) {
			if i > 0 {
				sb.WriteString(", ")
			}

			fmt.Fprintf(&sb, "%s: %v", k, v.Record[k])
		}

		sb.WriteString("}")
	}

	return sb.String()
}
