package schema

import "proto-schematic/internal/harness"

// Helpers for declaring schemas in Go instead of definition files.

// New returns a schema with the given variants.
func New(name string, variants ...Variant) Schema {
	return Schema{Name: name, Variants: variants}
}

// Unit declares a variant without fields.
func Unit(name string) Variant {
	return Variant{Name: name, Kind: harness.KindUnit}
}

// Positional declares a variant with ordered, unnamed fields.
func Positional(name string, fields ...Field) Variant {
	return Variant{Name: name, Kind: harness.KindPositional, Fields: fields}
}

// Named declares a variant with named fields.
func Named(name string, fields ...Field) Variant {
	return Variant{Name: name, Kind: harness.KindNamed, Fields: fields}
}

// Passthrough declares a field copied unchanged.
func Passthrough(typ string) Field {
	return Field{Type: typ}
}

// Asset declares an asset field carrying a runtime AssetPath/HandleID union.
func Asset(typ string) Field {
	return Field{Type: typ, Asset: &AssetAttr{}}
}

// AssetAt declares an asset field with a literal path.
func AssetAt(typ, path string) Field {
	return Field{Type: typ, Asset: &AssetAttr{Path: path}}
}

// Entity declares an entity field carrying a runtime address.
func Entity() Field {
	return Field{Type: EntityType, Entity: &EntityAttr{}}
}

// EntityAt declares an entity field with a literal path.
func EntityAt(path string) Field {
	return Field{Type: EntityType, Entity: &EntityAttr{Path: path}}
}

// Convert declares a field produced by a user conversion from the from type.
func Convert(typ, from string) Field {
	return Field{Type: typ, From: from}
}

// As returns a copy of f with the given name.
func (f Field) As(name string) Field {
	f.Name = name
	return f
}

// WithoutPreload returns a copy of an asset field excluded from discovery.
func (f Field) WithoutPreload() Field {
	if f.Asset == nil {
		return f
	}

	disabled := false
	attr := *f.Asset
	attr.Preload = &disabled
	f.Asset = &attr

	return f
}

// EntityType is the declared type of entity reference fields.
const EntityType = "Entity"
