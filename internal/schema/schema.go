package schema

import (
	"proto-schematic/internal/harness"
)

// File is the root of a schema definition file.
type File struct {
	// Version of the definition format.
	Version string `yaml:"version,omitempty" json:"version,omitempty"`
	// Schemas defined in this file.
	Schemas []Schema `yaml:"schemas" json:"schemas"`
}

// Schema is a tagged union of variants.
type Schema struct {
	// Name of the Output type.
	Name string `yaml:"name" json:"name"`
	// Input is the name of the Input type, used in diagnostics.
	Input string `yaml:"input,omitempty" json:"input,omitempty"`
	// Variants of the union, in declaration order.
	Variants []Variant `yaml:"variants" json:"variants"`
}

// InputName returns the Input type name, defaulting to Name + "Input".
func (s *Schema) InputName() string {
	if s.Input != "" {
		return s.Input
	}

	return s.Name + "Input"
}

// Variant returns the variant with the given name.
func (s *Schema) Variant(name string) (*Variant, bool) {
	for i := range s.Variants {
		if s.Variants[i].Name == name {
			return &s.Variants[i], true
		}
	}

	return nil, false
}

// Variant is one alternative of a schema.
type Variant struct {
	// Name is the variant tag.
	Name string `yaml:"name" json:"name"`
	// Kind is the structural kind. Inferred when omitted.
	Kind harness.Kind `yaml:"kind,omitempty" json:"kind,omitempty"`
	// Fields in declaration order.
	Fields []Field `yaml:"fields,omitempty" json:"fields,omitempty"`
}

// Field is one field of a variant. At most one of Asset, Entity and From
// may be set; none means the field is passed through unchanged.
type Field struct {
	// Name of the field. Empty for positional fields.
	Name string `yaml:"name,omitempty" json:"name,omitempty"`
	// Type is the declared Output type name.
	Type string `yaml:"type" json:"type"`
	// Asset marks the field as an asset reference.
	Asset *AssetAttr `yaml:"asset,omitempty" json:"asset,omitempty"`
	// Entity marks the field as an entity reference.
	Entity *EntityAttr `yaml:"entity,omitempty" json:"entity,omitempty"`
	// From names the Input type of a user conversion.
	From string `yaml:"from,omitempty" json:"from,omitempty"`
}

// AssetAttr configures an asset reference field.
type AssetAttr struct {
	// Path is a literal asset path. Empty means the Input carries a
	// runtime AssetPath/HandleID union.
	Path string `yaml:"path,omitempty" json:"path,omitempty"`
	// Preload controls dependency discovery. Nil means true.
	Preload *bool `yaml:"preload,omitempty" json:"preload,omitempty"`
}

// PreloadEnabled reports whether the field takes part in discovery.
func (a *AssetAttr) PreloadEnabled() bool {
	return a.Preload == nil || *a.Preload
}

// EntityAttr configures an entity reference field.
type EntityAttr struct {
	// Path is a literal entity path. Empty means the Input carries a
	// runtime EntityAccess.
	Path string `yaml:"path,omitempty" json:"path,omitempty"`
}
