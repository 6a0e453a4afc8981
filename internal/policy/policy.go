package policy

import (
	"proto-schematic/proto"
)

// Input type names of the runtime unions.
const (
	ProtoAssetType   = "ProtoAsset"
	EntityAccessType = "EntityAccess"
)

// Policy is the resolution strategy of one field.
type Policy interface {
	// Kind returns the arm of the policy.
	Kind() Kind
	// Discovers reports whether the field takes part in dependency discovery.
	Discovers() bool
	// InInput reports whether the field has a slot in Input values.
	InInput() bool
	// InputType returns the Input type name given the declared Output type.
	// Empty when the field is absent from Input.
	InputType(outputType string) string

	sealed()
}

// Passthrough copies the Input value unchanged.
type Passthrough struct{}

func (Passthrough) Kind() Kind                         { return KindPassthrough }
func (Passthrough) Discovers() bool                    { return false }
func (Passthrough) InInput() bool                      { return true }
func (Passthrough) InputType(outputType string) string { return outputType }
func (Passthrough) sealed()                            {}

// ResourceReference resolves to an asset handle.
type ResourceReference struct {
	// Path is the literal asset path. Empty for the runtime union.
	Path string
	// Preload is false when the field is excluded from discovery.
	Preload bool
}

// IsLiteral reports whether the path is fixed by the schema.
func (r ResourceReference) IsLiteral() bool {
	return r.Path != ""
}

func (ResourceReference) Kind() Kind        { return KindResource }
func (r ResourceReference) Discovers() bool { return r.Preload }
func (r ResourceReference) InInput() bool   { return !r.IsLiteral() }

func (r ResourceReference) InputType(string) string {
	if r.IsLiteral() {
		return ""
	}

	return ProtoAssetType
}

func (ResourceReference) sealed() {}

// EntityReference resolves to a live entity through the spawn context.
type EntityReference struct {
	// Path is the literal entity path. Empty for a runtime address.
	Path string
	// Access is Path parsed. Zero for a runtime address.
	Access proto.EntityAccess
}

// IsLiteral reports whether the address is fixed by the schema.
func (e EntityReference) IsLiteral() bool {
	return e.Path != ""
}

func (EntityReference) Kind() Kind      { return KindEntity }
func (EntityReference) Discovers() bool { return false }
func (e EntityReference) InInput() bool { return !e.IsLiteral() }

func (e EntityReference) InputType(string) string {
	if e.IsLiteral() {
		return ""
	}

	return EntityAccessType
}

func (EntityReference) sealed() {}

// UserConversion defers to a converter registered for (From, Output type).
type UserConversion struct {
	// From is the declared Input type.
	From string
}

func (UserConversion) Kind() Kind                { return KindConversion }
func (UserConversion) Discovers() bool           { return false }
func (UserConversion) InInput() bool             { return true }
func (u UserConversion) InputType(string) string { return u.From }
func (UserConversion) sealed()                   {}
