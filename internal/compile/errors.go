package compile

import (
	"errors"
	"fmt"

	"proto-schematic/internal/diagnostic"
	"proto-schematic/proto"
)

var (
	// ErrInvalidSchema is matched by every SchemaError.
	ErrInvalidSchema = errors.New("invalid schema")
	// ErrUnknownVariant is returned for Input values tagged with a variant
	// the schematic does not know.
	ErrUnknownVariant = errors.New("unknown variant")
	// ErrResolutionMismatch is matched by every MismatchError.
	ErrResolutionMismatch = errors.New("resolution mismatch")
	// ErrMissingEntity is matched by every MissingEntityError.
	ErrMissingEntity = errors.New("missing entity")
	// ErrMissingConverter is returned when a conversion field has no converter.
	ErrMissingConverter = errors.New("missing converter")
)

// SchemaError rejects a schema at definition time.
type SchemaError struct {
	Schema      string
	Diagnostics diagnostic.Diagnostics
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema %s: %v", e.Schema, e.Diagnostics.Error())
}

// Is reports whether target is ErrInvalidSchema.
func (e *SchemaError) Is(target error) bool {
	return target == ErrInvalidSchema
}

// MismatchError reports an Input value whose runtime form disagrees with
// the field's declared policy.
type MismatchError struct {
	// Variant is the Input variant path, "Input::Variant".
	Variant string
	// Field is the field address.
	Field string
	// Expected describes what the policy requires.
	Expected string
	// Got describes what was found.
	Got string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("expected %s in field `%s` of `%s`, but found %s", e.Expected, e.Field, e.Variant, e.Got)
}

// Is reports whether target is ErrResolutionMismatch.
func (e *MismatchError) Is(target error) bool {
	return target == ErrResolutionMismatch
}

// MissingEntityError reports an entity address with nothing spawned at it.
type MissingEntityError struct {
	// Variant is the Output variant path, "Schema::Variant".
	Variant string
	// Field is the field address.
	Field string
	// Address is the unresolved entity address.
	Address proto.EntityAccess
}

func (e *MissingEntityError) Error() string {
	return fmt.Sprintf("entity should exist at path %s (field `%s` of `%s`)", e.Address, e.Field, e.Variant)
}

// Is reports whether target is ErrMissingEntity.
func (e *MissingEntityError) Is(target error) bool {
	return target == ErrMissingEntity
}

func describe(v any) string {
	if v == nil {
		return "nil"
	}

	return fmt.Sprintf("`%T`", v)
}
