package policy

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"proto-schematic/internal/diagnostic"
	"proto-schematic/internal/harness"
	"proto-schematic/internal/schema"
	"proto-schematic/proto"
)

// ErrDefinition is matched by every DefinitionError.
var ErrDefinition = errors.New("invalid field policy")

// DefinitionError rejects a field declaration.
type DefinitionError struct {
	// Variant is "Schema::Variant", when known.
	Variant string
	// Field is the field address.
	Field string
	// Code is the diagnostic code.
	Code string
	// Reason describes the problem.
	Reason string
}

func (e *DefinitionError) Error() string {
	if e.Variant != "" {
		return fmt.Sprintf("field `%s` of `%s`: %s", e.Field, e.Variant, e.Reason)
	}

	return fmt.Sprintf("field `%s`: %s", e.Field, e.Reason)
}

// Is reports whether target is ErrDefinition.
func (e *DefinitionError) Is(target error) bool {
	return target == ErrDefinition
}

// Resolve returns the policy of field f, addressed as address in its variant.
func Resolve(f schema.Field, address string) (Policy, error) {
	reject := func(code, format string, args ...any) (Policy, error) {
		return nil, &DefinitionError{Field: address, Code: code, Reason: fmt.Sprintf(format, args...)}
	}

	var declared []string

	if f.Asset != nil {
		declared = append(declared, "asset")
	}

	if f.Entity != nil {
		declared = append(declared, "entity")
	}

	if f.From != "" {
		declared = append(declared, "from")
	}

	if len(declared) > 1 {
		return reject(diagnostic.CodeConflictingPolicy,
			"conflicting policies %s: a field has exactly one policy", strings.Join(declared, " and "))
	}

	switch {
	case f.Asset != nil:
		if p := f.Asset.Path; p != "" {
			if err := checkAssetPath(p); err != nil {
				return reject(diagnostic.CodeInvalidPath, "%v", err)
			}
		}

		return ResourceReference{Path: f.Asset.Path, Preload: f.Asset.PreloadEnabled()}, nil

	case f.Entity != nil:
		if f.Type != schema.EntityType {
			return reject(diagnostic.CodeInvalidField,
				"entity fields must be declared as %s, got %q", schema.EntityType, f.Type)
		}

		ref := EntityReference{Path: f.Entity.Path}

		if ref.IsLiteral() {
			access, err := proto.ParseEntityAccess(ref.Path)
			if err != nil {
				return reject(diagnostic.CodeInvalidPath, "%v", err)
			}

			ref.Access = access
		}

		return ref, nil

	case f.From != "":
		return UserConversion{From: f.From}, nil

	default:
		return Passthrough{}, nil
	}
}

func checkAssetPath(p string) error {
	if strings.HasPrefix(p, "/") {
		return fmt.Errorf("asset path %q must be relative to the asset root", p)
	}

	if clean := path.Clean(p); clean == ".." || strings.HasPrefix(clean, "../") {
		return fmt.Errorf("asset path %q escapes the asset root", p)
	}

	return nil
}

// Resolved is a field paired with its policy.
type Resolved struct {
	// Field is the declaration.
	Field schema.Field
	// Address is the field address within its variant.
	Address string
	// Policy is the resolved policy.
	Policy Policy
}

// Spec returns the harness view of the field.
func (r Resolved) Spec() harness.FieldSpec {
	return harness.FieldSpec{
		Name:      r.Field.Name,
		InInput:   r.Policy.InInput(),
		Discovers: r.Policy.Discovers(),
	}
}

// InputType returns the declared Input type of the field.
func (r Resolved) InputType() string {
	return r.Policy.InputType(r.Field.Type)
}

// ResolveVariant resolves every field of v in address order. Each rejected
// field is reported as an error diagnostic; the returned slice only holds
// fields that resolved.
func ResolveVariant(s *schema.Schema, v *schema.Variant) ([]Resolved, *diagnostic.Diagnostics) {
	res := &diagnostic.Diagnostics{}
	where := schema.VariantPath(s, v)

	out := make([]Resolved, 0, len(v.Fields))

	for i, f := range v.Fields {
		addr := schema.FieldAddress(v, i)

		p, err := Resolve(f, addr)
		if err != nil {
			var defErr *DefinitionError
			if errors.As(err, &defErr) {
				res.AddError(defErr.Code, defErr.Reason, where, addr)
			} else {
				res.AddError(diagnostic.CodeInvalidField, err.Error(), where, addr)
			}

			continue
		}

		out = append(out, Resolved{Field: f, Address: addr, Policy: p})
	}

	return out, res
}
