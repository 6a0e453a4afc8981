package schema

import (
	"fmt"

	"proto-schematic/internal/diagnostic"
	"proto-schematic/internal/harness"
)

// Validate checks the structure of every schema in f: names, duplicates and
// field naming per variant kind. Field policies are not checked here.
func Validate(f *File) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if f == nil {
		res.AddError(diagnostic.CodeSchemaIsNil, "schema file is nil", "", "")
		return res
	}

	seen := map[string]struct{}{}

	for i := range f.Schemas {
		s := &f.Schemas[i]

		if _, dup := seen[s.Name]; dup && s.Name != "" {
			res.AddError(diagnostic.CodeDuplicateSchema, fmt.Sprintf("duplicate schema %q", s.Name), s.Name, "")
			continue
		}

		seen[s.Name] = struct{}{}

		res.Merge(*ValidateSchema(s))
	}

	return res
}

// ValidateSchema checks the structure of one schema.
func ValidateSchema(s *Schema) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if s == nil {
		res.AddError(diagnostic.CodeSchemaIsNil, "schema is nil", "", "")
		return res
	}

	if s.Name == "" {
		res.AddError(diagnostic.CodeMissingName, "schema without a name", "", "")
	}

	seen := map[string]struct{}{}

	for i := range s.Variants {
		v := &s.Variants[i]
		where := VariantPath(s, v)

		if v.Name == "" {
			res.AddError(diagnostic.CodeMissingName, fmt.Sprintf("variant #%d has no name", i), s.Name, "")
			continue
		}

		if _, dup := seen[v.Name]; dup {
			res.AddError(diagnostic.CodeDuplicateVariant, fmt.Sprintf("duplicate variant %q", v.Name), where, "")
			continue
		}

		seen[v.Name] = struct{}{}

		validateVariant(res, where, v)
	}

	return res
}

func validateVariant(res *diagnostic.Diagnostics, where string, v *Variant) {
	if !v.Kind.IsValid() {
		res.AddError(diagnostic.CodeInvalidKind, fmt.Sprintf("invalid kind %s", v.Kind), where, "")
		return
	}

	if v.Kind == harness.KindUnit {
		if len(v.Fields) > 0 {
			res.AddError(diagnostic.CodeUnexpectedFields,
				fmt.Sprintf("unit variant declares %d field(s)", len(v.Fields)), where, "")
		}

		return
	}

	names := map[string]struct{}{}

	for i, fld := range v.Fields {
		addr := FieldAddress(v, i)

		if fld.Type == "" {
			res.AddError(diagnostic.CodeInvalidField, "field has no type", where, addr)
		}

		switch v.Kind {
		case harness.KindPositional:
			if fld.Name != "" {
				res.AddError(diagnostic.CodeInvalidField,
					fmt.Sprintf("positional field cannot be named %q", fld.Name), where, addr)
			}
		case harness.KindNamed:
			if fld.Name == "" {
				res.AddError(diagnostic.CodeMissingName, "named variant field has no name", where, addr)
				continue
			}

			if _, dup := names[fld.Name]; dup {
				res.AddError(diagnostic.CodeDuplicateField, fmt.Sprintf("duplicate field %q", fld.Name), where, addr)
			}

			names[fld.Name] = struct{}{}
		}
	}
}

// VariantPath renders "Schema::Variant" for diagnostics.
func VariantPath(s *Schema, v *Variant) string {
	return s.Name + "::" + v.Name
}

// FieldAddress returns the field's name for named variants and its ordinal
// otherwise.
func FieldAddress(v *Variant, i int) string {
	if v.Kind == harness.KindNamed && v.Fields[i].Name != "" {
		return v.Fields[i].Name
	}

	return fmt.Sprint(i)
}
