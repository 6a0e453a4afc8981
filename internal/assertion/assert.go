package assertion

import (
	"fmt"
	"reflect"

	"proto-schematic/convert"
	"proto-schematic/internal/diagnostic"
	"proto-schematic/internal/policy"
	"proto-schematic/internal/schema"
	"proto-schematic/internal/suggest"
)

// CheckVariant runs every check against one variant's resolved fields.
func CheckVariant(s *schema.Schema, v *schema.Variant, fields []policy.Resolved, reg *convert.Registry) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	where := schema.VariantPath(s, v)

	inputs := 0

	for _, f := range fields {
		if f.Policy.InInput() {
			inputs++
		}

		switch p := f.Policy.(type) {
		case policy.UserConversion:
			checkConversion(res, where, f, p, reg)
		case policy.ResourceReference:
			if !p.Preload {
				res.AddInfo(diagnostic.CodeNothingToPreload,
					"asset is requested at construction time only", where, f.Address)
			}
		}
	}

	if len(fields) > 0 && inputs == 0 {
		res.AddInfo(diagnostic.CodeLiteralOnlyVariant,
			"every field is fixed by the schema, Input carries only the tag", where, "")
	}

	return res
}

// checkConversion requires a registered conversion for (From, Type) and
// warns when a registered function's Go types are named differently.
func checkConversion(res *diagnostic.Diagnostics, where string, f policy.Resolved, p policy.UserConversion, reg *convert.Registry) {
	entry, ok := reg.Lookup(p.From, f.Field.Type)
	if !ok {
		var froms []string

		for _, pair := range reg.Pairs() {
			if pair.To == f.Field.Type {
				froms = append(froms, pair.From)
			}
		}

		hints := make([]string, 0, 1)
		for _, from := range suggest.Closest(p.From, froms, 1) {
			hints = append(hints, fmt.Sprintf("from: %s", from))
		}

		res.Errors = append(res.Errors, diagnostic.Diagnostic{
			Severity: diagnostic.DiagnosticError,
			Code:     diagnostic.CodeMissingConverter,
			Message:  fmt.Sprintf("no conversion registered for %s -> %s", p.From, f.Field.Type),
			Variant:  where,
			Field:    f.Address,
			Suggestions: append(hints,
				fmt.Sprintf("registry.Register(%q, %q, func(in %s, ctx proto.Context) (%s, error) { ... })",
					p.From, f.Field.Type, p.From, f.Field.Type)),
		})

		return
	}

	if entry.Caster == nil {
		return
	}

	if !namesType(entry.Caster.Src, p.From) {
		res.AddWarning(diagnostic.CodeConverterMismatch,
			fmt.Sprintf("conversion %s accepts Go type %s", entry.Pair, entry.Caster.Src), where, f.Address)
	}

	if !namesType(entry.Caster.Dst, f.Field.Type) {
		res.AddWarning(diagnostic.CodeConverterMismatch,
			fmt.Sprintf("conversion %s returns Go type %s", entry.Pair, entry.Caster.Dst), where, f.Address)
	}
}

// namesType reports whether name can refer to t: its qualified or bare
// name. Unnamed types are never flagged.
func namesType(t reflect.Type, name string) bool {
	return t.Name() == "" || t.Name() == name || t.String() == name
}

// Check resolves and checks every variant of s. Policy errors are included
// so the result is complete on its own.
func Check(s *schema.Schema, reg *convert.Registry) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}

	for i := range s.Variants {
		v := &s.Variants[i]

		fields, d := policy.ResolveVariant(s, v)
		res.Merge(*d)
		res.Merge(*CheckVariant(s, v, fields, reg))
	}

	return res
}
