package compile

import (
	"errors"
	"fmt"

	"proto-schematic/convert"
	"proto-schematic/internal/assertion"
	"proto-schematic/internal/diagnostic"
	"proto-schematic/internal/harness"
	"proto-schematic/internal/policy"
	"proto-schematic/internal/schema"
)

// Compiler turns schemas into schematics.
type Compiler struct {
	registry *convert.Registry
	config   Config
}

// NewCompiler creates a compiler resolving conversions through reg. A nil
// registry is treated as empty.
func NewCompiler(reg *convert.Registry, cfg Config) *Compiler {
	if reg == nil {
		reg = convert.NewRegistry()
	}

	return &Compiler{registry: reg, config: cfg}
}

// Compile compiles s with the default configuration.
func Compile(s *schema.Schema, reg *convert.Registry) (*Schematic, error) {
	return NewCompiler(reg, DefaultConfig()).Compile(s)
}

// Compile validates s and builds the preload and construct programs of every
// variant. Any error diagnostic rejects the whole schema with a *SchemaError.
func (c *Compiler) Compile(s *schema.Schema) (*Schematic, error) {
	res := schema.ValidateSchema(s)
	if res.HasErrors() {
		return nil, c.reject(s, res)
	}

	resolved := make([][]policy.Resolved, len(s.Variants))

	for i := range s.Variants {
		v := &s.Variants[i]

		fields, diags := policy.ResolveVariant(s, v)
		res.Merge(*diags)

		if !c.config.SkipAssertions && !diags.HasErrors() {
			res.Merge(*assertion.CheckVariant(s, v, fields, c.registry))
		}

		resolved[i] = fields
	}

	if res.HasErrors() {
		return nil, c.reject(s, res)
	}

	sc := &Schematic{
		name:     s.Name,
		input:    s.InputName(),
		programs: make(map[string]*Program, len(s.Variants)),
		order:    make([]string, 0, len(s.Variants)),
	}

	for i := range s.Variants {
		v := &s.Variants[i]

		prog, err := c.compileVariant(s, v, resolved[i])
		if err != nil {
			res.AddError(diagnostic.CodeInvalidField, err.Error(), schema.VariantPath(s, v), "")
			return nil, c.reject(s, res)
		}

		sc.programs[v.Name] = prog
		sc.order = append(sc.order, v.Name)
	}

	sc.diagnostics = *res

	return sc, nil
}

func (c *Compiler) compileVariant(s *schema.Schema, v *schema.Variant, fields []policy.Resolved) (*Program, error) {
	specs := make([]harness.FieldSpec, len(fields))
	for i, f := range fields {
		specs[i] = f.Spec()
	}

	layout, err := harness.NewLayout(v.Name, v.Kind, specs)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}

	return newProgram(s.Name, s.InputName(), layout, fields, c.registry)
}

func (c *Compiler) reject(s *schema.Schema, res *diagnostic.Diagnostics) error {
	name := ""
	if s != nil {
		name = s.Name
	}

	return &SchemaError{Schema: name, Diagnostics: *res}
}

// CompileFile compiles every schema of f. Schemas that fail are skipped; the
// returned diagnostics hold the findings of all schemas.
func (c *Compiler) CompileFile(f *schema.File) ([]*Schematic, *diagnostic.Diagnostics) {
	res := schema.Validate(f)
	if res.HasErrors() {
		return nil, res
	}

	out := make([]*Schematic, 0, len(f.Schemas))

	for i := range f.Schemas {
		sc, err := c.Compile(&f.Schemas[i])
		if err != nil {
			var schemaErr *SchemaError
			if errors.As(err, &schemaErr) {
				res.Merge(schemaErr.Diagnostics)
			} else {
				res.AddError(diagnostic.CodeInvalidField, err.Error(), f.Schemas[i].Name, "")
			}

			continue
		}

		res.Merge(sc.Diagnostics())
		out = append(out, sc)
	}

	return out, res
}
