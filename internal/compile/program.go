package compile

import (
	"errors"
	"fmt"

	"proto-schematic/convert"
	"proto-schematic/internal/harness"
	"proto-schematic/internal/policy"
	"proto-schematic/proto"
)

var (
	errNoContext = errors.New("construction needs a context with an asset loader")
	errNoTracker = errors.New("preload needs a dependency tracker")
)

// Program holds the compiled preload and construct procedures of one variant.
type Program struct {
	schema string
	input  string
	layout *harness.Layout
	fields []policy.Resolved

	preload   []preloadStep
	construct []constructStep

	needsAssets bool
	needsSpawn  bool
}

// dependency is one pending tracker registration.
type dependency struct {
	path      string
	assetType string
}

type preloadStep func(b *harness.Binding, pending []dependency) ([]dependency, error)

type constructStep struct {
	field   harness.FieldLayout
	resolve func(b *harness.Binding, ctx proto.Context) (any, error)
}

func newProgram(schemaName, inputName string, layout *harness.Layout, fields []policy.Resolved, reg *convert.Registry) (*Program, error) {
	p := &Program{
		schema: schemaName,
		input:  inputName,
		layout: layout,
		fields: fields,
	}

	if err := p.genPreload(); err != nil {
		return nil, err
	}

	p.genConstruct(reg)

	return p, nil
}

// Variant returns the variant name.
func (p *Program) Variant() string {
	return p.layout.Variant()
}

// Layout returns the harness layout shared by both procedures.
func (p *Program) Layout() *harness.Layout {
	return p.layout
}

// Fields returns the resolved fields in address order.
func (p *Program) Fields() []policy.Resolved {
	return append([]policy.Resolved(nil), p.fields...)
}

// InputPath renders "Input::Variant".
func (p *Program) InputPath() string {
	return p.input + "::" + p.layout.Variant()
}

// OutputPath renders "Schema::Variant".
func (p *Program) OutputPath() string {
	return p.schema + "::" + p.layout.Variant()
}

// Preload registers the asset dependencies referenced by in. The tracker is
// left untouched when an error is returned.
func (p *Program) Preload(in proto.Value, deps proto.DependencyTracker) error {
	_, err := p.runPreload(in, deps)
	return err
}

func (p *Program) runPreload(in proto.Value, deps proto.DependencyTracker) (*harness.Binding, error) {
	b, err := p.layout.Bind(in)
	if err != nil {
		return nil, err
	}

	if deps == nil && len(p.preload) > 0 {
		return b, fmt.Errorf("preload %s: %w", p.InputPath(), errNoTracker)
	}

	var pending []dependency

	for _, step := range p.preload {
		pending, err = step(b, pending)
		if err != nil {
			return b, err
		}
	}

	for _, d := range pending {
		deps.AddDependency(d.path, d.assetType)
	}

	return b, nil
}

// Construct builds the Output value of in. On error the zero Value is
// returned; no partially built value is ever observable.
func (p *Program) Construct(in proto.Value, ctx proto.Context) (proto.Value, error) {
	out, _, err := p.runConstruct(in, ctx)
	return out, err
}

func (p *Program) runConstruct(in proto.Value, ctx proto.Context) (proto.Value, *harness.Binding, error) {
	b, err := p.layout.Bind(in)
	if err != nil {
		return proto.Value{}, nil, err
	}

	if err := p.checkContext(ctx); err != nil {
		return proto.Value{}, b, err
	}

	out := p.layout.NewBuilder()

	for _, step := range p.construct {
		v, err := step.resolve(b, ctx)
		if err != nil {
			return proto.Value{}, b, err
		}

		out.Set(step.field, v)
	}

	val, err := out.Build()
	if err != nil {
		return proto.Value{}, b, err
	}

	return val, b, nil
}

func (p *Program) checkContext(ctx proto.Context) error {
	if !p.needsAssets && !p.needsSpawn {
		return nil
	}

	if ctx == nil {
		return fmt.Errorf("construct %s: %w", p.OutputPath(), errNoContext)
	}

	if p.needsAssets && ctx.Assets() == nil {
		return fmt.Errorf("construct %s: %w", p.OutputPath(), errNoContext)
	}

	return nil
}

func (p *Program) mismatch(f harness.FieldLayout, expected string, got any) error {
	return &MismatchError{
		Variant:  p.InputPath(),
		Field:    f.Address.String(),
		Expected: expected,
		Got:      describe(got),
	}
}

// strayCheck rejects a value supplied for a field fixed by the schema.
func (p *Program) strayCheck(b *harness.Binding, f harness.FieldLayout, literal string) error {
	if v, ok := b.Stray(f); ok {
		return p.mismatch(f, fmt.Sprintf("no value (fixed to %q by the schema)", literal), v)
	}

	return nil
}

func (p *Program) protoAsset(f harness.FieldLayout, v any) (proto.ProtoAsset, error) {
	var asset proto.ProtoAsset

	switch a := v.(type) {
	case proto.ProtoAsset:
		asset = a
	case *proto.ProtoAsset:
		if a != nil {
			asset = *a
		}
	default:
		return proto.ProtoAsset{}, p.mismatch(f, "`"+policy.ProtoAssetType+"`", v)
	}

	if !asset.IsValid() {
		return proto.ProtoAsset{}, &MismatchError{
			Variant:  p.InputPath(),
			Field:    f.Address.String(),
			Expected: "`" + policy.ProtoAssetType + "`",
			Got:      "an empty " + policy.ProtoAssetType,
		}
	}

	return asset, nil
}

func (p *Program) entityAccess(f harness.FieldLayout, v any) (proto.EntityAccess, error) {
	switch a := v.(type) {
	case proto.EntityAccess:
		return a, nil
	case *proto.EntityAccess:
		if a != nil {
			return *a, nil
		}
	case string:
		access, err := proto.ParseEntityAccess(a)
		if err != nil {
			return proto.EntityAccess{}, &MismatchError{
				Variant:  p.InputPath(),
				Field:    f.Address.String(),
				Expected: "`" + policy.EntityAccessType + "`",
				Got:      err.Error(),
			}
		}

		return access, nil
	}

	return proto.EntityAccess{}, p.mismatch(f, "`"+policy.EntityAccessType+"`", v)
}
