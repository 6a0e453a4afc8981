package compile

import (
	"fmt"

	"proto-schematic/convert"
	"proto-schematic/internal/harness"
	"proto-schematic/internal/policy"
	"proto-schematic/proto"
)

// genConstruct composes one construction step per declared field, in
// address order.
func (p *Program) genConstruct(reg *convert.Registry) {
	for _, f := range p.layout.Fields() {
		r := p.fields[f.Address.Ordinal]

		var resolve func(b *harness.Binding, ctx proto.Context) (any, error)

		switch pol := r.Policy.(type) {
		case policy.Passthrough:
			resolve = passthrough(f)
		case policy.ResourceReference:
			p.needsAssets = true
			resolve = p.constructAsset(f, r.Field.Type, pol)
		case policy.EntityReference:
			p.needsSpawn = true
			resolve = p.constructEntity(f, pol)
		case policy.UserConversion:
			resolve = p.constructConversion(f, r.Field.Type, pol, reg)
		}

		p.construct = append(p.construct, constructStep{field: f, resolve: resolve})
	}
}

func passthrough(f harness.FieldLayout) func(*harness.Binding, proto.Context) (any, error) {
	return func(b *harness.Binding, _ proto.Context) (any, error) {
		v, _ := b.Visit(f)
		return v, nil
	}
}

func (p *Program) constructAsset(f harness.FieldLayout, assetType string, ref policy.ResourceReference) func(*harness.Binding, proto.Context) (any, error) {
	if ref.IsLiteral() {
		return func(b *harness.Binding, ctx proto.Context) (any, error) {
			b.Visit(f)

			if err := p.strayCheck(b, f, ref.Path); err != nil {
				return nil, err
			}

			return ctx.Assets().Load(ref.Path, assetType), nil
		}
	}

	return func(b *harness.Binding, ctx proto.Context) (any, error) {
		v, _ := b.Visit(f)

		asset, err := p.protoAsset(f, v)
		if err != nil {
			return nil, err
		}

		if path, ok := asset.ToAssetPath(); ok {
			return ctx.Assets().Load(path, assetType), nil
		}

		id, _ := asset.ToHandleID()

		return ctx.Assets().GetHandle(id, assetType), nil
	}
}

func (p *Program) constructEntity(f harness.FieldLayout, ref policy.EntityReference) func(*harness.Binding, proto.Context) (any, error) {
	find := func(ctx proto.Context, access proto.EntityAccess) (any, error) {
		id, ok := ctx.FindEntity(access)
		if !ok {
			return nil, &MissingEntityError{
				Variant: p.OutputPath(),
				Field:   f.Address.String(),
				Address: access,
			}
		}

		return id, nil
	}

	if ref.IsLiteral() {
		return func(b *harness.Binding, ctx proto.Context) (any, error) {
			b.Visit(f)

			if err := p.strayCheck(b, f, ref.Path); err != nil {
				return nil, err
			}

			return find(ctx, ref.Access)
		}
	}

	return func(b *harness.Binding, ctx proto.Context) (any, error) {
		v, _ := b.Visit(f)

		access, err := p.entityAccess(f, v)
		if err != nil {
			return nil, err
		}

		return find(ctx, access)
	}
}

func (p *Program) constructConversion(f harness.FieldLayout, outputType string, conv policy.UserConversion, reg *convert.Registry) func(*harness.Binding, proto.Context) (any, error) {
	return func(b *harness.Binding, ctx proto.Context) (any, error) {
		v, _ := b.Visit(f)

		entry, ok := reg.Lookup(conv.From, outputType)
		if !ok {
			return nil, fmt.Errorf("field `%s` of `%s`: %w for %s -> %s",
				f.Address, p.OutputPath(), ErrMissingConverter, conv.From, outputType)
		}

		// Conversion failures are returned unchanged.
		return entry.Converter.Convert(v, ctx)
	}
}
