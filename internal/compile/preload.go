package compile

import (
	"fmt"

	"proto-schematic/internal/harness"
	"proto-schematic/internal/policy"
)

// genPreload composes the discovery steps. Only fields the layout marks as
// discovering are visited; every other field stays bound but ignored.
func (p *Program) genPreload() error {
	for _, f := range p.layout.DiscoveryFields() {
		r := p.fields[f.Address.Ordinal]

		switch pol := r.Policy.(type) {
		case policy.ResourceReference:
			p.preload = append(p.preload, p.preloadAsset(f, r.Field.Type, pol))
		default:
			return fmt.Errorf("%s field `%s`: %s policy cannot take part in discovery",
				p.OutputPath(), f.Address, r.Policy.Kind())
		}
	}

	return nil
}

func (p *Program) preloadAsset(f harness.FieldLayout, assetType string, ref policy.ResourceReference) preloadStep {
	if ref.IsLiteral() {
		return func(b *harness.Binding, pending []dependency) ([]dependency, error) {
			b.Visit(f)

			if err := p.strayCheck(b, f, ref.Path); err != nil {
				return pending, err
			}

			return append(pending, dependency{path: ref.Path, assetType: assetType}), nil
		}
	}

	return func(b *harness.Binding, pending []dependency) ([]dependency, error) {
		v, _ := b.Visit(f)

		asset, err := p.protoAsset(f, v)
		if err != nil {
			return pending, err
		}

		// The identifier arm is already resolvable and is not registered.
		if path, ok := asset.ToAssetPath(); ok {
			pending = append(pending, dependency{path: path, assetType: assetType})
		}

		return pending, nil
	}
}
