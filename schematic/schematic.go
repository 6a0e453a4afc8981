// Package schematic compiles tagged-union schemas into preload and
// construct procedures.
//
// A schema lists variants; every field of a variant carries a policy that
// says how its Output value is obtained from the Input value: copied as is,
// loaded as an asset, looked up as an entity or converted by a registered
// function. Compile turns a schema into a Schematic whose Preload registers
// asset dependencies and whose Construct builds Output values.
//
// Typical flow:
//
//	reg := schematic.NewRegistry()
//	reg.MustRegister("int", "Health", func(in int) uint32 { return uint32(in) })
//
//	schematics, err := schematic.Load("shapes.yaml", reg, schematic.DefaultConfig())
//	...
//	loader, err := schematic.NewLoader(server, world, schematic.DefaultLoaderConfig(), schematics...)
//	out, err := loader.Load(ctx, schematic.Instance{Schema: "Shape", Input: in})
package schematic

import (
	"fmt"

	"proto-schematic/convert"
	"proto-schematic/internal/assets"
	"proto-schematic/internal/compile"
	"proto-schematic/internal/diagnostic"
	"proto-schematic/internal/pipeline"
	"proto-schematic/internal/schema"
	"proto-schematic/internal/tree"
)

type (
	File    = schema.File
	Schema  = schema.Schema
	Variant = schema.Variant
	Field   = schema.Field

	Config    = compile.Config
	Schematic = compile.Schematic
	Program   = compile.Program
	Registry  = convert.Registry

	Diagnostics = diagnostic.Diagnostics
	Diagnostic  = diagnostic.Diagnostic

	SchemaError        = compile.SchemaError
	MismatchError      = compile.MismatchError
	MissingEntityError = compile.MissingEntityError

	AssetServer  = assets.Server
	Tracker      = assets.Tracker
	Tree         = tree.Tree
	Loader       = pipeline.Loader
	LoaderConfig = pipeline.Config
	Instance     = pipeline.Instance
)

var (
	ErrInvalidSchema      = compile.ErrInvalidSchema
	ErrUnknownVariant     = compile.ErrUnknownVariant
	ErrResolutionMismatch = compile.ErrResolutionMismatch
	ErrMissingEntity      = compile.ErrMissingEntity
	ErrMissingConverter   = compile.ErrMissingConverter
	ErrUnknownSchema      = pipeline.ErrUnknownSchema
	ErrNoCollaborator     = pipeline.ErrNoCollaborator
)

// DefaultConfig returns the default compiler configuration.
func DefaultConfig() Config {
	return compile.DefaultConfig()
}

// DefaultLoaderConfig returns the default loader configuration.
func DefaultLoaderConfig() LoaderConfig {
	return pipeline.DefaultConfig()
}

// NewRegistry creates an empty conversion registry.
func NewRegistry() *Registry {
	return convert.NewRegistry()
}

// NewAssetServer creates an empty asset server.
func NewAssetServer() *AssetServer {
	return assets.NewServer()
}

// NewTree creates an entity tree holding only the root.
func NewTree() *Tree {
	return tree.New()
}

// NewLoader creates a loader sequencing preload and construct.
func NewLoader(server *AssetServer, world *Tree, cfg LoaderConfig, schematics ...*Schematic) (*Loader, error) {
	return pipeline.NewLoader(server, world, cfg, schematics...)
}

// Compile compiles one schema.
func Compile(s *Schema, reg *Registry, cfg Config) (*Schematic, error) {
	return compile.NewCompiler(reg, cfg).Compile(s)
}

// Parse reads a YAML schema file from data.
func Parse(data []byte) (*File, error) {
	return schema.Parse(data)
}

// Load reads the schema file at path (YAML, or JSON by extension) and
// compiles every schema in it. Any error diagnostic fails the whole load.
func Load(path string, reg *Registry, cfg Config) ([]*Schematic, error) {
	f, err := schema.LoadFile(path)
	if err != nil {
		return nil, err
	}

	schematics, diags := compile.NewCompiler(reg, cfg).CompileFile(f)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%s: %w: %w", path, ErrInvalidSchema, diags.Error())
	}

	return schematics, nil
}
