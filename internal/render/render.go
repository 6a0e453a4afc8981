package render

import (
	"bytes"
	"fmt"
	"go/format"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"text/template"

	"proto-schematic/internal/compile"
	"proto-schematic/internal/harness"
	"proto-schematic/internal/policy"
)

// Config holds rendering options.
type Config struct {
	// Package is the package clause of the output.
	Package string
}

// DefaultConfig returns the default rendering configuration.
func DefaultConfig() Config {
	return Config{Package: "schematic"}
}

const modulePath = "proto-schematic"

type fileData struct {
	Package    string
	Imports    []string
	Converters bool
	Variants   []variantData
}

type variantData struct {
	InputPath    string
	OutputPath   string
	Input        string
	Output       string
	InputFields  []memberData
	OutputFields []memberData
	Bindings     []bindingData
	Ignored      []string
	Preload      []fieldData
	Construct    []fieldData
}

type memberData struct {
	Name string
	Type string
}

type bindingData struct {
	Name   string
	Source string
}

type fieldData struct {
	Binding string
	Target  string
	Field   string
	Type    string
	Output  string
	Variant string
	Where   string
	Policy  string
	Path    string
	From    string
}

var funcs = template.FuncMap{"quote": strconv.Quote}

var fileTemplate = template.Must(template.New("schematic").Funcs(funcs).Parse(`// Code generated by schematic describe. DO NOT EDIT.

package {{.Package}}
{{if .Imports}}
import (
{{- range .Imports}}
	{{quote .}}
{{- end}}
)
{{end}}
{{- if .Converters}}
// Converters holds the conversions used by Construct.
var Converters = schematic.NewRegistry()
{{end}}
{{- range .Variants}}
// {{.Input}} is the Input of {{.OutputPath}}.
type {{.Input}} struct {
{{- range .InputFields}}
	{{.Name}} {{.Type}}
{{- end}}
}

// {{.Output}} is {{.OutputPath}}.
type {{.Output}} struct {
{{- range .OutputFields}}
	{{.Name}} {{.Type}}
{{- end}}
}

// Preload registers the asset dependencies of {{.InputPath}}.
func (in {{.Input}}) Preload(deps proto.DependencyTracker) {
{{- range .Bindings}}
	{{.Name}} := in.{{.Source}}
{{- end}}
{{- range .Ignored}}
	_ = {{.}}
{{- end}}
{{- range .Preload}}
{{- if .Path}}
	deps.AddDependency({{quote .Path}}, {{quote .Type}})
{{- else}}
	if path, ok := {{.Binding}}.ToAssetPath(); ok {
		deps.AddDependency(path, {{quote .Type}})
	}
{{- end}}
{{- end}}
}

// Construct builds {{.OutputPath}}.
func (in {{.Input}}) Construct(ctx proto.Context) ({{.Output}}, error) {
	var out {{.Output}}
{{- range .Bindings}}
	{{.Name}} := in.{{.Source}}
{{- end}}
{{- range .Construct}}
{{- if eq .Policy "passthrough"}}
	out.{{.Target}} = {{.Binding}}
{{- else if eq .Policy "asset"}}
{{- if .Path}}
	out.{{.Target}} = ctx.Assets().Load({{quote .Path}}, {{quote .Type}})
{{- else}}
	if path, ok := {{.Binding}}.ToAssetPath(); ok {
		out.{{.Target}} = ctx.Assets().Load(path, {{quote .Type}})
	} else if id, ok := {{.Binding}}.ToHandleID(); ok {
		out.{{.Target}} = ctx.Assets().GetHandle(id, {{quote .Type}})
	} else {
		return {{.Output}}{}, fmt.Errorf("%s: %w: empty ProtoAsset", {{quote .Where}}, schematic.ErrResolutionMismatch)
	}
{{- end}}
{{- else if eq .Policy "entity"}}
	{
		access := {{if .Path}}proto.MustEntityAccess({{quote .Path}}){{else}}{{.Binding}}{{end}}
		id, ok := ctx.FindEntity(access)
		if !ok {
			return {{.Output}}{}, &schematic.MissingEntityError{Variant: {{quote .Variant}}, Field: {{quote .Field}}, Address: access}
		}
		out.{{.Target}} = id
	}
{{- else}}
	{
		entry, ok := Converters.Lookup({{quote .From}}, {{quote .Type}})
		if !ok {
			return {{.Output}}{}, fmt.Errorf("%s: %w from %s to %s", {{quote .Where}}, schematic.ErrMissingConverter, {{quote .From}}, {{quote .Type}})
		}
		v, err := entry.Converter.Convert({{.Binding}}, ctx)
		if err != nil {
			return {{.Output}}{}, err
		}
		converted, ok := v.({{.Type}})
		if !ok {
			return {{.Output}}{}, fmt.Errorf("%s: %w: converter returned %T", {{quote .Where}}, schematic.ErrResolutionMismatch, v)
		}
		out.{{.Target}} = converted
	}
{{- end}}
{{- end}}
	return out, nil
}
{{end}}`))

var identifier = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_]*`)

// qualifier matches the package qualifier of a type name like time.Duration
// or []*time.Time.
var qualifier = regexp.MustCompile(`\b([a-z_][A-Za-z0-9_]*)\.[A-Za-z_]`)

// Render prints every variant of the given schematics. When the output
// cannot be formatted the unformatted source is returned with the error.
func Render(cfg Config, schematics ...*compile.Schematic) ([]byte, error) {
	if cfg.Package == "" {
		cfg.Package = DefaultConfig().Package
	}

	data := fileData{Package: cfg.Package}
	imports := make(map[string]struct{})

	for _, sc := range schematics {
		for _, name := range sc.Variants() {
			prog, _ := sc.Program(name)
			v := variantOf(sc, prog)
			if err := checkShadowing(v); err != nil {
				return nil, err
			}

			data.Variants = append(data.Variants, v)
			imports[modulePath+"/proto"] = struct{}{}

			for _, f := range v.Construct {
				switch {
				case f.Policy == policy.KindConversion.String():
					data.Converters = true
					imports["fmt"] = struct{}{}
					imports[modulePath+"/schematic"] = struct{}{}
				case f.Policy == policy.KindResource.String() && f.Path == "":
					imports["fmt"] = struct{}{}
					imports[modulePath+"/schematic"] = struct{}{}
				case f.Policy == policy.KindEntity.String():
					imports[modulePath+"/schematic"] = struct{}{}
				}
			}

			for _, m := range slices.Concat(v.InputFields, v.OutputFields) {
				for _, q := range qualifier.FindAllStringSubmatch(m.Type, -1) {
					if q[1] != "proto" {
						imports[q[1]] = struct{}{}
					}
				}
			}
		}
	}

	data.Imports = slices.Sorted(maps.Keys(imports))

	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		return buf.Bytes(), fmt.Errorf("formatting code: %w", err)
	}

	return formatted, nil
}

func variantOf(sc *compile.Schematic, prog *compile.Program) variantData {
	layout := prog.Layout()
	resolved := prog.Fields()

	v := variantData{
		InputPath:  prog.InputPath(),
		OutputPath: prog.OutputPath(),
		Input:      sc.InputName() + prog.Variant(),
		Output:     sc.Name() + prog.Variant(),
	}

	discovers := make(map[int]bool)
	for _, f := range layout.DiscoveryFields() {
		discovers[f.Address.Ordinal] = true
	}

	for _, f := range layout.Fields() {
		r := resolved[f.Address.Ordinal]

		if f.InInput() {
			source := member(layout.Kind(), f, f.Slot)
			v.InputFields = append(v.InputFields, memberData{Name: source, Type: inputType(r)})
			v.Bindings = append(v.Bindings, bindingData{Name: f.Binding, Source: source})

			if !discovers[f.Address.Ordinal] {
				v.Ignored = append(v.Ignored, f.Binding)
			}
		}

		fd := fieldData{
			Binding: f.Binding,
			Target:  member(layout.Kind(), f, f.Address.Ordinal),
			Field:   f.Address.String(),
			Type:    r.Field.Type,
			Output:  v.Output,
			Variant: v.OutputPath,
			Where:   v.OutputPath + " field " + f.Address.String(),
			Policy:  r.Policy.Kind().String(),
		}

		v.OutputFields = append(v.OutputFields, memberData{Name: fd.Target, Type: outputType(r)})

		switch p := r.Policy.(type) {
		case policy.ResourceReference:
			fd.Path = p.Path
		case policy.EntityReference:
			fd.Path = p.Path
		case policy.UserConversion:
			fd.From = p.From
		}

		if discovers[f.Address.Ordinal] {
			v.Preload = append(v.Preload, fd)
		}

		v.Construct = append(v.Construct, fd)
	}

	return v
}

// checkShadowing rejects bindings that hide a type or package named by a
// conversion, since Construct refers to those after the bindings.
func checkShadowing(v variantData) error {
	names := make(map[string]struct{})
	for _, f := range v.Construct {
		if f.Policy != policy.KindConversion.String() {
			continue
		}

		for _, id := range identifier.FindAllString(f.Type, -1) {
			names[id] = struct{}{}
		}
	}

	for _, b := range v.Bindings {
		if _, clash := names[b.Name]; clash {
			return fmt.Errorf("%s: binding %s shadows an identifier of a converted type", v.OutputPath, b.Name)
		}
	}

	return nil
}

// member names a struct member: the field name, or F<i> for positional fields.
func member(kind harness.Kind, f harness.FieldLayout, i int) string {
	if kind == harness.KindPositional {
		return "F" + strconv.Itoa(i)
	}

	return f.Address.Name
}

func inputType(r policy.Resolved) string {
	switch r.Policy.(type) {
	case policy.ResourceReference:
		return "proto.ProtoAsset"
	case policy.EntityReference:
		return "proto.EntityAccess"
	default:
		return r.InputType()
	}
}

func outputType(r policy.Resolved) string {
	switch r.Policy.(type) {
	case policy.ResourceReference:
		return "proto.Handle"
	case policy.EntityReference:
		return "proto.EntityID"
	default:
		return r.Field.Type
	}
}
