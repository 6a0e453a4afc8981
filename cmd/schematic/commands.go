package main

import (
	"fmt"
	"io"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"proto-schematic/convert"
	"proto-schematic/internal/compile"
	"proto-schematic/internal/diagnostic"
	"proto-schematic/internal/render"
	"proto-schematic/internal/schema"
)

type options struct {
	skipAssertions bool
	pkg            string
	dump           bool
}

func newRootCmd() *cobra.Command {
	var opts options

	root := &cobra.Command{
		Use:          "schematic",
		Short:        "Compile tagged-union schemas into preload and construct procedures",
		SilenceUsage: true,
	}

	root.PersistentFlags().BoolVar(&opts.skipAssertions, "skip-assertions", false,
		"do not check that conversions are registered")

	root.AddCommand(newCheckCmd(&opts), newDescribeCmd(&opts))

	return root
}

func newCheckCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>",
		Short: "Validate and compile a schema file",
		Long: `Load a YAML or JSON schema file, validate it and compile every schema.
Diagnostics are printed one per line; errors make the command fail.

Only the built-in conversions (numbers, booleans, times and durations) are
registered; other "from" fields fail unless --skip-assertions is given.`,
		Example: `  schematic check shapes.yaml`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := compileFile(cmd.OutOrStdout(), args[0], opts)
			return err
		},
	}
}

func newDescribeCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "describe <file>",
		Short: "Print the preload and construct procedures of every variant",
		Example: `  # Render as Go source
  schematic describe shapes.yaml --package shapes

  # Dump the compiled field layouts
  schematic describe shapes.yaml --dump`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			schematics, err := compileFile(io.Discard, args[0], opts)
			if err != nil {
				return err
			}

			if opts.dump {
				dumpLayouts(out, schematics)
				return nil
			}

			src, err := render.Render(render.Config{Package: opts.pkg}, schematics...)
			if err != nil {
				return err
			}

			_, err = out.Write(src)

			return err
		},
	}

	cmd.Flags().StringVar(&opts.pkg, "package", render.DefaultConfig().Package, "package clause of the rendered source")
	cmd.Flags().BoolVar(&opts.dump, "dump", false, "dump compiled layouts instead of rendering")

	return cmd
}

func compileFile(w io.Writer, path string, opts *options) ([]*compile.Schematic, error) {
	f, err := schema.LoadFile(path)
	if err != nil {
		return nil, err
	}

	reg := convert.NewRegistry()
	if err := reg.RegisterBuiltins(convert.CategoryAll); err != nil {
		return nil, err
	}

	schematics, diags := compile.NewCompiler(reg, compile.Config{SkipAssertions: opts.skipAssertions}).CompileFile(f)
	printDiagnostics(w, diags)

	if diags.HasErrors() {
		return nil, fmt.Errorf("%s: %d error(s)", path, len(diags.Errors))
	}

	fmt.Fprintf(w, "%s: %d schema(s) ok\n", path, len(schematics))

	return schematics, nil
}

func printDiagnostics(w io.Writer, diags *diagnostic.Diagnostics) {
	for _, d := range diags.All() {
		fmt.Fprintf(w, "%s: %s\n", d.Severity, d)

		for _, s := range d.Suggestions {
			fmt.Fprintf(w, "\thint: %s\n", s)
		}
	}
}

func dumpLayouts(w io.Writer, schematics []*compile.Schematic) {
	cfg := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, SortKeys: true}

	for _, sc := range schematics {
		for _, name := range sc.Variants() {
			prog, _ := sc.Program(name)

			fmt.Fprintf(w, "%s\n", prog.OutputPath())
			cfg.Fdump(w, prog.Layout().Fields())
		}
	}
}
