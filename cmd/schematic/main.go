// Package main provides the CLI entrypoint for schematic.
//
// schematic checks schema definition files and prints what the compiled
// preload and construct procedures do:
//   - check: load, validate and compile, then print diagnostics
//   - describe: render every variant as Go source, or dump the layouts
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
