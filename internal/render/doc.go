// Package render prints compiled schematics as Go source: one Preload and
// one Construct method per variant, spelling out what the compiled programs
// do field by field.
//
// The output is formatted with go/format but is not meant to be compiled;
// the Input and Output types it names are not generated.
package render
