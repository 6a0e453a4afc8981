// Package compile turns schema definitions into schematics: per variant, a
// preload procedure that registers asset dependencies and a construct
// procedure that builds the Output value.
//
// Compilation pipeline:
//  1. Validate the schema structure
//  2. Resolve every field's policy
//  3. Run variant assertions (optional)
//  4. Build one harness layout per variant
//  5. Compose per-field preload and construct steps over that layout
//
// Definition problems stop compilation with a *SchemaError carrying the
// diagnostics. Compiled programs are immutable and safe for concurrent use.
//
// Callers must run Preload on an Input value, and let the registered
// dependencies be requested, before running Construct on the same value.
package compile
