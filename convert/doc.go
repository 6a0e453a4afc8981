// Package convert holds user conversions: caller-supplied functions that
// turn a field's declared Input type into its Output type, optionally
// reading the ambient construction context.
//
// Conversions are registered by type-name pair, the same names used in
// schema definitions ("from: ColorInput" on a field of type "Color"
// looks up the pair ColorInput -> Color).
package convert
