// Package policy resolves the replacement policy of every schema field.
//
// A Policy is a closed sum type with one arm per strategy:
//
//   - Passthrough: the Input value is the Output value
//   - ResourceReference: an asset handle, from a literal path or from a
//     runtime AssetPath/HandleID union
//   - EntityReference: a live entity, from a literal path or a runtime address
//   - UserConversion: produced by a caller-supplied converter
//
// Resolution is deterministic and stateless. Conflicting or malformed
// attributes are rejected here, at definition time; later stages trust the
// resolved policy and never re-validate it.
package policy
