// Package harness is the shape-invariant layer shared by dependency
// discovery and construction.
//
// A Layout is built once per variant from its declared fields and is the
// only place fields are enumerated. Both generated procedures walk the same
// Layout, bind Input values through the same Binding and build Output values
// through the same Builder, so a field cannot be present in one procedure's
// pattern and missing from the other's.
//
// The three structural kinds are handled here and nowhere else:
//
//   - unit: no fields; Input and Output are bare tags
//   - positional: fields addressed by declared ordinal; the Input tuple is
//     compacted to the fields that are present in Input, the Output tuple is not
//   - named: fields addressed by name in both Input and Output records
package harness
