// Package diagnostic provides structured definition-time findings for
// schematic schemas: errors that stop compilation, warnings that flag
// suspicious but legal declarations, and infos.
//
// Every diagnostic names the schema variant and field it relates to, so a
// malformed declaration is reported where it was written instead of
// surfacing later as a generic conversion failure.
package diagnostic
