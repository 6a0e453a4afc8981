// Package suggest ranks near-miss names for "did you mean" hints.
//
// Names are compared after normalization (case folded, separators dropped)
// by Levenshtein similarity.
package suggest
