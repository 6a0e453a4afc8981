// Package assertion emits optional definition-time checks scoped to one
// variant. Checks produce diagnostics only; they never change how a
// compiled variant preloads or constructs.
package assertion
