// Package tree is an in-memory entity hierarchy. A Scope binds the tree to
// the entity being spawned and serves as the construction context.
package tree
