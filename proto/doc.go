// Package proto holds the runtime data model shared by compiled schematics
// and the systems that embed them: dynamic variant values, the asset
// reference union, entity addresses, handles, and the narrow collaborator
// interfaces (asset loader, dependency tracker, spawn context) that
// compiled programs call into.
//
// Nothing in this package loads assets or owns entities. Implementations of
// AssetLoader, DependencyTracker and SpawnContext belong to the embedding
// runtime.
package proto
