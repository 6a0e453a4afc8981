package proto

// AssetLoader hands out asset handles. Load may return a handle whose asset
// is still pending; callers never wait on it.
type AssetLoader interface {
	// Load requests the asset at path, declared as assetType.
	Load(path, assetType string) Handle
	// GetHandle returns the handle for an existing identifier without loading.
	GetHandle(id HandleID, assetType string) Handle
}

// DependencyTracker accumulates asset paths that must be requested before
// construction relies on them. Deduplication is up to the implementation.
type DependencyTracker interface {
	AddDependency(path, assetType string)
}

// SpawnContext maps entity addresses to live entities.
type SpawnContext interface {
	FindEntity(access EntityAccess) (EntityID, bool)
}

// Context is the ambient state handed to construction.
type Context interface {
	SpawnContext
	// Assets returns the loader used to resolve asset fields.
	Assets() AssetLoader
}
