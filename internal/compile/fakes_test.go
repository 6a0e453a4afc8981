package compile

import (
	"proto-schematic/proto"
)

type dep struct {
	path      string
	assetType string
}

type recordingTracker struct {
	deps []dep
}

func (t *recordingTracker) AddDependency(path, assetType string) {
	t.deps = append(t.deps, dep{path: path, assetType: assetType})
}

type loadCall struct {
	fresh bool
	path  string
	id    proto.HandleID
	typ   string
}

type fakeLoader struct {
	next  proto.HandleID
	calls []loadCall
}

func (l *fakeLoader) Load(path, assetType string) proto.Handle {
	l.next++
	l.calls = append(l.calls, loadCall{fresh: true, path: path, typ: assetType})

	return proto.Handle{ID: l.next, Path: path, Type: assetType}
}

func (l *fakeLoader) GetHandle(id proto.HandleID, assetType string) proto.Handle {
	l.calls = append(l.calls, loadCall{id: id, typ: assetType})

	return proto.Handle{ID: id, Type: assetType}
}

type fakeContext struct {
	loader   *fakeLoader
	entities map[string]proto.EntityID
	lookups  []string
}

func newFakeContext(entities map[string]proto.EntityID) *fakeContext {
	return &fakeContext{loader: &fakeLoader{next: 100}, entities: entities}
}

func (c *fakeContext) FindEntity(access proto.EntityAccess) (proto.EntityID, bool) {
	c.lookups = append(c.lookups, access.String())
	id, ok := c.entities[access.String()]

	return id, ok
}

func (c *fakeContext) Assets() proto.AssetLoader {
	return c.loader
}
