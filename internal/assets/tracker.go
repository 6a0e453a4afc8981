package assets

import (
	"cmp"
	"slices"
	"sync"

	"proto-schematic/proto"
)

// Dependency is one asset path registered during discovery.
type Dependency struct {
	Path string
	Type string
}

// Tracker collects dependencies. A dependency is handed out once; later
// registrations of the same (path, type) pair are dropped.
type Tracker struct {
	mu    sync.Mutex
	needs map[Dependency]struct{}
	done  map[Dependency]struct{}
}

var _ proto.DependencyTracker = (*Tracker)(nil)

// AddDependency implements proto.DependencyTracker.
func (t *Tracker) AddDependency(path, assetType string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.needs == nil {
		t.needs = make(map[Dependency]struct{})
	}

	dep := Dependency{Path: path, Type: assetType}
	if _, exists := t.done[dep]; !exists {
		t.needs[dep] = struct{}{}
	}
}

// Next hands out one pending dependency and marks it done.
func (t *Tracker) Next() (Dependency, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for dep := range t.needs {
		t.markDone(dep)
		return dep, true
	}

	return Dependency{}, false
}

// Pending returns the dependencies not handed out yet, sorted by path.
func (t *Tracker) Pending() []Dependency {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]Dependency, 0, len(t.needs))
	for dep := range t.needs {
		out = append(out, dep)
	}

	sortDeps(out)

	return out
}

// Flush requests every pending dependency from loader, in path order, and
// returns the handles it gave back.
func (t *Tracker) Flush(loader proto.AssetLoader) []proto.Handle {
	t.mu.Lock()

	deps := make([]Dependency, 0, len(t.needs))
	for dep := range t.needs {
		deps = append(deps, dep)
		t.markDone(dep)
	}

	t.mu.Unlock()

	sortDeps(deps)

	handles := make([]proto.Handle, len(deps))
	for i, dep := range deps {
		handles[i] = loader.Load(dep.Path, dep.Type)
	}

	return handles
}

func (t *Tracker) markDone(dep Dependency) {
	if t.done == nil {
		t.done = make(map[Dependency]struct{})
	}

	delete(t.needs, dep)
	t.done[dep] = struct{}{}
}

func sortDeps(deps []Dependency) {
	slices.SortFunc(deps, func(a, b Dependency) int {
		return cmp.Or(cmp.Compare(a.Path, b.Path), cmp.Compare(a.Type, b.Type))
	})
}
