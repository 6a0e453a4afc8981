package tree

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"proto-schematic/proto"
)

// Root is the identifier of the tree root.
const Root proto.EntityID = 0

var (
	ErrUnknownEntity = errors.New("unknown entity")
	ErrNameTaken     = errors.New("name already taken")
)

type node struct {
	name     string
	parent   proto.EntityID
	children map[string]proto.EntityID
}

// Tree is a hierarchy of named entities. It is safe for concurrent use.
type Tree struct {
	mu    sync.RWMutex
	next  proto.EntityID
	nodes map[proto.EntityID]*node
}

// New creates a tree holding only the root.
func New() *Tree {
	return &Tree{
		nodes: map[proto.EntityID]*node{
			Root: {children: map[string]proto.EntityID{}},
		},
	}
}

// Spawn creates a child of parent named name.
func (t *Tree) Spawn(parent proto.EntityID, name string) (proto.EntityID, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.spawn(parent, name)
}

// SpawnPath creates every missing entity along an absolute path and returns
// the last one. The walk runs under a single lock, so concurrent calls for
// overlapping paths share the entities they create.
func (t *Tree) SpawnPath(path string) (proto.EntityID, error) {
	access, err := proto.ParseEntityAccess(path)
	if err != nil {
		return 0, err
	}

	if !access.IsAbsolute() {
		return 0, fmt.Errorf("spawn path %q: must be absolute", path)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	id := Root

	for _, seg := range access.Segments() {
		if child, ok := t.nodes[id].children[seg]; ok {
			id = child
			continue
		}

		if id, err = t.spawn(id, seg); err != nil {
			return 0, err
		}
	}

	return id, nil
}

// spawn requires t.mu to be held for writing.
func (t *Tree) spawn(parent proto.EntityID, name string) (proto.EntityID, error) {
	if name == "" || name == "." || name == proto.ParentSegment || strings.Contains(name, "/") {
		return 0, fmt.Errorf("spawn %q: invalid entity name", name)
	}

	p, ok := t.nodes[parent]
	if !ok {
		return 0, fmt.Errorf("spawn %q under %s: %w", name, parent, ErrUnknownEntity)
	}

	if _, taken := p.children[name]; taken {
		return 0, fmt.Errorf("spawn %q under %s: %w", name, parent, ErrNameTaken)
	}

	t.next++
	id := t.next
	t.nodes[id] = &node{name: name, parent: parent, children: map[string]proto.EntityID{}}
	p.children[name] = id

	return id, nil
}

// Resolve walks access starting at from, or at the root for absolute
// addresses.
func (t *Tree) Resolve(from proto.EntityID, access proto.EntityAccess) (proto.EntityID, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	id := from
	if access.IsAbsolute() {
		id = Root
	}

	if _, ok := t.nodes[id]; !ok {
		return 0, false
	}

	for _, seg := range access.Segments() {
		n := t.nodes[id]

		if seg == proto.ParentSegment {
			if id == Root {
				return 0, false
			}

			id = n.parent

			continue
		}

		child, ok := n.children[seg]
		if !ok {
			return 0, false
		}

		id = child
	}

	return id, true
}

// Path returns the absolute path of id.
func (t *Tree) Path(id proto.EntityID) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var segs []string

	for id != Root {
		n, ok := t.nodes[id]
		if !ok {
			return "", false
		}

		segs = append(segs, n.name)
		id = n.parent
	}

	slices.Reverse(segs)

	return "/" + strings.Join(segs, "/"), true
}

// Len returns the number of entities, the root excluded.
func (t *Tree) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return len(t.nodes) - 1
}

// Scope is the construction context of one entity.
type Scope struct {
	tree   *Tree
	self   proto.EntityID
	assets proto.AssetLoader
}

var _ proto.Context = Scope{}

// Scope binds the tree to self. Relative addresses resolve against self.
func (t *Tree) Scope(self proto.EntityID, assets proto.AssetLoader) Scope {
	return Scope{tree: t, self: self, assets: assets}
}

// Self returns the entity the scope is bound to.
func (s Scope) Self() proto.EntityID {
	return s.self
}

// FindEntity implements proto.SpawnContext.
func (s Scope) FindEntity(access proto.EntityAccess) (proto.EntityID, bool) {
	return s.tree.Resolve(s.self, access)
}

// Assets implements proto.Context.
func (s Scope) Assets() proto.AssetLoader {
	return s.assets
}
