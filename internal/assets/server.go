package assets

import (
	"fmt"
	"maps"
	"slices"
	"sync"

	"proto-schematic/proto"
)

//go:generate go tool stringer -type=State -linecomment -output=state_string.go

// State is the load state of a handle.
type State int

const (
	StatePending State = iota + 1 // pending
	StateLoaded                   // loaded
	StateFailed                   // failed
)

// Server hands out asset handles. Loading itself is external: handles start
// pending and are settled with Resolve.
type Server struct {
	mu     sync.Mutex
	next   proto.HandleID
	byPath map[Dependency]proto.HandleID
	byID   map[proto.HandleID]entry
}

type entry struct {
	handle proto.Handle
	state  State
}

var _ proto.AssetLoader = (*Server)(nil)

// NewServer creates an empty server. Identifiers start at 1; 0 is reserved
// for the default handle.
func NewServer() *Server {
	return &Server{
		byPath: make(map[Dependency]proto.HandleID),
		byID:   make(map[proto.HandleID]entry),
	}
}

// Load implements proto.AssetLoader. Repeated loads of the same path and
// type return the same handle.
func (s *Server) Load(path, assetType string) proto.Handle {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := Dependency{Path: path, Type: assetType}
	if id, ok := s.byPath[key]; ok {
		return s.byID[id].handle
	}

	s.next++
	h := proto.Handle{ID: s.next, Path: path, Type: assetType}
	s.byPath[key] = h.ID
	s.byID[h.ID] = entry{handle: h, state: StatePending}

	return h
}

// GetHandle implements proto.AssetLoader. Identifiers that were never loaded
// still yield a handle; State reports them as pending.
func (s *Server) GetHandle(id proto.HandleID, assetType string) proto.Handle {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.byID[id]; ok {
		return e.handle
	}

	return proto.Handle{ID: id, Type: assetType}
}

// State returns the load state of id. Unknown identifiers are pending.
func (s *Server) State(id proto.HandleID) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.byID[id]; ok {
		return e.state
	}

	return StatePending
}

// Resolve settles a pending handle.
func (s *Server) Resolve(id proto.HandleID, state State) error {
	if state != StateLoaded && state != StateFailed {
		return fmt.Errorf("resolve %s: cannot settle to %s", id, state)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.byID[id]
	if !ok {
		return fmt.Errorf("resolve %s: unknown handle", id)
	}

	e.state = state
	s.byID[id] = e

	return nil
}

// Handles returns every handle loaded by path, ordered by identifier.
func (s *Server) Handles() []proto.Handle {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]proto.Handle, 0, len(s.byID))
	for _, id := range slices.Sorted(maps.Keys(s.byID)) {
		out = append(out, s.byID[id].handle)
	}

	return out
}
