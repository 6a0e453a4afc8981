package convert

import (
	"cmp"
	"fmt"
	"slices"
	"sync"
)

// Pair identifies a conversion by declared type names.
type Pair struct {
	From string
	To   string
}

// String renders "From -> To".
func (p Pair) String() string {
	return p.From + " -> " + p.To
}

// Entry is a registered conversion.
type Entry struct {
	Pair      Pair
	Converter Converter
	// Caster is set when the conversion was registered from a plain function.
	Caster *Caster
}

// Registry maps type-name pairs to conversions. It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	entries map[Pair]Entry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[Pair]Entry)}
}

// Register inspects fn with ParseCaster and registers it for from -> to.
func (r *Registry) Register(from, to string, fn any) error {
	caster, err := ParseCaster(fn)
	if err != nil {
		return fmt.Errorf("register %s -> %s: %w", from, to, err)
	}

	return r.add(Entry{Pair: Pair{From: from, To: to}, Converter: caster, Caster: &caster})
}

// RegisterConverter registers an already built Converter for from -> to.
func (r *Registry) RegisterConverter(from, to string, c Converter) error {
	if c == nil {
		return fmt.Errorf("register %s -> %s: nil converter", from, to)
	}

	return r.add(Entry{Pair: Pair{From: from, To: to}, Converter: c})
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(from, to string, fn any) {
	if err := r.Register(from, to, fn); err != nil {
		panic(err)
	}
}

func (r *Registry) add(e Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.entries == nil {
		r.entries = make(map[Pair]Entry)
	}

	if _, exists := r.entries[e.Pair]; exists {
		return fmt.Errorf("register %s: conversion already registered", e.Pair)
	}

	r.entries[e.Pair] = e

	return nil
}

// Lookup returns the conversion registered for from -> to.
func (r *Registry) Lookup(from, to string) (Entry, bool) {
	if r == nil {
		return Entry{}, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[Pair{From: from, To: to}]

	return e, ok
}

// Has reports whether a conversion is registered for from -> to.
func (r *Registry) Has(from, to string) bool {
	_, ok := r.Lookup(from, to)
	return ok
}

// Pairs returns all registered pairs, sorted.
func (r *Registry) Pairs() []Pair {
	if r == nil {
		return nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	pairs := make([]Pair, 0, len(r.entries))
	for p := range r.entries {
		pairs = append(pairs, p)
	}

	slices.SortFunc(pairs, func(a, b Pair) int {
		return cmp.Or(cmp.Compare(a.From, b.From), cmp.Compare(a.To, b.To))
	})

	return pairs
}
