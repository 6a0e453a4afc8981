package compile

import (
	"fmt"

	"proto-schematic/internal/diagnostic"
	"proto-schematic/internal/suggest"
	"proto-schematic/proto"
)

// Schematic is a compiled schema: one Program per variant.
type Schematic struct {
	name  string
	input string

	programs map[string]*Program
	order    []string

	diagnostics diagnostic.Diagnostics
}

// Name returns the Output type name.
func (s *Schematic) Name() string {
	return s.name
}

// InputName returns the Input type name.
func (s *Schematic) InputName() string {
	return s.input
}

// Variants returns the variant names in declaration order.
func (s *Schematic) Variants() []string {
	return append([]string(nil), s.order...)
}

// Program returns the program of the named variant.
func (s *Schematic) Program(variant string) (*Program, bool) {
	p, ok := s.programs[variant]
	return p, ok
}

// Diagnostics returns the warnings and infos found while compiling.
func (s *Schematic) Diagnostics() diagnostic.Diagnostics {
	return s.diagnostics
}

// Preload dispatches on the variant of in and registers its dependencies.
func (s *Schematic) Preload(in proto.Value, deps proto.DependencyTracker) error {
	p, err := s.dispatch(in)
	if err != nil {
		return err
	}

	return p.Preload(in, deps)
}

// Construct dispatches on the variant of in and builds the Output value.
func (s *Schematic) Construct(in proto.Value, ctx proto.Context) (proto.Value, error) {
	p, err := s.dispatch(in)
	if err != nil {
		return proto.Value{}, err
	}

	return p.Construct(in, ctx)
}

func (s *Schematic) dispatch(in proto.Value) (*Program, error) {
	p, ok := s.programs[in.Variant]
	if !ok {
		return nil, fmt.Errorf("%s: %w %q%s", s.input, ErrUnknownVariant, in.Variant, suggest.Hint(in.Variant, s.order))
	}

	return p, nil
}
