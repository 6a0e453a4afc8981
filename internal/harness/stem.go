package harness

import "strconv"

// Stem renames bindings that collide with a name already used by a layout:
// a reserved local of the rendered methods or an earlier field's binding.
// Candidates are base1, base2, ... and the first free one wins.
type Stem struct {
	base   string
	used   map[string]struct{}
	suffix int
}

// NewStem creates a Stem for base. Names handed out are recorded in used, so
// a layout sharing that set never binds two fields under the same name. A
// nil set starts empty.
func NewStem(base string, used map[string]struct{}) *Stem {
	if used == nil {
		used = make(map[string]struct{})
	}

	return &Stem{base: base, used: used}
}

// Next returns the next free binding name and records it as used.
func (s *Stem) Next() string {
	for {
		s.suffix++

		candidate := s.base + strconv.Itoa(s.suffix)
		if _, clash := s.used[candidate]; clash {
			continue
		}

		s.used[candidate] = struct{}{}

		return candidate
	}
}
