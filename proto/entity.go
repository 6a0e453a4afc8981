package proto

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// EntityID is the identity of a live entity owned by the spawn context.
type EntityID uint64

// String implements fmt.Stringer.
func (e EntityID) String() string {
	return "Entity(" + strconv.FormatUint(uint64(e), 10) + ")"
}

// ParentSegment is the segment that moves one level up the entity tree.
const ParentSegment = ".."

// EntityAccess is a structured address into the entity tree. Relative
// addresses are resolved by the spawn context against the entity being
// spawned; absolute ones against the tree root.
//
// Segments are normalized: "." is dropped and ".." only survives at the
// start of a relative address.
type EntityAccess struct {
	absolute bool
	segments []string
}

// ParseEntityAccess parses a slash separated path such as "/root/child",
// "./child" or "../sibling".
func ParseEntityAccess(path string) (EntityAccess, error) {
	if path == "" {
		return EntityAccess{}, errors.New("empty entity path")
	}

	access := EntityAccess{absolute: strings.HasPrefix(path, "/")}

	for seg := range strings.SplitSeq(strings.Trim(path, "/"), "/") {
		switch seg {
		case "", ".":
			continue
		case ParentSegment:
			n := len(access.segments)
			switch {
			case n > 0 && access.segments[n-1] != ParentSegment:
				access.segments = access.segments[:n-1]
			case access.absolute:
				return EntityAccess{}, fmt.Errorf("invalid entity path %q: escapes the root", path)
			default:
				access.segments = append(access.segments, ParentSegment)
			}
		default:
			access.segments = append(access.segments, seg)
		}
	}

	return access, nil
}

// MustEntityAccess is like ParseEntityAccess but panics on malformed paths.
// Intended for paths fixed at schema-definition time.
func MustEntityAccess(path string) EntityAccess {
	access, err := ParseEntityAccess(path)
	if err != nil {
		panic(err)
	}

	return access
}

// IsAbsolute reports whether the address starts at the tree root.
func (a EntityAccess) IsAbsolute() bool {
	return a.absolute
}

// Segments returns a copy of the normalized path segments.
func (a EntityAccess) Segments() []string {
	return append([]string(nil), a.segments...)
}

// String renders the normalized path.
func (a EntityAccess) String() string {
	joined := strings.Join(a.segments, "/")

	switch {
	case a.absolute:
		return "/" + joined
	case joined == "":
		return "."
	case a.segments[0] == ParentSegment:
		return joined
	default:
		return "./" + joined
	}
}
