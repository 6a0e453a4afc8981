package harness

import (
	"fmt"
	"strings"

	"proto-schematic/utils"
)

//go:generate go tool stringer -type=Kind -linecomment -output=kind_string.go

// Kind is the structural kind of a variant.
type Kind int

const (
	_ Kind = iota // zero value is invalid

	KindUnit       // unit
	KindPositional // positional
	KindNamed      // named
)

// ParseKind parses the textual form produced by Kind.String.
// "tuple" and "struct" are accepted as aliases.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "unit":
		return KindUnit, nil
	case "positional", "tuple":
		return KindPositional, nil
	case "named", "struct":
		return KindNamed, nil
	default:
		return 0, fmt.Errorf("unknown variant kind %q", s)
	}
}

// IsValid reports whether k is one of the declared kinds.
func (k Kind) IsValid() bool {
	return utils.IsInRange(KindUnit, k, KindNamed)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.IsValid() {
		return nil, fmt.Errorf("invalid variant kind %d", int(k))
	}

	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}

	*k = parsed

	return nil
}
