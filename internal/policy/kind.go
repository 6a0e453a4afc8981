package policy

//go:generate go tool stringer -type=Kind -linecomment -output=kind_string.go

// Kind identifies the arm of a Policy.
type Kind int

const (
	_ Kind = iota // zero value is invalid

	KindPassthrough // passthrough
	KindResource    // asset
	KindEntity      // entity
	KindConversion  // from
)
