package compile

// Config holds compiler options.
type Config struct {
	// SkipAssertions disables the variant assertions. Conversion fields
	// without a converter then fail at construction time instead.
	SkipAssertions bool
}

// DefaultConfig returns the default compiler configuration.
func DefaultConfig() Config {
	return Config{}
}
