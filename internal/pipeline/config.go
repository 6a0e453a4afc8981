package pipeline

import (
	"io"
	"log"
	"runtime"
)

// Config holds loader options.
type Config struct {
	// Concurrency bounds the goroutines of one LoadAll phase.
	Concurrency int
	// Logger receives batch progress. Nil discards.
	Logger *log.Logger
}

// DefaultConfig returns a config using one goroutine per CPU and no logging.
func DefaultConfig() Config {
	return Config{
		Concurrency: runtime.GOMAXPROCS(0),
		Logger:      log.New(io.Discard, "", 0),
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()

	if c.Concurrency <= 0 {
		c.Concurrency = def.Concurrency
	}

	if c.Logger == nil {
		c.Logger = def.Logger
	}

	return c
}
