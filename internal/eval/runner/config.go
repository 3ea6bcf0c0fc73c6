package runner

import (
	"io"
	"os"
	"runtime"
)

type Config struct {
	// Workers bounds the number of queries scored concurrently.
	Workers int
	// Progress renders a progress bar on ProgressOut.
	Progress    bool
	ProgressOut io.Writer
}

func DefaultConfig() Config {
	return Config{
		Workers:     runtime.NumCPU(),
		Progress:    true,
		ProgressOut: os.Stderr,
	}
}

func (c Config) normalize() Config {
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.ProgressOut == nil {
		c.ProgressOut = os.Stderr
	}
	return c
}
