package main

import (
	"io"
	"os"
	"time"

	docmark "github.com/alnah/go-docmark"
	"github.com/alnah/go-docmark/internal/config"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now     func() time.Time
	Stdout  io.Writer
	Stderr  io.Writer
	Config  *config.Config // Used when no config file is named
	NewPool func(size int, opts ...docmark.Option) Pool
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:     time.Now,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Config:  config.DefaultConfig(),
		NewPool: newPipelinePool,
	}
}
