package main

import (
	"context"
	"fmt"

	docmark "github.com/alnah/go-docmark"
)

// Renderer renders one document to every output format.
type Renderer interface {
	Render(ctx context.Context, input docmark.Input) (*docmark.Result, error)
}

// Compile-time interface implementation check.
var _ Renderer = (*docmark.Pipeline)(nil)

// Pool abstracts pipeline pool operations for testability.
type Pool interface {
	Acquire() (Renderer, error)
	Release(Renderer)
	Size() int
	Close() error
}

// poolAdapter exposes a docmark.PipelinePool as a Pool.
type poolAdapter struct {
	pool *docmark.PipelinePool
}

// newPipelinePool is the production Environment.NewPool.
func newPipelinePool(size int, opts ...docmark.Option) Pool {
	return &poolAdapter{pool: docmark.NewPipelinePool(size, opts...)}
}

func (a *poolAdapter) Acquire() (Renderer, error) {
	pl, err := a.pool.Acquire()
	if err != nil {
		return nil, err
	}
	return pl, nil
}

// Release panics when r did not come from this adapter (programmer error).
func (a *poolAdapter) Release(r Renderer) {
	pl, ok := r.(*docmark.Pipeline)
	if !ok {
		panic(fmt.Sprintf("poolAdapter.Release: unexpected type %T", r))
	}
	a.pool.Release(pl)
}

func (a *poolAdapter) Size() int {
	return a.pool.Size()
}

func (a *poolAdapter) Close() error {
	return a.pool.Close()
}
