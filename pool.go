package docmark

import (
	"errors"
	"runtime"
	"sync"
)

// Pool sizing constants.
const (
	// MinPoolSize ensures at least one worker is available.
	MinPoolSize = 1

	// MaxPoolSize caps browser instances to limit memory (~200MB each).
	MaxPoolSize = 8

	// cpuDivisor leaves headroom for Chrome child processes.
	cpuDivisor = 2
)

// ErrPoolClosed is returned by Acquire after Close.
var ErrPoolClosed = errors.New("pipeline pool is closed")

// PipelinePool hands out Pipelines for parallel rendering. Each Pipeline
// owns its browser. Pipelines are created lazily on first Acquire with the
// pool's options.
type PipelinePool struct {
	size      int
	opts      []Option
	pipelines []*Pipeline
	sem       chan *Pipeline
	mu        sync.Mutex
	created   int
	closed    bool
}

// NewPipelinePool creates a pool with capacity for n Pipelines.
func NewPipelinePool(n int, opts ...Option) *PipelinePool {
	if n < MinPoolSize {
		n = MinPoolSize
	}
	return &PipelinePool{
		size:      n,
		opts:      opts,
		pipelines: make([]*Pipeline, 0, n),
		sem:       make(chan *Pipeline, n),
	}
}

// Acquire gets a Pipeline, creating one if capacity remains, and blocks
// otherwise until one is released.
func (p *PipelinePool) Acquire() (*Pipeline, error) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, ErrPoolClosed
	}
	select {
	case pl := <-p.sem:
		p.mu.Unlock()
		return pl, nil
	default:
	}

	if p.created < p.size {
		p.created++
		p.mu.Unlock()

		// Create outside the lock
		pl, err := NewPipeline(p.opts...)

		p.mu.Lock()
		defer p.mu.Unlock()
		if err != nil {
			p.created--
			return nil, err
		}
		if p.closed {
			_ = pl.Close()
			return nil, ErrPoolClosed
		}
		p.pipelines = append(p.pipelines, pl)
		return pl, nil
	}
	p.mu.Unlock()

	pl, ok := <-p.sem
	if !ok {
		return nil, ErrPoolClosed
	}
	return pl, nil
}

// Release returns a Pipeline to the pool. Releasing after Close, or more
// often than acquired, is a no-op.
func (p *PipelinePool) Release(pl *Pipeline) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed || pl == nil {
		return
	}
	select {
	case p.sem <- pl:
	default:
	}
}

// Close releases every browser and joins their errors.
func (p *PipelinePool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.sem)
	pipelines := p.pipelines
	p.mu.Unlock()

	var errs []error
	for _, pl := range pipelines {
		if err := pl.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Size returns the pool capacity.
func (p *PipelinePool) Size() int {
	return p.size
}

// ResolvePoolSize returns workers when positive, otherwise GOMAXPROCS/2
// clamped to [MinPoolSize, MaxPoolSize].
func ResolvePoolSize(workers int) int {
	if workers > 0 {
		return workers
	}
	n := runtime.GOMAXPROCS(0) / cpuDivisor
	return max(MinPoolSize, min(n, MaxPoolSize))
}
