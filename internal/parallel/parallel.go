// Package parallel provides the data-parallel loops used by the kernel,
// solver and inference code.
//
// Every helper splits [0, n) into contiguous chunks and hands each chunk to
// its own goroutine. Callers must only write to slots owned by the index they
// are given; the loops return after all chunks finished.
package parallel

import (
	"runtime"

	"github.com/sourcegraph/conc"
	"golang.org/x/sync/errgroup"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled      bool // Whether parallel execution is enabled.
	NumWorkers   int  // Number of worker goroutines to use.
	MinChunkSize int  // Minimum items per goroutine to avoid overhead.
}

// DefaultConfig returns sensible defaults based on CPU count.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: 256,
	}
}

// WithWorkers returns DefaultConfig limited to the given number of workers.
// A non-positive count keeps the CPU count; one worker disables parallelism.
func WithWorkers(workers int) Config {
	cfg := DefaultConfig()
	if workers > 0 {
		cfg.NumWorkers = workers
		cfg.Enabled = workers > 1
	}
	return cfg
}

// chunkSize returns the per-goroutine span for n items, or 0 when the loop
// should run sequentially.
func (c Config) chunkSize(n int) int {
	if !c.Enabled || c.NumWorkers < 2 || n < c.MinChunkSize {
		return 0
	}
	return max((n+c.NumWorkers-1)/c.NumWorkers, c.MinChunkSize)
}

// For executes f(i) for i in [0, n) with optional parallelism.
// Falls back to sequential execution if parallelism is disabled or n is too small.
// A panic in f is propagated to the caller once every chunk has returned.
func For(n int, f func(i int), cfg Config) {
	chunk := cfg.chunkSize(n)
	if chunk == 0 {
		for i := 0; i < n; i++ {
			f(i)
		}
		return
	}

	var wg conc.WaitGroup
	for start := 0; start < n; start += chunk {
		s, e := start, min(start+chunk, n)
		wg.Go(func() {
			for i := s; i < e; i++ {
				f(i)
			}
		})
	}
	wg.Wait()
}

// ForErr is For for fallible bodies. Each chunk stops at its first error and
// ForErr returns the error of the lowest failing index among the chunks that
// failed.
func ForErr(n int, f func(i int) error, cfg Config) error {
	chunk := cfg.chunkSize(n)
	if chunk == 0 {
		for i := 0; i < n; i++ {
			if err := f(i); err != nil {
				return err
			}
		}
		return nil
	}

	chunks := (n + chunk - 1) / chunk
	errs := make([]error, chunks)

	var g errgroup.Group
	g.SetLimit(cfg.NumWorkers)
	for c := 0; c < chunks; c++ {
		s, e := c*chunk, min((c+1)*chunk, n)
		g.Go(func() error {
			for i := s; i < e; i++ {
				if err := f(i); err != nil {
					errs[c] = err
					return err
				}
			}
			return nil
		})
	}
	if g.Wait() == nil {
		return nil
	}
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// ForBatch optimized for rows*cols iteration pattern, such as filling a
// kernel matrix.
func ForBatch(rows, cols int, f func(r, c int), cfg Config) {
	n := rows * cols
	if cols == 0 {
		return
	}
	For(n, func(k int) {
		f(k/cols, k%cols)
	}, cfg)
}
