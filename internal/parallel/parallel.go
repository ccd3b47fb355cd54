// Package parallel splits index ranges across goroutines for CPU kernels.
package parallel

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// DefaultMinChunk is the smallest range handed to a single goroutine.
const DefaultMinChunk = 64

// Config controls how work is split.
type Config struct {
	Workers  int // Goroutines to use; 1 runs everything inline.
	MinChunk int // Minimum items per goroutine.
}

// DefaultConfig uses one worker per CPU.
func DefaultConfig() Config {
	return WithWorkers(0)
}

// WithWorkers returns a Config with n workers. n <= 0 means runtime.NumCPU().
func WithWorkers(n int) Config {
	if n <= 0 {
		n = runtime.NumCPU()
	}
	return Config{Workers: n, MinChunk: DefaultMinChunk}
}

// Sequential reports whether n items would run on the calling goroutine.
func (c Config) Sequential(n int) bool {
	return c.Workers <= 1 || n < 2*max(c.MinChunk, 1)
}

// Range calls fn(start, end) over disjoint sub-ranges covering [0, n) and
// waits for all of them. fn must only touch data owned by its sub-range.
func Range(n int, cfg Config, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	if cfg.Sequential(n) {
		fn(0, n)
		return
	}

	chunk := max((n+cfg.Workers-1)/cfg.Workers, cfg.MinChunk)

	var g errgroup.Group
	g.SetLimit(cfg.Workers)
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		g.Go(func() error {
			fn(start, end)
			return nil
		})
	}
	_ = g.Wait()
}

// For calls fn(i) for every i in [0, n).
func For(n int, cfg Config, fn func(i int)) {
	Range(n, cfg, func(start, end int) {
		for i := start; i < end; i++ {
			fn(i)
		}
	})
}
