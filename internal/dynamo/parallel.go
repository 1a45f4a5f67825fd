package dynamo

import (
	"context"
	"math/rand"
	"sync"
)

// Ensemble runs the same System/Integrator/Controller across numRuns seeded
// variations, used for Monte Carlo sweeps over a single vehicle's run (e.g.
// robustness to small initial-condition noise). Each run gets its own
// Simulator built from the base's dyn/integrator/controller and metrics, so
// a run's accumulated metric state never leaks into another's.
type Ensemble struct {
	base      *Simulator
	numRuns   int
	seedStart int64
	jitter    float64
}

func NewEnsemble(s *Simulator, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{base: s, numRuns: numRuns, seedStart: seedStart}
}

// SetJitter sets the standard deviation of the per-run initial-state noise
// added before each seeded run. Zero (the default) runs every seed from
// the same x0, which is still a valid ensemble — it is how a deterministic
// System's seeds agree with each other.
func (e *Ensemble) SetJitter(stddev float64) {
	e.jitter = stddev
}

func (e *Ensemble) Run(ctx context.Context, x0 State, cfg Config) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	ParallelFor(e.numRuns, 1, func(start, end int) {
		for idx := start; idx < end; idx++ {
			seed := e.seedStart + int64(idx)

			cfgCopy := cfg
			cfgCopy.Seed = seed

			xRun := x0.Clone()
			if e.jitter > 0 {
				rng := rand.New(rand.NewSource(seed))
				for i := range xRun {
					xRun[i] += rng.NormFloat64() * e.jitter
				}
			}

			s := New(e.base.dyn, e.base.integrator, e.base.controller)
			for _, m := range e.base.metrics {
				s.AddMetric(m)
			}

			results[idx], errs[idx] = s.Run(ctx, xRun, cfgCopy)
		}
	})

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}

// ParallelFor executes fn over chunks of the range [0, n), chunking to a
// bounded worker count so numRuns runs don't spawn numRuns goroutines at
// once. At or below minChunk items it just runs fn(0, n) inline.
func ParallelFor(n, minChunk int, fn func(start, end int)) {
	numWorkers := 4 // Default
	if n <= minChunk || numWorkers <= 1 {
		fn(0, n)
		return
	}

	workers := numWorkers
	if n/minChunk < workers {
		workers = n / minChunk
	}
	if workers < 1 {
		workers = 1
	}

	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	wg.Add(workers)

	for w := 0; w < workers; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if end > n {
			end = n
		}

		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}

	wg.Wait()
}
