// Package runner executes independent (program, inputs) jobs concurrently.
// spec.md §5 states that independent runs may proceed in parallel as long
// as they operate on disjoint constraint systems with nothing shared; since
// a single vm.Run call already owns its *scalar.System exclusively for the
// run's lifetime, batches of runs satisfy that by construction and need
// only a fan-out/collect shape. The teacher's internal/concurrency models
// this kind of fan-out with a hand-rolled WorkerPool of raw goroutines,
// channels, and a sync.WaitGroup; here the same concern is served by
// golang.org/x/sync/errgroup, which gives the same bounded concurrent
// fan-out with first-error propagation in far less code.
package runner

import (
	"context"
	"math/big"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Epiisteme/zinc/internal/bytecode"
	"github.com/Epiisteme/zinc/internal/scalar"
	"github.com/Epiisteme/zinc/internal/value"
	"github.com/Epiisteme/zinc/internal/vm"
)

// Job is one independent run request.
type Job struct {
	ID            string // set by NewJob; RunBatch assigns one if empty
	Program       *bytecode.Program
	PublicInputs  []*big.Int
	WitnessInputs []*big.Int
	Hook          vm.Hook
}

// NewJob builds a Job with a fresh run identity (spec.md §5: concurrently
// executing runs must be distinguishable without a coordinated counter).
func NewJob(program *bytecode.Program, publicInputs, witnessInputs []*big.Int, hook vm.Hook) Job {
	return Job{
		ID:            uuid.NewString(),
		Program:       program,
		PublicInputs:  publicInputs,
		WitnessInputs: witnessInputs,
		Hook:          hook,
	}
}

// Result is one job's outcome. Err is set and Outputs is nil on failure;
// System then holds the constraints emitted before the failing
// instruction. A failed job never prevents its siblings from completing.
type Result struct {
	ID      string
	Outputs []value.Value
	System  *scalar.System
	Err     error
}

// RunBatch runs every job concurrently, capped at maxConcurrency (0 means
// unbounded — one goroutine per job), and returns one Result per job in
// the same order jobs were given, regardless of completion order. The
// returned error is the first job failure encountered, if any; callers
// that need to distinguish which job failed should inspect Result.Err
// directly rather than relying on the aggregate error.
func RunBatch(ctx context.Context, jobs []Job, maxConcurrency int) ([]Result, error) {
	results := make([]Result, len(jobs))
	g, _ := errgroup.WithContext(ctx)
	if maxConcurrency > 0 {
		g.SetLimit(maxConcurrency)
	}
	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			hook := job.Hook
			if hook == nil {
				hook = vm.NoopHook
			}
			outputs, sys, err := vm.Run(job.Program, job.PublicInputs, job.WitnessInputs, hook)
			id := job.ID
			if id == "" {
				id = uuid.NewString()
			}
			results[i] = Result{ID: id, Outputs: outputs, System: sys, Err: err}
			return nil // per-job errors are carried in Result, not propagated to Wait
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	for _, r := range results {
		if r.Err != nil {
			return results, r.Err
		}
	}
	return results, nil
}
