package runner

import (
	"context"
	"fmt"
	"runtime"
	"sync"
)

// Processor handles one page file. Implementations decide whether a run
// analyzes only or also heals and rewrites the file.
type Processor interface {
	ProcessPage(ctx context.Context, path string) (*PageResult, error)
}

// ProcessorFunc adapts a function to the Processor interface.
type ProcessorFunc func(ctx context.Context, path string) (*PageResult, error)

// ProcessPage implements Processor.
func (f ProcessorFunc) ProcessPage(ctx context.Context, path string) (*PageResult, error) {
	return f(ctx, path)
}

// Runner orchestrates multi-page processing with a worker pool.
type Runner struct {
	Processor Processor
}

// New creates a Runner around a processor.
func New(p Processor) *Runner {
	return &Runner{Processor: p}
}

// Run discovers pages under opts.Paths and processes them concurrently.
// The result collects outcomes in deterministic path order regardless of
// worker completion order, and the call respects context cancellation.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files: make([]PageOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	if jobs > len(files) {
		jobs = len(files)
	}

	workCh := make(chan string)
	outCh := make(chan PageOutcome)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, workCh, outCh)
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	// Workers complete out of order; key by path and rebuild in
	// discovery order below.
	outcomes := make(map[string]PageOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}
	return result, nil
}

func (r *Runner) worker(ctx context.Context, workCh <-chan string, outCh chan<- PageOutcome) {
	for path := range workCh {
		select {
		case <-ctx.Done():
			return
		default:
		}

		outcome := PageOutcome{Path: path}
		pr, err := r.Processor.ProcessPage(ctx, path)
		if err != nil {
			outcome.Error = err
		} else {
			outcome.Result = pr
		}

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}
