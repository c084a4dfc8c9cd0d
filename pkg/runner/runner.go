package runner

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/gotexlint/pkg/lint"
)

// Runner lints every file a set of paths expands to.
type Runner struct {
	Pipeline *lint.Pipeline
}

// New returns a Runner that processes each file with pipeline.
func New(pipeline *lint.Pipeline) *Runner {
	return &Runner{Pipeline: pipeline}
}

// Run discovers files under opts.Paths and processes up to opts.Jobs of
// them at once. Result.Files follows discovery order whatever order the
// workers finish in. A cancelled ctx stops dispatch; the files finished
// so far are still returned alongside the error.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)
	if len(files) == 0 {
		return result, nil
	}

	pipelineOpts := opts.pipelineOptions()
	slots := make([]*FileOutcome, len(files))

	var group errgroup.Group
	group.SetLimit(workerCount(opts.Jobs, len(files)))

	for i, path := range files {
		if ctx.Err() != nil {
			break
		}
		group.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			slots[i] = r.process(ctx, path, pipelineOpts)
			return nil
		})
	}
	_ = group.Wait()

	for _, outcome := range slots {
		if outcome != nil {
			result.accumulate(*outcome)
		}
	}

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}
	return result, nil
}

func (r *Runner) process(ctx context.Context, path string, opts lint.PipelineOptions) *FileOutcome {
	fr, err := r.Pipeline.ProcessFile(ctx, path, opts)
	if err != nil {
		return &FileOutcome{Path: path, Error: err}
	}
	return &FileOutcome{Path: path, Result: fr}
}

func workerCount(jobs, files int) int {
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	return max(1, min(jobs, files))
}
