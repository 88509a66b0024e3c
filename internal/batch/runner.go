package batch

import (
	"context"
	"fmt"
	"time"

	"github.com/klytics/pivotkit/internal/progress"
	"github.com/klytics/pivotkit/internal/report"
)

// JobResult holds the outcome of one completed job.
type JobResult struct {
	ID         string `json:"id"`
	Status     string `json:"status"` // ok, error, skipped, dry-run
	Output     string `json:"output,omitempty"`
	Error      string `json:"error,omitempty"`
	DurationMs int64  `json:"durationMs,omitempty"`
}

// Runner executes batch jobs sequentially.
type Runner struct {
	// Base carries the config-derived defaults (chart size, fill value,
	// pivot style) applied to every job.
	Base    report.Options
	Verbose bool
	DryRun  bool
}

// Run executes all jobs in order. A failing job stops the run unless it sets
// on_failure: skip.
func (r *Runner) Run(ctx context.Context, f *File) ([]JobResult, error) {
	results := make([]JobResult, 0, len(f.Jobs))

	if r.Verbose {
		fmt.Printf("Running job file: %s (v%s)\n", f.Name, f.Version)
	}

	bar := progress.New(f.Name, len(f.Jobs))

	for i, job := range f.Jobs {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		if r.Verbose {
			fmt.Printf("[%d/%d] Running job: %s (%s)\n", i+1, len(f.Jobs), job.ID, job.Mode)
		}

		if r.DryRun {
			results = append(results, JobResult{
				ID:     job.ID,
				Status: "dry-run",
				Output: fmt.Sprintf("would build %s report → %s", job.Mode, job.Output),
			})
			bar.Increment(job.ID)
			continue
		}

		start := time.Now()
		res, err := r.runJob(job)
		duration := time.Since(start)

		jr := JobResult{ID: job.ID, DurationMs: duration.Milliseconds()}
		if err != nil {
			jr.Error = err.Error()
			if job.OnFailure == "skip" {
				jr.Status = "skipped"
				results = append(results, jr)
				if r.Verbose {
					fmt.Printf("  Job %s failed (skipping): %s\n", job.ID, err)
				}
				bar.Increment(job.ID)
				continue
			}
			jr.Status = "error"
			results = append(results, jr)
			return results, fmt.Errorf("job %q failed: %w", job.ID, err)
		}

		jr.Status = "ok"
		jr.Output = res.OutputPath
		results = append(results, jr)

		if r.Verbose {
			fmt.Printf("  Completed in %s\n", duration.Round(time.Millisecond))
		}
		bar.Increment(job.ID)
	}

	bar.Finish(fmt.Sprintf("%s: %d job(s) done", f.Name, len(results)))
	return results, nil
}

func (r *Runner) runJob(job Job) (*report.Result, error) {
	opts := r.Base
	opts.InputPath = job.Input
	opts.SheetName = job.Sheet
	opts.OutputPath = job.Output
	opts.Pivots = job.Pivots

	switch job.Mode {
	case "static":
		return report.BuildStatic(opts)
	case "update":
		return report.BuildUpdate(opts)
	case "live":
		return report.BuildLive(opts)
	}
	return nil, fmt.Errorf("unknown mode %q", job.Mode)
}
