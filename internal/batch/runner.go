// Package batch runs several independent sort jobs with bounded concurrency.
// Each job still runs sequentially inside sorter.Sort.
package batch

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/NamanBalaji/fman/internal/logger"
	"github.com/NamanBalaji/fman/internal/repository"
	"github.com/NamanBalaji/fman/internal/sorter"
)

// DefaultMaxConcurrent is used when a runner is built with a non-positive limit.
const DefaultMaxConcurrent = 2

// Outcome is the result of one job, in manifest order.
type Outcome struct {
	Job    sorter.Job
	Result *sorter.Result
	Err    error
}

// Runner executes jobs through sorter.Sort.
type Runner struct {
	maxConcurrent int
	repo          repository.Repository
	opts          []sorter.Option
}

// NewRunner creates a runner. repo may be nil to skip history.
func NewRunner(maxConcurrent int, repo repository.Repository, opts ...sorter.Option) *Runner {
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrent
	}
	return &Runner{maxConcurrent: maxConcurrent, repo: repo, opts: opts}
}

// Run executes every job with at most maxConcurrent in flight. A failing job
// does not stop the others; the first error in manifest order is returned.
// Jobs that have not started when ctx is done are skipped with ctx.Err().
func (r *Runner) Run(ctx context.Context, jobs []sorter.Job) ([]Outcome, error) {
	outcomes := make([]Outcome, len(jobs))

	var g errgroup.Group
	g.SetLimit(r.maxConcurrent)

	for i, job := range jobs {
		if job.ID == uuid.Nil {
			job.ID = uuid.New()
		}
		outcomes[i].Job = job

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				outcomes[i].Err = err
				return nil
			}

			started := time.Now()
			res, err := sorter.Sort(job, r.opts...)
			outcomes[i].Result = res
			outcomes[i].Err = err

			if err != nil {
				logger.Errorf("Batch job %d (%s) failed: %v", i, job.InputPath, err)
			} else {
				logger.Infof("Batch job %d sorted %s into %s", i, job.InputPath, job.OutputPath)
			}
			r.record(job, res, err, started)
			return nil
		})
	}

	// goroutines never return errors, failures live in outcomes
	_ = g.Wait()

	for _, o := range outcomes {
		if o.Err != nil {
			return outcomes, o.Err
		}
	}
	return outcomes, nil
}

func (r *Runner) record(job sorter.Job, res *sorter.Result, runErr error, started time.Time) {
	if r.repo == nil {
		return
	}
	if err := r.repo.Save(repository.NewJobRecord(job, res, runErr, started)); err != nil {
		logger.Warnf("Failed to record job %s in history: %v", job.ID, err)
	}
}
