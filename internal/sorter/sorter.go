// Package sorter implements an out-of-core sort for line-oriented text files.
//
// A job streams its input into sorted chunk files of at most
// Job.MaxLinesPerChunk lines, then merges every chunk through a priority queue
// into the output file. Chunk sorting is stable and merge ties are broken by
// chunk index, so lines with equal keys keep their input order.
//
// Each job runs sequentially on the calling goroutine and owns a private temp
// directory that is cleaned up on every exit path.
package sorter

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/NamanBalaji/fman/internal/chunk"
	"github.com/NamanBalaji/fman/internal/errors"
	"github.com/NamanBalaji/fman/internal/filesystem"
	"github.com/NamanBalaji/fman/internal/lines"
	"github.com/NamanBalaji/fman/internal/logger"
	"github.com/NamanBalaji/fman/internal/ordering"
	"github.com/NamanBalaji/fman/internal/status"
)

type runner struct {
	job          Job
	cmp          ordering.Comparator
	fs           filesystem.FileSystem
	state        status.State
	onTransition func(from, to status.State)
}

// Sort runs job to completion. The returned Result is non-nil whenever the
// job got past validation, including on failure. After a failure the output
// file may be partially written.
func Sort(job Job, opts ...Option) (*Result, error) {
	if err := job.validate(); err != nil {
		return nil, errors.NewConfigError(err, job.InputPath)
	}
	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}

	r := &runner{
		job:   job,
		cmp:   ordering.NewComparator(job.Policy, job.Direction),
		fs:    filesystem.NewOSFileSystem(),
		state: status.Idle,
	}
	for _, opt := range opts {
		opt(r)
	}

	return r.run()
}

func (r *runner) run() (res *Result, err error) {
	start := time.Now()
	res = &Result{JobID: r.job.ID}
	mgr := chunk.NewManager(r.fs, r.job.ID, r.job.TempDir)

	logger.Infof("Sorting %s into %s (job %s, %s %s, %d lines per chunk)",
		r.job.InputPath, r.job.OutputPath, r.job.ID,
		r.cmp.Policy().Name(), r.job.Direction, r.job.MaxLinesPerChunk)

	// completed stays false when a policy panics, so the job still ends Failed.
	completed := false
	defer func() {
		r.transition(status.Cleaning)
		if cerr := mgr.Cleanup(); cerr != nil {
			res.CleanupWarning = errors.NewIOError(cerr, errors.PhaseCleanup, mgr.Dir())
			logger.Warnf("Job %s left temp files behind: %v", r.job.ID, cerr)
		}

		switch {
		case err != nil:
			r.transition(status.Failed)
			logger.Errorf("Job %s failed: %v", r.job.ID, err)
		case !completed:
			r.transition(status.Failed)
			logger.Errorf("Job %s aborted before completion", r.job.ID)
		default:
			r.transition(status.Done)
		}

		res.State = r.state
		res.Elapsed = time.Since(start)
	}()

	r.transition(status.Producing)
	chunks, lineCount, err := r.produce(mgr)
	res.Chunks = len(chunks)
	res.Lines = lineCount
	if err != nil {
		return res, err
	}

	r.transition(status.Merging)
	m := newMerger(r.cmp, r.fs, mgr, r.job.OutputPath, r.job.MaxOpenChunks)
	if err := m.run(chunks); err != nil {
		return res, err
	}

	logger.Infof("Job %s sorted %d lines through %d chunks", r.job.ID, lineCount, len(chunks))
	completed = true
	return res, nil
}

func (r *runner) produce(mgr *chunk.Manager) ([]*chunk.Chunk, int64, error) {
	rc, err := r.fs.OpenFile(r.job.InputPath)
	if err != nil {
		logger.Errorf("Failed to open input %s: %v", r.job.InputPath, err)
		return nil, 0, errors.NewIOError(err, errors.PhaseReadInput, r.job.InputPath)
	}
	defer rc.Close()

	in := lines.NewReader(rc)
	p := newProducer(r.cmp, r.job.MaxLinesPerChunk, mgr)
	chunks, err := p.run(in, r.job.InputPath)
	return chunks, in.Count(), err
}

func (r *runner) transition(to status.State) {
	from := r.state
	if !status.CanTransition(from, to) {
		panic(fmt.Sprintf("sorter: illegal state transition %s -> %s", from, to))
	}
	r.state = to
	logger.Debugf("Job %s: %s -> %s", r.job.ID, from, to)
	if r.onTransition != nil {
		r.onTransition(from, to)
	}
}
