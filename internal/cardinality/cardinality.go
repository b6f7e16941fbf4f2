// Package cardinality estimates the number of distinct lines in a file with
// a HyperLogLog sketch, using constant memory.
package cardinality

import (
	"github.com/axiomhq/hyperloglog"
	"github.com/cespare/xxhash/v2"

	"github.com/NamanBalaji/fman/internal/errors"
	"github.com/NamanBalaji/fman/internal/lines"
)

// Estimator counts distinct strings approximately.
type Estimator struct {
	sketch *hyperloglog.Sketch
	seen   int64
}

// New returns an estimator at precision 14 (about 0.8% standard error).
func New() *Estimator {
	return &Estimator{sketch: hyperloglog.New14()}
}

func (e *Estimator) Add(s string) {
	e.sketch.InsertHash(xxhash.Sum64String(s))
	e.seen++
}

// Estimate returns the approximate number of distinct values added.
func (e *Estimator) Estimate() uint64 {
	return e.sketch.Estimate()
}

// Seen returns how many values were added, duplicates included.
func (e *Estimator) Seen() int64 {
	return e.seen
}

// File estimates the distinct lines of the file at path.
func File(path string) (*Estimator, error) {
	in, err := lines.Open(path)
	if err != nil {
		return nil, errors.NewIOError(err, errors.PhaseReadInput, path)
	}
	defer in.Close()

	e := New()
	for line := range in.All() {
		e.Add(line)
	}
	if err := in.Err(); err != nil {
		return nil, errors.NewIOError(err, errors.PhaseReadInput, path)
	}
	return e, nil
}
