// Package dedup removes repeated lines from a file in a single streaming pass.
//
// Approx keeps a Bloom filter and may drop a small fraction of unique lines
// (false positives) but never emits a duplicate. Exact keeps every distinct
// line in memory.
package dedup

import (
	"fmt"
	"path/filepath"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/willf/bloom"

	"github.com/NamanBalaji/fman/internal/errors"
	"github.com/NamanBalaji/fman/internal/lines"
	"github.com/NamanBalaji/fman/internal/logger"
)

var (
	ErrInvalidExpected = errors.New("expected line count must be positive")
	ErrInvalidFPR      = errors.New("false positive rate must be in (0, 1)")
	ErrSameFile        = errors.New("output must differ from input")
)

// Result reports how much of the input survived.
type Result struct {
	Read    int64
	Written int64
	// Filter geometry, zero for exact runs.
	HashFunctions uint
	Bits          uint
}

// Dropped is the number of lines not written.
func (r Result) Dropped() int64 {
	return r.Read - r.Written
}

// Approx copies inputPath to outputPath, writing a line only when the Bloom
// filter sized for expected lines at rate fpr has not seen it.
func Approx(inputPath, outputPath string, expected int, fpr float64) (*Result, error) {
	if expected <= 0 {
		return nil, errors.NewConfigError(fmt.Errorf("%w: %d", ErrInvalidExpected, expected), inputPath)
	}
	if !(fpr > 0 && fpr < 1) {
		return nil, errors.NewConfigError(fmt.Errorf("%w: %v", ErrInvalidFPR, fpr), inputPath)
	}

	filter := bloom.NewWithEstimates(uint(expected), fpr)
	logger.Debugf("Bloom filter for %d lines at %v: k=%d m=%d", expected, fpr, filter.K(), filter.Cap())

	res, err := copyUnique(inputPath, outputPath, func(line string) bool {
		b := []byte(line)
		if filter.Test(b) {
			return false
		}
		filter.Add(b)
		return true
	})
	if res != nil {
		res.HashFunctions = filter.K()
		res.Bits = filter.Cap()
	}
	return res, err
}

// Exact copies inputPath to outputPath keeping the first occurrence of every line.
func Exact(inputPath, outputPath string) (*Result, error) {
	seen := mapset.NewThreadUnsafeSet[string]()
	return copyUnique(inputPath, outputPath, seen.Add)
}

// copyUnique streams the input and writes the lines keep accepts. The output
// is created only after the input opened successfully. Unlike a sort, the
// output is written while the input is still being read, so the two paths
// must differ.
func copyUnique(inputPath, outputPath string, keep func(string) bool) (*Result, error) {
	if filepath.Clean(inputPath) == filepath.Clean(outputPath) {
		return nil, errors.NewConfigError(ErrSameFile, outputPath)
	}

	in, err := lines.Open(inputPath)
	if err != nil {
		return nil, errors.NewIOError(err, errors.PhaseReadInput, inputPath)
	}
	defer in.Close()

	out, err := lines.Create(outputPath)
	if err != nil {
		return nil, errors.NewIOError(err, errors.PhaseWriteOutput, outputPath)
	}

	res := &Result{}
	for line := range in.All() {
		if !keep(line) {
			continue
		}
		if err := out.WriteLine(line); err != nil {
			out.Close()
			return res, errors.NewIOError(err, errors.PhaseWriteOutput, outputPath)
		}
		res.Written++
	}
	res.Read = in.Count()

	if err := in.Err(); err != nil {
		out.Close()
		return res, errors.NewIOError(err, errors.PhaseReadInput, inputPath)
	}
	if err := out.Close(); err != nil {
		return res, errors.NewIOError(err, errors.PhaseWriteOutput, outputPath)
	}

	logger.Infof("Kept %d of %d lines from %s", res.Written, res.Read, inputPath)
	return res, nil
}
