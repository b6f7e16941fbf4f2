// Package sample draws a uniform random sample of lines in one pass.
package sample

import (
	"iter"
	"math/rand/v2"

	"github.com/NamanBalaji/fman/internal/errors"
	"github.com/NamanBalaji/fman/internal/lines"
)

// NewRand returns a generator seeded with seed, or a randomly seeded one when
// seed is nil.
func NewRand(seed *uint64) *rand.Rand {
	if seed == nil {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(*seed, *seed))
}

// Reservoir keeps k items of seq chosen uniformly at random (Algorithm R).
// Memory is O(k). k <= 0 yields an empty sample.
func Reservoir(seq iter.Seq[string], k int, rng *rand.Rand) []string {
	if k <= 0 {
		return nil
	}

	reservoir := make([]string, 0, min(k, 1024))
	i := 0
	for item := range seq {
		if i < k {
			reservoir = append(reservoir, item)
		} else if j := rng.IntN(i + 1); j < k {
			reservoir[j] = item
		}
		i++
	}
	return reservoir
}

// File samples k lines of the file at path.
func File(path string, k int, rng *rand.Rand) ([]string, error) {
	in, err := lines.Open(path)
	if err != nil {
		return nil, errors.NewIOError(err, errors.PhaseReadInput, path)
	}
	defer in.Close()

	out := Reservoir(in.All(), k, rng)
	if err := in.Err(); err != nil {
		return nil, errors.NewIOError(err, errors.PhaseReadInput, path)
	}
	return out, nil
}
