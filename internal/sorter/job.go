package sorter

import (
	"time"

	"github.com/google/uuid"

	"github.com/NamanBalaji/fman/internal/filesystem"
	"github.com/NamanBalaji/fman/internal/ordering"
	"github.com/NamanBalaji/fman/internal/status"
)

// DefaultMaxLinesPerChunk is the chunk size used when callers have no better figure.
const DefaultMaxLinesPerChunk = 500_000

// Job describes one external sort. It is passed by value and never modified.
type Job struct {
	ID               uuid.UUID          // Generated when zero
	InputPath        string             // Line-oriented text to sort
	OutputPath       string             // Destination, may equal InputPath
	Policy           ordering.Policy    // Nil means lexicographic
	Direction        ordering.Direction // Ascending or descending
	MaxLinesPerChunk int                // Lines held in memory per chunk
	TempDir          string             // Parent of the job's private temp dir, empty for os.TempDir()
	MaxOpenChunks    int                // Merge fan-in limit, 0 derives it from RLIMIT_NOFILE
}

func (j Job) validate() error {
	switch {
	case j.InputPath == "":
		return ErrMissingInput
	case j.OutputPath == "":
		return ErrMissingOutput
	case j.MaxLinesPerChunk <= 0:
		return ErrInvalidChunkSize
	case j.MaxOpenChunks < 0:
		return ErrInvalidOpenChunks
	case j.Direction != ordering.Ascending && j.Direction != ordering.Descending:
		return ErrInvalidDirection
	}
	return nil
}

// Result summarizes a finished job. It is returned alongside any error.
type Result struct {
	JobID   uuid.UUID
	State   status.State // Done or Failed
	Chunks  int          // Chunk files produced
	Lines   int64        // Lines read from the input
	Elapsed time.Duration

	// CleanupWarning reports temp files that could not be removed. It never
	// changes the outcome of the job.
	CleanupWarning error
}

// Option customizes how a job runs.
type Option func(*runner)

// WithFileSystem replaces the OS filesystem.
func WithFileSystem(fs filesystem.FileSystem) Option {
	return func(r *runner) {
		r.fs = fs
	}
}

// WithStateHook is called on every state transition.
func WithStateHook(fn func(from, to status.State)) Option {
	return func(r *runner) {
		r.onTransition = fn
	}
}
