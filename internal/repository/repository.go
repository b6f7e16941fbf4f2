package repository

import (
	"time"

	"github.com/google/uuid"

	"github.com/NamanBalaji/fman/internal/sorter"
)

// Repository stores finished sort jobs.
type Repository interface {
	Save(record *JobRecord) error
	Find(id uuid.UUID) (*JobRecord, error)
	FindAll() ([]*JobRecord, error)
	Delete(id uuid.UUID) error
	Clear() error
	Close() error
}

// JobRecord is the persisted summary of one sort job.
type JobRecord struct {
	ID         uuid.UUID `json:"id"`
	InputPath  string    `json:"input"`
	OutputPath string    `json:"output"`
	Policy     string    `json:"policy"`
	Direction  string    `json:"direction"`
	ChunkLines int       `json:"chunkLines"`
	Chunks     int       `json:"chunks"`
	Lines      int64     `json:"lines"`
	State      string    `json:"state"`
	Error      string    `json:"error,omitempty"`
	Started    time.Time `json:"started"`
	Finished   time.Time `json:"finished"`
}

// NewJobRecord summarizes a job and its outcome. res may be nil when the job
// was rejected before it started.
func NewJobRecord(job sorter.Job, res *sorter.Result, runErr error, started time.Time) *JobRecord {
	policy := "lexicographic"
	if job.Policy != nil {
		policy = job.Policy.Name()
	}

	rec := &JobRecord{
		ID:         job.ID,
		InputPath:  job.InputPath,
		OutputPath: job.OutputPath,
		Policy:     policy,
		Direction:  job.Direction.String(),
		ChunkLines: job.MaxLinesPerChunk,
		State:      "Failed",
		Started:    started,
		Finished:   time.Now(),
	}

	if res != nil {
		rec.ID = res.JobID
		rec.Chunks = res.Chunks
		rec.Lines = res.Lines
		rec.State = res.State.String()
		rec.Finished = started.Add(res.Elapsed)
	}
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if runErr != nil {
		rec.Error = runErr.Error()
	}

	return rec
}

// Duration is how long the job ran.
func (r *JobRecord) Duration() time.Duration {
	return r.Finished.Sub(r.Started)
}
