package chunk

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"

	"github.com/NamanBalaji/fman/internal/filesystem"
	"github.com/NamanBalaji/fman/internal/lines"
	"github.com/NamanBalaji/fman/internal/logger"
)

const dirPrefix = "fman-"

// Manager owns the private temp directory of one sort job and every chunk
// file created in it.
type Manager struct {
	fs      filesystem.FileSystem
	baseDir string
	dir     string

	dirCreated bool
	dirRemoved bool
	chunks     []*Chunk
}

// NewManager creates a chunk manager for jobID. The job directory
// <baseDir>/fman-<jobID> is only created when the first chunk is, so a job
// that never spills leaves nothing to clean up.
func NewManager(fs filesystem.FileSystem, jobID uuid.UUID, baseDir string) *Manager {
	logger.Debugf("Creating new chunk manager")

	if baseDir == "" {
		baseDir = os.TempDir()
		logger.Debugf("No temp directory specified, using default: %s", baseDir)
	}

	manager := &Manager{
		fs:      fs,
		baseDir: baseDir,
		dir:     filepath.Join(baseDir, dirPrefix+jobID.String()),
	}

	logger.Debugf("Chunk manager created with job directory %s", manager.dir)
	return manager
}

// Dir returns the job's private temp directory path.
func (m *Manager) Dir() string {
	return m.dir
}

// Chunks returns the tracked chunks in production order.
func (m *Manager) Chunks() []*Chunk {
	out := make([]*Chunk, len(m.chunks))
	copy(out, m.chunks)
	return out
}

// CreateChunk registers a new chunk and opens its file for writing. The
// chunk is tracked before the file exists so partial files are cleaned too.
func (m *Manager) CreateChunk() (*Writer, error) {
	if err := m.ensureDir(); err != nil {
		return nil, err
	}

	c := &Chunk{
		Index: len(m.chunks),
		Path:  filepath.Join(m.dir, fmt.Sprintf("chunk-%06d", len(m.chunks))),
	}
	m.chunks = append(m.chunks, c)

	logger.Debugf("Creating chunk file: %s", c.Path)
	wc, err := m.fs.CreateFile(c.Path)
	if err != nil {
		logger.Errorf("Failed to create chunk file %s: %v", c.Path, err)
		return nil, fmt.Errorf("%w: %w", ErrChunkFileCreate, err)
	}

	return &Writer{chunk: c, wc: wc, lw: lines.NewWriter(wc)}, nil
}

// OpenCursor opens a sealed chunk for sequential reading.
func (m *Manager) OpenCursor(c *Chunk) (*Cursor, error) {
	logger.Debugf("Opening chunk file: %s", c.Path)
	rc, err := m.fs.OpenFile(c.Path)
	if err != nil {
		logger.Errorf("Failed to open chunk file %s: %v", c.Path, err)
		return nil, fmt.Errorf("%w: %w", ErrChunkFileOpen, err)
	}
	return &Cursor{chunk: c, rc: rc, r: lines.NewReader(rc)}, nil
}

func (m *Manager) ensureDir() error {
	if m.dirCreated {
		return nil
	}

	// The base directory must already exist. Creating it here would leave
	// directories behind that cleanup does not own.
	if err := m.fs.CreateDirectory(m.dir); err != nil {
		logger.Errorf("Failed to create job temp directory %s: %v", m.dir, err)
		return fmt.Errorf("%w: %w", ErrChunkTempDirCreate, err)
	}

	m.dirCreated = true
	logger.Debugf("Created job temp directory: %s", m.dir)
	return nil
}

// Cleanup attempts to delete every tracked chunk file once, then the job
// directory. Failures are logged as warnings and returned aggregated; callers
// treat them as non-fatal. Cleanup is idempotent.
func (m *Manager) Cleanup() error {
	if len(m.chunks) == 0 && !m.dirCreated {
		logger.Debugf("No chunks to clean up")
		return nil
	}

	logger.Infof("Cleaning up %d chunks in %s", len(m.chunks), m.dir)

	var errs *multierror.Error
	removedCount := 0
	for _, c := range m.chunks {
		if c.released {
			continue
		}
		c.released = true

		logger.Debugf("Removing chunk file: %s", c.Path)
		if err := m.fs.DeleteFile(c.Path); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				logger.Debugf("Chunk file already removed: %s", c.Path)
				continue
			}
			logger.Warnf("Failed to remove chunk file %s: %v", c.Path, err)
			errs = multierror.Append(errs, fmt.Errorf("%w %s: %w", ErrChunkFileRemove, c.Path, err))
			continue
		}
		removedCount++
	}

	if m.dirCreated && !m.dirRemoved {
		m.dirRemoved = true

		logger.Debugf("Removed %d/%d chunk files, now removing directory: %s",
			removedCount, len(m.chunks), m.dir)

		if err := m.fs.RemoveDirectory(m.dir); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				logger.Debugf("Job directory already removed: %s", m.dir)
			} else {
				logger.Warnf("Failed to remove job directory %s: %v", m.dir, err)
				errs = multierror.Append(errs, fmt.Errorf("%w %s: %w", ErrChunkDirRemove, m.dir, err))
			}
		}
	}

	if err := errs.ErrorOrNil(); err != nil {
		logger.Warnf("Cleanup completed with errors: %v", err)
		return err
	}

	logger.Infof("Cleanup completed successfully for %s", m.dir)
	return nil
}
