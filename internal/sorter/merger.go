package sorter

import (
	"fmt"

	"github.com/NamanBalaji/fman/internal/chunk"
	"github.com/NamanBalaji/fman/internal/errors"
	"github.com/NamanBalaji/fman/internal/fdlimit"
	"github.com/NamanBalaji/fman/internal/filesystem"
	"github.com/NamanBalaji/fman/internal/lines"
	"github.com/NamanBalaji/fman/internal/logger"
	"github.com/NamanBalaji/fman/internal/ordering"
)

// merger k-way merges sealed chunks into the output file. Each chunk has one
// open cursor and at most one line in the frontier.
type merger struct {
	cmp        ordering.Comparator
	fs         filesystem.FileSystem
	mgr        *chunk.Manager
	outputPath string
	budget     int
}

func newMerger(cmp ordering.Comparator, fs filesystem.FileSystem, mgr *chunk.Manager, outputPath string, maxOpen int) *merger {
	if maxOpen == 0 {
		maxOpen = fdlimit.MergeBudget()
	}
	return &merger{cmp: cmp, fs: fs, mgr: mgr, outputPath: outputPath, budget: maxOpen}
}

// run merges chunks in a single pass. A single chunk takes the same path.
// TODO: cascade intermediate merge passes instead of failing when the chunk
// count exceeds the descriptor budget.
func (m *merger) run(chunks []*chunk.Chunk) error {
	if len(chunks) > m.budget {
		logger.Errorf("Cannot merge %d chunks with an open file budget of %d", len(chunks), m.budget)
		return errors.NewResourceError(
			fmt.Errorf("%w: %d chunks, budget %d", ErrTooManyChunks, len(chunks), m.budget),
			errors.PhaseReadChunk, m.mgr.Dir())
	}

	logger.Infof("Merging %d chunks into %s", len(chunks), m.outputPath)

	cursors := make([]*chunk.Cursor, 0, len(chunks))
	defer func() {
		for _, c := range cursors {
			if cerr := c.Close(); cerr != nil {
				logger.Debugf("Failed to close chunk cursor %s: %v", c.Chunk().Path, cerr)
			}
		}
	}()

	for _, c := range chunks {
		cur, err := m.mgr.OpenCursor(c)
		if err != nil {
			return errors.NewIOError(err, errors.PhaseReadChunk, c.Path)
		}
		cursors = append(cursors, cur)
	}

	out, err := m.fs.CreateFile(m.outputPath)
	if err != nil {
		logger.Errorf("Failed to create output file %s: %v", m.outputPath, err)
		return errors.NewIOError(err, errors.PhaseWriteOutput, m.outputPath)
	}
	closed := false
	defer func() {
		if !closed {
			out.Close()
		}
	}()

	w := lines.NewWriter(out)
	f := newFrontier(m.cmp, len(cursors))

	for i, cur := range cursors {
		if err := m.advance(f, cur, i); err != nil {
			return err
		}
	}

	for f.Len() > 0 {
		e := f.pop()
		if err := w.WriteLine(e.line); err != nil {
			logger.Errorf("Failed to write output %s: %v", m.outputPath, err)
			return errors.NewIOError(err, errors.PhaseWriteOutput, m.outputPath)
		}
		if err := m.advance(f, cursors[e.chunk], e.chunk); err != nil {
			return err
		}
	}

	if err := w.Flush(); err != nil {
		logger.Errorf("Failed to flush output %s: %v", m.outputPath, err)
		return errors.NewIOError(err, errors.PhaseWriteOutput, m.outputPath)
	}
	closed = true
	if err := out.Close(); err != nil {
		return errors.NewIOError(err, errors.PhaseWriteOutput, m.outputPath)
	}

	logger.Infof("Merged %d lines from %d chunks into %s", w.Count(), len(chunks), m.outputPath)
	return nil
}

// advance pushes the next line of cur, if any, into the frontier.
func (m *merger) advance(f *frontier, cur *chunk.Cursor, index int) error {
	line, ok, err := cur.Next()
	if err != nil {
		logger.Errorf("Failed to read chunk %s: %v", cur.Chunk().Path, err)
		return errors.NewIOError(err, errors.PhaseReadChunk, cur.Chunk().Path)
	}
	if ok {
		f.push(frontierEntry{key: m.cmp.Key(line), chunk: index, line: line})
	}
	return nil
}
