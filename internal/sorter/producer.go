package sorter

import (
	"slices"

	"github.com/NamanBalaji/fman/internal/chunk"
	"github.com/NamanBalaji/fman/internal/errors"
	"github.com/NamanBalaji/fman/internal/lines"
	"github.com/NamanBalaji/fman/internal/logger"
	"github.com/NamanBalaji/fman/internal/ordering"
)

// initialBufferCap bounds the up-front allocation for large chunk sizes.
const initialBufferCap = 64 * 1024

type entry struct {
	key  ordering.Key
	line string
}

// producer turns the input stream into sorted chunk files.
type producer struct {
	cmp      ordering.Comparator
	maxLines int
	mgr      *chunk.Manager

	buf    []entry
	chunks []*chunk.Chunk
}

func newProducer(cmp ordering.Comparator, maxLines int, mgr *chunk.Manager) *producer {
	return &producer{
		cmp:      cmp,
		maxLines: maxLines,
		mgr:      mgr,
		buf:      make([]entry, 0, min(maxLines, initialBufferCap)),
	}
}

// run consumes in once. Empty input yields no chunks.
func (p *producer) run(in *lines.Reader, inputPath string) ([]*chunk.Chunk, error) {
	for in.Next() {
		line := in.Line()
		p.buf = append(p.buf, entry{key: p.cmp.Key(line), line: line})

		if len(p.buf) >= p.maxLines {
			if err := p.flush(); err != nil {
				return p.chunks, err
			}
		}
	}

	if err := in.Err(); err != nil {
		logger.Errorf("Failed to read input %s: %v", inputPath, err)
		return p.chunks, errors.NewIOError(err, errors.PhaseReadInput, inputPath)
	}

	if len(p.buf) > 0 {
		if err := p.flush(); err != nil {
			return p.chunks, err
		}
	}

	return p.chunks, nil
}

// flush stable-sorts the buffer and persists it as the next chunk.
func (p *producer) flush() error {
	slices.SortStableFunc(p.buf, func(a, b entry) int {
		return p.cmp.Compare(a.key, b.key)
	})

	w, err := p.mgr.CreateChunk()
	if err != nil {
		return errors.NewIOError(err, errors.PhaseWriteChunk, p.pendingPath())
	}

	path := w.Chunk().Path
	for _, e := range p.buf {
		if err := w.Write(e.line); err != nil {
			w.Close()
			logger.Errorf("Failed to write chunk %s: %v", path, err)
			return errors.NewIOError(err, errors.PhaseWriteChunk, path)
		}
	}
	if err := w.Close(); err != nil {
		logger.Errorf("Failed to close chunk %s: %v", path, err)
		return errors.NewIOError(err, errors.PhaseWriteChunk, path)
	}

	logger.Debugf("Wrote chunk %d with %d lines to %s", w.Chunk().Index, w.Chunk().Lines, path)
	p.chunks = append(p.chunks, w.Chunk())

	clear(p.buf)
	p.buf = p.buf[:0]
	return nil
}

// pendingPath names the file a failed CreateChunk was working on: the
// registered chunk if one was tracked, otherwise the job directory.
func (p *producer) pendingPath() string {
	tracked := p.mgr.Chunks()
	if len(tracked) > len(p.chunks) {
		return tracked[len(tracked)-1].Path
	}
	return p.mgr.Dir()
}
