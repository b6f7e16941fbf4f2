package chunk

import (
	"fmt"
	"io"

	"github.com/NamanBalaji/fman/internal/lines"
)

// Chunk is one sorted run of lines persisted in the job's temp directory.
type Chunk struct {
	Index int    // Position in production order, used as the merge tie-breaker
	Path  string // Backing file
	Lines int64  // Number of lines written

	released bool // deletion has been attempted
}

// Writer fills a freshly created chunk file. The chunk is sealed by Close.
type Writer struct {
	chunk  *Chunk
	wc     io.WriteCloser
	lw     *lines.Writer
	closed bool
}

// Chunk returns the chunk being written.
func (w *Writer) Chunk() *Chunk {
	return w.chunk
}

// Write appends one line.
func (w *Writer) Write(line string) error {
	if w.closed {
		return ErrWriterClosed
	}
	if err := w.lw.WriteLine(line); err != nil {
		return fmt.Errorf("%w: %w", ErrChunkFileWrite, err)
	}
	w.chunk.Lines++
	return nil
}

// Close flushes buffered lines and closes the file.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	if err := w.lw.Flush(); err != nil {
		w.wc.Close()
		return fmt.Errorf("%w: %w", ErrChunkFileWrite, err)
	}
	if err := w.wc.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrChunkFileWrite, err)
	}
	return nil
}

// Cursor reads a chunk front to back. Exactly one cursor per chunk is open
// during a merge.
type Cursor struct {
	chunk *Chunk
	rc    io.ReadCloser
	r     *lines.Reader
}

// Chunk returns the chunk being read.
func (c *Cursor) Chunk() *Chunk {
	return c.chunk
}

// Next returns the next line. ok is false once the chunk is exhausted.
func (c *Cursor) Next() (line string, ok bool, err error) {
	if c.r.Next() {
		return c.r.Line(), true, nil
	}
	if err := c.r.Err(); err != nil {
		return "", false, fmt.Errorf("%w: %w", ErrChunkFileRead, err)
	}
	return "", false, nil
}

// Close releases the file handle.
func (c *Cursor) Close() error {
	return c.rc.Close()
}
