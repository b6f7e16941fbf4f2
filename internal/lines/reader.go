// Package lines provides the forward-only line stream shared by the sorter
// and the single-pass file tools.
package lines

import (
	"bufio"
	"io"
	"iter"
	"os"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

const (
	readBufferSize  = 256 * 1024
	writeBufferSize = 1024 * 1024
)

// Reader yields lines without their trailing "\n". A final line lacking the
// terminator is still yielded. Ill-formed UTF-8 is replaced with U+FFFD.
type Reader struct {
	br    *bufio.Reader
	line  string
	err   error
	done  bool
	count int64
}

// NewReader wraps r in a decoding line reader.
func NewReader(r io.Reader) *Reader {
	decoded := transform.NewReader(r, runes.ReplaceIllFormed())
	return &Reader{br: bufio.NewReaderSize(decoded, readBufferSize)}
}

// Next advances to the next line. It returns false at end of input or on error.
func (r *Reader) Next() bool {
	if r.done {
		return false
	}

	s, err := r.br.ReadString('\n')
	if err != nil {
		r.done = true
		if err != io.EOF {
			r.err = err
			return false
		}
		if s == "" {
			return false
		}
		r.line = s
		r.count++
		return true
	}

	r.line = s[:len(s)-1]
	r.count++
	return true
}

// Line returns the line produced by the last successful Next.
func (r *Reader) Line() string {
	return r.line
}

// Err returns the first non-EOF error encountered.
func (r *Reader) Err() error {
	return r.err
}

// Count returns how many lines have been yielded so far.
func (r *Reader) Count() int64 {
	return r.count
}

// All adapts the reader to a range-over-func sequence. Check Err afterwards.
func (r *Reader) All() iter.Seq[string] {
	return func(yield func(string) bool) {
		for r.Next() {
			if !yield(r.line) {
				return
			}
		}
	}
}

// File is a Reader bound to an open file.
type File struct {
	*Reader
	f *os.File
}

// Open opens path for line reading.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return &File{Reader: NewReader(f), f: f}, nil
}

// Close closes the underlying file.
func (f *File) Close() error {
	return f.f.Close()
}
