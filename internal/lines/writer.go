package lines

import (
	"bufio"
	"io"
	"os"
)

// Writer appends "\n"-terminated lines through a buffer.
type Writer struct {
	bw    *bufio.Writer
	count int64
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{bw: bufio.NewWriterSize(w, writeBufferSize)}
}

// WriteLine writes line followed by a newline.
func (w *Writer) WriteLine(line string) error {
	if _, err := w.bw.WriteString(line); err != nil {
		return err
	}
	if err := w.bw.WriteByte('\n'); err != nil {
		return err
	}
	w.count++
	return nil
}

// Count returns how many lines were written.
func (w *Writer) Count() int64 {
	return w.count
}

func (w *Writer) Flush() error {
	return w.bw.Flush()
}

// FileWriter is a Writer bound to a created file.
type FileWriter struct {
	*Writer
	f *os.File
}

// Create truncates or creates path for line writing.
func Create(path string) (*FileWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return &FileWriter{Writer: NewWriter(f), f: f}, nil
}

// Close flushes buffered lines and closes the file.
func (w *FileWriter) Close() error {
	if err := w.Flush(); err != nil {
		w.f.Close()
		return err
	}
	return w.f.Close()
}
