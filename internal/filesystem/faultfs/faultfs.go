// Package faultfs wraps the OS filesystem with injectable failures and
// operation counters for exercising error and cleanup paths.
package faultfs

import (
	"io"
	"strings"
	"sync"

	"github.com/NamanBalaji/fman/internal/filesystem"
)

// Rule decides whether an operation on path fails. Returning nil lets the
// operation through.
type Rule func(path string) error

// FS is a filesystem.FileSystem with fault hooks.
type FS struct {
	inner filesystem.FileSystem

	mu sync.Mutex

	CreateFault    Rule
	OpenFault      Rule
	DeleteFault    Rule
	RemoveDirFault Rule
	// WriteFault is consulted on every Write to a file created through FS.
	WriteFault Rule

	deletes  map[string]int
	opened   int
	maxOpen  int
	creates  int
	removals int
}

// New wraps the OS filesystem.
func New() *FS {
	return &FS{inner: filesystem.NewOSFileSystem(), deletes: make(map[string]int)}
}

// Matching fails any path containing substr with err.
func Matching(substr string, err error) Rule {
	return func(path string) error {
		if strings.Contains(path, substr) {
			return err
		}
		return nil
	}
}

// AfterN lets the first n calls through and fails the rest with err.
func AfterN(n int, err error) Rule {
	var mu sync.Mutex
	calls := 0
	return func(string) error {
		mu.Lock()
		defer mu.Unlock()
		calls++
		if calls > n {
			return err
		}
		return nil
	}
}

func check(r Rule, path string) error {
	if r == nil {
		return nil
	}
	return r(path)
}

func (f *FS) CreateFile(path string) (io.WriteCloser, error) {
	if err := check(f.CreateFault, path); err != nil {
		return nil, err
	}
	wc, err := f.inner.CreateFile(path)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	f.creates++
	f.mu.Unlock()
	return &faultWriter{fs: f, path: path, wc: wc}, nil
}

func (f *FS) OpenFile(path string) (io.ReadCloser, error) {
	if err := check(f.OpenFault, path); err != nil {
		return nil, err
	}
	rc, err := f.inner.OpenFile(path)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	f.opened++
	if f.opened > f.maxOpen {
		f.maxOpen = f.opened
	}
	f.mu.Unlock()
	return &trackedReader{fs: f, rc: rc}, nil
}

func (f *FS) DeleteFile(path string) error {
	f.mu.Lock()
	f.deletes[path]++
	f.mu.Unlock()
	if err := check(f.DeleteFault, path); err != nil {
		return err
	}
	return f.inner.DeleteFile(path)
}

func (f *FS) CreateDirectory(path string) error {
	return f.inner.CreateDirectory(path)
}

func (f *FS) RemoveDirectory(path string) error {
	f.mu.Lock()
	f.removals++
	f.mu.Unlock()
	if err := check(f.RemoveDirFault, path); err != nil {
		return err
	}
	return f.inner.RemoveDirectory(path)
}

// DeleteCount returns how many times DeleteFile was called for path.
func (f *FS) DeleteCount(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.deletes[path]
}

// Deletes returns a snapshot of DeleteFile calls per path.
func (f *FS) Deletes() map[string]int {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]int, len(f.deletes))
	for k, v := range f.deletes {
		out[k] = v
	}
	return out
}

// OpenReaders returns how many files opened for reading are still open.
func (f *FS) OpenReaders() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.opened
}

// MaxOpenReaders returns the peak number of simultaneously open readers.
func (f *FS) MaxOpenReaders() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.maxOpen
}

// Creates returns how many files were created.
func (f *FS) Creates() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.creates
}

// DirRemovals returns how many times RemoveDirectory was called.
func (f *FS) DirRemovals() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.removals
}

type faultWriter struct {
	fs   *FS
	path string
	wc   io.WriteCloser
}

func (w *faultWriter) Write(p []byte) (int, error) {
	if err := check(w.fs.WriteFault, w.path); err != nil {
		return 0, err
	}
	return w.wc.Write(p)
}

func (w *faultWriter) Close() error {
	return w.wc.Close()
}

type trackedReader struct {
	fs     *FS
	rc     io.ReadCloser
	closed bool
}

func (r *trackedReader) Read(p []byte) (int, error) {
	return r.rc.Read(p)
}

func (r *trackedReader) Close() error {
	if !r.closed {
		r.closed = true
		r.fs.mu.Lock()
		r.fs.opened--
		r.fs.mu.Unlock()
	}
	return r.rc.Close()
}
