package filesystem

import (
	"io"
	"os"
	"path/filepath"
)

// FileSystem is the set of file operations a sort job performs.
type FileSystem interface {
	CreateFile(path string) (io.WriteCloser, error)
	OpenFile(path string) (io.ReadCloser, error)
	DeleteFile(path string) error
	CreateDirectory(path string) error
	RemoveDirectory(path string) error
}

// OSFileSystem implements the FileSystem interface using OS file operations
type OSFileSystem struct{}

// NewOSFileSystem creates a new OS filesystem
func NewOSFileSystem() *OSFileSystem {
	return &OSFileSystem{}
}

// CreateFile creates or truncates a file
func (fs *OSFileSystem) CreateFile(path string) (io.WriteCloser, error) {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	return os.Create(path)
}

// OpenFile opens an existing file
func (fs *OSFileSystem) OpenFile(path string) (io.ReadCloser, error) {
	return os.Open(path)
}

// DeleteFile deletes a file
func (fs *OSFileSystem) DeleteFile(path string) error {
	return os.Remove(path)
}

// CreateDirectory creates exactly one new directory and fails if it exists
func (fs *OSFileSystem) CreateDirectory(path string) error {
	return os.Mkdir(path, 0o700)
}

// RemoveDirectory removes an empty directory
func (fs *OSFileSystem) RemoveDirectory(path string) error {
	return os.Remove(path)
}
