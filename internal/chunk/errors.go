package chunk

import "errors"

var (
	ErrChunkTempDirCreate = errors.New("failed to create chunk temp directory")
	ErrChunkFileCreate    = errors.New("failed to create chunk file")
	ErrChunkFileWrite     = errors.New("failed to write chunk file")
	ErrChunkFileOpen      = errors.New("failed to open chunk file")
	ErrChunkFileRead      = errors.New("failed to read chunk file")
	ErrChunkFileRemove    = errors.New("failed to remove chunk file during cleanup")
	ErrChunkDirRemove     = errors.New("failed to remove chunk temp directory during cleanup")
	ErrWriterClosed       = errors.New("chunk writer already closed")
)
