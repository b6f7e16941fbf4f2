package sorter

import "github.com/NamanBalaji/fman/internal/errors"

var (
	ErrMissingInput      = errors.New("input path is required")
	ErrMissingOutput     = errors.New("output path is required")
	ErrInvalidChunkSize  = errors.New("max lines per chunk must be positive")
	ErrInvalidOpenChunks = errors.New("max open chunks must not be negative")
	ErrInvalidDirection  = errors.New("direction must be ascending or descending")
	ErrTooManyChunks     = errors.New("chunk count exceeds the open file budget")
)
