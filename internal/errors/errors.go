package errors

import (
	"errors"
	"fmt"
	"syscall"
	"time"
)

var (
	Is     = errors.Is
	As     = errors.As
	New    = errors.New
	Unwrap = errors.Unwrap
)

type ErrorCategory string

const (
	CategoryIO       ErrorCategory = "IO"       // File system issues
	CategoryResource ErrorCategory = "RESOURCE" // Disk full, descriptor budget exceeded
	CategoryConfig   ErrorCategory = "CONFIG"   // Invalid job parameters
)

// Phase identifies the stage of a sort job an error came from.
type Phase string

const (
	PhaseValidate    Phase = "validate"
	PhaseReadInput   Phase = "read input"
	PhaseWriteChunk  Phase = "write chunk"
	PhaseReadChunk   Phase = "read chunk"
	PhaseWriteOutput Phase = "write output"
	PhaseCleanup     Phase = "cleanup"
)

// SortError represents an error that occurred during a sort job
type SortError struct {
	Err       error         // Original error
	Category  ErrorCategory // General category
	Phase     Phase         // Which stage failed
	Resource  string        // Path being accessed
	Timestamp time.Time     // When the error occurred
}

// Error implements the error interface
func (e *SortError) Error() string {
	if e.Resource == "" {
		return fmt.Sprintf("[%s] %s: %v", e.Category, e.Phase, e.Err)
	}
	return fmt.Sprintf("[%s] %s %s: %v", e.Category, e.Phase, e.Resource, e.Err)
}

// Unwrap provides the underlying cause for error unwrapping (compatible with errors.As)
func (e *SortError) Unwrap() error {
	return e.Err
}

// Common sentinel errors
var (
	ErrNoSpace = New("no space left on device")
)

// NewIOError creates an I/O related error. Out-of-space conditions are
// promoted to CategoryResource.
func NewIOError(err error, phase Phase, resource string) *SortError {
	category := CategoryIO
	if isExhausted(err) {
		category = CategoryResource
	}

	return &SortError{
		Err:       err,
		Category:  category,
		Phase:     phase,
		Resource:  resource,
		Timestamp: time.Now(),
	}
}

// NewResourceError creates an error for an exhausted resource.
func NewResourceError(err error, phase Phase, resource string) *SortError {
	return &SortError{
		Err:       err,
		Category:  CategoryResource,
		Phase:     phase,
		Resource:  resource,
		Timestamp: time.Now(),
	}
}

// NewConfigError creates an error for an invalid job description.
func NewConfigError(err error, resource string) *SortError {
	return &SortError{
		Err:       err,
		Category:  CategoryConfig,
		Phase:     PhaseValidate,
		Resource:  resource,
		Timestamp: time.Now(),
	}
}

func isExhausted(err error) bool {
	return Is(err, syscall.ENOSPC) || Is(err, ErrNoSpace) || isQuotaExceeded(err)
}

// IsIOError determines if the error is I/O related
func IsIOError(err error) bool {
	var sortErr *SortError
	return As(err, &sortErr) && sortErr.Category == CategoryIO
}

// IsResourceError determines if the error reports resource exhaustion
func IsResourceError(err error) bool {
	var sortErr *SortError
	return As(err, &sortErr) && sortErr.Category == CategoryResource
}

// IsConfigError determines if the error reports an invalid job
func IsConfigError(err error) bool {
	var sortErr *SortError
	return As(err, &sortErr) && sortErr.Category == CategoryConfig
}

// PhaseOf extracts the failing phase from an error if available
func PhaseOf(err error) (Phase, bool) {
	var sortErr *SortError
	if As(err, &sortErr) {
		return sortErr.Phase, true
	}
	return "", false
}

// ResourceOf extracts the offending path from an error if available
func ResourceOf(err error) (string, bool) {
	var sortErr *SortError
	if As(err, &sortErr) {
		return sortErr.Resource, true
	}
	return "", false
}
