package errors_test

import (
	stdErrors "errors"
	"fmt"
	"syscall"
	"testing"
	"time"

	"github.com/NamanBalaji/fman/internal/errors"
)

func TestSortErrorError(t *testing.T) {
	baseErr := stdErrors.New("underlying error")
	se := &errors.SortError{
		Err:       baseErr,
		Category:  errors.CategoryIO,
		Phase:     errors.PhaseWriteChunk,
		Timestamp: time.Now(),
		Resource:  "/tmp/fman-1/chunk-000001",
	}
	expected := "[IO] write chunk /tmp/fman-1/chunk-000001: underlying error"
	if se.Error() != expected {
		t.Errorf("expected %q, got %q", expected, se.Error())
	}

	se2 := &errors.SortError{
		Err:      stdErrors.New("chunk size must be positive"),
		Category: errors.CategoryConfig,
		Phase:    errors.PhaseValidate,
	}
	expected2 := "[CONFIG] validate: chunk size must be positive"
	if se2.Error() != expected2 {
		t.Errorf("expected %q, got %q", expected2, se2.Error())
	}
}

func TestSortErrorUnwrap(t *testing.T) {
	baseErr := stdErrors.New("base error")
	se := errors.NewIOError(baseErr, errors.PhaseReadInput, "in.txt")
	if !errors.Is(se, baseErr) {
		t.Errorf("expected errors.Is to find the underlying error")
	}
	if stdErrors.Unwrap(se) != baseErr {
		t.Errorf("expected underlying error %v, got %v", baseErr, stdErrors.Unwrap(se))
	}
}

func TestNewIOError(t *testing.T) {
	baseErr := stdErrors.New("io error")
	se := errors.NewIOError(baseErr, errors.PhaseWriteOutput, "out.txt")
	if se.Category != errors.CategoryIO || se.Phase != errors.PhaseWriteOutput || se.Resource != "out.txt" {
		t.Error("NewIOError did not set fields correctly")
	}
	if se.Timestamp.IsZero() {
		t.Error("Timestamp not set in NewIOError")
	}
}

func TestNewIOError_DiskFullIsResource(t *testing.T) {
	wrapped := fmt.Errorf("write chunk: %w", syscall.ENOSPC)
	se := errors.NewIOError(wrapped, errors.PhaseWriteChunk, "chunk")
	if se.Category != errors.CategoryResource {
		t.Errorf("expected CategoryResource for ENOSPC, got %s", se.Category)
	}
	if !errors.IsResourceError(se) {
		t.Error("expected IsResourceError to be true")
	}

	se2 := errors.NewIOError(errors.ErrNoSpace, errors.PhaseWriteOutput, "out")
	if !errors.IsResourceError(se2) {
		t.Error("expected ErrNoSpace to be classified as resource exhaustion")
	}
}

func TestNewConfigError(t *testing.T) {
	se := errors.NewConfigError(stdErrors.New("bad"), "job")
	if !errors.IsConfigError(se) || se.Phase != errors.PhaseValidate {
		t.Error("NewConfigError did not set fields correctly")
	}
	if errors.IsIOError(se) {
		t.Error("config error must not be reported as I/O error")
	}
}

func TestPhaseAndResourceOf(t *testing.T) {
	se := errors.NewIOError(stdErrors.New("boom"), errors.PhaseReadChunk, "/tmp/c")
	wrapped := fmt.Errorf("merge: %w", se)

	phase, ok := errors.PhaseOf(wrapped)
	if !ok || phase != errors.PhaseReadChunk {
		t.Errorf("expected phase %q, got %q (ok=%v)", errors.PhaseReadChunk, phase, ok)
	}
	res, ok := errors.ResourceOf(wrapped)
	if !ok || res != "/tmp/c" {
		t.Errorf("expected resource /tmp/c, got %q (ok=%v)", res, ok)
	}

	if _, ok := errors.PhaseOf(stdErrors.New("plain")); ok {
		t.Error("expected no phase for a non-SortError")
	}
	if errors.IsIOError(nil) {
		t.Error("nil must not be an I/O error")
	}
}
