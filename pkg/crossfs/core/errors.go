package core

import (
	"errors"
	"fmt"
	"io/fs"
	"syscall"
)

// ErrNotSupported marks operations no combination of paths can satisfy, such
// as copying something that is neither a file nor a directory.
var ErrNotSupported = fmt.Errorf("crossfs: %w", errors.ErrUnsupported)

// Code returns the OS error code carried by err, or 0 when err is nil or
// does not wrap one.
func Code(err error) syscall.Errno {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return errno
	}
	return 0
}

// IsNotExist reports whether err means the target does not exist.
func IsNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

// IsNotEmpty reports whether err means a directory still has entries.
// Some platforms report EEXIST instead of ENOTEMPTY from rmdir.
func IsNotEmpty(err error) bool {
	return errors.Is(err, syscall.ENOTEMPTY) || errors.Is(err, syscall.EEXIST)
}

// OperationError records which bulk operation failed on which path.
type OperationError struct {
	Op   string
	Path string
	Err  error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

// ValidationError represents an error found while validating a batch
// operation before it runs.
type ValidationError struct {
	OperationID   OperationID
	OperationDesc OperationDesc
	Reason        string
	Cause         error
}

func (e *ValidationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("validation error for operation %s (%s): %s: %v",
			e.OperationID, e.OperationDesc.Path, e.Reason, e.Cause)
	}
	return fmt.Sprintf("validation error for operation %s (%s): %s",
		e.OperationID, e.OperationDesc.Path, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// DependencyError reports dependencies that are not part of the batch.
type DependencyError struct {
	OperationID OperationID
	Missing     []OperationID
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("dependency error for operation %s: missing dependencies %v",
		e.OperationID, e.Missing)
}
