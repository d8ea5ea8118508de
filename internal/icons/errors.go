package icons

import (
	"errors"
	"fmt"
	"io/fs"
	"syscall"
)

// ScanReason classifies why a directory could not be scanned.
type ScanReason string

const (
	ReasonNotFound         ScanReason = "NOT_FOUND"
	ReasonPermissionDenied ScanReason = "PERMISSION_DENIED"
	ReasonInvalidPath      ScanReason = "INVALID_PATH"
	ReasonUnreadable       ScanReason = "UNREADABLE"
)

// ScanError is returned by Resolve instead of an empty manifest when the icon
// directory cannot be listed.
type ScanError struct {
	Reason ScanReason
	Path   string
	Cause  error
}

func (e *ScanError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("icon scan %s: %s", e.Reason, e.Path)
	}
	return fmt.Sprintf("icon scan %s: %s: %v", e.Reason, e.Path, e.Cause)
}

func (e *ScanError) Unwrap() error { return e.Cause }

// IsReason reports whether err is a ScanError with the given reason.
func IsReason(err error, reason ScanReason) bool {
	var se *ScanError
	return errors.As(err, &se) && se.Reason == reason
}

func scanErr(path string, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, syscall.ENOTDIR):
		return &ScanError{Reason: ReasonNotFound, Path: path, Cause: err}
	case errors.Is(err, fs.ErrPermission):
		return &ScanError{Reason: ReasonPermissionDenied, Path: path, Cause: err}
	default:
		return &ScanError{Reason: ReasonUnreadable, Path: path, Cause: err}
	}
}
