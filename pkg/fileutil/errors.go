package fileutil

import (
	"fmt"

	"github.com/rohmanhakim/robotstxt/pkg/failure"
)

type FileErrorCause string

const (
	ErrCauseNotFound   FileErrorCause = "file not found"
	ErrCauseReadFailed FileErrorCause = "read failed"
)

type FileError struct {
	Path      string
	Message   string
	Retryable bool
	Cause     FileErrorCause
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Cause, e.Path, e.Message)
}

func (e *FileError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}
