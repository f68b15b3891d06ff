// Package fileutil reads a local robots.txt file, surfacing I/O failures
// as failure.ClassifiedError the way the rest of the CLI layer does
// rather than a bare error.
package fileutil

import (
	"errors"
	"os"

	"github.com/rohmanhakim/robotstxt/pkg/failure"
)

// ReadRobotsFile reads the entire contents of path. File-not-found and
// other read failures are both fatal — there is nothing to retry when
// reading a local file once.
func ReadRobotsFile(path string) ([]byte, failure.ClassifiedError) {
	data, err := os.ReadFile(path)
	if err == nil {
		return data, nil
	}

	cause := ErrCauseReadFailed
	if errors.Is(err, os.ErrNotExist) {
		cause = ErrCauseNotFound
	}
	return nil, &FileError{
		Path:      path,
		Message:   err.Error(),
		Retryable: false,
		Cause:     cause,
	}
}
