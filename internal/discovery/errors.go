package discovery

import (
	"errors"
	"fmt"
	"io/fs"
)

var (
	// ErrNotFound is returned when the resolve root does not exist.
	ErrNotFound = errors.New("not found")
	// ErrPermissionDenied is returned when a directory cannot be read.
	ErrPermissionDenied = errors.New("permission denied")
)

// ResolutionError reports why fixture discovery failed. Discovery is
// all-or-nothing, so no units accompany it.
type ResolutionError struct {
	Path string
	Err  error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resolve %s: %v", e.Path, e.Err)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// resolutionError classifies a filesystem error into the resolver taxonomy.
func resolutionError(path string, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return &ResolutionError{Path: path, Err: fmt.Errorf("%w: %v", ErrNotFound, err)}
	case errors.Is(err, fs.ErrPermission):
		return &ResolutionError{Path: path, Err: fmt.Errorf("%w: %v", ErrPermissionDenied, err)}
	default:
		return &ResolutionError{Path: path, Err: err}
	}
}
