package internal

import "github.com/pkg/errors"

// Threading errors through every flip, walk and cavity fill would add a ton of
// noise to the mesh code. Broken invariants and misuse (stale handles, points
// outside a trimmed mesh) panic instead, and the public API recovers them into
// errors.

// ErrQualityNotReached is returned by refinement when the iteration cap is
// exhausted before every triangle meets the configured bounds. The mesh is
// still a valid constrained Delaunay triangulation when this is returned.
var ErrQualityNotReached = errors.New("could not reach target quality")

type TriangulateError struct {
	cause error
}

func (e TriangulateError) Error() string {
	return e.cause.Error()
}

func (e TriangulateError) Unwrap() error {
	return e.cause
}

// Panic with a TriangulateError.
func fatalf(format string, args ...interface{}) {
	panic(TriangulateError{errors.Errorf(format, args...)})
}

// Convert a recovered TriangulateError into an error. Any other panic value is
// re-raised.
func HandleTriangulatePanicRecover(r interface{}) error {
	if r != nil {
		if triangulateError, ok := r.(TriangulateError); ok {
			return triangulateError
		}
		panic(r)
	}
	return nil
}
