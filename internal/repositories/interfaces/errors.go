package interfaces

import "errors"

// Not-found conditions are ordinary outcomes of racing callers, so they are
// sentinel values rather than wrapped driver errors.
var (
	ErrRideNotFound   = errors.New("ride not found")
	ErrDriverNotFound = errors.New("driver profile missing")
)
