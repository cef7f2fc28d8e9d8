package density

import (
	"errors"
	"fmt"
)

// Domain-specific errors for current-density file handling.
// Use errors.Is() / errors.As() to check for these in calling code.
var (
	// ErrMalformedHeader is returned when a header cell fails numeric or
	// structural parsing. The wrapping message names the offending field.
	ErrMalformedHeader = errors.New("density: malformed header")

	// ErrInvalidArgument is returned for bad call parameters, e.g. a trim
	// request with no bounds.
	ErrInvalidArgument = errors.New("density: invalid argument")

	// ErrOutOfDomain is returned by a bounded interpolant when the
	// evaluation point lies outside the grid's bounding box.
	ErrOutOfDomain = errors.New("density: point outside data grid")
)

// InvalidPortError is returned when a drive voltage or phase is requested
// for a port that does not appear in the file header.
type InvalidPortError struct {
	Port  int   // the port that was requested
	Ports []int // the ports actually present, in header order
}

func (e *InvalidPortError) Error() string {
	return fmt.Sprintf("density: %d is not a valid port number, use one of %v", e.Port, e.Ports)
}
