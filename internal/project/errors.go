package project

import "errors"

// Domain-specific errors for project configuration and simulation runs.
// Use errors.Is() to check for these in calling code.
var (
	// ErrUnknownSection is returned when a configuration file contains a
	// section outside the recognized set.
	ErrUnknownSection = errors.New("project: unrecognized configuration section")

	// ErrInvalidSweep is returned for a sweep request with a bad type or
	// missing parameters.
	ErrInvalidSweep = errors.New("project: invalid sweep")

	// ErrInvalidOutput is returned for an output-file request with an
	// unknown file type, parameter type, or parameter form.
	ErrInvalidOutput = errors.New("project: invalid output file request")

	// ErrNotConfigured is returned when a run is attempted before the
	// project file has been written or the Sonnet installation located.
	ErrNotConfigured = errors.New("project: not configured")
)
