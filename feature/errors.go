// Package feature implements the ordered feature history and its
// deterministic rebuild into a map of named bodies, per spec.md §4.5.
package feature

import "github.com/pkg/errors"

var (
	// ErrSketchNotFound is returned when a feature references a sketch
	// UID not present in the history's sketch pool.
	ErrSketchNotFound = errors.New("sketch not found")
	// ErrBodyNotFound is returned when a feature references a target
	// body UID that does not exist (or failed in an earlier feature).
	ErrBodyNotFound = errors.New("body not found")
	// ErrMissingTargetBody is returned when a boolean op other than New
	// is requested without a target body.
	ErrMissingTargetBody = errors.New("boolean operation requires a target body")
	// ErrRebuildFailed aggregates one or more per-feature failures; the
	// rebuild itself still completes across the remaining features.
	ErrRebuildFailed = errors.New("rebuild failed for one or more features")
)
