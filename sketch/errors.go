package sketch

import "github.com/pkg/errors"

// Sentinel errors for the sketch aggregate and solver, matched with
// errors.Is by callers; wrapped with errors.Wrap at call sites for
// context.
var (
	ErrEntityNotFound      = errors.New("entity not found")
	ErrConstraintNotFound  = errors.New("constraint not found")
	ErrInvalidConstraint   = errors.New("invalid constraint")
	ErrSolverFailed        = errors.New("solver failed to converge")
	ErrProfileExtraction   = errors.New("profile extraction failed")
)
