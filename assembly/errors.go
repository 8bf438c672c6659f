// Package assembly implements the kinematic assembly graph: links
// connected by joints, cycle-free invariants, and joint-position-driven
// forward kinematics, per spec.md §4.6.
package assembly

import "github.com/pkg/errors"

var (
	ErrLinkNotFound         = errors.New("link not found")
	ErrJointNotFound        = errors.New("joint not found")
	ErrAlreadyHasParent     = errors.New("child link already has a parent")
	ErrWouldCreateCycle     = errors.New("connecting would create a cycle")
	ErrCollisionIndexRange  = errors.New("collision element index out of range")
)
