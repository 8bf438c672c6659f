package sketch

import (
	"github.com/pkg/errors"

	"github.com/rkcad/rk/spatialmath"
	"github.com/rkcad/rk/uid"
)

// Sketch owns a set of entities and constraints on a plane, plus the
// latest constraint-solve result. Invariants (enforced by this type's
// methods): every constraint references only UIDs present in entities;
// the plane basis stays orthonormal.
type Sketch struct {
	ID   uid.UID
	Name string
	Plane spatialmath.Plane

	entities    map[uid.UID]Entity
	constraints map[uid.UID]Constraint
	construction uid.Set

	solved bool
	dof    int
	lastResult SolveResult
}

// New creates an empty sketch on the given plane.
func New(name string, plane spatialmath.Plane) *Sketch {
	return NewWithID(uid.New(), name, plane)
}

// NewWithID creates an empty sketch with an explicit UID (used when
// restoring from a project file).
func NewWithID(id uid.UID, name string, plane spatialmath.Plane) *Sketch {
	return &Sketch{
		ID:           id,
		Name:         name,
		Plane:        plane,
		entities:     make(map[uid.UID]Entity),
		constraints:  make(map[uid.UID]Constraint),
		construction: uid.NewSet(),
	}
}

// Solved reports whether the last solve() converged and whether the
// sketch has been mutated since.
func (s *Sketch) Solved() bool { return s.solved }

// DoF returns the free degree-of-freedom count from the last solve.
func (s *Sketch) DoF() int { return s.dof }

// LastResult returns the most recent solve outcome.
func (s *Sketch) LastResult() SolveResult { return s.lastResult }

// Entities returns the entity table. Callers must not mutate the
// returned map directly; use AddEntity/RemoveEntity.
func (s *Sketch) Entities() map[uid.UID]Entity { return s.entities }

// Constraints returns the constraint table.
func (s *Sketch) Constraints() map[uid.UID]Constraint { return s.constraints }

// Entity looks up a single entity by UID.
func (s *Sketch) Entity(id uid.UID) (Entity, bool) {
	e, ok := s.entities[id]
	return e, ok
}

// AddEntity inserts an entity and clears the solved flag.
func (s *Sketch) AddEntity(e Entity) {
	s.entities[e.UID()] = e
	s.markDirty()
}

// RemoveEntity deletes an entity and cascades: every constraint that
// references it, directly or through a dependent curve, is removed
// atomically. Point deletion also removes any curve entity that
// referenced the point, since such a curve can no longer be evaluated.
func (s *Sketch) RemoveEntity(id uid.UID) {
	if _, ok := s.entities[id]; !ok {
		return
	}
	delete(s.entities, id)
	s.construction.Remove(id)

	removed := uid.NewSet(id)
	for otherID, e := range s.entities {
		for _, ref := range e.PointRefs() {
			if ref == id {
				delete(s.entities, otherID)
				removed.Add(otherID)
				break
			}
		}
	}
	for cid, c := range s.constraints {
		for rid := range removed {
			if referencesAny(c.Refs, rid) {
				delete(s.constraints, cid)
				break
			}
		}
	}
	s.markDirty()
}

func referencesAny(refs []uid.UID, id uid.UID) bool {
	for _, r := range refs {
		if r == id {
			return true
		}
	}
	return false
}

// AddConstraint validates that every referenced UID exists as an
// entity, else returns ErrEntityNotFound, and otherwise inserts the
// constraint and clears the solved flag.
func (s *Sketch) AddConstraint(c Constraint) error {
	for _, ref := range c.Refs {
		if _, ok := s.entities[ref]; !ok {
			return errors.Wrapf(ErrEntityNotFound, "constraint %s references missing entity %s", c.ID, ref)
		}
	}
	s.constraints[c.ID] = c
	s.markDirty()
	return nil
}

// RemoveConstraint deletes a constraint by UID; a no-op if absent.
func (s *Sketch) RemoveConstraint(id uid.UID) {
	if _, ok := s.constraints[id]; !ok {
		return
	}
	delete(s.constraints, id)
	s.markDirty()
}

// SetConstruction toggles whether an entity is construction geometry
// (excluded from profile extraction).
func (s *Sketch) SetConstruction(id uid.UID, construction bool) {
	if construction {
		s.construction.Add(id)
	} else {
		s.construction.Remove(id)
	}
	s.markDirty()
}

// IsConstruction reports whether id is marked as construction geometry.
func (s *Sketch) IsConstruction(id uid.UID) bool {
	return s.construction.Contains(id)
}

func (s *Sketch) markDirty() {
	s.solved = false
}

// Clone deep-copies the sketch's entity/constraint/construction tables
// (entities and constraints are treated as immutable value objects,
// always replaced wholesale rather than mutated in place, so copying
// the map headers is sufficient to make the clone independent). Used
// by editor's undo snapshots.
func (s *Sketch) Clone() *Sketch {
	out := &Sketch{
		ID:           s.ID,
		Name:         s.Name,
		Plane:        s.Plane,
		entities:     make(map[uid.UID]Entity, len(s.entities)),
		constraints:  make(map[uid.UID]Constraint, len(s.constraints)),
		construction: make(uid.Set, len(s.construction)),
		solved:       s.solved,
		dof:          s.dof,
		lastResult:   s.lastResult,
	}
	for id, e := range s.entities {
		out.entities[id] = e
	}
	for id, c := range s.constraints {
		out.constraints[id] = c
	}
	for id := range s.construction {
		out.construction.Add(id)
	}
	return out
}

// Solve runs the constraint solver over the current entities and
// constraints, records the result, and applies any position updates
// back onto the sketch's points.
func (s *Sketch) Solve() SolveResult {
	result, positions := NewSolver().Solve(s.entities, s.constraints)
	for id, pos := range positions {
		if pt, ok := s.entities[id].(Point); ok {
			pt.Pos = pos
			s.entities[id] = pt
		}
	}
	s.lastResult = result
	s.dof = result.DoF
	s.solved = result.Status == FullyConstrained || result.Status == UnderConstrained
	return result
}
