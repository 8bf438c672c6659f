// Package uid defines the stable 128-bit identifier used throughout the
// CAD/assembly data model. Every sketch entity, constraint, feature, body,
// link, joint and part is addressed by UID rather than by index or pointer,
// so that reordering a collection or serializing/deserializing it never
// invalidates a cross-reference.
package uid

import (
	"encoding/json"

	"github.com/google/uuid"
)

// UID is a stable 128-bit identifier backed by a UUID.
type UID uuid.UUID

// Nil is the zero-value UID, used as a sentinel for "no reference".
var Nil = UID(uuid.Nil)

// New mints a fresh random UID.
func New() UID {
	return UID(uuid.New())
}

// String renders the UID in canonical hyphenated form.
func (u UID) String() string {
	return uuid.UUID(u).String()
}

// IsNil reports whether this is the zero-value UID.
func (u UID) IsNil() bool {
	return u == Nil
}

// MarshalJSON renders the UID as its canonical string form.
func (u UID) MarshalJSON() ([]byte, error) {
	return json.Marshal(uuid.UUID(u).String())
}

// UnmarshalJSON parses a canonical UID string.
func (u *UID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := uuid.Parse(s)
	if err != nil {
		return err
	}
	*u = UID(parsed)
	return nil
}

// MarshalYAML renders the UID as its canonical string form.
func (u UID) MarshalYAML() (interface{}, error) {
	return uuid.UUID(u).String(), nil
}

// UnmarshalYAML parses a canonical UID string.
func (u *UID) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	if s == "" {
		*u = Nil
		return nil
	}
	parsed, err := uuid.Parse(s)
	if err != nil {
		return err
	}
	*u = UID(parsed)
	return nil
}

// Set is a small helper for deduplicated collections of UIDs, used by the
// assembly cycle check and the sketch profile tracer.
type Set map[UID]struct{}

// NewSet builds a Set from the given UIDs.
func NewSet(ids ...UID) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Add inserts id into the set.
func (s Set) Add(id UID) {
	s[id] = struct{}{}
}

// Contains reports whether id is a member of the set.
func (s Set) Contains(id UID) bool {
	_, ok := s[id]
	return ok
}

// Remove deletes id from the set; a no-op if absent.
func (s Set) Remove(id UID) {
	delete(s, id)
}
