// Package sketch implements the 2D sketch aggregate: entities,
// constraints, the numerical constraint solver, and closed-profile
// extraction for feature consumption.
package sketch

import (
	"github.com/rkcad/rk/spatialmath"
	"github.com/rkcad/rk/uid"
)

// EntityKind tags the concrete type of an Entity without a type switch
// at every call site.
type EntityKind int

const (
	KindPoint EntityKind = iota
	KindLine
	KindArc
	KindCircle
	KindEllipse
	KindSpline
)

func (k EntityKind) String() string {
	switch k {
	case KindPoint:
		return "Point"
	case KindLine:
		return "Line"
	case KindArc:
		return "Arc"
	case KindCircle:
		return "Circle"
	case KindEllipse:
		return "Ellipse"
	case KindSpline:
		return "Spline"
	default:
		return "Unknown"
	}
}

// Entity is implemented by every sketch geometry variant. Point is the
// sole holder of 2D position; every other entity is relational, storing
// only the UIDs of the points that define it.
type Entity interface {
	UID() uid.UID
	Kind() EntityKind
	// DoF returns the entity's contribution to the sketch's free
	// variable count before any constraints are applied.
	DoF() int
	// PointRefs returns the UIDs of points this entity depends on, used
	// for cascade-delete and profile tracing.
	PointRefs() []uid.UID
}

// Point is the only entity carrying an explicit position; every curve
// entity refers to points by UID.
type Point struct {
	ID  uid.UID
	Pos spatialmath.Point2
}

func (p Point) UID() uid.UID           { return p.ID }
func (p Point) Kind() EntityKind       { return KindPoint }
func (p Point) DoF() int               { return 2 }
func (p Point) PointRefs() []uid.UID   { return nil }

// NewPoint mints a Point at the given local coordinates.
func NewPoint(pos spatialmath.Point2) Point {
	return Point{ID: uid.New(), Pos: pos}
}

// Line is a straight segment between two named points.
type Line struct {
	ID            uid.UID
	StartID, EndID uid.UID
}

func (l Line) UID() uid.UID         { return l.ID }
func (l Line) Kind() EntityKind     { return KindLine }
func (l Line) DoF() int             { return 0 }
func (l Line) PointRefs() []uid.UID { return []uid.UID{l.StartID, l.EndID} }

// NewLine mints a Line referencing existing point UIDs.
func NewLine(start, end uid.UID) Line {
	return Line{ID: uid.New(), StartID: start, EndID: end}
}

// Arc is a circular arc from start to end about a center point, with an
// explicit radius (one extra DoF beyond the referenced points).
type Arc struct {
	ID                       uid.UID
	CenterID, StartID, EndID uid.UID
	Radius                   float64
}

func (a Arc) UID() uid.UID         { return a.ID }
func (a Arc) Kind() EntityKind     { return KindArc }
func (a Arc) DoF() int             { return 1 }
func (a Arc) PointRefs() []uid.UID { return []uid.UID{a.CenterID, a.StartID, a.EndID} }

// NewArc mints an Arc.
func NewArc(center, start, end uid.UID, radius float64) Arc {
	return Arc{ID: uid.New(), CenterID: center, StartID: start, EndID: end, Radius: radius}
}

// Circle is a full circle about a center point with an explicit radius.
type Circle struct {
	ID       uid.UID
	CenterID uid.UID
	Radius   float64
}

func (c Circle) UID() uid.UID         { return c.ID }
func (c Circle) Kind() EntityKind     { return KindCircle }
func (c Circle) DoF() int             { return 1 }
func (c Circle) PointRefs() []uid.UID { return []uid.UID{c.CenterID} }

// NewCircle mints a Circle.
func NewCircle(center uid.UID, radius float64) Circle {
	return Circle{ID: uid.New(), CenterID: center, Radius: radius}
}

// Ellipse is centered on a point with a major/minor radius pair and an
// in-plane rotation.
type Ellipse struct {
	ID                 uid.UID
	CenterID           uid.UID
	Major, Minor, Rot  float64
}

func (e Ellipse) UID() uid.UID         { return e.ID }
func (e Ellipse) Kind() EntityKind     { return KindEllipse }
func (e Ellipse) DoF() int             { return 3 }
func (e Ellipse) PointRefs() []uid.UID { return []uid.UID{e.CenterID} }

// NewEllipse mints an Ellipse.
func NewEllipse(center uid.UID, major, minor, rot float64) Ellipse {
	return Ellipse{ID: uid.New(), CenterID: center, Major: major, Minor: minor, Rot: rot}
}

// Spline is an (optionally closed) curve through an ordered list of
// control points; it is visualization/profile-extraction-only — the
// constraint solver contributes no residual for it (see DESIGN.md).
type Spline struct {
	ID       uid.UID
	Controls []uid.UID
	Closed   bool
}

func (s Spline) UID() uid.UID         { return s.ID }
func (s Spline) Kind() EntityKind     { return KindSpline }
func (s Spline) DoF() int             { return 2 * len(s.Controls) }
func (s Spline) PointRefs() []uid.UID { return s.Controls }

// NewSpline mints a Spline.
func NewSpline(controls []uid.UID, closed bool) Spline {
	return Spline{ID: uid.New(), Controls: append([]uid.UID(nil), controls...), Closed: closed}
}
