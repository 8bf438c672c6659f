package spatialmath

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
)

// Plane is the 3D frame a sketch is drawn on: an origin, a unit normal, and
// an orthonormal in-plane X/Y basis satisfying x_axis ⊥ normal and
// y_axis = normal × x_axis.
type Plane struct {
	Origin r3.Vector
	Normal r3.Vector
	XAxis  r3.Vector
	YAxis  r3.Vector
}

// PlaneXY is the reference XY plane at the origin (Z = 0).
func PlaneXY() Plane {
	return Plane{Origin: r3.Vector{}, Normal: r3.Vector{Z: 1}, XAxis: r3.Vector{X: 1}, YAxis: r3.Vector{Y: 1}}
}

// PlaneXZ is the reference XZ plane at the origin (Y = 0).
func PlaneXZ() Plane {
	return Plane{Origin: r3.Vector{}, Normal: r3.Vector{Y: -1}, XAxis: r3.Vector{X: 1}, YAxis: r3.Vector{Z: 1}}
}

// PlaneYZ is the reference YZ plane at the origin (X = 0).
func PlaneYZ() Plane {
	return Plane{Origin: r3.Vector{}, Normal: r3.Vector{X: 1}, XAxis: r3.Vector{Y: 1}, YAxis: r3.Vector{Z: 1}}
}

// NewPlane builds a custom plane from an origin, normal and a candidate
// in-plane X axis; the X axis is re-orthogonalized against the normal and
// the Y axis is derived as normal × x_axis, then all three are
// normalized, preserving the invariant sketches depend on.
func NewPlane(origin, normal, xHint r3.Vector) Plane {
	normal = normal.Normalize()
	// Project xHint into the plane, then normalize.
	xAxis := xHint.Sub(normal.Mul(xHint.Dot(normal))).Normalize()
	yAxis := normal.Cross(xAxis).Normalize()
	return Plane{Origin: origin, Normal: normal, XAxis: xAxis, YAxis: yAxis}
}

// Point2 is a point in the plane's local 2D coordinate system.
type Point2 struct {
	X, Y float64
}

// ToWorld maps a local 2D sketch point into 3D world space.
func (p Plane) ToWorld(pt Point2) r3.Vector {
	return p.Origin.Add(p.XAxis.Mul(pt.X)).Add(p.YAxis.Mul(pt.Y))
}

// ToLocal projects a 3D world point onto the plane and returns its local
// 2D coordinates.
func (p Plane) ToLocal(world r3.Vector) Point2 {
	rel := world.Sub(p.Origin)
	return Point2{X: rel.Dot(p.XAxis), Y: rel.Dot(p.YAxis)}
}

// Transform returns the 4x4 matrix mapping plane-local coordinates
// (x, y, 0) to world space.
func (p Plane) Transform() mgl64.Mat4 {
	return mgl64.Mat4{
		p.XAxis.X, p.XAxis.Y, p.XAxis.Z, 0,
		p.YAxis.X, p.YAxis.Y, p.YAxis.Z, 0,
		p.Normal.X, p.Normal.Y, p.Normal.Z, 0,
		p.Origin.X, p.Origin.Y, p.Origin.Z, 1,
	}
}

// IsOrthonormal reports whether the plane's basis still satisfies the
// sketch-plane invariants (unit length axes, x_axis ⊥ normal, y_axis the
// cross product of normal and x_axis) within tol.
func (p Plane) IsOrthonormal(tol float64) bool {
	unit := func(v r3.Vector) bool {
		return abs(v.Norm()-1) <= tol
	}
	if !unit(p.Normal) || !unit(p.XAxis) || !unit(p.YAxis) {
		return false
	}
	if abs(p.XAxis.Dot(p.Normal)) > tol {
		return false
	}
	expectedY := p.Normal.Cross(p.XAxis)
	return ApproxEqual(p.YAxis, expectedY, tol)
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
