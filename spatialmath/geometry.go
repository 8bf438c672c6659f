package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
)

// AABB is an axis-aligned bounding box in world space.
type AABB struct {
	Min, Max r3.Vector
}

// AABBFromPoints computes the AABB enclosing the given points. ok is
// false if points is empty.
func AABBFromPoints(points []r3.Vector) (AABB, bool) {
	if len(points) == 0 {
		return AABB{}, false
	}
	min, max := points[0], points[0]
	for _, p := range points[1:] {
		min = r3.Vector{X: math.Min(min.X, p.X), Y: math.Min(min.Y, p.Y), Z: math.Min(min.Z, p.Z)}
		max = r3.Vector{X: math.Max(max.X, p.X), Y: math.Max(max.Y, p.Y), Z: math.Max(max.Z, p.Z)}
	}
	return AABB{Min: min, Max: max}, true
}

// Ray is an origin and a (not necessarily normalized) direction.
type Ray struct {
	Origin    r3.Vector
	Direction r3.Vector
}

// RayAABBIntersection tests a ray against an AABB using the slab
// method: for each axis, compute the entry/exit parametric distance and
// narrow the running [tmin,tmax] interval; the box is missed if the
// interval becomes empty. Matches the algorithm used by
// original_source's viewport picking code.
func RayAABBIntersection(ray Ray, box AABB) (t float64, hit bool) {
	tmin, tmax := math.Inf(-1), math.Inf(1)

	axes := [3]struct{ o, d, lo, hi float64 }{
		{ray.Origin.X, ray.Direction.X, box.Min.X, box.Max.X},
		{ray.Origin.Y, ray.Direction.Y, box.Min.Y, box.Max.Y},
		{ray.Origin.Z, ray.Direction.Z, box.Min.Z, box.Max.Z},
	}
	for _, a := range axes {
		if math.Abs(a.d) < 1e-12 {
			if a.o < a.lo || a.o > a.hi {
				return 0, false
			}
			continue
		}
		inv := 1 / a.d
		t1 := (a.lo - a.o) * inv
		t2 := (a.hi - a.o) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
		if tmin > tmax {
			return 0, false
		}
	}
	if tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// RayTriangleIntersection implements the Möller–Trumbore algorithm,
// returning the closest positive intersection distance t along the ray.
func RayTriangleIntersection(ray Ray, a, b, c r3.Vector) (t float64, hit bool) {
	const epsilon = 1e-9

	edge1 := b.Sub(a)
	edge2 := c.Sub(a)
	pvec := ray.Direction.Cross(edge2)
	det := edge1.Dot(pvec)
	if math.Abs(det) < epsilon {
		return 0, false
	}
	invDet := 1 / det

	tvec := ray.Origin.Sub(a)
	u := tvec.Dot(pvec) * invDet
	if u < 0 || u > 1 {
		return 0, false
	}

	qvec := tvec.Cross(edge1)
	v := ray.Direction.Dot(qvec) * invDet
	if v < 0 || u+v > 1 {
		return 0, false
	}

	dist := edge2.Dot(qvec) * invDet
	if dist <= epsilon {
		return 0, false
	}
	return dist, true
}

// PlaneIntersection returns the parametric distance t at which ray hits
// the plane through planeOrigin with the given normal, per spec.md
// §4.8's screen→sketch-plane projection formula. ok is false if the
// ray is parallel to the plane.
func PlaneIntersection(ray Ray, planeOrigin, normal r3.Vector) (t float64, ok bool) {
	denom := ray.Direction.Dot(normal)
	if math.Abs(denom) < 1e-12 {
		return 0, false
	}
	t = planeOrigin.Sub(ray.Origin).Dot(normal) / denom
	return t, true
}

// SnapToGrid rounds v to the nearest multiple of spacing. spacing <= 0
// disables snapping (v is returned unchanged).
func SnapToGrid(v Point2, spacing float64) Point2 {
	if spacing <= 0 {
		return v
	}
	return Point2{
		X: math.Round(v.X/spacing) * spacing,
		Y: math.Round(v.Y/spacing) * spacing,
	}
}
