package spatialmath_test

import (
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/require"

	"github.com/rkcad/rk/spatialmath"
)

func TestRayAABBIntersectionHit(t *testing.T) {
	box := spatialmath.AABB{Min: r3.Vector{X: -1, Y: -1, Z: -1}, Max: r3.Vector{X: 1, Y: 1, Z: 1}}
	ray := spatialmath.Ray{Origin: r3.Vector{Z: -5}, Direction: r3.Vector{Z: 1}}

	tHit, ok := spatialmath.RayAABBIntersection(ray, box)
	require.True(t, ok)
	require.InDelta(t, 4, tHit, 1e-9)
}

func TestRayAABBIntersectionMiss(t *testing.T) {
	box := spatialmath.AABB{Min: r3.Vector{X: -1, Y: -1, Z: -1}, Max: r3.Vector{X: 1, Y: 1, Z: 1}}
	ray := spatialmath.Ray{Origin: r3.Vector{X: 10, Z: -5}, Direction: r3.Vector{Z: 1}}

	_, ok := spatialmath.RayAABBIntersection(ray, box)
	require.False(t, ok)
}

func TestRayTriangleIntersection(t *testing.T) {
	a := r3.Vector{X: -1, Y: -1}
	b := r3.Vector{X: 1, Y: -1}
	c := r3.Vector{Y: 1}
	ray := spatialmath.Ray{Origin: r3.Vector{Z: -5}, Direction: r3.Vector{Z: 1}}

	tHit, ok := spatialmath.RayTriangleIntersection(ray, a, b, c)
	require.True(t, ok)
	require.InDelta(t, 5, tHit, 1e-9)
}

func TestRayTriangleIntersectionBehindRay(t *testing.T) {
	a := r3.Vector{X: -1, Y: -1}
	b := r3.Vector{X: 1, Y: -1}
	c := r3.Vector{Y: 1}
	ray := spatialmath.Ray{Origin: r3.Vector{Z: 5}, Direction: r3.Vector{Z: 1}}

	_, ok := spatialmath.RayTriangleIntersection(ray, a, b, c)
	require.False(t, ok)
}

func TestPlaneIntersection(t *testing.T) {
	ray := spatialmath.Ray{Origin: r3.Vector{X: 2, Y: 3, Z: -5}, Direction: r3.Vector{Z: 1}}
	tHit, ok := spatialmath.PlaneIntersection(ray, r3.Vector{}, r3.Vector{Z: 1})
	require.True(t, ok)
	require.InDelta(t, 5, tHit, 1e-9)
}

func TestSnapToGrid(t *testing.T) {
	p := spatialmath.Point2{X: 1.24, Y: -0.76}
	snapped := spatialmath.SnapToGrid(p, 0.5)
	require.InDelta(t, 1.0, snapped.X, 1e-9)
	require.InDelta(t, -1.0, snapped.Y, 1e-9)

	unsnapped := spatialmath.SnapToGrid(p, 0)
	require.Equal(t, p, unsnapped)
}
