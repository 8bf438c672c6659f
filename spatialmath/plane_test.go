package spatialmath_test

import (
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/require"

	"github.com/rkcad/rk/spatialmath"
)

func TestPlaneXYRoundTrip(t *testing.T) {
	plane := spatialmath.PlaneXY()
	require.True(t, plane.IsOrthonormal(1e-9))

	pt := spatialmath.Point2{X: 3, Y: -2}
	world := plane.ToWorld(pt)
	require.True(t, spatialmath.ApproxEqual(r3.Vector{X: 3, Y: -2, Z: 0}, world, 1e-9))

	back := plane.ToLocal(world)
	require.InDelta(t, pt.X, back.X, 1e-9)
	require.InDelta(t, pt.Y, back.Y, 1e-9)
}

func TestNewPlaneOrthogonalizesXAxis(t *testing.T) {
	plane := spatialmath.NewPlane(r3.Vector{}, r3.Vector{Z: 1}, r3.Vector{X: 1, Z: 0.5})
	require.True(t, plane.IsOrthonormal(1e-9))
}

func TestPlaneXZAndYZ(t *testing.T) {
	require.True(t, spatialmath.PlaneXZ().IsOrthonormal(1e-9))
	require.True(t, spatialmath.PlaneYZ().IsOrthonormal(1e-9))
}
