package native_test

import (
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/require"

	"github.com/rkcad/rk/kernel"
	"github.com/rkcad/rk/kernel/native"
	"github.com/rkcad/rk/spatialmath"
)

func rectangleWire(width, height float64) kernel.Wire2D {
	hw, hh := width/2, height/2
	return kernel.NewWire([]spatialmath.Point2{
		{X: -hw, Y: -hh}, {X: hw, Y: -hh}, {X: hw, Y: hh}, {X: -hw, Y: hh},
	}, true)
}

func TestExtrudeRectangleProducesBoxBoundingBox(t *testing.T) {
	k := native.New()
	width, height, depth := 2.0, 3.0, 4.0

	profile := rectangleWire(width, height)
	solid, err := k.Extrude(profile, r3.Vector{}, r3.Vector{X: 1}, r3.Vector{Y: 1}, r3.Vector{Z: 1}, depth)
	require.NoError(t, err)

	mesh, err := k.Tessellate(solid, 0.1)
	require.NoError(t, err)
	require.False(t, mesh.IsEmpty())

	min, max, ok := mesh.BoundingBox()
	require.True(t, ok)
	require.InDelta(t, -width/2, min[0], 1e-6)
	require.InDelta(t, -height/2, min[1], 1e-6)
	require.InDelta(t, 0, min[2], 1e-6)
	require.InDelta(t, width/2, max[0], 1e-6)
	require.InDelta(t, height/2, max[1], 1e-6)
	require.InDelta(t, depth, max[2], 1e-6)
}

func TestBooleanUnionOfCirclesCoversBothBoundingBoxes(t *testing.T) {
	k := native.New()
	circleA := kernel.Circle(spatialmath.Point2{}, 1, 32)
	circleB := kernel.Circle(spatialmath.Point2{X: 1.5}, 1, 32)

	solidA, err := k.Extrude(circleA, r3.Vector{}, r3.Vector{X: 1}, r3.Vector{Y: 1}, r3.Vector{Z: 1}, 1)
	require.NoError(t, err)
	solidB, err := k.Extrude(circleB, r3.Vector{}, r3.Vector{X: 1}, r3.Vector{Y: 1}, r3.Vector{Z: 1}, 1)
	require.NoError(t, err)

	union, err := k.Boolean(solidA, solidB, kernel.Union)
	require.NoError(t, err)

	mesh, err := k.Tessellate(union, 0.1)
	require.NoError(t, err)

	min, max, ok := mesh.BoundingBox()
	require.True(t, ok)
	require.InDelta(t, -1, min[0], 1e-6)
	require.InDelta(t, 2.5, max[0], 1e-6)
}

func TestBooleanSubtractRejectedByNativeKernel(t *testing.T) {
	k := native.New()
	a, err := k.CreateBox(r3.Vector{}, r3.Vector{X: 1, Y: 1, Z: 1})
	require.NoError(t, err)
	b, err := k.CreateBox(r3.Vector{}, r3.Vector{X: 0.5, Y: 0.5, Z: 0.5})
	require.NoError(t, err)

	_, err = k.Boolean(a, b, kernel.Subtract)
	require.Error(t, err)
	require.ErrorIs(t, err, kernel.ErrBooleanFailed)
}

func TestCreateSphereTessellatesNonEmpty(t *testing.T) {
	k := native.New()
	solid, err := k.CreateSphere(r3.Vector{}, 2)
	require.NoError(t, err)
	mesh, err := k.Tessellate(solid, 0.1)
	require.NoError(t, err)
	require.Greater(t, mesh.TriangleCount(), 0)
}
