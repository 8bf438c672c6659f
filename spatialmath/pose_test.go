package spatialmath_test

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/require"

	"github.com/rkcad/rk/spatialmath"
)

func TestIdentityPoseIsNoOp(t *testing.T) {
	p := spatialmath.IdentityPose
	v := r3.Vector{X: 1, Y: 2, Z: 3}
	out := spatialmath.TransformPoint(p.ToMat4(), v)
	require.True(t, spatialmath.ApproxEqual(v, out, 1e-9))
}

func TestPoseTranslation(t *testing.T) {
	p := spatialmath.NewPoseFromPosition(r3.Vector{X: 1, Y: 2, Z: 3})
	out := spatialmath.TransformPoint(p.ToMat4(), r3.Vector{})
	require.True(t, spatialmath.ApproxEqual(r3.Vector{X: 1, Y: 2, Z: 3}, out, 1e-9))
}

func TestAxisRotationQuarterTurnAboutZ(t *testing.T) {
	m := spatialmath.AxisRotation(r3.Vector{Z: 1}, math.Pi/2)
	out := spatialmath.TransformDirection(m, r3.Vector{X: 1})
	require.True(t, spatialmath.ApproxEqual(r3.Vector{Y: 1}, out, 1e-6))
}

func TestAxisTranslation(t *testing.T) {
	m := spatialmath.AxisTranslation(r3.Vector{X: 1}, 5)
	out := spatialmath.TransformPoint(m, r3.Vector{})
	require.True(t, spatialmath.ApproxEqual(r3.Vector{X: 5}, out, 1e-9))
}
