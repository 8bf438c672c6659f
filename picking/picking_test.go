package picking_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/require"

	"github.com/rkcad/rk/kernel"
	"github.com/rkcad/rk/picking"
	"github.com/rkcad/rk/spatialmath"
	"github.com/rkcad/rk/uid"
)

func unitCubeMesh() kernel.Mesh {
	v := [][3]float32{
		{-1, -1, -1}, {1, -1, -1}, {1, 1, -1}, {-1, 1, -1},
		{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1},
	}
	idx := []uint32{
		0, 1, 2, 0, 2, 3, // -Z
		4, 6, 5, 4, 7, 6, // +Z
		0, 4, 5, 0, 5, 1, // -Y
		3, 2, 6, 3, 6, 7, // +Y
		0, 3, 7, 0, 7, 4, // -X
		1, 5, 6, 1, 6, 2, // +X
	}
	return kernel.Mesh{Vertices: v, Normals: make([][3]float32, len(v)), Indices: idx}
}

func TestPickHitsNearestCube(t *testing.T) {
	near := picking.Candidate{
		ObjectID:  uid.New(),
		Transform: mgl64.Translate3D(0, 0, -5),
		Mesh:      unitCubeMesh(),
	}
	far := picking.Candidate{
		ObjectID:  uid.New(),
		Transform: mgl64.Translate3D(0, 0, -10),
		Mesh:      unitCubeMesh(),
	}

	ray := spatialmath.Ray{Origin: r3.Vector{}, Direction: r3.Vector{Z: -1}}
	hit, ok := picking.Pick(ray, []picking.Candidate{far, near})
	require.True(t, ok)
	require.Equal(t, near.ObjectID, hit.ObjectID)
	require.InDelta(t, 4, hit.T, 1e-6)
}

func TestPickMissesWhenRayPassesBesideEveryCandidate(t *testing.T) {
	cand := picking.Candidate{
		ObjectID:  uid.New(),
		Transform: mgl64.Translate3D(0, 0, -5),
		Mesh:      unitCubeMesh(),
	}
	ray := spatialmath.Ray{Origin: r3.Vector{X: 100}, Direction: r3.Vector{Z: -1}}
	_, ok := picking.Pick(ray, []picking.Candidate{cand})
	require.False(t, ok)
}

func TestProjectToSketchPlaneSnapsToGrid(t *testing.T) {
	plane := spatialmath.PlaneXY()
	ray := spatialmath.Ray{Origin: r3.Vector{X: 2.3, Y: 4.8, Z: 5}, Direction: r3.Vector{Z: -1}}

	local, ok := picking.ProjectToSketchPlane(ray, plane, true, 1.0)
	require.True(t, ok)
	require.InDelta(t, 2, local.X, 1e-9)
	require.InDelta(t, 5, local.Y, 1e-9)
}

func TestProjectToSketchPlaneMissesParallelRay(t *testing.T) {
	plane := spatialmath.PlaneXY()
	ray := spatialmath.Ray{Origin: r3.Vector{Z: 1}, Direction: r3.Vector{X: 1}}
	_, ok := picking.ProjectToSketchPlane(ray, plane, false, 1.0)
	require.False(t, ok)
}
