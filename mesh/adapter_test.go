package mesh_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rkcad/rk/kernel"
	"github.com/rkcad/rk/mesh"
)

func TestAdaptAccumulatesPerVertexNormalsFromFaceNormals(t *testing.T) {
	// Two coplanar triangles sharing an edge, both facing +Z, supplied
	// with one face normal each (length == triangle count, not vertex
	// count).
	km := kernel.Mesh{
		Vertices: [][3]float32{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}},
		Normals:  [][3]float32{{0, 0, 1}, {0, 0, 1}},
		Indices:  []uint32{0, 1, 2, 0, 2, 3},
	}

	out := mesh.Adapt(km)
	require.Len(t, out.Normals, len(km.Vertices))
	for _, n := range out.Normals {
		require.InDelta(t, 0, n[0], 1e-6)
		require.InDelta(t, 0, n[1], 1e-6)
		require.InDelta(t, 1, n[2], 1e-6)
	}
}

func TestAdaptFlipsWindingDisagreeingWithFaceNormal(t *testing.T) {
	// Triangle wound CW as seen from +Z (geometric normal points -Z),
	// but tagged with a +Z face normal: the adapter must flip it so the
	// final winding matches the supplied normal.
	km := kernel.Mesh{
		Vertices: [][3]float32{{0, 0, 0}, {1, 1, 0}, {1, 0, 0}},
		Normals:  [][3]float32{{0, 0, 1}},
		Indices:  []uint32{0, 1, 2},
	}

	out := mesh.Adapt(km)
	require.Equal(t, []uint32{0, 2, 1}, out.Indices)
	for _, n := range out.Normals {
		require.InDelta(t, 1, n[2], 1e-6)
	}
}

func TestAdaptPassesThroughPerVertexNormalsUnchangedWhenWindingAlreadyCorrect(t *testing.T) {
	km := kernel.Mesh{
		Vertices: [][3]float32{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}},
		Normals:  [][3]float32{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}},
		Indices:  []uint32{0, 1, 2},
	}

	out := mesh.Adapt(km)
	require.Equal(t, km.Indices, out.Indices)
	require.Equal(t, km.Normals, out.Normals)
}
