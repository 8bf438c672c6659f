// Package mesh adapts a kernel.Mesh (whatever vertex/normal layout a
// backend produced) into render-ready data: per-vertex normals and
// consistently-wound (CCW, outward) triangle indices, per spec.md §4.9.
package mesh

import (
	"github.com/golang/geo/r3"

	"github.com/rkcad/rk/kernel"
)

// RenderMesh is the renderer-facing tessellation output: one normal per
// position, CCW-wound triangle indices.
type RenderMesh struct {
	Positions [][3]float32
	Normals   [][3]float32
	Indices   []uint32
}

// Adapt canonicalizes a kernel.Mesh. If m.Normals has one entry per
// triangle (a face-normal layout), per-vertex normals are accumulated
// from the adjacent faces' normals (area-weighted) and normalized, and
// any triangle whose vertex winding disagrees with its supplied face
// normal is flipped. If m.Normals already has one entry per vertex, the
// positions/indices are returned as-is, with winding still checked
// against the supplied vertex normals and corrected where it disagrees.
func Adapt(m kernel.Mesh) RenderMesh {
	out := RenderMesh{
		Positions: append([][3]float32(nil), m.Vertices...),
		Indices:   append([]uint32(nil), m.Indices...),
	}

	switch {
	case len(m.Normals) == m.TriangleCount() && m.TriangleCount() > 0:
		out.Normals = adaptFaceNormals(m, out.Indices)
	default:
		out.Normals = append([][3]float32(nil), m.Normals...)
		fixWindingAgainstVertexNormals(out.Positions, out.Normals, out.Indices)
	}

	return out
}

func vec(v [3]float32) r3.Vector { return r3.Vector{X: float64(v[0]), Y: float64(v[1]), Z: float64(v[2])} }

func toFloat32(v r3.Vector) [3]float32 { return [3]float32{float32(v.X), float32(v.Y), float32(v.Z)} }

// geometricNormal returns the (unnormalized) right-hand-rule normal of
// triangle (a,b,c) under its current winding order; its magnitude is
// twice the triangle's area, which is what makes area-weighted
// accumulation fall out of a plain vector sum.
func geometricNormal(a, b, c r3.Vector) r3.Vector {
	return b.Sub(a).Cross(c.Sub(a))
}

func adaptFaceNormals(m kernel.Mesh, indices []uint32) [][3]float32 {
	accum := make([]r3.Vector, len(m.Vertices))

	for tri := 0; tri*3+2 < len(indices); tri++ {
		ia, ib, ic := indices[tri*3], indices[tri*3+1], indices[tri*3+2]
		a, b, c := vec(m.Vertices[ia]), vec(m.Vertices[ib]), vec(m.Vertices[ic])

		faceNormal := vec(m.Normals[tri])
		geo := geometricNormal(a, b, c)

		if geo.Dot(faceNormal) < 0 {
			indices[tri*3+1], indices[tri*3+2] = indices[tri*3+2], indices[tri*3+1]
			geo = geo.Mul(-1)
		}

		accum[ia] = accum[ia].Add(geo)
		accum[ib] = accum[ib].Add(geo)
		accum[ic] = accum[ic].Add(geo)
	}

	normals := make([][3]float32, len(accum))
	for i, n := range accum {
		if n.Norm() > 1e-12 {
			n = n.Normalize()
		}
		normals[i] = toFloat32(n)
	}
	return normals
}

// fixWindingAgainstVertexNormals flips any triangle whose geometric
// winding disagrees with the average of its three vertices' supplied
// normals.
func fixWindingAgainstVertexNormals(positions [][3]float32, normals [][3]float32, indices []uint32) {
	if len(normals) != len(positions) {
		return
	}
	for tri := 0; tri*3+2 < len(indices); tri++ {
		ia, ib, ic := indices[tri*3], indices[tri*3+1], indices[tri*3+2]
		a, b, c := vec(positions[ia]), vec(positions[ib]), vec(positions[ic])
		geo := geometricNormal(a, b, c)

		avg := vec(normals[ia]).Add(vec(normals[ib])).Add(vec(normals[ic]))
		if geo.Dot(avg) < 0 {
			indices[tri*3+1], indices[tri*3+2] = indices[tri*3+2], indices[tri*3+1]
		}
	}
}
