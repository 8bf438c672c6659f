// Package picking implements screen-to-ray unprojection and the
// two-stage object-picking algorithm (AABB broad phase, Möller–Trumbore
// narrow phase), plus sketch-plane projection for 2D sketch editing,
// per spec.md §4.8. Grounded on
// original_source/crates/rk-frontend/src/state/viewport/picking.rs.
package picking

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"

	"github.com/rkcad/rk/kernel"
	"github.com/rkcad/rk/spatialmath"
	"github.com/rkcad/rk/uid"
)

// Unproject builds a world-space ray from a normalized device coordinate
// (x, y in [-1,1]) through the camera's inverse projection·view matrix.
func Unproject(ndcX, ndcY float64, viewProj mgl64.Mat4) spatialmath.Ray {
	inv := viewProj.Inv()

	near := inv.Mul4x1(mgl64.Vec4{ndcX, ndcY, -1, 1})
	far := inv.Mul4x1(mgl64.Vec4{ndcX, ndcY, 1, 1})

	nearPt := r3.Vector{X: near[0] / near[3], Y: near[1] / near[3], Z: near[2] / near[3]}
	farPt := r3.Vector{X: far[0] / far[3], Y: far[1] / far[3], Z: far[2] / far[3]}

	return spatialmath.Ray{Origin: nearPt, Direction: farPt.Sub(nearPt).Normalize()}
}

// Candidate is one pickable object: its object-space mesh, its
// object-to-world transform, and the UID returned on a hit.
type Candidate struct {
	ObjectID  uid.UID
	Transform mgl64.Mat4
	Mesh      kernel.Mesh
}

// Hit is the result of a successful Pick: the object and the ray
// parameter at the intersection point.
type Hit struct {
	ObjectID uid.UID
	T        float64
}

// Pick runs the two-stage picking algorithm from spec.md §4.8 over
// candidates: broad-phase AABB rejection (each candidate's local
// bounding box corners transformed to world space), then narrow-phase
// per-triangle Möller–Trumbore on survivors, returning the closest
// positive hit.
func Pick(ray spatialmath.Ray, candidates []Candidate) (Hit, bool) {
	var best Hit
	found := false

	for _, cand := range candidates {
		box, ok := worldAABB(cand)
		if !ok {
			continue
		}
		if _, hit := spatialmath.RayAABBIntersection(ray, box); !hit {
			continue
		}

		t, ok := closestTriangleHit(ray, cand)
		if !ok {
			continue
		}
		if !found || t < best.T {
			best = Hit{ObjectID: cand.ObjectID, T: t}
			found = true
		}
	}

	return best, found
}

// worldAABB transforms a candidate mesh's local bounding-box corners
// into world space and rebuilds the AABB from them, per spec.md §4.8
// step 1 ("transform bbox corners to world space, build an AABB").
func worldAABB(cand Candidate) (spatialmath.AABB, bool) {
	localMin, localMax, ok := cand.Mesh.BoundingBox()
	if !ok {
		return spatialmath.AABB{}, false
	}

	corners := make([]r3.Vector, 0, 8)
	for _, dx := range [2]float32{localMin[0], localMax[0]} {
		for _, dy := range [2]float32{localMin[1], localMax[1]} {
			for _, dz := range [2]float32{localMin[2], localMax[2]} {
				local := r3.Vector{X: float64(dx), Y: float64(dy), Z: float64(dz)}
				corners = append(corners, spatialmath.TransformPoint(cand.Transform, local))
			}
		}
	}
	return spatialmath.AABBFromPoints(corners)
}

// closestTriangleHit applies Möller–Trumbore to every triangle of a
// candidate's mesh (transformed to world space) and keeps the minimum
// positive t.
func closestTriangleHit(ray spatialmath.Ray, cand Candidate) (float64, bool) {
	mesh := cand.Mesh
	best := 0.0
	found := false

	for i := 0; i+2 < len(mesh.Indices); i += 3 {
		a := worldVertex(cand, mesh.Indices[i])
		b := worldVertex(cand, mesh.Indices[i+1])
		c := worldVertex(cand, mesh.Indices[i+2])

		t, hit := spatialmath.RayTriangleIntersection(ray, a, b, c)
		if !hit {
			continue
		}
		if !found || t < best {
			best, found = t, true
		}
	}

	return best, found
}

func worldVertex(cand Candidate, index uint32) r3.Vector {
	v := cand.Mesh.Vertices[index]
	local := r3.Vector{X: float64(v[0]), Y: float64(v[1]), Z: float64(v[2])}
	return spatialmath.TransformPoint(cand.Transform, local)
}

// ProjectToSketchPlane intersects ray with plane and converts the hit
// point to the plane's local 2D coordinates, snapping to gridSpacing
// when snap is true, per spec.md §4.8's sketch-plane projection.
func ProjectToSketchPlane(ray spatialmath.Ray, plane spatialmath.Plane, snap bool, gridSpacing float64) (spatialmath.Point2, bool) {
	t, ok := spatialmath.PlaneIntersection(ray, plane.Origin, plane.Normal)
	if !ok || t < 0 {
		return spatialmath.Point2{}, false
	}
	hit := ray.Origin.Add(ray.Direction.Mul(t))
	local := plane.ToLocal(hit)
	if snap {
		local = spatialmath.SnapToGrid(local, gridSpacing)
	}
	return local, true
}
