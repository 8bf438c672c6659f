// Package native implements a pure-Go geometry kernel backend: B-rep
// operations expressed directly as triangle meshes rather than through a
// true boundary-representation solid modeler. It mirrors the role the
// Truck backend plays in the original implementation — always
// available, no CGo, but unable to support Subtract, since a correct
// mesh-level boolean difference needs real CSG machinery this backend
// does not have. Callers needing Subtract should select the full
// backend (see kernel/full) or fall back to kernel.NullKernel.
package native

import (
	"math"
	"sync"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/rkcad/rk/kernel"
	"github.com/rkcad/rk/uid"
)

// revolutionSegments is the number of angular steps used to sweep a
// revolve profile, matching the fixed 32-segment resolution used
// elsewhere for circle sampling.
const revolutionSegments = 32

type triMesh struct {
	verts   []r3.Vector
	normals []r3.Vector
	tris    [][3]int
}

func (m *triMesh) addVertex(v, n r3.Vector) int {
	m.verts = append(m.verts, v)
	m.normals = append(m.normals, n)
	return len(m.verts) - 1
}

func (m *triMesh) addTri(a, b, c int) {
	m.tris = append(m.tris, [3]int{a, b, c})
}

func (m *triMesh) append(other *triMesh) {
	offset := len(m.verts)
	m.verts = append(m.verts, other.verts...)
	m.normals = append(m.normals, other.normals...)
	for _, t := range other.tris {
		m.tris = append(m.tris, [3]int{t[0] + offset, t[1] + offset, t[2] + offset})
	}
}

func (m *triMesh) toKernelMesh() kernel.Mesh {
	out := kernel.Mesh{
		Vertices: make([][3]float32, len(m.verts)),
		Normals:  make([][3]float32, len(m.normals)),
		Indices:  make([]uint32, 0, len(m.tris)*3),
	}
	for i, v := range m.verts {
		out.Vertices[i] = [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
	}
	for i, n := range m.normals {
		out.Normals[i] = [3]float32{float32(n.X), float32(n.Y), float32(n.Z)}
	}
	for _, t := range m.tris {
		out.Indices = append(out.Indices, uint32(t[0]), uint32(t[1]), uint32(t[2]))
	}
	return out
}

func faceNormal(a, b, c r3.Vector) r3.Vector {
	n := b.Sub(a).Cross(c.Sub(a))
	if n.Norm() < 1e-12 {
		return r3.Vector{Z: 1}
	}
	return n.Normalize()
}

// extrudeMesh sweeps a planar profile along direction by distance,
// capping both ends with a fan triangulation.
func extrudeMesh(worldPts []r3.Vector, direction r3.Vector, distance float64) (*triMesh, error) {
	if len(worldPts) < 3 {
		return nil, errors.Wrap(kernel.ErrInvalidProfile, "extrude needs at least 3 profile points")
	}
	dir := direction.Normalize()
	offset := dir.Mul(distance)

	m := &triMesh{}
	n := len(worldPts)
	bottom := make([]int, n)
	top := make([]int, n)

	capNormalBottom := faceNormal(worldPts[0], worldPts[1], worldPts[2]).Mul(-1)
	capNormalTop := capNormalBottom.Mul(-1)
	for i, p := range worldPts {
		bottom[i] = m.addVertex(p, capNormalBottom)
		top[i] = m.addVertex(p.Add(offset), capNormalTop)
	}
	// Fan-triangulate both caps (profiles are assumed convex-enough
	// star-shaped loops, the same assumption extract_profiles makes).
	for i := 1; i < n-1; i++ {
		m.addTri(bottom[0], bottom[i+1], bottom[i])
		m.addTri(top[0], top[i], top[i+1])
	}
	// Side walls: one quad (two triangles) per profile edge.
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		side := faceNormal(worldPts[i], worldPts[j], worldPts[j].Add(offset))
		a := m.addVertex(worldPts[i], side)
		b := m.addVertex(worldPts[j], side)
		c := m.addVertex(worldPts[j].Add(offset), side)
		d := m.addVertex(worldPts[i].Add(offset), side)
		m.addTri(a, b, c)
		m.addTri(a, c, d)
	}
	return m, nil
}

// revolveMesh sweeps a planar profile about axis through angle radians,
// capping the ends when the sweep does not close a full revolution.
func revolveMesh(worldPts []r3.Vector, axisOrigin, axisDir r3.Vector, angle float64) (*triMesh, error) {
	if len(worldPts) < 3 {
		return nil, errors.Wrap(kernel.ErrInvalidProfile, "revolve needs at least 3 profile points")
	}
	axisDir = axisDir.Normalize()
	steps := revolutionSegments
	fullTurn := math.Abs(angle-2*math.Pi) < 1e-9
	n := len(worldPts)

	rotate := func(p r3.Vector, a float64) r3.Vector {
		rel := p.Sub(axisOrigin)
		q := quatAroundAxis(axisDir, a)
		return axisOrigin.Add(rotateByQuat(q, rel))
	}

	m := &triMesh{}
	rings := make([][]int, steps+1)
	for s := 0; s <= steps; s++ {
		a := angle * float64(s) / float64(steps)
		ring := make([]int, n)
		for i, p := range worldPts {
			wp := rotate(p, a)
			ring[i] = m.addVertex(wp, r3.Vector{}) // normals fixed up below
		}
		rings[s] = ring
	}
	for s := 0; s < steps; s++ {
		for i := 0; i < n; i++ {
			j := (i + 1) % n
			a0, b0 := rings[s][i], rings[s][j]
			a1, b1 := rings[s+1][i], rings[s+1][j]
			nrm := faceNormal(m.verts[a0], m.verts[b0], m.verts[a1])
			m.normals[a0], m.normals[b0], m.normals[a1] = nrm, nrm, nrm
			m.addTri(a0, b0, a1)
			m.addTri(b0, b1, a1)
		}
	}
	if !fullTurn {
		capStart := faceNormal(m.verts[rings[0][0]], m.verts[rings[0][1]], m.verts[rings[0][2]])
		capEnd := capStart.Mul(-1)
		for i, idx := range rings[0] {
			m.normals[idx] = capStart
			_ = i
		}
		for i := 1; i < n-1; i++ {
			m.addTri(rings[0][0], rings[0][i+1], rings[0][i])
			m.addTri(rings[steps][0], rings[steps][i], rings[steps][i+1])
		}
		for _, idx := range rings[steps] {
			m.normals[idx] = capEnd
		}
	}
	return m, nil
}

func quatAroundAxis(axis r3.Vector, angle float64) [4]float64 {
	half := angle / 2
	s := math.Sin(half)
	return [4]float64{axis.X * s, axis.Y * s, axis.Z * s, math.Cos(half)}
}

func rotateByQuat(q [4]float64, v r3.Vector) r3.Vector {
	qv := r3.Vector{X: q[0], Y: q[1], Z: q[2]}
	w := q[3]
	t := qv.Cross(v).Mul(2)
	return v.Add(t.Mul(w)).Add(qv.Cross(t))
}

func boxMesh(center, size r3.Vector) *triMesh {
	hx, hy, hz := size.X/2, size.Y/2, size.Z/2
	corners := [8]r3.Vector{
		{X: -hx, Y: -hy, Z: -hz}, {X: hx, Y: -hy, Z: -hz},
		{X: hx, Y: hy, Z: -hz}, {X: -hx, Y: hy, Z: -hz},
		{X: -hx, Y: -hy, Z: hz}, {X: hx, Y: -hy, Z: hz},
		{X: hx, Y: hy, Z: hz}, {X: -hx, Y: hy, Z: hz},
	}
	for i := range corners {
		corners[i] = corners[i].Add(center)
	}
	faces := [6][4]int{
		{0, 1, 2, 3}, // bottom (-Z)
		{4, 7, 6, 5}, // top (+Z)
		{0, 4, 5, 1}, // -Y
		{1, 5, 6, 2}, // +X
		{2, 6, 7, 3}, // +Y
		{3, 7, 4, 0}, // -X
	}
	m := &triMesh{}
	for _, f := range faces {
		a, b, c, d := corners[f[0]], corners[f[1]], corners[f[2]], corners[f[3]]
		n := faceNormal(a, b, c)
		ia := m.addVertex(a, n)
		ib := m.addVertex(b, n)
		ic := m.addVertex(c, n)
		id := m.addVertex(d, n)
		m.addTri(ia, ib, ic)
		m.addTri(ia, ic, id)
	}
	return m
}

func cylinderMesh(center r3.Vector, radius, height float64, axis r3.Vector) *triMesh {
	axis = axis.Normalize()
	plane := kernelOrthonormalBasis(axis)
	m := &triMesh{}
	bottom := center.Sub(axis.Mul(height / 2))
	top := center.Add(axis.Mul(height / 2))

	bottomRing := make([]int, revolutionSegments)
	topRing := make([]int, revolutionSegments)
	for i := 0; i < revolutionSegments; i++ {
		a := 2 * math.Pi * float64(i) / float64(revolutionSegments)
		r := plane[0].Mul(radius * math.Cos(a)).Add(plane[1].Mul(radius * math.Sin(a)))
		bp := bottom.Add(r)
		tp := top.Add(r)
		side := r.Normalize()
		bottomRing[i] = m.addVertex(bp, side)
		topRing[i] = m.addVertex(tp, side)
	}
	for i := 0; i < revolutionSegments; i++ {
		j := (i + 1) % revolutionSegments
		m.addTri(bottomRing[i], bottomRing[j], topRing[i])
		m.addTri(bottomRing[j], topRing[j], topRing[i])
	}
	bc := m.addVertex(bottom, axis.Mul(-1))
	tc := m.addVertex(top, axis)
	for i := 0; i < revolutionSegments; i++ {
		j := (i + 1) % revolutionSegments
		m.addTri(bc, bottomRing[j], bottomRing[i])
		m.addTri(tc, topRing[i], topRing[j])
	}
	return m
}

func sphereMesh(center r3.Vector, radius float64) *triMesh {
	const lat, lon = 16, 32
	m := &triMesh{}
	grid := make([][]int, lat+1)
	for i := 0; i <= lat; i++ {
		theta := math.Pi * float64(i) / float64(lat)
		row := make([]int, lon+1)
		for j := 0; j <= lon; j++ {
			phi := 2 * math.Pi * float64(j) / float64(lon)
			dir := r3.Vector{
				X: math.Sin(theta) * math.Cos(phi),
				Y: math.Sin(theta) * math.Sin(phi),
				Z: math.Cos(theta),
			}
			row[j] = m.addVertex(center.Add(dir.Mul(radius)), dir)
		}
		grid[i] = row
	}
	for i := 0; i < lat; i++ {
		for j := 0; j < lon; j++ {
			a, b := grid[i][j], grid[i][j+1]
			c, d := grid[i+1][j], grid[i+1][j+1]
			m.addTri(a, b, d)
			m.addTri(a, d, c)
		}
	}
	return m
}

// kernelOrthonormalBasis returns two unit vectors spanning the plane
// perpendicular to axis.
func kernelOrthonormalBasis(axis r3.Vector) [2]r3.Vector {
	ref := r3.Vector{X: 1}
	if math.Abs(axis.Dot(ref)) > 0.9 {
		ref = r3.Vector{Y: 1}
	}
	x := axis.Cross(ref).Normalize()
	y := axis.Cross(x).Normalize()
	return [2]r3.Vector{x, y}
}

// store is the backend's solid table, guarded by a mutex per the
// single-writer / multi-reader discipline the rest of the application
// relies on.
type store struct {
	mu     sync.RWMutex
	shapes map[uid.UID]*triMesh
}

func newStore() *store {
	return &store{shapes: make(map[uid.UID]*triMesh)}
}

func (s *store) put(m *triMesh) kernel.Solid {
	id := uid.New()
	s.mu.Lock()
	s.shapes[id] = m
	s.mu.Unlock()
	return kernel.NewSolid(id)
}

func (s *store) get(solid kernel.Solid) (*triMesh, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.shapes[solid.ID]
	return m, ok
}
