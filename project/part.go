// Package project persists the editor's project file and defines the
// mesh-import boundary, per spec.md §6's external interface contracts.
// Bodies and tessellations are never persisted: only the inputs needed
// to recompute them (sketches, features, parts) are serialized.
package project

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/rkcad/rk/uid"
)

// MirrorSide names which half of a symmetric pair a Part occupies.
type MirrorSide int

const (
	MirrorNone MirrorSide = iota
	MirrorLeft
	MirrorRight
)

// MirrorPair records a Part's symmetric partner, if any.
type MirrorPair struct {
	HasPartner bool
	PartnerID  uid.UID
	Side       MirrorSide
}

// Inertia is a rigid body's 3x3 symmetric inertia tensor, stored as its
// six independent entries.
type Inertia struct {
	Ixx, Iyy, Izz, Ixy, Ixz, Iyz float64
}

// Part is a mesh bundle loaded from an external file (STL/OBJ/DAE) with
// CAD-editor metadata, per spec.md §3/§6's Part contract and
// original_source's rk-core Part struct.
type Part struct {
	ID   uid.UID
	Name string

	// SourcePath is the original mesh file path, kept for re-export;
	// empty if the part was not loaded from a file (e.g. a CAD body
	// exported into the project as a fixed mesh).
	SourcePath string
	HasSource  bool

	Vertices [][3]float32
	Normals  [][3]float32
	Indices  []uint32

	// OriginTransform is applied to the raw mesh to adjust its origin
	// relative to the part's placement in the assembly.
	OriginTransform mgl64.Mat4

	Mass    float64
	Inertia Inertia

	BBoxMin, BBoxMax [3]float32

	Color [4]float32

	MaterialName    string
	HasMaterialName bool

	Mirror MirrorPair
}

// NewPart constructs an empty Part with the original implementation's
// defaults: unit mass, identity origin transform, neutral gray color.
func NewPart(name string) Part {
	return Part{
		ID:              uid.New(),
		Name:            name,
		OriginTransform: mgl64.Ident4(),
		Mass:            1,
		Color:           [4]float32{0.7, 0.7, 0.7, 1},
	}
}

// RawMeshData is the STL/OBJ/DAE-parser output boundary named in
// spec.md §6: a bare vertex/normal/index tuple with no editor metadata
// attached yet. Parsing a specific mesh format is out of scope (spec.md
// §1's explicit Non-goal); this type is the contract a parser would
// produce.
type RawMeshData struct {
	Vertices [][3]float32
	Normals  [][3]float32
	Indices  []uint32
}

// FinalizeMesh builds a Part from raw mesh data: computes the bounding
// box from the vertices and a coarse inertia tensor from the bbox
// (treating the part as a uniform-density box of the bbox's
// dimensions), per spec.md §6's "computes bbox + inertia-from-bbox".
func FinalizeMesh(raw RawMeshData, name string, color [4]float32) Part {
	p := NewPart(name)
	p.Vertices = raw.Vertices
	p.Normals = raw.Normals
	p.Indices = raw.Indices
	p.Color = color
	p.BBoxMin, p.BBoxMax = boundingBox(raw.Vertices)
	p.Inertia = boxInertia(p.Mass, p.BBoxMin, p.BBoxMax)
	return p
}

func boundingBox(vertices [][3]float32) (min, max [3]float32) {
	if len(vertices) == 0 {
		return [3]float32{}, [3]float32{}
	}
	min, max = vertices[0], vertices[0]
	for _, v := range vertices[1:] {
		for i := 0; i < 3; i++ {
			if v[i] < min[i] {
				min[i] = v[i]
			}
			if v[i] > max[i] {
				max[i] = v[i]
			}
		}
	}
	return min, max
}

// boxInertia computes the inertia tensor of a uniform-density rectangular
// box with the given mass and bounding box, about its own centroid:
// Ixx = m/12 * (dy^2 + dz^2), and cyclic permutations; cross terms are
// zero for an axis-aligned box.
func boxInertia(mass float64, min, max [3]float32) Inertia {
	dx := float64(max[0] - min[0])
	dy := float64(max[1] - min[1])
	dz := float64(max[2] - min[2])
	return Inertia{
		Ixx: mass / 12 * (dy*dy + dz*dz),
		Iyy: mass / 12 * (dx*dx + dz*dz),
		Izz: mass / 12 * (dx*dx + dy*dy),
	}
}

// Center returns the midpoint of the part's bounding box.
func (p Part) Center() [3]float32 {
	return [3]float32{
		(p.BBoxMin[0] + p.BBoxMax[0]) / 2,
		(p.BBoxMin[1] + p.BBoxMax[1]) / 2,
		(p.BBoxMin[2] + p.BBoxMax[2]) / 2,
	}
}

// Size returns the dimensions of the part's bounding box.
func (p Part) Size() [3]float32 {
	return [3]float32{
		p.BBoxMax[0] - p.BBoxMin[0],
		p.BBoxMax[1] - p.BBoxMin[1],
		p.BBoxMax[2] - p.BBoxMin[2],
	}
}
