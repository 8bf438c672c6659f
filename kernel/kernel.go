// Package kernel defines the geometry-kernel capability contract: the
// abstract B-rep operations (extrude, revolve, boolean, primitives,
// tessellate) that every back-end must provide, plus the shared Solid
// handle, Wire and Mesh value types that flow across the boundary.
//
// The kernel owns all B-rep data, keyed by a Solid's UID; application
// code never holds shape data directly, only the handle. This lets the
// kernel choose its own internal representation and keeps solids out of
// serialization (see project.Body).
package kernel

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/rkcad/rk/spatialmath"
	"github.com/rkcad/rk/uid"
)

// Sentinel errors surfaced by kernel operations. Callers match on these
// with errors.Is; backends wrap them with errors.Wrap to add detail.
var (
	// ErrInvalidProfile is returned when a profile wire has fewer than
	// three points or cannot be closed.
	ErrInvalidProfile = errors.New("invalid profile")
	// ErrBooleanFailed is returned when a boolean op is rejected by the
	// backend (e.g. an unsupported operation).
	ErrBooleanFailed = errors.New("boolean operation failed")
	// ErrTessellationFailed is returned when a solid could not be meshed.
	ErrTessellationFailed = errors.New("tessellation failed")
	// ErrKernelNotAvailable is returned by the Null backend, or by a real
	// backend for an operation it does not implement.
	ErrKernelNotAvailable = errors.New("kernel not available")
	// ErrOperationFailed is a catch-all for backend-specific rejections
	// that are not a boolean or tessellation failure.
	ErrOperationFailed = errors.New("operation failed")
	// ErrUnknownSolid is returned when a Solid handle is not recognized
	// by the backend being asked to operate on it.
	ErrUnknownSolid = errors.New("unknown solid handle")
)

// BooleanOp selects the boolean combination of two solids. Operand order
// matters for Subtract: A minus B is not the same shape as B minus A.
type BooleanOp int

const (
	// Union merges two solids.
	Union BooleanOp = iota
	// Subtract removes the second solid's volume from the first.
	Subtract
	// Intersect keeps only the shared volume.
	Intersect
)

func (op BooleanOp) String() string {
	switch op {
	case Union:
		return "Union"
	case Subtract:
		return "Subtract"
	case Intersect:
		return "Intersect"
	default:
		return "Unknown"
	}
}

// Solid is an opaque handle to B-rep data owned by a Kernel. Cloning a
// Solid clones the handle, not the underlying shape; kernels may share
// storage between clones.
type Solid struct {
	ID          uid.UID
	hasKernData bool
}

// NewSolid mints a handle for the given backing data.
func NewSolid(id uid.UID) Solid {
	return Solid{ID: id, hasKernData: true}
}

// HasKernelData reports whether this handle currently refers to live
// backend-owned data (false after e.g. a failed rebuild leaves a stale
// handle around).
func (s Solid) HasKernelData() bool {
	return s.hasKernData
}

// IsZero reports whether this is an unset Solid handle.
func (s Solid) IsZero() bool {
	return s.ID.IsNil()
}

// Wire2D is a closed (or open) loop of 2D points in sketch-plane-local
// coordinates, the input to extrude/revolve.
type Wire2D struct {
	Points []spatialmath.Point2
	Closed bool
}

// NewWire builds a wire from explicit points.
func NewWire(points []spatialmath.Point2, closed bool) Wire2D {
	return Wire2D{Points: points, Closed: closed}
}

// Circle builds a closed wire approximating a circle with the given
// number of segments, the same fixed-resolution sampling profile
// extraction uses for free-standing circles (default 32 segments).
func Circle(center spatialmath.Point2, radius float64, segments int) Wire2D {
	if segments <= 0 {
		segments = 32
	}
	pts := make([]spatialmath.Point2, segments)
	for i := 0; i < segments; i++ {
		angle := (float64(i) / float64(segments)) * 2 * math.Pi
		pts[i] = spatialmath.Point2{
			X: center.X + radius*math.Cos(angle),
			Y: center.Y + radius*math.Sin(angle),
		}
	}
	return Wire2D{Points: pts, Closed: true}
}

// Valid reports whether the wire has enough points to form a profile.
func (w Wire2D) Valid() bool {
	return len(w.Points) >= 3
}

// Axis3D is a ray in 3D space used as the rotation axis for revolve.
type Axis3D struct {
	Origin    r3.Vector
	Direction r3.Vector
}

// NewAxis normalizes direction and builds an Axis3D.
func NewAxis(origin, direction r3.Vector) Axis3D {
	return Axis3D{Origin: origin, Direction: direction.Normalize()}
}

// Mesh is the kernel's tessellation output: flat vertex/normal arrays and
// CCW triangle indices, one normal per vertex, vertex-shared indices.
type Mesh struct {
	Vertices [][3]float32
	Normals  [][3]float32
	Indices  []uint32
}

// IsEmpty reports whether the mesh has no triangles.
func (m Mesh) IsEmpty() bool {
	return len(m.Indices) == 0
}

// TriangleCount returns the number of triangles encoded by Indices.
func (m Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// BoundingBox returns the mesh's axis-aligned bounding box in its own
// local space. If the mesh has no vertices, ok is false.
func (m Mesh) BoundingBox() (min, max [3]float32, ok bool) {
	if len(m.Vertices) == 0 {
		return min, max, false
	}
	min, max = m.Vertices[0], m.Vertices[0]
	for _, v := range m.Vertices[1:] {
		for i := 0; i < 3; i++ {
			if v[i] < min[i] {
				min[i] = v[i]
			}
			if v[i] > max[i] {
				max[i] = v[i]
			}
		}
	}
	return min, max, true
}

// Kernel is the capability set every geometry back-end implements. All
// methods must be safe for concurrent read from multiple goroutines;
// mutating a solid is always expressed as producing a new Solid handle,
// never as in-place mutation, so the single-writer discipline described
// in the editor's concurrency model is enough to keep callers correct.
type Kernel interface {
	// Name identifies the backend for diagnostics and UI display.
	Name() string
	// Available reports whether this backend is actually usable (the
	// Null backend always reports false).
	Available() bool

	Extrude(profile Wire2D, planeOrigin, planeX, planeY, direction r3.Vector, distance float64) (Solid, error)
	Revolve(profile Wire2D, planeOrigin, planeX, planeY r3.Vector, axis Axis3D, angle float64) (Solid, error)
	Boolean(a, b Solid, op BooleanOp) (Solid, error)
	Tessellate(solid Solid, tolerance float64) (Mesh, error)

	CreateBox(center r3.Vector, size r3.Vector) (Solid, error)
	CreateCylinder(center r3.Vector, radius, height float64, axis r3.Vector) (Solid, error)
	CreateSphere(center r3.Vector, radius float64) (Solid, error)

	// Fillet rounds the named edges of a solid by radius. Backends that
	// cannot enumerate edges return ErrOperationFailed wrapped with a
	// backend-specific reason.
	Fillet(solid Solid, radius float64, edges []uid.UID) (Solid, error)
	// Chamfer bevels the named edges of a solid by distance.
	Chamfer(solid Solid, distance float64, edges []uid.UID) (Solid, error)
}
