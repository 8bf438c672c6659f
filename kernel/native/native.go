package native

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/rkcad/rk/kernel"
	"github.com/rkcad/rk/uid"
)

// Kernel is the pure-Go mesh-backed geometry backend. It is always
// available (no CGo, no external solid modeler) but cannot perform a
// true Subtract: see the package doc comment.
type Kernel struct {
	store *store
}

var _ kernel.Kernel = (*Kernel)(nil)

// New constructs an empty native Kernel.
func New() *Kernel {
	return &Kernel{store: newStore()}
}

func init() {
	kernel.Register(kernel.NameNative, func() (kernel.Kernel, error) {
		return New(), nil
	})
}

func (k *Kernel) Name() string    { return "native" }
func (k *Kernel) Available() bool { return true }

func worldPoints(profile kernel.Wire2D, origin, xAxis, yAxis r3.Vector) ([]r3.Vector, error) {
	if !profile.Valid() {
		return nil, kernel.ErrInvalidProfile
	}
	pts := make([]r3.Vector, len(profile.Points))
	for i, p := range profile.Points {
		pts[i] = origin.Add(xAxis.Mul(p.X)).Add(yAxis.Mul(p.Y))
	}
	return pts, nil
}

func (k *Kernel) Extrude(profile kernel.Wire2D, planeOrigin, planeX, planeY, direction r3.Vector, distance float64) (kernel.Solid, error) {
	pts, err := worldPoints(profile, planeOrigin, planeX, planeY)
	if err != nil {
		return kernel.Solid{}, err
	}
	m, err := extrudeMesh(pts, direction, distance)
	if err != nil {
		return kernel.Solid{}, err
	}
	return k.store.put(m), nil
}

func (k *Kernel) Revolve(profile kernel.Wire2D, planeOrigin, planeX, planeY r3.Vector, axis kernel.Axis3D, angle float64) (kernel.Solid, error) {
	pts, err := worldPoints(profile, planeOrigin, planeX, planeY)
	if err != nil {
		return kernel.Solid{}, err
	}
	m, err := revolveMesh(pts, axis.Origin, axis.Direction, angle)
	if err != nil {
		return kernel.Solid{}, err
	}
	return k.store.put(m), nil
}

// Boolean implements Union by concatenating the operand meshes and
// Intersect as a box over the overlap of the operands' bounding boxes
// (ErrBooleanFailed when they do not overlap); neither is true CSG
// (overlapping interior faces are not resolved away, and Intersect keeps
// only the bounds of the shared volume) but both are sufficient for
// bounding-volume and rendering purposes. Subtract is rejected:
// resolving a true boolean difference needs a real solid modeler, which
// is what the full backend provides instead.
func (k *Kernel) Boolean(a, b kernel.Solid, op kernel.BooleanOp) (kernel.Solid, error) {
	if op == kernel.Subtract {
		return kernel.Solid{}, errors.Wrap(kernel.ErrBooleanFailed,
			"native kernel does not support Subtract; select the full backend")
	}
	ma, ok := k.store.get(a)
	if !ok {
		return kernel.Solid{}, errors.Wrap(kernel.ErrUnknownSolid, a.ID.String())
	}
	mb, ok := k.store.get(b)
	if !ok {
		return kernel.Solid{}, errors.Wrap(kernel.ErrUnknownSolid, b.ID.String())
	}

	switch op {
	case kernel.Union:
		combined := &triMesh{}
		combined.append(ma)
		combined.append(mb)
		return k.store.put(combined), nil
	case kernel.Intersect:
		aMin, aMax := meshBounds(ma)
		bMin, bMax := meshBounds(mb)
		min := r3.Vector{X: max64(aMin.X, bMin.X), Y: max64(aMin.Y, bMin.Y), Z: max64(aMin.Z, bMin.Z)}
		max := r3.Vector{X: min64(aMax.X, bMax.X), Y: min64(aMax.Y, bMax.Y), Z: min64(aMax.Z, bMax.Z)}
		if min.X > max.X || min.Y > max.Y || min.Z > max.Z {
			return kernel.Solid{}, errors.Wrap(kernel.ErrBooleanFailed, "operands do not overlap")
		}
		size := max.Sub(min)
		center := min.Add(max).Mul(0.5)
		return k.store.put(boxMesh(center, size)), nil
	default:
		return kernel.Solid{}, errors.Wrap(kernel.ErrOperationFailed, "unrecognized boolean op")
	}
}

func meshBounds(m *triMesh) (min, max r3.Vector) {
	if len(m.verts) == 0 {
		return min, max
	}
	min, max = m.verts[0], m.verts[0]
	for _, v := range m.verts[1:] {
		min = r3.Vector{X: min64(min.X, v.X), Y: min64(min.Y, v.Y), Z: min64(min.Z, v.Z)}
		max = r3.Vector{X: max64(max.X, v.X), Y: max64(max.Y, v.Y), Z: max64(max.Z, v.Z)}
	}
	return min, max
}

func min64(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func max64(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func (k *Kernel) Tessellate(solid kernel.Solid, _ float64) (kernel.Mesh, error) {
	m, ok := k.store.get(solid)
	if !ok {
		return kernel.Mesh{}, errors.Wrap(kernel.ErrUnknownSolid, solid.ID.String())
	}
	return m.toKernelMesh(), nil
}

func (k *Kernel) CreateBox(center r3.Vector, size r3.Vector) (kernel.Solid, error) {
	return k.store.put(boxMesh(center, size)), nil
}

func (k *Kernel) CreateCylinder(center r3.Vector, radius, height float64, axis r3.Vector) (kernel.Solid, error) {
	return k.store.put(cylinderMesh(center, radius, height, axis)), nil
}

func (k *Kernel) CreateSphere(center r3.Vector, radius float64) (kernel.Solid, error) {
	return k.store.put(sphereMesh(center, radius)), nil
}

// Fillet is not implemented by the native backend: rounding an edge
// correctly needs adjacency information a flat triangle soup does not
// retain.
func (k *Kernel) Fillet(kernel.Solid, float64, []uid.UID) (kernel.Solid, error) {
	return kernel.Solid{}, errors.Wrap(kernel.ErrOperationFailed, "native kernel does not support Fillet")
}

// Chamfer has the same limitation as Fillet.
func (k *Kernel) Chamfer(kernel.Solid, float64, []uid.UID) (kernel.Solid, error) {
	return kernel.Solid{}, errors.Wrap(kernel.ErrOperationFailed, "native kernel does not support Chamfer")
}
