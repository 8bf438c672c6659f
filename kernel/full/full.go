//go:build manifold

// Package full provides a CGo-based geometry kernel backend bound to
// the Manifold library (https://github.com/elalish/manifold), which
// performs guaranteed-manifold mesh booleans, including Subtract,
// which the pure-Go native backend cannot offer.
//
// This package requires the Manifold C library (manifoldc) to be
// installed and is excluded from ordinary builds; opt in with:
//
//	go build -tags=manifold
package full

/*
#cgo CFLAGS: -I/usr/local/include
#cgo LDFLAGS: -L/usr/local/lib -lmanifoldc

#include <stdlib.h>
#include <manifold/manifoldc.h>
*/
import "C"

import (
	"runtime"
	"sync"
	"unsafe"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/rkcad/rk/kernel"
	"github.com/rkcad/rk/uid"
)

var _ kernel.Kernel = (*Kernel)(nil)

// Kernel binds kernel.Kernel to the Manifold C library. Solids are
// tracked by UID in a Go-side table; the C-side manifold pointer is
// released by a finalizer when the wrapper is collected.
type Kernel struct {
	mu     sync.RWMutex
	solids map[uid.UID]*manifoldHandle
}

type manifoldHandle struct {
	ptr *C.ManifoldManifold
}

// New constructs a Kernel bound to the Manifold native library.
func New() *Kernel {
	return &Kernel{solids: make(map[uid.UID]*manifoldHandle)}
}

func init() {
	kernel.Register(kernel.NameFull, func() (kernel.Kernel, error) {
		return New(), nil
	})
}

func (k *Kernel) Name() string    { return "full" }
func (k *Kernel) Available() bool { return true }

func newHandle(ptr *C.ManifoldManifold) *manifoldHandle {
	h := &manifoldHandle{ptr: ptr}
	runtime.SetFinalizer(h, func(h *manifoldHandle) {
		if h.ptr != nil {
			C.manifold_delete_manifold(h.ptr)
			h.ptr = nil
		}
	})
	return h
}

func (k *Kernel) store(h *manifoldHandle) kernel.Solid {
	id := uid.New()
	k.mu.Lock()
	k.solids[id] = h
	k.mu.Unlock()
	return kernel.NewSolid(id)
}

func (k *Kernel) lookup(s kernel.Solid) (*manifoldHandle, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	h, ok := k.solids[s.ID]
	if !ok {
		return nil, errors.Wrap(kernel.ErrUnknownSolid, s.ID.String())
	}
	return h, nil
}

func (k *Kernel) CreateBox(center, size r3.Vector) (kernel.Solid, error) {
	alloc := C.manifold_alloc_manifold()
	m := C.manifold_cube(alloc, C.double(size.X), C.double(size.Y), C.double(size.Z), 1)
	h := newHandle(m)
	return k.translate(h, center)
}

func (k *Kernel) CreateCylinder(center r3.Vector, radius, height float64, axis r3.Vector) (kernel.Solid, error) {
	alloc := C.manifold_alloc_manifold()
	m := C.manifold_cylinder(alloc, C.double(height), C.double(radius), C.double(radius), 0, 1)
	h := newHandle(m)
	return k.translate(h, center)
}

func (k *Kernel) CreateSphere(center r3.Vector, radius float64) (kernel.Solid, error) {
	alloc := C.manifold_alloc_manifold()
	m := C.manifold_sphere(alloc, C.double(radius), 0)
	h := newHandle(m)
	return k.translate(h, center)
}

func (k *Kernel) translate(h *manifoldHandle, by r3.Vector) (kernel.Solid, error) {
	alloc := C.manifold_alloc_manifold()
	moved := C.manifold_translate(alloc, h.ptr, C.double(by.X), C.double(by.Y), C.double(by.Z))
	return k.store(newHandle(moved)), nil
}

func (k *Kernel) Extrude(profile kernel.Wire2D, planeOrigin, planeX, planeY, direction r3.Vector, distance float64) (kernel.Solid, error) {
	if !profile.Valid() {
		return kernel.Solid{}, kernel.ErrInvalidProfile
	}
	xs := make([]C.double, len(profile.Points))
	ys := make([]C.double, len(profile.Points))
	for i, p := range profile.Points {
		xs[i] = C.double(p.X)
		ys[i] = C.double(p.Y)
	}
	alloc := C.manifold_alloc_cross_section()
	poly := C.manifold_cross_section_of_polygons(alloc, (*C.double)(unsafe.Pointer(&xs[0])), (*C.double)(unsafe.Pointer(&ys[0])), C.int(len(xs)), 1)

	extruded := C.manifold_extrude(C.manifold_alloc_manifold(), poly, C.double(distance), 0, 0, 1, 1)
	h := newHandle(extruded)
	return k.store(h), nil
}

func (k *Kernel) Revolve(profile kernel.Wire2D, planeOrigin, planeX, planeY r3.Vector, axis kernel.Axis3D, angle float64) (kernel.Solid, error) {
	if !profile.Valid() {
		return kernel.Solid{}, kernel.ErrInvalidProfile
	}
	xs := make([]C.double, len(profile.Points))
	ys := make([]C.double, len(profile.Points))
	for i, p := range profile.Points {
		xs[i] = C.double(p.X)
		ys[i] = C.double(p.Y)
	}
	alloc := C.manifold_alloc_cross_section()
	poly := C.manifold_cross_section_of_polygons(alloc, (*C.double)(unsafe.Pointer(&xs[0])), (*C.double)(unsafe.Pointer(&ys[0])), C.int(len(xs)), 1)

	degrees := angle * 180 / 3.14159265358979323846
	revolved := C.manifold_revolve(C.manifold_alloc_manifold(), poly, 64, C.double(degrees))
	h := newHandle(revolved)
	return k.store(h), nil
}

func (k *Kernel) Boolean(a, b kernel.Solid, op kernel.BooleanOp) (kernel.Solid, error) {
	ha, err := k.lookup(a)
	if err != nil {
		return kernel.Solid{}, err
	}
	hb, err := k.lookup(b)
	if err != nil {
		return kernel.Solid{}, err
	}
	var opCode C.ManifoldOpType
	switch op {
	case kernel.Union:
		opCode = C.MANIFOLD_ADD
	case kernel.Subtract:
		opCode = C.MANIFOLD_SUBTRACT
	case kernel.Intersect:
		opCode = C.MANIFOLD_INTERSECT
	default:
		return kernel.Solid{}, errors.Wrap(kernel.ErrOperationFailed, "unrecognized boolean op")
	}
	result := C.manifold_boolean(C.manifold_alloc_manifold(), ha.ptr, hb.ptr, opCode)
	if result == nil {
		return kernel.Solid{}, errors.Wrap(kernel.ErrBooleanFailed, "manifold boolean returned nil")
	}
	return k.store(newHandle(result)), nil
}

func (k *Kernel) Tessellate(solid kernel.Solid, _ float64) (kernel.Mesh, error) {
	h, err := k.lookup(solid)
	if err != nil {
		return kernel.Mesh{}, err
	}
	meshAlloc := C.manifold_alloc_meshgl()
	meshgl := C.manifold_get_meshgl(meshAlloc, h.ptr)
	defer C.manifold_delete_meshgl(meshgl)

	numProp := int(C.manifold_meshgl_num_prop(meshgl))
	numVert := int(C.manifold_meshgl_num_vert(meshgl))
	numTri := int(C.manifold_meshgl_num_tri(meshgl))

	out := kernel.Mesh{
		Vertices: make([][3]float32, numVert),
		Normals:  make([][3]float32, numVert),
		Indices:  make([]uint32, numTri*3),
	}
	props := make([]C.float, numVert*numProp)
	C.manifold_meshgl_vert_properties(meshgl, (*C.float)(unsafe.Pointer(&props[0])), C.size_t(len(props)))
	for i := 0; i < numVert; i++ {
		base := i * numProp
		out.Vertices[i] = [3]float32{float32(props[base]), float32(props[base+1]), float32(props[base+2])}
		if numProp >= 6 {
			out.Normals[i] = [3]float32{float32(props[base+3]), float32(props[base+4]), float32(props[base+5])}
		}
	}
	tris := make([]C.uint32_t, numTri*3)
	C.manifold_meshgl_tri_verts(meshgl, (*C.uint32_t)(unsafe.Pointer(&tris[0])), C.size_t(len(tris)))
	for i, t := range tris {
		out.Indices[i] = uint32(t)
	}
	return out, nil
}

// Fillet is not yet wired to a Manifold primitive; Manifold's public C
// API does not expose per-edge fillets directly.
func (k *Kernel) Fillet(kernel.Solid, float64, []uid.UID) (kernel.Solid, error) {
	return kernel.Solid{}, errors.Wrap(kernel.ErrOperationFailed, "full kernel does not yet implement Fillet")
}

// Chamfer has the same limitation as Fillet.
func (k *Kernel) Chamfer(kernel.Solid, float64, []uid.UID) (kernel.Solid, error) {
	return kernel.Solid{}, errors.Wrap(kernel.ErrOperationFailed, "full kernel does not yet implement Chamfer")
}
