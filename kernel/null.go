package kernel

import (
	"github.com/golang/geo/r3"

	"github.com/rkcad/rk/uid"
)

// NullKernel is a no-op backend that reports itself unavailable and
// rejects every operation with ErrKernelNotAvailable. It is selected
// when no real backend was compiled in, so the rest of the application
// can still run (sketching, assemblies, undo history) without a
// B-rep engine.
type NullKernel struct{}

var _ Kernel = NullKernel{}

func (NullKernel) Name() string     { return "null" }
func (NullKernel) Available() bool  { return false }

func (NullKernel) Extrude(Wire2D, r3.Vector, r3.Vector, r3.Vector, r3.Vector, float64) (Solid, error) {
	return Solid{}, ErrKernelNotAvailable
}

func (NullKernel) Revolve(Wire2D, r3.Vector, r3.Vector, r3.Vector, Axis3D, float64) (Solid, error) {
	return Solid{}, ErrKernelNotAvailable
}

func (NullKernel) Boolean(Solid, Solid, BooleanOp) (Solid, error) {
	return Solid{}, ErrKernelNotAvailable
}

func (NullKernel) Tessellate(Solid, float64) (Mesh, error) {
	return Mesh{}, ErrKernelNotAvailable
}

func (NullKernel) CreateBox(r3.Vector, r3.Vector) (Solid, error) {
	return Solid{}, ErrKernelNotAvailable
}

func (NullKernel) CreateCylinder(r3.Vector, float64, float64, r3.Vector) (Solid, error) {
	return Solid{}, ErrKernelNotAvailable
}

func (NullKernel) CreateSphere(r3.Vector, float64) (Solid, error) {
	return Solid{}, ErrKernelNotAvailable
}

func (NullKernel) Fillet(Solid, float64, []uid.UID) (Solid, error) {
	return Solid{}, ErrKernelNotAvailable
}

func (NullKernel) Chamfer(Solid, float64, []uid.UID) (Solid, error) {
	return Solid{}, ErrKernelNotAvailable
}
