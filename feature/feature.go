package feature

import (
	"github.com/rkcad/rk/kernel"
	"github.com/rkcad/rk/uid"
)

// ExtrudeDirection selects which way an extrude sweeps relative to the
// sketch plane normal.
type ExtrudeDirection int

const (
	Positive ExtrudeDirection = iota
	Negative
	Symmetric
)

// BooleanOp is the user-facing boolean mode a feature can apply against
// a prior body; New means "no boolean, just add the new body".
type BooleanOp int

const (
	OpNew BooleanOp = iota
	OpJoin
	OpCut
	OpIntersect
)

// ToKernelOp converts the user-facing BooleanOp into the kernel's
// BooleanOp, returning ok=false for New (no kernel boolean call needed).
func (op BooleanOp) ToKernelOp() (kernel.BooleanOp, bool) {
	switch op {
	case OpJoin:
		return kernel.Union, true
	case OpCut:
		return kernel.Subtract, true
	case OpIntersect:
		return kernel.Intersect, true
	default:
		return 0, false
	}
}

// Kind tags the concrete feature variant.
type Kind int

const (
	KindExtrude Kind = iota
	KindRevolve
	KindBoolean
	KindFillet
	KindChamfer
)

func (k Kind) String() string {
	switch k {
	case KindExtrude:
		return "Extrude"
	case KindRevolve:
		return "Revolve"
	case KindBoolean:
		return "Boolean"
	case KindFillet:
		return "Fillet"
	case KindChamfer:
		return "Chamfer"
	default:
		return "Unknown"
	}
}

// Feature is the ordered, parametric operation that a rebuild
// re-executes; every variant shares id/name/suppressed.
type Feature struct {
	ID         uid.UID
	Name       string
	Kind       Kind
	Suppressed bool

	// Extrude / Revolve
	SketchID     uid.UID
	Distance     float64 // Extrude
	Direction    ExtrudeDirection
	Axis         kernel.Axis3D // Revolve
	Angle        float64       // Revolve
	DraftAngle   float64

	// Boolean composition (shared by Extrude/Revolve/Boolean)
	Op             BooleanOp
	TargetBodyID   uid.UID
	HasTargetBody  bool

	// Boolean-only: explicit tool body (as opposed to Extrude/Revolve's
	// own freshly produced solid).
	ToolBodyID uid.UID

	// Fillet / Chamfer
	BodyID uid.UID
	Param  float64 // radius (Fillet) or distance (Chamfer)
	Edges  []uid.UID
}

// NewExtrude builds an Extrude feature.
func NewExtrude(name string, sketchID uid.UID, distance float64, dir ExtrudeDirection, op BooleanOp, target uid.UID, hasTarget bool) Feature {
	return Feature{
		ID: uid.New(), Name: name, Kind: KindExtrude,
		SketchID: sketchID, Distance: distance, Direction: dir,
		Op: op, TargetBodyID: target, HasTargetBody: hasTarget,
	}
}

// NewRevolve builds a Revolve feature.
func NewRevolve(name string, sketchID uid.UID, axis kernel.Axis3D, angle float64, op BooleanOp, target uid.UID, hasTarget bool) Feature {
	return Feature{
		ID: uid.New(), Name: name, Kind: KindRevolve,
		SketchID: sketchID, Axis: axis, Angle: angle,
		Op: op, TargetBodyID: target, HasTargetBody: hasTarget,
	}
}

// NewBoolean builds a direct Boolean feature between two existing
// bodies.
func NewBoolean(name string, target, tool uid.UID, op BooleanOp) Feature {
	return Feature{
		ID: uid.New(), Name: name, Kind: KindBoolean,
		TargetBodyID: target, HasTargetBody: true, ToolBodyID: tool, Op: op,
	}
}

// NewFillet builds a Fillet feature.
func NewFillet(name string, body uid.UID, radius float64, edges []uid.UID) Feature {
	return Feature{ID: uid.New(), Name: name, Kind: KindFillet, BodyID: body, Param: radius, Edges: edges}
}

// NewChamfer builds a Chamfer feature.
func NewChamfer(name string, body uid.UID, distance float64, edges []uid.UID) Feature {
	return Feature{ID: uid.New(), Name: name, Kind: KindChamfer, BodyID: body, Param: distance, Edges: edges}
}

