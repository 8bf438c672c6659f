package assembly

import (
	"github.com/golang/geo/r3"

	"github.com/rkcad/rk/spatialmath"
	"github.com/rkcad/rk/uid"
)

// JointType enumerates the kinds of connection a Joint can express.
type JointType int

const (
	Fixed JointType = iota
	Revolute
	Continuous
	Prismatic
	Floating
	Planar
)

// HasAxis reports whether this joint type moves along/about an axis.
func (t JointType) HasAxis() bool {
	switch t {
	case Revolute, Continuous, Prismatic:
		return true
	default:
		return false
	}
}

// HasLimits reports whether this joint type carries meaningful
// lower/upper travel limits.
func (t JointType) HasLimits() bool {
	switch t {
	case Revolute, Prismatic:
		return true
	default:
		return false
	}
}

func (t JointType) String() string {
	switch t {
	case Fixed:
		return "Fixed"
	case Revolute:
		return "Revolute"
	case Continuous:
		return "Continuous"
	case Prismatic:
		return "Prismatic"
	case Floating:
		return "Floating"
	case Planar:
		return "Planar"
	default:
		return "Unknown"
	}
}

// Limits bounds a joint's travel and effort.
type Limits struct {
	Lower, Upper float64
	Effort       float64
	Velocity     float64
}

// DefaultLimits mirrors the original implementation's generic default:
// ±π travel, effort 100, velocity 1.
func DefaultLimits() Limits {
	return Limits{Lower: -3.14159265358979323846, Upper: 3.14159265358979323846, Effort: 100, Velocity: 1}
}

// DefaultRevoluteLimits is an alias of DefaultLimits, kept distinct so
// callers can express intent.
func DefaultRevoluteLimits() Limits { return DefaultLimits() }

// DefaultPrismaticLimits bounds travel to ±1.0 units, matching the
// original implementation's prismatic default.
func DefaultPrismaticLimits() Limits {
	return Limits{Lower: -1, Upper: 1, Effort: 100, Velocity: 1}
}

// WithRange returns a copy of l with new lower/upper bounds.
func (l Limits) WithRange(lower, upper float64) Limits {
	l.Lower, l.Upper = lower, upper
	return l
}

// Dynamics carries a joint's damping/friction coefficients.
type Dynamics struct {
	Damping, Friction float64
}

// Mimic makes a joint's position an affine function of another joint's
// position: q = Multiplier*q_source + Offset.
type Mimic struct {
	SourceJointID uid.UID
	Multiplier    float64
	Offset        float64
}

// NewMimic builds a 1:1 mimic (multiplier 1, offset 0).
func NewMimic(source uid.UID) Mimic {
	return Mimic{SourceJointID: source, Multiplier: 1, Offset: 0}
}

// WithParams returns a copy with explicit multiplier/offset.
func (m Mimic) WithParams(multiplier, offset float64) Mimic {
	m.Multiplier, m.Offset = multiplier, offset
	return m
}

// Calculate resolves the mimicked position given the source joint's
// current position.
func (m Mimic) Calculate(sourcePosition float64) float64 {
	return m.Multiplier*sourcePosition + m.Offset
}

// Joint connects a parent link to a child link.
type Joint struct {
	ID            uid.UID
	Name          string
	Type          JointType
	ParentLinkID  uid.UID
	ChildLinkID   uid.UID
	Origin        spatialmath.Pose
	Axis          r3.Vector
	Limits        *Limits
	Dynamics      *Dynamics
	Mimic         *Mimic
}

// FixedJoint builds a Fixed joint between parent and child at the given
// origin.
func FixedJoint(name string, parent, child uid.UID, origin spatialmath.Pose) Joint {
	return Joint{ID: uid.New(), Name: name, Type: Fixed, ParentLinkID: parent, ChildLinkID: child, Origin: origin}
}

// RevoluteJoint builds a Revolute joint about axis with default limits.
func RevoluteJoint(name string, parent, child uid.UID, origin spatialmath.Pose, axis r3.Vector) Joint {
	limits := DefaultRevoluteLimits()
	return Joint{ID: uid.New(), Name: name, Type: Revolute, ParentLinkID: parent, ChildLinkID: child, Origin: origin, Axis: axis.Normalize(), Limits: &limits}
}

// Builder builds a Joint with a fluent API, grounded on
// original_source's JointBuilder (assembly/joint.rs).
type Builder struct {
	joint Joint
}

// NewJointBuilder starts a Builder for a joint between parent and
// child, defaulting to Fixed.
func NewJointBuilder(name string, parent, child uid.UID) *Builder {
	return &Builder{joint: Joint{ID: uid.New(), Name: name, Type: Fixed, ParentLinkID: parent, ChildLinkID: child}}
}

func (b *Builder) Type(t JointType) *Builder { b.joint.Type = t; return b }
func (b *Builder) Fixed() *Builder           { return b.Type(Fixed) }
func (b *Builder) Revolute() *Builder        { return b.Type(Revolute) }
func (b *Builder) Continuous() *Builder      { return b.Type(Continuous) }
func (b *Builder) Prismatic() *Builder       { return b.Type(Prismatic) }

func (b *Builder) Origin(p spatialmath.Pose) *Builder { b.joint.Origin = p; return b }
func (b *Builder) XYZ(x, y, z float64) *Builder {
	b.joint.Origin.XYZ = r3.Vector{X: x, Y: y, Z: z}
	return b
}
func (b *Builder) RPY(r, p, y float64) *Builder {
	b.joint.Origin.RPY = r3.Vector{X: r, Y: p, Z: y}
	return b
}

func (b *Builder) Axis(axis r3.Vector) *Builder { b.joint.Axis = axis.Normalize(); return b }
func (b *Builder) AxisXYZ(x, y, z float64) *Builder {
	return b.Axis(r3.Vector{X: x, Y: y, Z: z})
}

func (b *Builder) Limits(l Limits) *Builder { b.joint.Limits = &l; return b }
func (b *Builder) LimitsRange(lower, upper float64) *Builder {
	l := DefaultLimits().WithRange(lower, upper)
	b.joint.Limits = &l
	return b
}

func (b *Builder) Dynamics(damping, friction float64) *Builder {
	b.joint.Dynamics = &Dynamics{Damping: damping, Friction: friction}
	return b
}

func (b *Builder) Mimic(source uid.UID) *Builder {
	m := NewMimic(source)
	b.joint.Mimic = &m
	return b
}

func (b *Builder) MimicWithParams(source uid.UID, multiplier, offset float64) *Builder {
	m := NewMimic(source).WithParams(multiplier, offset)
	b.joint.Mimic = &m
	return b
}

// Build finalizes the joint.
func (b *Builder) Build() Joint {
	if b.joint.Limits == nil && b.joint.Type.HasLimits() {
		l := DefaultLimits()
		b.joint.Limits = &l
	}
	return b.joint
}
