// Package spatialmath provides the 3D pose, plane and transform primitives
// shared by the assembly forward-kinematics pipeline, the CAD sketch
// planes and the picking/viewport math. Positions and directions are
// carried as github.com/golang/geo/r3.Vector; 4x4 homogeneous transforms
// and quaternions are carried as github.com/go-gl/mathgl/mgl64 types, the
// same pairing used for the kinematic chains this module's assembly graph
// is modeled on.
package spatialmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
)

// Pose is a position plus an XYZ-Euler orientation (roll, pitch, yaw, in
// radians), mirroring the URDF joint-origin convention: translate then
// rotate about the parent's intrinsic X, then Y, then Z axes.
type Pose struct {
	XYZ r3.Vector
	RPY r3.Vector // Roll (X), Pitch (Y), Yaw (Z), radians
}

// IdentityPose is the zero pose: no translation, no rotation.
var IdentityPose = Pose{}

// NewPoseFromPosition builds a pose with the given translation and no
// rotation.
func NewPoseFromPosition(xyz r3.Vector) Pose {
	return Pose{XYZ: xyz}
}

// ToMat4 renders the pose as a 4x4 homogeneous transform: rotation
// composed from intrinsic XYZ-Euler angles, then translated.
func (p Pose) ToMat4() mgl64.Mat4 {
	rot := mgl64.AnglesToQuat(p.RPY.X, p.RPY.Y, p.RPY.Z, mgl64.XYZ).Mat4()
	return mgl64.Translate3D(p.XYZ.X, p.XYZ.Y, p.XYZ.Z).Mul4(rot)
}

// Quat returns the orientation component as a quaternion.
func (p Pose) Quat() mgl64.Quat {
	return mgl64.AnglesToQuat(p.RPY.X, p.RPY.Y, p.RPY.Z, mgl64.XYZ)
}

// TransformPoint applies the pose's 4x4 matrix to a point.
func TransformPoint(m mgl64.Mat4, v r3.Vector) r3.Vector {
	out := m.Mul4x1(mgl64.Vec4{v.X, v.Y, v.Z, 1})
	return r3.Vector{X: out[0], Y: out[1], Z: out[2]}
}

// TransformDirection applies only the rotation/scale part of the pose's
// matrix to a direction vector (w=0), leaving translation out.
func TransformDirection(m mgl64.Mat4, v r3.Vector) r3.Vector {
	out := m.Mul4x1(mgl64.Vec4{v.X, v.Y, v.Z, 0})
	return r3.Vector{X: out[0], Y: out[1], Z: out[2]}
}

// AxisRotation builds the 4x4 rotation-only transform for rotating by
// angle radians about axis (right-hand rule), used by revolute/continuous
// joints and by the revolve feature.
func AxisRotation(axis r3.Vector, angle float64) mgl64.Mat4 {
	axis = axis.Normalize()
	q := mgl64.QuatRotate(angle, mgl64.Vec3{axis.X, axis.Y, axis.Z})
	return q.Mat4()
}

// AxisTranslation builds the 4x4 translate-only transform for moving by
// distance along axis, used by prismatic joints.
func AxisTranslation(axis r3.Vector, distance float64) mgl64.Mat4 {
	axis = axis.Normalize()
	d := axis.Mul(distance)
	return mgl64.Translate3D(d.X, d.Y, d.Z)
}

// ApproxEqual reports whether two vectors are within tol of one another in
// every component, used by the bounding-box and FK testable properties.
func ApproxEqual(a, b r3.Vector, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol && math.Abs(a.Z-b.Z) <= tol
}
