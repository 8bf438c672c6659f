// Package render defines the plain value types published to the
// rendering collaborator after each editor mutation batch, per spec.md
// §6's renderer contract. Nothing in this package depends on a
// particular graphics API; it is pure data.
package render

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/rkcad/rk/sketch"
	"github.com/rkcad/rk/uid"
)

// Body is one renderable CAD body or Part: a tessellated mesh, its
// world transform, and its material color.
type Body struct {
	ID        uid.UID
	Vertices  [][3]float32
	Normals   [][3]float32
	Indices   []uint32
	Transform mgl64.Mat4
	Color     [4]float32
}

// AxesInstance is the transform-gizmo overlay drawn on the currently
// selected link.
type AxesInstance struct {
	Transform mgl64.Mat4
	Scale     float32
}

// JointMarker is the small sphere drawn at a joint's origin in Assembly
// mode.
type JointMarker struct {
	JointID  uid.UID
	Position [3]float32
	Radius   float32
	Color    [4]float32
}

// SketchPrimitives is the 2D geometry of the sketch currently being
// edited, expressed in sketch-local coordinates plus the plane
// transform needed to place them in world space.
type SketchPrimitives struct {
	SketchID       uid.UID
	PlaneTransform mgl64.Mat4

	Points  [][2]float32
	Lines   [][2][2]float32
	Circles []CirclePrimitive
	Arcs    []ArcPrimitive
}

// CirclePrimitive is a sketch circle rendered as center+radius rather
// than a pre-tessellated polyline.
type CirclePrimitive struct {
	Center [2]float32
	Radius float32
}

// ArcPrimitive is a sketch arc rendered as center+radius+angle range.
type ArcPrimitive struct {
	Center              [2]float32
	Radius              float32
	StartAngle, EndAngle float32
}

// ConstraintIcon is the small glyph drawn at a constraint's anchor
// point: a type tag and, for dimensional constraints, the numeric
// value to label it with.
type ConstraintIcon struct {
	ConstraintID uid.UID
	Position     [2]float32
	Kind         sketch.ConstraintKind
	HasValue     bool
	Value        float64
}

// PreviewBody is the semi-transparent preview mesh shown while the
// extrude/revolve dialog is open, before the feature is committed.
type PreviewBody struct {
	Body
}

// Frame is the complete renderer-facing snapshot published after a
// mutation batch: every CAD body/Part, the selected link's axes
// overlay (if any), every joint marker (Assembly mode), sketch
// primitives and constraint icons (Sketch mode), and an optional
// extrude/revolve preview.
type Frame struct {
	Bodies []Body

	HasAxes bool
	Axes    AxesInstance

	JointMarkers []JointMarker

	HasSketch        bool
	Sketch           SketchPrimitives
	ConstraintIcons  []ConstraintIcon

	HasPreview bool
	Preview    PreviewBody
}
