package assembly

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"

	"github.com/rkcad/rk/spatialmath"
	"github.com/rkcad/rk/uid"
)

// Inertial carries a link's mass properties.
type Inertial struct {
	Origin spatialmath.Pose
	Mass   float64
	// Inertia is the 3x3 symmetric inertia tensor, stored as its six
	// independent entries (Ixx, Iyy, Izz, Ixy, Ixz, Iyz).
	Ixx, Iyy, Izz, Ixy, Ixz, Iyz float64
}

// CollisionElement is one piece of a link's collision geometry.
type CollisionElement struct {
	Origin spatialmath.Pose
	// PartID references the mesh bundle (project.Part) backing this
	// collision shape; zero value means "use the visual part".
	PartID uid.UID
}

// Link is one rigid body in the assembly graph.
type Link struct {
	ID               uid.UID
	Name             string
	PartID           uid.UID
	HasPart          bool
	WorldTransform   mgl64.Mat4
	VisualColor      [4]float32
	CollisionElements []CollisionElement
	Inertial         Inertial
}

// NewLink constructs a Link with an identity world transform.
func NewLink(name string) *Link {
	return NewLinkWithID(uid.New(), name)
}

// NewLinkWithID constructs a Link with an explicit UID, used when
// restoring a graph from a project file.
func NewLinkWithID(id uid.UID, name string) *Link {
	return &Link{ID: id, Name: name, WorldTransform: mgl64.Ident4()}
}

// WorldPosition extracts the translation component of WorldTransform.
func (l *Link) WorldPosition() r3.Vector {
	return spatialmath.TransformPoint(l.WorldTransform, r3.Vector{})
}
