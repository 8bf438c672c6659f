package project

import (
	"github.com/rkcad/rk/uid"
)

// CurrentVersion is the project file format version this package
// writes; Load rejects a file with a newer version.
const CurrentVersion = 1

// File is the top-level project file schema, per spec.md §6:
// `{version, name, parts, assembly, materials, cad:{sketches, features}}`.
// Bodies and tessellations are never part of this schema; they are
// recomputed by rebuilding cad.Features against a kernel after load.
type File struct {
	Version  uint32    `yaml:"version"`
	Name     string    `yaml:"name"`
	Parts    []PartDTO `yaml:"parts,omitempty"`
	Assembly AssemblyDTO `yaml:"assembly"`
	Materials []MaterialDTO `yaml:"materials,omitempty"`
	Cad      CadDTO    `yaml:"cad"`
}

// MaterialDTO is a named color swatch referenced by Part.MaterialName.
type MaterialDTO struct {
	Name  string     `yaml:"name"`
	Color [4]float32 `yaml:"color"`
}

// PartDTO is Part's YAML-serializable form; uid.UID implements
// yaml MarshalYAML/UnmarshalYAML, so it round-trips as a plain string field.
type PartDTO struct {
	ID         uid.UID       `yaml:"id"`
	Name       string        `yaml:"name"`
	SourcePath string        `yaml:"source_path,omitempty"`
	Vertices   [][3]float32  `yaml:"vertices"`
	Normals    [][3]float32  `yaml:"normals"`
	Indices    []uint32      `yaml:"indices"`
	Origin     [16]float64   `yaml:"origin_transform"`
	Mass       float64       `yaml:"mass"`
	Inertia    Inertia       `yaml:"inertia"`
	BBoxMin    [3]float32    `yaml:"bbox_min"`
	BBoxMax    [3]float32    `yaml:"bbox_max"`
	Color      [4]float32    `yaml:"color"`
	MaterialName string      `yaml:"material_name,omitempty"`
	MirrorPartnerID uid.UID  `yaml:"mirror_partner_id,omitempty"`
	MirrorSide      int      `yaml:"mirror_side,omitempty"`
}

// AssemblyDTO is the kinematic graph's YAML-serializable form.
type AssemblyDTO struct {
	Name       string     `yaml:"name"`
	RootLinkID uid.UID    `yaml:"root_link_id,omitempty"`
	Links      []LinkDTO  `yaml:"links,omitempty"`
	Joints     []JointDTO `yaml:"joints,omitempty"`
}

// LinkDTO is Link's YAML-serializable form.
type LinkDTO struct {
	ID          uid.UID           `yaml:"id"`
	Name        string            `yaml:"name"`
	PartID      uid.UID           `yaml:"part_id,omitempty"`
	VisualColor [4]float32        `yaml:"visual_color"`
	Mass        float64           `yaml:"mass"`
	Inertia     Inertia           `yaml:"inertia"`
}

// JointDTO is Joint's YAML-serializable form.
type JointDTO struct {
	ID           uid.UID `yaml:"id"`
	Name         string  `yaml:"name"`
	Type         int     `yaml:"type"`
	ParentLinkID uid.UID `yaml:"parent_link_id"`
	ChildLinkID  uid.UID `yaml:"child_link_id"`
	OriginXYZ    [3]float64 `yaml:"origin_xyz"`
	OriginRPY    [3]float64 `yaml:"origin_rpy"`
	AxisXYZ      [3]float64 `yaml:"axis_xyz"`
	HasLimits bool    `yaml:"has_limits,omitempty"`
	Lower     float64 `yaml:"lower,omitempty"`
	Upper     float64 `yaml:"upper,omitempty"`
	Effort    float64 `yaml:"effort,omitempty"`
	Velocity  float64 `yaml:"velocity,omitempty"`
	HasMimic        bool    `yaml:"has_mimic,omitempty"`
	MimicSourceID   uid.UID `yaml:"mimic_source_id,omitempty"`
	MimicMultiplier float64 `yaml:"mimic_multiplier,omitempty"`
	MimicOffset     float64 `yaml:"mimic_offset,omitempty"`
}

// CadDTO bundles the feature history's persistent inputs.
type CadDTO struct {
	Sketches []SketchDTO  `yaml:"sketches,omitempty"`
	Features []FeatureDTO `yaml:"features,omitempty"`
}

// SketchDTO is Sketch's YAML-serializable form: plane + entity/
// constraint lists, each entity/constraint tagged with a kind
// discriminator since YAML has no native sum type.
type SketchDTO struct {
	ID    uid.UID     `yaml:"id"`
	Name  string      `yaml:"name"`
	Plane PlaneDTO    `yaml:"plane"`

	Entities    []EntityDTO     `yaml:"entities,omitempty"`
	Constraints []ConstraintDTO `yaml:"constraints,omitempty"`
}

// PlaneDTO is spatialmath.Plane's YAML-serializable form.
type PlaneDTO struct {
	Origin [3]float64 `yaml:"origin"`
	Normal [3]float64 `yaml:"normal"`
	XAxis  [3]float64 `yaml:"x_axis"`
	YAxis  [3]float64 `yaml:"y_axis"`
}

// EntityDTO tags one sketch entity by kind; only the fields relevant
// to that kind are populated.
type EntityDTO struct {
	ID   uid.UID `yaml:"id"`
	Kind int     `yaml:"kind"`

	PosX float64 `yaml:"pos_x,omitempty"`
	PosY float64 `yaml:"pos_y,omitempty"`

	StartID  uid.UID `yaml:"start_id,omitempty"`
	EndID    uid.UID `yaml:"end_id,omitempty"`
	CenterID uid.UID `yaml:"center_id,omitempty"`

	Radius   float64   `yaml:"radius,omitempty"`
	Major    float64   `yaml:"major,omitempty"`
	Minor    float64   `yaml:"minor,omitempty"`
	Rot      float64   `yaml:"rot,omitempty"`
	Controls []uid.UID `yaml:"controls,omitempty"`
	Closed   bool      `yaml:"closed,omitempty"`

	Construction bool `yaml:"construction,omitempty"`
}

// ConstraintDTO is Constraint's YAML-serializable form.
type ConstraintDTO struct {
	ID             uid.UID   `yaml:"id"`
	Kind           int       `yaml:"kind"`
	Refs           []uid.UID `yaml:"refs"`
	Value          float64   `yaml:"value,omitempty"`
	FixedX         float64   `yaml:"fixed_x,omitempty"`
	FixedY         float64   `yaml:"fixed_y,omitempty"`
}

// FeatureDTO is Feature's YAML-serializable form.
type FeatureDTO struct {
	ID         uid.UID `yaml:"id"`
	Name       string  `yaml:"name"`
	Kind       int     `yaml:"kind"`
	Suppressed bool    `yaml:"suppressed,omitempty"`

	SketchID  uid.UID `yaml:"sketch_id,omitempty"`
	Distance  float64 `yaml:"distance,omitempty"`
	Direction int     `yaml:"direction,omitempty"`

	AxisOrigin    [3]float64 `yaml:"axis_origin,omitempty"`
	AxisDirection [3]float64 `yaml:"axis_direction,omitempty"`
	Angle         float64    `yaml:"angle,omitempty"`
	DraftAngle    float64    `yaml:"draft_angle,omitempty"`

	Op            int     `yaml:"op,omitempty"`
	TargetBodyID  uid.UID `yaml:"target_body_id,omitempty"`
	HasTargetBody bool    `yaml:"has_target_body,omitempty"`
	ToolBodyID    uid.UID `yaml:"tool_body_id,omitempty"`

	BodyID uid.UID   `yaml:"body_id,omitempty"`
	Param  float64   `yaml:"param,omitempty"`
	Edges  []uid.UID `yaml:"edges,omitempty"`

	// HasKernelData survives a round-trip in place of the actual
	// kernel.Solid reference, per spec.md §6's "Solid references ... are
	// omitted from serialization (has_kernel_data flag alone survives)".
	// It records whether this feature produced a body on the rebuild
	// that preceded the save, purely informational — Load always
	// rebuilds from scratch regardless of this flag's value.
	HasKernelData bool `yaml:"has_kernel_data,omitempty"`
}
