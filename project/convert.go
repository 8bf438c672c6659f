package project

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"

	"github.com/rkcad/rk/assembly"
	"github.com/rkcad/rk/feature"
	"github.com/rkcad/rk/kernel"
	"github.com/rkcad/rk/logging"
	"github.com/rkcad/rk/sketch"
	"github.com/rkcad/rk/spatialmath"
	"github.com/rkcad/rk/uid"
)

// Snapshot bundles everything a project file needs to serialize: the
// name, the loaded mesh parts, the assembly graph, and the CAD feature
// history (sketches + features, never bodies).
type Snapshot struct {
	Name     string
	Parts    map[uid.UID]Part
	Assembly *assembly.Graph
	Cad      *feature.History
}

// ToFile flattens a Snapshot into its YAML-serializable File form.
func ToFile(s Snapshot) File {
	f := File{Version: CurrentVersion, Name: s.Name}

	for _, p := range s.Parts {
		f.Parts = append(f.Parts, partToDTO(p))
	}

	if s.Assembly != nil {
		f.Assembly = assemblyToDTO(s.Assembly)
	}

	if s.Cad != nil {
		for _, sk := range s.Cad.Sketches() {
			f.Cad.Sketches = append(f.Cad.Sketches, sketchToDTO(sk))
		}

		hasBody := make(map[uid.UID]bool)
		for _, b := range s.Cad.Bodies() {
			hasBody[b.SourceFeatureID] = true
		}
		for _, ft := range s.Cad.Features() {
			dto := featureToDTO(ft)
			dto.HasKernelData = hasBody[ft.ID]
			f.Cad.Features = append(f.Cad.Features, dto)
		}
	}

	return f
}

// FromFile reconstructs a Snapshot from a loaded File: parts are
// restored directly, the assembly graph and sketch pool are rebuilt
// with their original UIDs preserved, and features are re-added in
// order (suppressed state included). HasKernelData is not consulted —
// bodies are always recomputed by the caller's subsequent
// feature.History.Rebuild against a live kernel, per spec.md §6's
// "recomputed on load".
func FromFile(f File, logger logging.Logger) Snapshot {
	s := Snapshot{
		Name:     f.Name,
		Parts:    make(map[uid.UID]Part, len(f.Parts)),
		Assembly: assembly.NewGraph(f.Assembly.Name),
		Cad:      feature.NewHistory(logger),
	}

	for _, dto := range f.Parts {
		s.Parts[dto.ID] = partFromDTO(dto)
	}

	assemblyFromDTO(f.Assembly, s.Assembly)

	for _, dto := range f.Cad.Sketches {
		s.Cad.AddSketch(sketchFromDTO(dto))
	}
	for _, dto := range f.Cad.Features {
		s.Cad.AddFeature(featureFromDTO(dto))
	}

	return s
}

func vec3(v r3.Vector) [3]float64 { return [3]float64{v.X, v.Y, v.Z} }
func toVec3(a [3]float64) r3.Vector { return r3.Vector{X: a[0], Y: a[1], Z: a[2]} }

func partToDTO(p Part) PartDTO {
	dto := PartDTO{
		ID:         p.ID,
		Name:       p.Name,
		SourcePath: p.SourcePath,
		Vertices:   p.Vertices,
		Normals:    p.Normals,
		Indices:    p.Indices,
		Origin:     [16]float64(p.OriginTransform),
		Mass:       p.Mass,
		Inertia:    p.Inertia,
		BBoxMin:    p.BBoxMin,
		BBoxMax:    p.BBoxMax,
		Color:      p.Color,
		MaterialName: p.MaterialName,
	}
	if p.Mirror.HasPartner {
		dto.MirrorPartnerID = p.Mirror.PartnerID
		dto.MirrorSide = int(p.Mirror.Side)
	}
	return dto
}

func partFromDTO(dto PartDTO) Part {
	p := Part{
		ID:              dto.ID,
		Name:            dto.Name,
		SourcePath:      dto.SourcePath,
		HasSource:       dto.SourcePath != "",
		Vertices:        dto.Vertices,
		Normals:         dto.Normals,
		Indices:         dto.Indices,
		OriginTransform: mgl64.Mat4(dto.Origin),
		Mass:            dto.Mass,
		Inertia:         dto.Inertia,
		BBoxMin:         dto.BBoxMin,
		BBoxMax:         dto.BBoxMax,
		Color:           dto.Color,
		MaterialName:    dto.MaterialName,
		HasMaterialName: dto.MaterialName != "",
	}
	if !dto.MirrorPartnerID.IsNil() {
		p.Mirror = MirrorPair{HasPartner: true, PartnerID: dto.MirrorPartnerID, Side: MirrorSide(dto.MirrorSide)}
	}
	return p
}

func assemblyToDTO(g *assembly.Graph) AssemblyDTO {
	dto := AssemblyDTO{Name: g.Name}
	if g.HasRoot {
		dto.RootLinkID = g.RootLinkID
	}
	for id, l := range g.Links() {
		dto.Links = append(dto.Links, LinkDTO{
			ID:          id,
			Name:        l.Name,
			PartID:      l.PartID,
			VisualColor: l.VisualColor,
			Mass:        l.Inertial.Mass,
			Inertia: Inertia{
				Ixx: l.Inertial.Ixx, Iyy: l.Inertial.Iyy, Izz: l.Inertial.Izz,
				Ixy: l.Inertial.Ixy, Ixz: l.Inertial.Ixz, Iyz: l.Inertial.Iyz,
			},
		})
	}
	for id, j := range g.Joints() {
		jd := JointDTO{
			ID:           id,
			Name:         j.Name,
			Type:         int(j.Type),
			ParentLinkID: j.ParentLinkID,
			ChildLinkID:  j.ChildLinkID,
			OriginXYZ:    vec3(j.Origin.XYZ),
			OriginRPY:    vec3(j.Origin.RPY),
			AxisXYZ:      vec3(j.Axis),
		}
		if j.Limits != nil {
			jd.HasLimits = true
			jd.Lower, jd.Upper = j.Limits.Lower, j.Limits.Upper
			jd.Effort, jd.Velocity = j.Limits.Effort, j.Limits.Velocity
		}
		if j.Mimic != nil {
			jd.HasMimic = true
			jd.MimicSourceID = j.Mimic.SourceJointID
			jd.MimicMultiplier = j.Mimic.Multiplier
			jd.MimicOffset = j.Mimic.Offset
		}
		dto.Joints = append(dto.Joints, jd)
	}
	return dto
}

// assemblyFromDTO populates an existing empty graph, preserving link and
// joint UIDs via assembly.NewLinkWithID/NewJointWithID-style restoration.
// Links are added first (first-added becomes root, matching the DTO's
// RootLinkID by construction order), then joints connect them.
func assemblyFromDTO(dto AssemblyDTO, g *assembly.Graph) {
	byID := make(map[uid.UID]*assembly.Link, len(dto.Links))
	for _, ld := range dto.Links {
		l := assembly.NewLinkWithID(ld.ID, ld.Name)
		l.PartID = ld.PartID
		l.HasPart = !ld.PartID.IsNil()
		l.VisualColor = ld.VisualColor
		l.Inertial = assembly.Inertial{
			Mass: ld.Mass,
			Ixx:  ld.Inertia.Ixx, Iyy: ld.Inertia.Iyy, Izz: ld.Inertia.Izz,
			Ixy: ld.Inertia.Ixy, Ixz: ld.Inertia.Ixz, Iyz: ld.Inertia.Iyz,
		}
		byID[ld.ID] = l
	}

	// Ensure the original root link is added first so NewGraph's
	// first-link-becomes-root rule reproduces the saved root.
	if !dto.RootLinkID.IsNil() {
		if root, ok := byID[dto.RootLinkID]; ok {
			g.AddLink(root)
		}
	}
	for _, ld := range dto.Links {
		if ld.ID == dto.RootLinkID {
			continue
		}
		g.AddLink(byID[ld.ID])
	}

	for _, jd := range dto.Joints {
		j := assembly.Joint{
			ID:           jd.ID,
			Name:         jd.Name,
			Type:         assembly.JointType(jd.Type),
			ParentLinkID: jd.ParentLinkID,
			ChildLinkID:  jd.ChildLinkID,
			Origin:       spatialmath.Pose{XYZ: toVec3(jd.OriginXYZ), RPY: toVec3(jd.OriginRPY)},
			Axis:         toVec3(jd.AxisXYZ),
		}
		if jd.HasLimits {
			j.Limits = &assembly.Limits{Lower: jd.Lower, Upper: jd.Upper, Effort: jd.Effort, Velocity: jd.Velocity}
		}
		if jd.HasMimic {
			j.Mimic = &assembly.Mimic{SourceJointID: jd.MimicSourceID, Multiplier: jd.MimicMultiplier, Offset: jd.MimicOffset}
		}
		_ = g.Connect(jd.ParentLinkID, jd.ChildLinkID, j)
	}
}

func planeToDTO(p spatialmath.Plane) PlaneDTO {
	return PlaneDTO{Origin: vec3(p.Origin), Normal: vec3(p.Normal), XAxis: vec3(p.XAxis), YAxis: vec3(p.YAxis)}
}

func planeFromDTO(dto PlaneDTO) spatialmath.Plane {
	return spatialmath.Plane{Origin: toVec3(dto.Origin), Normal: toVec3(dto.Normal), XAxis: toVec3(dto.XAxis), YAxis: toVec3(dto.YAxis)}
}

func sketchToDTO(s *sketch.Sketch) SketchDTO {
	dto := SketchDTO{ID: s.ID, Name: s.Name, Plane: planeToDTO(s.Plane)}

	for id, e := range s.Entities() {
		ed := EntityDTO{ID: id, Kind: int(e.Kind()), Construction: s.IsConstruction(id)}
		switch v := e.(type) {
		case sketch.Point:
			ed.PosX, ed.PosY = v.Pos.X, v.Pos.Y
		case sketch.Line:
			ed.StartID, ed.EndID = v.StartID, v.EndID
		case sketch.Arc:
			ed.CenterID, ed.StartID, ed.EndID, ed.Radius = v.CenterID, v.StartID, v.EndID, v.Radius
		case sketch.Circle:
			ed.CenterID, ed.Radius = v.CenterID, v.Radius
		case sketch.Ellipse:
			ed.CenterID, ed.Major, ed.Minor, ed.Rot = v.CenterID, v.Major, v.Minor, v.Rot
		case sketch.Spline:
			ed.Controls, ed.Closed = v.Controls, v.Closed
		}
		dto.Entities = append(dto.Entities, ed)
	}

	for id, c := range s.Constraints() {
		dto.Constraints = append(dto.Constraints, ConstraintDTO{
			ID: id, Kind: int(c.Kind), Refs: c.Refs, Value: c.Value, FixedX: c.FixedX, FixedY: c.FixedY,
		})
	}

	return dto
}

func sketchFromDTO(dto SketchDTO) *sketch.Sketch {
	s := sketch.NewWithID(dto.ID, dto.Name, planeFromDTO(dto.Plane))

	for _, ed := range dto.Entities {
		var e sketch.Entity
		switch sketch.EntityKind(ed.Kind) {
		case sketch.KindPoint:
			e = sketch.Point{ID: ed.ID, Pos: spatialmath.Point2{X: ed.PosX, Y: ed.PosY}}
		case sketch.KindLine:
			e = sketch.Line{ID: ed.ID, StartID: ed.StartID, EndID: ed.EndID}
		case sketch.KindArc:
			e = sketch.Arc{ID: ed.ID, CenterID: ed.CenterID, StartID: ed.StartID, EndID: ed.EndID, Radius: ed.Radius}
		case sketch.KindCircle:
			e = sketch.Circle{ID: ed.ID, CenterID: ed.CenterID, Radius: ed.Radius}
		case sketch.KindEllipse:
			e = sketch.Ellipse{ID: ed.ID, CenterID: ed.CenterID, Major: ed.Major, Minor: ed.Minor, Rot: ed.Rot}
		case sketch.KindSpline:
			e = sketch.Spline{ID: ed.ID, Controls: ed.Controls, Closed: ed.Closed}
		default:
			continue
		}
		s.AddEntity(e)
		if ed.Construction {
			s.SetConstruction(ed.ID, true)
		}
	}

	for _, cd := range dto.Constraints {
		c := sketch.Constraint{ID: cd.ID, Kind: sketch.ConstraintKind(cd.Kind), Refs: cd.Refs, Value: cd.Value, FixedX: cd.FixedX, FixedY: cd.FixedY}
		_ = s.AddConstraint(c)
	}

	return s
}

func featureToDTO(ft feature.Feature) FeatureDTO {
	dto := FeatureDTO{
		ID: ft.ID, Name: ft.Name, Kind: int(ft.Kind), Suppressed: ft.Suppressed,
		SketchID: ft.SketchID, Distance: ft.Distance, Direction: int(ft.Direction),
		Angle: ft.Angle, DraftAngle: ft.DraftAngle,
		Op: int(ft.Op), TargetBodyID: ft.TargetBodyID, HasTargetBody: ft.HasTargetBody, ToolBodyID: ft.ToolBodyID,
		BodyID: ft.BodyID, Param: ft.Param, Edges: ft.Edges,
	}
	dto.AxisOrigin = vec3(ft.Axis.Origin)
	dto.AxisDirection = vec3(ft.Axis.Direction)
	return dto
}

func featureFromDTO(dto FeatureDTO) feature.Feature {
	return feature.Feature{
		ID: dto.ID, Name: dto.Name, Kind: feature.Kind(dto.Kind), Suppressed: dto.Suppressed,
		SketchID: dto.SketchID, Distance: dto.Distance, Direction: feature.ExtrudeDirection(dto.Direction),
		Axis:       kernel.Axis3D{Origin: toVec3(dto.AxisOrigin), Direction: toVec3(dto.AxisDirection)},
		Angle:      dto.Angle,
		DraftAngle: dto.DraftAngle,
		Op:         feature.BooleanOp(dto.Op), TargetBodyID: dto.TargetBodyID, HasTargetBody: dto.HasTargetBody, ToolBodyID: dto.ToolBodyID,
		BodyID: dto.BodyID, Param: dto.Param, Edges: dto.Edges,
	}
}
