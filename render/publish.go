package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/rkcad/rk/feature"
	"github.com/rkcad/rk/kernel"
	"github.com/rkcad/rk/mesh"
	"github.com/rkcad/rk/sketch"
	"github.com/rkcad/rk/uid"
)

// defaultColor is the material color applied to a body with no
// part-level color override.
var defaultColor = [4]float32{0.7, 0.7, 0.7, 1}

// BodiesFrom tessellates every CAD body in h against k and adapts each
// mesh into a render.Body at the identity transform (CAD bodies are
// expressed directly in world space; unlike Parts they carry no
// separate placement transform of their own).
func BodiesFrom(h *feature.History, k kernel.Kernel, tolerance float64) []Body {
	bodies := h.Bodies()
	out := make([]Body, 0, len(bodies))
	for id, b := range bodies {
		m, err := b.GetMesh(k, tolerance)
		if err != nil {
			// TessellationFailed: the body exists but has no preview
			// mesh; the renderer simply omits it, per spec.md §7.
			continue
		}
		adapted := mesh.Adapt(m)
		out = append(out, Body{
			ID:        id,
			Vertices:  adapted.Positions,
			Normals:   adapted.Normals,
			Indices:   adapted.Indices,
			Transform: mgl64.Ident4(),
			Color:     defaultColor,
		})
	}
	return out
}

// SketchPrimitivesFrom flattens a sketch's entities into the renderer's
// 2D primitive lists: points, line segments (by endpoint position, not
// index, since the renderer has no notion of entity UIDs on its draw
// buffers), circles, and arcs (angles measured from the center to the
// start and end points). Ellipses and splines are not emitted (spec.md
// §6 enumerates point/line/circle/arc only).
func SketchPrimitivesFrom(s *sketch.Sketch) SketchPrimitives {
	prims := SketchPrimitives{
		SketchID:       s.ID,
		PlaneTransform: s.Plane.Transform(),
	}

	entities := s.Entities()
	pos := make(map[string][2]float32, len(entities))
	for id, e := range entities {
		if p, ok := e.(sketch.Point); ok {
			pos[id.String()] = [2]float32{float32(p.Pos.X), float32(p.Pos.Y)}
			prims.Points = append(prims.Points, pos[id.String()])
		}
	}

	for _, e := range entities {
		switch v := e.(type) {
		case sketch.Line:
			start, end := pos[v.StartID.String()], pos[v.EndID.String()]
			prims.Lines = append(prims.Lines, [2][2]float32{start, end})
		case sketch.Circle:
			center := pos[v.CenterID.String()]
			prims.Circles = append(prims.Circles, CirclePrimitive{Center: center, Radius: float32(v.Radius)})
		case sketch.Arc:
			center := pos[v.CenterID.String()]
			start, end := pos[v.StartID.String()], pos[v.EndID.String()]
			prims.Arcs = append(prims.Arcs, ArcPrimitive{
				Center:     center,
				Radius:     float32(v.Radius),
				StartAngle: float32(math.Atan2(float64(start[1]-center[1]), float64(start[0]-center[0]))),
				EndAngle:   float32(math.Atan2(float64(end[1]-center[1]), float64(end[0]-center[0]))),
			})
		}
	}

	return prims
}

// ConstraintIconsFrom anchors one icon per constraint at the sketch
// position of its first referenced entity (its defining point for
// curves, or the point itself for Fixed).
func ConstraintIconsFrom(s *sketch.Sketch) []ConstraintIcon {
	entities := s.Entities()

	var anchor func(id uid.UID) ([2]float32, bool)
	anchor = func(id uid.UID) ([2]float32, bool) {
		e, ok := entities[id]
		if !ok {
			return [2]float32{}, false
		}
		if p, ok := e.(sketch.Point); ok {
			return [2]float32{float32(p.Pos.X), float32(p.Pos.Y)}, true
		}
		refs := e.PointRefs()
		if len(refs) == 0 {
			return [2]float32{}, false
		}
		return anchor(refs[0])
	}

	var icons []ConstraintIcon
	for _, c := range s.Constraints() {
		icon := ConstraintIcon{ConstraintID: c.ID, Kind: c.Kind}
		if c.Kind.IsDimensional() {
			icon.HasValue = true
			icon.Value = c.Value
		}
		if len(c.Refs) > 0 {
			if pos, ok := anchor(c.Refs[0]); ok {
				icon.Position = pos
			}
		} else {
			icon.Position = [2]float32{float32(c.FixedX), float32(c.FixedY)}
		}
		icons = append(icons, icon)
	}
	return icons
}
