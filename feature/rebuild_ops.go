package feature

import (
	"github.com/rkcad/rk/kernel"
	"github.com/rkcad/rk/uid"
)

// extrudeDirectionSigns returns the sign(s) applied to the plane normal
// for each sweep pass: Positive/Negative each produce one pass,
// Symmetric produces two half-distance passes unioned together, per
// spec.md §4.5.
func extrudeDirectionSigns(d ExtrudeDirection) []float64 {
	switch d {
	case Negative:
		return []float64{-1}
	case Symmetric:
		return []float64{1, -1}
	default:
		return []float64{1}
	}
}

func (h *History) executeExtrude(k kernel.Kernel, f Feature, bodies map[uid.UID]*Body) (*Body, error) {
	sk, ok := h.sketches[f.SketchID]
	if !ok {
		return nil, ErrSketchNotFound
	}
	profiles, err := sk.ExtractProfiles()
	if err != nil {
		return nil, err
	}

	signs := extrudeDirectionSigns(f.Direction)
	distance := f.Distance
	if len(signs) > 1 {
		distance = f.Distance / 2
	}
	plane := sk.Plane

	var combined kernel.Solid
	haveCombined := false
	for _, profile := range profiles {
		var passSolid kernel.Solid
		havePass := false
		for _, sign := range signs {
			dir := plane.Normal.Mul(sign)
			solid, err := k.Extrude(profile, plane.Origin, plane.XAxis, plane.YAxis, dir, distance)
			if err != nil {
				return nil, err
			}
			if !havePass {
				passSolid, havePass = solid, true
				continue
			}
			passSolid, err = k.Boolean(passSolid, solid, kernel.Union)
			if err != nil {
				return nil, err
			}
		}
		if !haveCombined {
			combined, haveCombined = passSolid, true
			continue
		}
		combined, err = k.Boolean(combined, passSolid, kernel.Union)
		if err != nil {
			return nil, err
		}
	}
	if !haveCombined {
		return nil, kernel.ErrInvalidProfile
	}

	final, err := h.applyBooleanAgainstTarget(k, f, combined, bodies)
	if err != nil {
		return nil, err
	}
	return &Body{ID: h.bodyIDFor(f.ID), Name: f.Name, Solid: final, SourceFeatureID: f.ID}, nil
}

func (h *History) executeRevolve(k kernel.Kernel, f Feature, bodies map[uid.UID]*Body) (*Body, error) {
	sk, ok := h.sketches[f.SketchID]
	if !ok {
		return nil, ErrSketchNotFound
	}
	profiles, err := sk.ExtractProfiles()
	if err != nil {
		return nil, err
	}
	plane := sk.Plane

	var combined kernel.Solid
	haveCombined := false
	for _, profile := range profiles {
		solid, err := k.Revolve(profile, plane.Origin, plane.XAxis, plane.YAxis, f.Axis, f.Angle)
		if err != nil {
			return nil, err
		}
		if !haveCombined {
			combined, haveCombined = solid, true
			continue
		}
		combined, err = k.Boolean(combined, solid, kernel.Union)
		if err != nil {
			return nil, err
		}
	}
	if !haveCombined {
		return nil, kernel.ErrInvalidProfile
	}

	final, err := h.applyBooleanAgainstTarget(k, f, combined, bodies)
	if err != nil {
		return nil, err
	}
	return &Body{ID: h.bodyIDFor(f.ID), Name: f.Name, Solid: final, SourceFeatureID: f.ID}, nil
}

func (h *History) executeBoolean(k kernel.Kernel, f Feature, bodies map[uid.UID]*Body) (*Body, error) {
	target, ok := bodies[f.TargetBodyID]
	if !ok {
		return nil, ErrBodyNotFound
	}
	tool, ok := bodies[f.ToolBodyID]
	if !ok {
		return nil, ErrBodyNotFound
	}
	kop, ok := f.Op.ToKernelOp()
	if !ok {
		kop = kernel.Union
	}
	solid, err := k.Boolean(target.Solid, tool.Solid, kop)
	if err != nil {
		return nil, err
	}
	delete(bodies, f.TargetBodyID)
	delete(bodies, f.ToolBodyID)
	return &Body{ID: h.bodyIDFor(f.ID), Name: f.Name, Solid: solid, SourceFeatureID: f.ID}, nil
}

func (h *History) executeFillet(k kernel.Kernel, f Feature, bodies map[uid.UID]*Body) (*Body, error) {
	target, ok := bodies[f.BodyID]
	if !ok {
		return nil, ErrBodyNotFound
	}
	solid, err := k.Fillet(target.Solid, f.Param, f.Edges)
	if err != nil {
		return nil, err
	}
	delete(bodies, f.BodyID)
	return &Body{ID: h.bodyIDFor(f.ID), Name: f.Name, Solid: solid, SourceFeatureID: f.ID}, nil
}

func (h *History) executeChamfer(k kernel.Kernel, f Feature, bodies map[uid.UID]*Body) (*Body, error) {
	target, ok := bodies[f.BodyID]
	if !ok {
		return nil, ErrBodyNotFound
	}
	solid, err := k.Chamfer(target.Solid, f.Param, f.Edges)
	if err != nil {
		return nil, err
	}
	delete(bodies, f.BodyID)
	return &Body{ID: h.bodyIDFor(f.ID), Name: f.Name, Solid: solid, SourceFeatureID: f.ID}, nil
}
