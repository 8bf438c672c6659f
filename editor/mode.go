package editor

import (
	"github.com/rkcad/rk/feature"
	"github.com/rkcad/rk/uid"
)

// ReferencePlane names one of the three origin-centered planes a sketch
// can be seeded on during PlaneSelection.
type ReferencePlane int

const (
	PlaneXY ReferencePlane = iota
	PlaneXZ
	PlaneYZ
)

// SketchTool is the active drawing/constraint tool while in Sketch mode.
type SketchTool int

const (
	ToolSelect SketchTool = iota
	ToolLine
	ToolCircle
	ToolArc
	ToolRectangle
	ToolConstrainCoincident
	ToolConstrainHorizontal
	ToolConstrainVertical
	ToolConstrainParallel
	ToolConstrainPerpendicular
	ToolDimensionDistance
	ToolDimensionAngle
	ToolDimensionRadius
)

// IsDrawing reports whether t places new geometry.
func (t SketchTool) IsDrawing() bool {
	switch t {
	case ToolLine, ToolCircle, ToolArc, ToolRectangle:
		return true
	default:
		return false
	}
}

// IsConstraint reports whether t applies a constraint/dimension to an
// existing selection.
func (t SketchTool) IsConstraint() bool {
	switch t {
	case ToolConstrainCoincident, ToolConstrainHorizontal, ToolConstrainVertical,
		ToolConstrainParallel, ToolConstrainPerpendicular,
		ToolDimensionDistance, ToolDimensionAngle, ToolDimensionRadius:
		return true
	default:
		return false
	}
}

// ModeKind discriminates the EditorMode union.
type ModeKind int

const (
	ModeAssembly ModeKind = iota
	ModePlaneSelection
	ModeSketch
)

// ExtrudeDialogState tracks the in-progress parameters of the
// extrude/revolve dialog shown while exiting a profile-complete sketch.
type ExtrudeDialogState struct {
	Open          bool
	Distance      float64
	Direction     feature.ExtrudeDirection
	Op            feature.BooleanOp
	HasTargetBody bool
	TargetBodyID  uid.UID
	Error         string
}

// SketchModeState is the transient state carried while EditorMode is
// ModeSketch.
type SketchModeState struct {
	ActiveSketch   uid.UID
	CurrentTool    SketchTool
	SelectedEntities []uid.UID
	HoveredEntity  uid.UID
	HasHovered     bool
	SnapToGrid     bool
	GridSpacing    float64
	ExtrudeDialog  ExtrudeDialogState
}

// NewSketchModeState starts sketch-mode state for the given sketch, with
// grid snapping on by default (matching the original implementation).
func NewSketchModeState(sketchID uid.UID) SketchModeState {
	return SketchModeState{
		ActiveSketch: sketchID,
		CurrentTool:  ToolSelect,
		SnapToGrid:   true,
		GridSpacing:  1.0,
	}
}

// ClearSelection empties the entity selection.
func (s *SketchModeState) ClearSelection() { s.SelectedEntities = nil }

// SelectEntity adds id to the selection if not already present.
func (s *SketchModeState) SelectEntity(id uid.UID) {
	for _, e := range s.SelectedEntities {
		if e == id {
			return
		}
	}
	s.SelectedEntities = append(s.SelectedEntities, id)
}

// DeselectEntity removes id from the selection.
func (s *SketchModeState) DeselectEntity(id uid.UID) {
	out := s.SelectedEntities[:0:0]
	for _, e := range s.SelectedEntities {
		if e != id {
			out = append(out, e)
		}
	}
	s.SelectedEntities = out
}

// ToggleSelection flips id's membership in the selection.
func (s *SketchModeState) ToggleSelection(id uid.UID) {
	for _, e := range s.SelectedEntities {
		if e == id {
			s.DeselectEntity(id)
			return
		}
	}
	s.SelectEntity(id)
}

// PlaneSelectionState is the transient state carried while EditorMode is
// ModePlaneSelection.
type PlaneSelectionState struct {
	HasHovered bool
	Hovered    ReferencePlane
}

// Mode is the editor's current mode, a tagged union discriminated by
// Kind. Exactly one of the *State fields is meaningful for a given Kind.
type Mode struct {
	Kind    ModeKind
	Plane   PlaneSelectionState
	Sketch  SketchModeState
}

// AssemblyMode is the default 3D editing mode.
func AssemblyMode() Mode { return Mode{Kind: ModeAssembly} }

// EnterPlaneSelection transitions to ModePlaneSelection.
func EnterPlaneSelection() Mode { return Mode{Kind: ModePlaneSelection} }

// EnterSketchMode transitions to ModeSketch for the given sketch.
func EnterSketchMode(sketchID uid.UID) Mode {
	return Mode{Kind: ModeSketch, Sketch: NewSketchModeState(sketchID)}
}

// IsSketch reports whether the mode is ModeSketch.
func (m Mode) IsSketch() bool { return m.Kind == ModeSketch }

// IsPlaneSelection reports whether the mode is ModePlaneSelection.
func (m Mode) IsPlaneSelection() bool { return m.Kind == ModePlaneSelection }
