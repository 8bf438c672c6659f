package editor

import (
	"github.com/rkcad/rk/assembly"
	"github.com/rkcad/rk/feature"
	"github.com/rkcad/rk/sketch"
	"github.com/rkcad/rk/spatialmath"
	"github.com/rkcad/rk/uid"
)

// Action is one user-facing mutation, pushed onto the Store's queue and
// drained by Dispatch. Grounded on the original implementation's
// AppAction enum: every variant answers IsUndoable and Describe the same
// way regardless of its payload.
type Action interface {
	IsUndoable() bool
	Describe() string
}

// --- Project I/O -----------------------------------------------------

type NewProject struct{}

func (NewProject) IsUndoable() bool { return false }
func (NewProject) Describe() string { return "New Project" }

type LoadProject struct{ Path string }

func (LoadProject) IsUndoable() bool { return false }
func (LoadProject) Describe() string { return "Load Project" }

type SaveProject struct{ Path string }

func (SaveProject) IsUndoable() bool { return false }
func (SaveProject) Describe() string { return "Save Project" }

// --- Part creation/selection/transform --------------------------------

type AddPart struct {
	PartID uid.UID
	Name   string
}

func (AddPart) IsUndoable() bool { return true }
func (AddPart) Describe() string { return "Add Part" }

type SelectPart struct {
	PartID  uid.UID
	HasPart bool
}

func (SelectPart) IsUndoable() bool { return false }
func (SelectPart) Describe() string { return "Select Part" }

type DeleteSelectedPart struct{}

func (DeleteSelectedPart) IsUndoable() bool { return true }
func (DeleteSelectedPart) Describe() string { return "Delete Part" }

type UpdatePartTransform struct {
	PartID    uid.UID
	Transform spatialmath.Pose
}

func (UpdatePartTransform) IsUndoable() bool { return true }
func (UpdatePartTransform) Describe() string { return "Move Part" }

// --- Assembly connect/disconnect, joint positions ---------------------

type ConnectParts struct {
	ParentLinkID uid.UID
	ChildLinkID  uid.UID
	Joint        assembly.Joint
}

func (ConnectParts) IsUndoable() bool { return true }
func (ConnectParts) Describe() string { return "Connect Parts" }

type DisconnectPart struct{ ChildLinkID uid.UID }

func (DisconnectPart) IsUndoable() bool { return true }
func (DisconnectPart) Describe() string { return "Disconnect Part" }

// UpdateJointPosition is a real-time, frequently-firing action (e.g. a
// slider drag) and is explicitly excluded from undo history.
type UpdateJointPosition struct {
	JointID  uid.UID
	Position float64
}

func (UpdateJointPosition) IsUndoable() bool { return false }
func (UpdateJointPosition) Describe() string { return "Update Joint Position" }

type ResetJointPosition struct{ JointID uid.UID }

func (ResetJointPosition) IsUndoable() bool { return true }
func (ResetJointPosition) Describe() string { return "Reset Joint Position" }

type ResetAllJointPositions struct{}

func (ResetAllJointPositions) IsUndoable() bool { return true }
func (ResetAllJointPositions) Describe() string { return "Reset All Joint Positions" }

type UpdateJointLimits struct {
	JointID uid.UID
	Limits  assembly.Limits
}

func (UpdateJointLimits) IsUndoable() bool { return true }
func (UpdateJointLimits) Describe() string { return "Update Joint Limits" }

// --- Collision edits ---------------------------------------------------

type AddCollision struct {
	LinkID  uid.UID
	Element assembly.CollisionElement
}

func (AddCollision) IsUndoable() bool { return true }
func (AddCollision) Describe() string { return "Add Collision" }

type RemoveCollision struct {
	LinkID uid.UID
	Index  int
}

func (RemoveCollision) IsUndoable() bool { return true }
func (RemoveCollision) Describe() string { return "Remove Collision" }

// --- Sketch sub-actions -------------------------------------------------

type SketchCreate struct {
	Plane spatialmath.Plane
	Name  string
}

func (SketchCreate) IsUndoable() bool { return true }
func (SketchCreate) Describe() string { return "Create Sketch" }

type SketchEdit struct{ SketchID uid.UID }

func (SketchEdit) IsUndoable() bool { return false }
func (SketchEdit) Describe() string { return "Edit Sketch" }

type SketchExit struct{}

func (SketchExit) IsUndoable() bool { return false }
func (SketchExit) Describe() string { return "Exit Sketch Mode" }

type SketchSetTool struct{ Tool SketchTool }

func (SketchSetTool) IsUndoable() bool { return false }
func (SketchSetTool) Describe() string { return "Set Tool" }

type SketchAddEntity struct {
	SketchID uid.UID
	Entity   sketch.Entity
}

func (SketchAddEntity) IsUndoable() bool { return true }
func (SketchAddEntity) Describe() string { return "Add Entity" }

type SketchDeleteSelected struct{ SketchID uid.UID }

func (SketchDeleteSelected) IsUndoable() bool { return true }
func (SketchDeleteSelected) Describe() string { return "Delete Entities" }

type SketchAddConstraint struct {
	SketchID   uid.UID
	Constraint sketch.Constraint
}

func (SketchAddConstraint) IsUndoable() bool { return true }
func (SketchAddConstraint) Describe() string { return "Add Constraint" }

type SketchDeleteConstraint struct {
	SketchID     uid.UID
	ConstraintID uid.UID
}

func (SketchDeleteConstraint) IsUndoable() bool { return true }
func (SketchDeleteConstraint) Describe() string { return "Delete Constraint" }

type SketchSolve struct{ SketchID uid.UID }

func (SketchSolve) IsUndoable() bool { return true }
func (SketchSolve) Describe() string { return "Solve Sketch" }

type SketchToggleSnap struct{}

func (SketchToggleSnap) IsUndoable() bool { return false }
func (SketchToggleSnap) Describe() string { return "Toggle Grid Snap" }

type SketchSetGridSpacing struct{ Spacing float64 }

func (SketchSetGridSpacing) IsUndoable() bool { return false }
func (SketchSetGridSpacing) Describe() string { return "Set Grid Spacing" }

// SetExtrudeDialogParams updates the in-progress extrude dialog's
// boolean-op and direction parameters in place; like SketchSetTool, this
// is dialog configuration, not a committed edit, so it is not undoable.
type SetExtrudeDialogParams struct {
	Distance      float64
	Direction     feature.ExtrudeDirection
	Op            feature.BooleanOp
	HasTargetBody bool
	TargetBodyID  uid.UID
}

func (SetExtrudeDialogParams) IsUndoable() bool { return false }
func (SetExtrudeDialogParams) Describe() string { return "Set Extrude Parameters" }

// FinishExtrude confirms the extrude/revolve dialog after a sketch is
// complete: appends the feature using the dialog's accumulated
// parameters, exits sketch mode, triggers a feature-history rebuild.
type FinishExtrude struct {
	SketchID uid.UID
}

func (FinishExtrude) IsUndoable() bool { return true }
func (FinishExtrude) Describe() string { return "Extrude" }

// --- Plane selection ----------------------------------------------------

// BeginPlaneSelection transitions out of Assembly mode so the user can
// pick a reference plane (or an existing planar face) to sketch on.
type BeginPlaneSelection struct{}

func (BeginPlaneSelection) IsUndoable() bool { return false }
func (BeginPlaneSelection) Describe() string { return "Select Sketch Plane" }

// CancelPlaneSelection returns to Assembly mode without creating a sketch.
type CancelPlaneSelection struct{}

func (CancelPlaneSelection) IsUndoable() bool { return false }
func (CancelPlaneSelection) Describe() string { return "Cancel Plane Selection" }

// --- Feature suppression/removal -----------------------------------------

// SetFeatureSuppressed toggles a feature's suppressed flag and rebuilds.
type SetFeatureSuppressed struct {
	FeatureID  uid.UID
	Suppressed bool
}

func (SetFeatureSuppressed) IsUndoable() bool { return true }
func (SetFeatureSuppressed) Describe() string { return "Suppress Feature" }

// DeleteFeature removes a feature from history entirely and rebuilds.
type DeleteFeature struct{ FeatureID uid.UID }

func (DeleteFeature) IsUndoable() bool { return true }
func (DeleteFeature) Describe() string { return "Delete Feature" }

// --- Undo/Redo ----------------------------------------------------------

type Undo struct{}

func (Undo) IsUndoable() bool { return false }
func (Undo) Describe() string { return "Undo" }

type Redo struct{}

func (Redo) IsUndoable() bool { return false }
func (Redo) Describe() string { return "Redo" }
