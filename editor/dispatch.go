package editor

import (
	"github.com/rkcad/rk/assembly"
	"github.com/rkcad/rk/feature"
	"github.com/rkcad/rk/kernel"
	"github.com/rkcad/rk/sketch"
	"github.com/rkcad/rk/uid"
)

// Dispatch applies one action to the store. If the action is undoable,
// the pre-mutation state is snapshotted first and pushed onto the undo
// stack, clearing the redo stack, exactly per the original
// implementation's save_state-then-mutate sequencing.
func (s *Store) Dispatch(a Action) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if a.IsUndoable() {
		s.history.SaveState(s.snapshot(a.Describe()))
	}

	switch act := a.(type) {
	case Undo:
		s.applyUndo()
		return
	case Redo:
		s.applyRedo()
		return
	case NewProject:
		s.Parts = make(map[uid.UID]Part)
		s.Assembly = assembly.NewGraph("assembly")
		s.CAD = feature.NewHistory(s.logger)
		s.Mode = AssemblyMode()
		s.HasSelectedPart = false
		s.Modified = false
		return
	case AddPart:
		s.Parts[act.PartID] = Part{ID: act.PartID, Name: act.Name}
	case SelectPart:
		s.SelectedPart, s.HasSelectedPart = act.PartID, act.HasPart
	case DeleteSelectedPart:
		if s.HasSelectedPart {
			delete(s.Parts, s.SelectedPart)
			s.HasSelectedPart = false
		}
	case UpdatePartTransform:
		if p, ok := s.Parts[act.PartID]; ok {
			p.Transform = act.Transform
			s.Parts[act.PartID] = p
		}
	case ConnectParts:
		_ = s.Assembly.Connect(act.ParentLinkID, act.ChildLinkID, act.Joint)
	case DisconnectPart:
		s.Assembly.Disconnect(act.ChildLinkID)
	case UpdateJointPosition:
		s.Assembly.SetJointPosition(act.JointID, act.Position)
		return // real-time, non-undoable: skip the modified-flag update below
	case ResetJointPosition:
		s.Assembly.SetJointPosition(act.JointID, 0)
	case ResetAllJointPositions:
		for id := range s.Assembly.Joints() {
			s.Assembly.SetJointPosition(id, 0)
		}
	case UpdateJointLimits:
		_ = s.Assembly.SetJointLimits(act.JointID, act.Limits)
	case AddCollision:
		_ = s.Assembly.AddCollisionElement(act.LinkID, act.Element)
	case RemoveCollision:
		_ = s.Assembly.RemoveCollisionElement(act.LinkID, act.Index)
	case SketchCreate:
		sk := sketch.New(act.Name, act.Plane)
		s.CAD.AddSketch(sk)
		s.Mode = EnterSketchMode(sk.ID)
	case SketchEdit:
		s.Mode = EnterSketchMode(act.SketchID)
		return // selection-equivalent, non-undoable
	case SketchExit:
		s.exitSketchMode()
		return
	case SketchSetTool:
		if s.Mode.IsSketch() {
			s.Mode.Sketch.CurrentTool = act.Tool
		}
		return
	case SketchAddEntity:
		if sk, ok := s.CAD.Sketch(act.SketchID); ok {
			sk.AddEntity(act.Entity)
		}
	case SketchDeleteSelected:
		if sk, ok := s.CAD.Sketch(act.SketchID); ok && s.Mode.IsSketch() {
			for _, id := range s.Mode.Sketch.SelectedEntities {
				sk.RemoveEntity(id)
			}
			s.Mode.Sketch.ClearSelection()
		}
	case SketchAddConstraint:
		if sk, ok := s.CAD.Sketch(act.SketchID); ok {
			_ = sk.AddConstraint(act.Constraint)
		}
	case SketchDeleteConstraint:
		if sk, ok := s.CAD.Sketch(act.SketchID); ok {
			sk.RemoveConstraint(act.ConstraintID)
		}
	case SketchSolve:
		if sk, ok := s.CAD.Sketch(act.SketchID); ok {
			sk.Solve()
		}
	case SketchToggleSnap:
		if s.Mode.IsSketch() {
			s.Mode.Sketch.SnapToGrid = !s.Mode.Sketch.SnapToGrid
		}
		return
	case SketchSetGridSpacing:
		if s.Mode.IsSketch() {
			s.Mode.Sketch.GridSpacing = act.Spacing
		}
		return
	case SetExtrudeDialogParams:
		if s.Mode.IsSketch() {
			d := &s.Mode.Sketch.ExtrudeDialog
			d.Distance = act.Distance
			d.Direction = act.Direction
			d.Op = act.Op
			d.HasTargetBody = act.HasTargetBody
			d.TargetBodyID = act.TargetBodyID
		}
		return
	case FinishExtrude:
		s.finishExtrude(act)
	case BeginPlaneSelection:
		s.Mode = EnterPlaneSelection()
		return
	case CancelPlaneSelection:
		if s.Mode.Kind == ModePlaneSelection {
			s.Mode = AssemblyMode()
		}
		return
	case SetFeatureSuppressed:
		s.CAD.SetSuppressed(act.FeatureID, act.Suppressed)
		s.rebuildDefault()
	case DeleteFeature:
		s.CAD.RemoveFeature(act.FeatureID)
		s.rebuildDefault()
	case RebuildCompleteAction:
		s.LastRebuildReport = act.Report
	default:
		if cc, ok := a.(configChanged); ok {
			s.applyConfigChanged(cc)
			return
		}
		// LoadProject/SaveProject/other file-boundary actions are
		// handled by the project-loading caller before/after dispatch;
		// nothing to mutate in the in-memory store itself.
	}

	s.Modified = true
}

func (s *Store) applyUndo() {
	prev, ok := s.history.Undo(s.snapshot(""))
	if !ok {
		return
	}
	s.restore(prev)
	s.Assembly.InvalidateCache()
	s.HasSelectedPart = false
	s.Modified = true
}

func (s *Store) applyRedo() {
	next, ok := s.history.Redo(s.snapshot(""))
	if !ok {
		return
	}
	s.restore(next)
	s.Assembly.InvalidateCache()
	s.HasSelectedPart = false
	s.Modified = true
}

func (s *Store) exitSketchMode() {
	if !s.Mode.IsSketch() {
		return
	}
	if sk, ok := s.CAD.Sketch(s.Mode.Sketch.ActiveSketch); ok {
		sk.Solve()
	}
	s.Mode = AssemblyMode()
}

// configChanged is the shape a config.Changed action must satisfy for
// Dispatch to apply it; matched structurally so this package never
// imports package config (which itself imports editor.Store for
// Enqueue).
type configChanged interface {
	ConfigGridSpacing() float64
	ConfigSnapToGrid() bool
	ConfigUndoHistoryCap() int
}

// applyConfigChanged pushes a reloaded configuration's viewport/undo
// settings into the live store, per SPEC_FULL.md §6.4.
func (s *Store) applyConfigChanged(cc configChanged) {
	s.Mode.Sketch.GridSpacing = cc.ConfigGridSpacing()
	s.Mode.Sketch.SnapToGrid = cc.ConfigSnapToGrid()
	s.history.SetMax(cc.ConfigUndoHistoryCap())
}

// finishExtrude appends an Extrude feature using the sketch's accumulated
// dialog parameters (distance, direction, boolean op, target body),
// exits sketch mode, and rebuilds the feature history against the
// default kernel, mirroring the original implementation's "confirm
// extrude" sequence (close dialog, return to Assembly, rebuild, resync).
func (s *Store) finishExtrude(act FinishExtrude) feature.RebuildReport {
	d := s.Mode.Sketch.ExtrudeDialog
	f := feature.NewExtrude("Extrude", act.SketchID, d.Distance, d.Direction, d.Op, d.TargetBodyID, d.HasTargetBody)
	s.CAD.AddFeature(f)
	s.exitSketchMode()
	return s.rebuildDefault()
}

// rebuildDefault rebuilds the feature history against the default
// kernel backend, used by any action that mutates feature history
// outside the extrude-dialog flow (suppress/delete).
func (s *Store) rebuildDefault() feature.RebuildReport {
	k, err := kernel.Default()
	if err != nil {
		report := feature.RebuildReport{Combined: err}
		s.LastRebuildReport = report
		return report
	}
	report := s.CAD.Rebuild(k)
	s.LastRebuildReport = report
	return report
}
