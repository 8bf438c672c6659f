package editor_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rkcad/rk/assembly"
	"github.com/rkcad/rk/editor"
	"github.com/rkcad/rk/feature"
	"github.com/rkcad/rk/logging"
	"github.com/rkcad/rk/sketch"
	"github.com/rkcad/rk/spatialmath"
	"github.com/rkcad/rk/uid"
)

func TestUndoRedoRoundTrip(t *testing.T) {
	s := editor.NewStore(logging.NewTestLogger())

	p1 := uid.New()
	p2 := uid.New()

	s.Dispatch(editor.AddPart{PartID: p1, Name: "P1"})
	require.True(t, s.Modified)
	s.Dispatch(editor.AddPart{PartID: p2, Name: "P2"})

	require.Len(t, s.Parts, 2)

	s.Dispatch(editor.Undo{})
	require.Len(t, s.Parts, 1)
	_, hasP1 := s.Part(p1)
	require.True(t, hasP1)

	s.Dispatch(editor.Undo{})
	require.Len(t, s.Parts, 0)
	require.False(t, s.CanUndo())

	s.Dispatch(editor.Redo{})
	require.Len(t, s.Parts, 1)
	_, hasP1Again := s.Part(p1)
	require.True(t, hasP1Again)

	// The modified flag reflects the last non-Undo/Redo mutation: both
	// Undo calls and the Redo call leave it set from the AddPart(P2)
	// dispatch, since Undo/Redo are explicitly non-undoable actions and
	// still flip Modified as part of restoring state.
	require.True(t, s.Modified)
}

func TestUndoWithNothingToUndoIsNoop(t *testing.T) {
	s := editor.NewStore(logging.NewTestLogger())
	require.False(t, s.CanUndo())
	s.Dispatch(editor.Undo{})
	require.Len(t, s.Parts, 0)
}

func TestUpdateJointPositionIsNotUndoable(t *testing.T) {
	var a editor.UpdateJointPosition
	require.False(t, a.IsUndoable())
}

func TestAddPartIsUndoable(t *testing.T) {
	var a editor.AddPart
	require.True(t, a.IsUndoable())
}

func TestUndoReversesAssemblyMutation(t *testing.T) {
	s := editor.NewStore(logging.NewTestLogger())

	parent := assembly.NewLink("base")
	child := assembly.NewLink("arm")
	s.Assembly.AddLink(parent)
	s.Assembly.AddLink(child)

	joint := assembly.FixedJoint("j0", parent.ID, child.ID, spatialmath.Pose{})
	s.Dispatch(editor.ConnectParts{ParentLinkID: parent.ID, ChildLinkID: child.ID, Joint: joint})

	_, connected := s.Assembly.Joint(joint.ID)
	require.True(t, connected)

	s.Dispatch(editor.Undo{})

	_, stillConnected := s.Assembly.Joint(joint.ID)
	require.False(t, stillConnected)

	s.Dispatch(editor.Redo{})
	_, reconnected := s.Assembly.Joint(joint.ID)
	require.True(t, reconnected)
}

func TestUndoReversesSketchCreate(t *testing.T) {
	s := editor.NewStore(logging.NewTestLogger())

	s.Dispatch(editor.SketchCreate{Name: "s1", Plane: spatialmath.PlaneXY()})
	require.True(t, s.Mode.IsSketch())
	sketchID := s.Mode.Sketch.ActiveSketch
	_, ok := s.CAD.Sketch(sketchID)
	require.True(t, ok)

	s.Dispatch(editor.Undo{})
	require.False(t, s.Mode.IsSketch())
	_, ok = s.CAD.Sketch(sketchID)
	require.False(t, ok)
}

func TestBeginAndCancelPlaneSelection(t *testing.T) {
	s := editor.NewStore(logging.NewTestLogger())

	s.Dispatch(editor.BeginPlaneSelection{})
	require.True(t, s.Mode.IsPlaneSelection())

	s.Dispatch(editor.CancelPlaneSelection{})
	require.False(t, s.Mode.IsPlaneSelection())
	require.Equal(t, editor.ModeAssembly, s.Mode.Kind)
}

func TestFinishExtrudeUsesDialogParameters(t *testing.T) {
	s := editor.NewStore(logging.NewTestLogger())

	s.Dispatch(editor.SketchCreate{Name: "s1", Plane: spatialmath.PlaneXY()})
	sketchID := s.Mode.Sketch.ActiveSketch
	sk, _ := s.CAD.Sketch(sketchID)
	addRectangle(sk)

	target := uid.New()
	s.Dispatch(editor.SetExtrudeDialogParams{
		Distance:      2.5,
		Direction:     feature.Symmetric,
		Op:            feature.OpCut,
		HasTargetBody: true,
		TargetBodyID:  target,
	})
	require.True(t, s.Mode.IsSketch())

	s.Dispatch(editor.FinishExtrude{SketchID: sketchID})
	require.False(t, s.Mode.IsSketch())

	features := s.CAD.Features()
	require.Len(t, features, 1)
	require.Equal(t, 2.5, features[0].Distance)
	require.Equal(t, feature.Symmetric, features[0].Direction)
	require.Equal(t, feature.OpCut, features[0].Op)
	require.True(t, features[0].HasTargetBody)
	require.Equal(t, target, features[0].TargetBodyID)
}

func TestDeleteFeatureRemovesFromHistory(t *testing.T) {
	s := editor.NewStore(logging.NewTestLogger())

	s.Dispatch(editor.SketchCreate{Name: "s1", Plane: spatialmath.PlaneXY()})
	sketchID := s.Mode.Sketch.ActiveSketch
	sk, _ := s.CAD.Sketch(sketchID)
	addRectangle(sk)
	s.Dispatch(editor.FinishExtrude{SketchID: sketchID})

	require.Len(t, s.CAD.Features(), 1)
	featureID := s.CAD.Features()[0].ID

	s.Dispatch(editor.DeleteFeature{FeatureID: featureID})
	require.Len(t, s.CAD.Features(), 0)

	s.Dispatch(editor.Undo{})
	require.Len(t, s.CAD.Features(), 1)
}

func addRectangle(sk *sketch.Sketch) {
	p0 := sketch.NewPoint(spatialmath.Point2{})
	p1 := sketch.NewPoint(spatialmath.Point2{X: 1})
	p2 := sketch.NewPoint(spatialmath.Point2{X: 1, Y: 1})
	p3 := sketch.NewPoint(spatialmath.Point2{Y: 1})
	for _, p := range []sketch.Point{p0, p1, p2, p3} {
		sk.AddEntity(p)
	}
	sk.AddEntity(sketch.NewLine(p0.ID, p1.ID))
	sk.AddEntity(sketch.NewLine(p1.ID, p2.ID))
	sk.AddEntity(sketch.NewLine(p2.ID, p3.ID))
	sk.AddEntity(sketch.NewLine(p3.ID, p0.ID))
}
