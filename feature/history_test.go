package feature_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/rkcad/rk/feature"
	"github.com/rkcad/rk/kernel"
	"github.com/rkcad/rk/kernel/native"
	"github.com/rkcad/rk/logging"
	"github.com/rkcad/rk/sketch"
	"github.com/rkcad/rk/spatialmath"
	"github.com/rkcad/rk/uid"
)

func rectangleSketch(w, h float64) *sketch.Sketch {
	s := sketch.New("rect", spatialmath.PlaneXY())
	p0 := sketch.NewPoint(spatialmath.Point2{})
	p1 := sketch.NewPoint(spatialmath.Point2{X: w})
	p2 := sketch.NewPoint(spatialmath.Point2{X: w, Y: h})
	p3 := sketch.NewPoint(spatialmath.Point2{Y: h})
	for _, p := range []sketch.Point{p0, p1, p2, p3} {
		s.AddEntity(p)
	}
	s.AddEntity(sketch.NewLine(p0.ID, p1.ID))
	s.AddEntity(sketch.NewLine(p1.ID, p2.ID))
	s.AddEntity(sketch.NewLine(p2.ID, p3.ID))
	s.AddEntity(sketch.NewLine(p3.ID, p0.ID))
	return s
}

func circleSketch(cx, cy, radius float64) *sketch.Sketch {
	s := sketch.New("circle", spatialmath.PlaneXY())
	center := sketch.NewPoint(spatialmath.Point2{X: cx, Y: cy})
	s.AddEntity(center)
	s.AddEntity(sketch.NewCircle(center.ID, radius))
	return s
}

func TestRebuildRectangleExtrudeProducesBoxBody(t *testing.T) {
	k := native.New()
	h := feature.NewHistory(logging.NewTestLogger())

	sk := rectangleSketch(10, 5)
	h.AddSketch(sk)
	h.AddFeature(feature.NewExtrude("Extrude1", sk.ID, 3, feature.Positive, feature.OpNew, kernel.Solid{}.ID, false))

	report := h.Rebuild(k)
	require.True(t, report.OK())
	require.Len(t, h.Bodies(), 1)

	var body *feature.Body
	for _, b := range h.Bodies() {
		body = b
	}
	mesh, err := body.GetMesh(k, 0.1)
	require.NoError(t, err)
	require.GreaterOrEqual(t, mesh.TriangleCount(), 12)

	min, max, ok := mesh.BoundingBox()
	require.True(t, ok)
	require.InDelta(t, 0, min[0], 1e-5)
	require.InDelta(t, 0, min[1], 1e-5)
	require.InDelta(t, 0, min[2], 1e-5)
	require.InDelta(t, 10, max[0], 1e-5)
	require.InDelta(t, 5, max[1], 1e-5)
	require.InDelta(t, 3, max[2], 1e-5)
}

func TestRebuildTwoCirclesBooleanUnion(t *testing.T) {
	k := native.New()
	h := feature.NewHistory(logging.NewTestLogger())

	skA := circleSketch(0, 0, 5)
	h.AddSketch(skA)
	extrudeA := feature.NewExtrude("ExtrudeA", skA.ID, 10, feature.Positive, feature.OpNew, kernel.Solid{}.ID, false)
	h.AddFeature(extrudeA)

	skB := circleSketch(4, 0, 5)
	h.AddSketch(skB)

	report := h.Rebuild(k)
	require.True(t, report.OK())
	var bodyAID = bodyIDFor(h, extrudeA.ID)

	extrudeB := feature.NewExtrude("ExtrudeB", skB.ID, 10, feature.Positive, feature.OpJoin, bodyAID, true)
	h.AddFeature(extrudeB)

	report = h.Rebuild(k)
	require.True(t, report.OK())
	require.Len(t, h.Bodies(), 1)

	var body *feature.Body
	for _, b := range h.Bodies() {
		body = b
	}
	mesh, err := body.GetMesh(k, 0.1)
	require.NoError(t, err)
	min, max, ok := mesh.BoundingBox()
	require.True(t, ok)
	require.InDelta(t, -5, min[0], 1e-5)
	require.InDelta(t, -5, min[1], 1e-5)
	require.InDelta(t, 0, min[2], 1e-5)
	require.InDelta(t, 9, max[0], 1e-5)
	require.InDelta(t, 5, max[1], 1e-5)
	require.InDelta(t, 10, max[2], 1e-5)
}

func TestUnsupportedBooleanOnNativeKernelReportsError(t *testing.T) {
	k := native.New()
	h := feature.NewHistory(logging.NewTestLogger())

	skA := rectangleSketch(10, 10)
	h.AddSketch(skA)
	extrudeA := feature.NewExtrude("ExtrudeA", skA.ID, 5, feature.Positive, feature.OpNew, kernel.Solid{}.ID, false)
	h.AddFeature(extrudeA)
	report := h.Rebuild(k)
	require.True(t, report.OK())
	bodyAID := bodyIDFor(h, extrudeA.ID)

	skB := rectangleSketch(2, 2)
	h.AddSketch(skB)
	cutFeature := feature.NewExtrude("CutAttempt", skB.ID, 5, feature.Positive, feature.OpCut, bodyAID, true)
	h.AddFeature(cutFeature)

	report = h.Rebuild(k)
	require.False(t, report.OK())
	require.Len(t, report.Errors, 1)
	require.ErrorIs(t, report.Errors[0].Err, kernel.ErrBooleanFailed)

	// BodyA must remain present and unaffected: failing the second
	// feature must not drop the first feature's body.
	require.Len(t, h.Bodies(), 1)

	// The failed cut feature itself is dropped from history so it can't
	// resurface on a later rebuild.
	require.Len(t, h.Features(), 1)
	require.Equal(t, extrudeA.ID, h.Features()[0].ID)
}

func bodyIDFor(h *feature.History, featureID uid.UID) uid.UID {
	for bodyID, b := range h.Bodies() {
		if b.SourceFeatureID == featureID {
			return bodyID
		}
	}
	panic("body not found for feature")
}

func TestRemovedSketchFailsRebuildButKeepsFeatureForRetry(t *testing.T) {
	k := native.New()
	h := feature.NewHistory(logging.NewTestLogger())

	sk := rectangleSketch(10, 5)
	h.AddSketch(sk)
	ext := feature.NewExtrude("Extrude", sk.ID, 3, feature.Positive, feature.OpNew, uid.Nil, false)
	h.AddFeature(ext)

	report := h.Rebuild(k)
	require.True(t, report.OK())
	require.Len(t, h.Bodies(), 1)

	h.RemoveSketch(sk.ID)
	report = h.Rebuild(k)
	require.False(t, report.OK())
	require.Len(t, report.Errors, 1)
	require.ErrorIs(t, report.Errors[0].Err, feature.ErrSketchNotFound)

	// Unlike a rejected boolean, a missing-sketch failure must not drop
	// the feature: it stays in history so restoring the sketch and
	// rebuilding again recovers it.
	require.Len(t, h.Features(), 1)
	require.Equal(t, ext.ID, h.Features()[0].ID)
	require.Empty(t, h.Bodies())

	h.AddSketch(sk)
	report = h.Rebuild(k)
	require.True(t, report.OK())
	require.Len(t, h.Bodies(), 1)
}

// TestCloneRoundTripsFeatureList guards History.Clone's Feature list
// structurally: a clone must carry every field (including the Edges
// slice Fillet/Chamfer features populate) without drift, not merely the
// same length or ID.
func TestCloneRoundTripsFeatureList(t *testing.T) {
	h := feature.NewHistory(logging.NewTestLogger())

	sk := rectangleSketch(10, 5)
	h.AddSketch(sk)
	ext := feature.NewExtrude("Extrude", sk.ID, 3, feature.Positive, feature.OpNew, uid.Nil, false)
	h.AddFeature(ext)
	fillet := feature.NewFillet("Fillet", uid.New(), 0.5, []uid.UID{uid.New(), uid.New()})
	h.AddFeature(fillet)

	clone := h.Clone()

	if diff := cmp.Diff(h.Features(), clone.Features()); diff != "" {
		t.Fatalf("Clone's feature list diverged from the original (-want +got):\n%s", diff)
	}
}
