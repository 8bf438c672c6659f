package project_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/rkcad/rk/assembly"
	"github.com/rkcad/rk/feature"
	"github.com/rkcad/rk/kernel/native"
	"github.com/rkcad/rk/logging"
	"github.com/rkcad/rk/project"
	"github.com/rkcad/rk/sketch"
	"github.com/rkcad/rk/spatialmath"
	"github.com/rkcad/rk/uid"
)

// buildRectangleExtrude constructs the sketch+feature pair from scenario
// 1: a 10x5 rectangle on the XY plane extruded 3 units.
func buildRectangleExtrude(logger logging.Logger) *feature.History {
	h := feature.NewHistory(logger)

	s := sketch.New("base", spatialmath.PlaneXY())
	p1 := sketch.NewPoint(spatialmath.Point2{X: 0, Y: 0})
	p2 := sketch.NewPoint(spatialmath.Point2{X: 10, Y: 0})
	p3 := sketch.NewPoint(spatialmath.Point2{X: 10, Y: 5})
	p4 := sketch.NewPoint(spatialmath.Point2{X: 0, Y: 5})
	for _, p := range []sketch.Point{p1, p2, p3, p4} {
		s.AddEntity(p)
	}
	s.AddEntity(sketch.NewLine(p1.ID, p2.ID))
	s.AddEntity(sketch.NewLine(p2.ID, p3.ID))
	s.AddEntity(sketch.NewLine(p3.ID, p4.ID))
	s.AddEntity(sketch.NewLine(p4.ID, p1.ID))
	h.AddSketch(s)

	h.AddFeature(feature.NewExtrude("Extrude", s.ID, 3, feature.Positive, feature.OpNew, uid.Nil, false))
	return h
}

func TestProjectRoundTripPreservesRebuiltBoundingBox(t *testing.T) {
	logger := logging.NewTestLogger()
	k := native.New()

	h := buildRectangleExtrude(logger)
	report := h.Rebuild(k)
	require.True(t, report.OK())

	var beforeMin, beforeMax [3]float32
	for _, b := range h.Bodies() {
		m, err := b.GetMesh(k, 0.1)
		require.NoError(t, err)
		var ok bool
		beforeMin, beforeMax, ok = m.BoundingBox()
		require.True(t, ok)
	}

	file := project.ToFile(project.Snapshot{Name: "rect-extrude", Assembly: assembly.NewGraph("assembly"), Cad: h})

	dir := t.TempDir()
	path := filepath.Join(dir, "rect.yaml")
	require.NoError(t, project.Save(path, file))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	loaded, err := project.Load(path)
	require.NoError(t, err)
	require.Equal(t, "rect-extrude", loaded.Name)
	require.Len(t, loaded.Cad.Sketches, 1)
	require.Len(t, loaded.Cad.Features, 1)

	restored := project.FromFile(loaded, logger)
	report2 := restored.Cad.Rebuild(k)
	require.True(t, report2.OK())

	var afterMin, afterMax [3]float32
	for _, b := range restored.Cad.Bodies() {
		m, err := b.GetMesh(k, 0.1)
		require.NoError(t, err)
		var ok bool
		afterMin, afterMax, ok = m.BoundingBox()
		require.True(t, ok)
	}

	for i := 0; i < 3; i++ {
		require.InDelta(t, beforeMin[i], afterMin[i], 1e-5)
		require.InDelta(t, beforeMax[i], afterMax[i], 1e-5)
	}
}

// TestProjectFileSurvivesSaveLoadByteForByte guards the YAML schema
// itself (every DTO field, not just the rebuilt-mesh bounding box): a
// File written and reloaded must produce a structurally identical File,
// since Save/Load round-trips through the wire format rather than
// copying Go values directly.
func TestProjectFileSurvivesSaveLoadByteForByte(t *testing.T) {
	logger := logging.NewTestLogger()
	h := buildRectangleExtrude(logger)

	before := project.ToFile(project.Snapshot{Name: "rect-extrude", Assembly: assembly.NewGraph("assembly"), Cad: h})

	dir := t.TempDir()
	path := filepath.Join(dir, "rect.yaml")
	require.NoError(t, project.Save(path, before))

	after, err := project.Load(path)
	require.NoError(t, err)

	if diff := cmp.Diff(before, after); diff != "" {
		t.Fatalf("project file changed across save/load round trip (-want +got):\n%s", diff)
	}
}
