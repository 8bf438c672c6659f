package render_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rkcad/rk/render"
	"github.com/rkcad/rk/sketch"
	"github.com/rkcad/rk/spatialmath"
)

func TestFrameZeroValueHasNoOptionalLayers(t *testing.T) {
	var f render.Frame
	require.False(t, f.HasAxes)
	require.False(t, f.HasSketch)
	require.False(t, f.HasPreview)
	require.Empty(t, f.Bodies)
}

func TestPreviewBodyEmbedsBodyFields(t *testing.T) {
	pb := render.PreviewBody{Body: render.Body{Color: [4]float32{1, 0, 0, 0.5}}}
	require.Equal(t, [4]float32{1, 0, 0, 0.5}, pb.Color)
}

func TestSketchPrimitivesFromFlattensEntitiesByPosition(t *testing.T) {
	s := sketch.New("s1", spatialmath.PlaneXY())

	center := sketch.NewPoint(spatialmath.Point2{X: 1, Y: 2})
	s.AddEntity(center)
	s.AddEntity(sketch.NewCircle(center.ID, 3))

	prims := render.SketchPrimitivesFrom(s)
	require.Equal(t, [][2]float32{{1, 2}}, prims.Points)
	require.Len(t, prims.Circles, 1)
	require.Equal(t, [2]float32{1, 2}, prims.Circles[0].Center)
	require.InDelta(t, 3, prims.Circles[0].Radius, 1e-6)
}

func TestConstraintIconsFromCarriesDimensionalValue(t *testing.T) {
	s := sketch.New("s1", spatialmath.PlaneXY())

	center := sketch.NewPoint(spatialmath.Point2{X: 0, Y: 0})
	s.AddEntity(center)
	circle := sketch.NewCircle(center.ID, 5)
	s.AddEntity(circle)
	require.NoError(t, s.AddConstraint(sketch.NewDimensionalConstraint(sketch.Radius, 5, circle.ID)))

	icons := render.ConstraintIconsFrom(s)
	require.Len(t, icons, 1)
	require.True(t, icons[0].HasValue)
	require.InDelta(t, 5, icons[0].Value, 1e-6)
	require.Equal(t, [2]float32{0, 0}, icons[0].Position)
}
